package audio

import (
	"math"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

const resampleQuality = 4

// Mixer combines every playing Clip into one stereo stream. The output device
// pulls from Stream on its own goroutine; all clip state changes take the same
// lock.
type Mixer struct {
	mu    sync.Mutex
	rate  beep.SampleRate
	mixer *beep.Mixer
}

func NewMixer(rate beep.SampleRate) *Mixer {
	return &Mixer{rate: rate, mixer: &beep.Mixer{}}
}

func (m *Mixer) SampleRate() beep.SampleRate { return m.rate }

// Stream renders the next block. It never drains: silence is produced when
// nothing is playing.
func (m *Mixer) Stream(samples [][2]float64) (n int, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, _ = m.mixer.Stream(samples)
	for i := n; i < len(samples); i++ {
		samples[i] = [2]float64{}
	}
	return len(samples), true
}

func (m *Mixer) Err() error { return nil }

// Active returns the number of streamers currently attached.
func (m *Mixer) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mixer.Len()
}

// Clear drops every attached streamer.
func (m *Mixer) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mixer.Clear()
}

type clipState int

const (
	clipStopped clipState = iota
	clipPlaying
	clipPaused
)

// Clip is a decoded sound attached to a Mixer.
type Clip struct {
	m        *Mixer
	name     string
	buffer   *beep.Buffer
	channels int

	looped   bool
	state    clipState
	gen      int
	volumeDB float64
	pitch    float64
	pan      float64
	gain     float64

	filterKind     FilterKind
	filterFreq     float64
	filterOneOverQ float64

	// out is the last stage and the one the mixer holds, so pausing or
	// stopping it takes effect on the next block.
	out       *beep.Ctrl
	resampler *beep.Resampler
	filter    *Filter
	volume    *effects.Volume
	panner    *effects.Pan
}

// NewClip wraps a buffer already at the mixer's sample rate. channels is the
// channel count of the source material.
func (m *Mixer) NewClip(name string, buffer *beep.Buffer, channels int) *Clip {
	return &Clip{
		m:        m,
		name:     name,
		buffer:   buffer,
		channels: channels,
		gain:     1,
	}
}

func (c *Clip) Name() string  { return c.name }
func (c *Clip) IsValid() bool { return true }
func (c *Clip) Channels() int { return c.channels }

func (c *Clip) IsPlaying() bool {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	return c.state == clipPlaying
}

func (c *Clip) SetLooped(looped bool) {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	c.looped = looped
}

// Play resumes a paused clip, starts a stopped one from the beginning and
// leaves a playing one alone.
func (c *Clip) Play() {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()

	switch c.state {
	case clipPlaying:
		return
	case clipPaused:
		c.out.Paused = false
		c.state = clipPlaying
		return
	}

	c.gen++
	gen := c.gen
	var src beep.Streamer = c.buffer.Streamer(0, c.buffer.Len())
	if c.looped {
		src = beep.Loop(-1, c.buffer.Streamer(0, c.buffer.Len()))
	}
	// runs on the mixer goroutine with the lock held
	done := beep.Callback(func() {
		if c.gen == gen {
			c.state = clipStopped
			c.detach()
		}
	})

	c.resampler = beep.ResampleRatio(resampleQuality, pitchRatio(c.pitch), beep.Seq(src, done))
	c.filter = NewFilter(c.resampler, c.m.rate, c.filterKind, c.filterFreq, c.filterOneOverQ)
	c.volume = &effects.Volume{Streamer: c.filter, Base: 10}
	c.panner = &effects.Pan{Streamer: c.volume, Pan: c.pan}
	c.out = &beep.Ctrl{Streamer: c.panner}
	c.applyVolume()

	c.m.mixer.Add(c.out)
	c.state = clipPlaying
}

func (c *Clip) Pause() {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	if c.state != clipPlaying {
		return
	}
	c.out.Paused = true
	c.state = clipPaused
}

// Stop halts playback; the next Play starts from the beginning.
func (c *Clip) Stop() {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	if c.out != nil {
		// a nil streamer reports drained, so the mixer drops it this block
		c.out.Streamer = nil
	}
	c.gen++
	c.state = clipStopped
	c.detach()
}

func (c *Clip) SetFilter(kind FilterKind, frequency, oneOverQ float64) {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	c.filterKind, c.filterFreq, c.filterOneOverQ = kind, frequency, oneOverQ
	if c.filter != nil {
		c.filter.Set(kind, frequency, oneOverQ)
	}
}

func (c *Clip) SetVolume(db float64) {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	c.volumeDB = db
	c.applyVolume()
}

func (c *Clip) SetPitch(percent float64) {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	c.pitch = percent
	if c.resampler != nil {
		c.resampler.SetRatio(pitchRatio(percent))
	}
}

func (c *Clip) SetSpatial(pan, gain float64) {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	c.pan = math.Max(-1, math.Min(1, pan))
	c.gain = gain
	if c.panner != nil {
		c.panner.Pan = c.pan
	}
	c.applyVolume()
}

// applyVolume folds the base volume and the spatial gain into one decibel
// value. Caller holds the lock.
func (c *Clip) applyVolume() {
	if c.volume == nil {
		return
	}
	if c.gain <= 0 {
		c.volume.Silent = true
		return
	}
	c.volume.Silent = false
	c.volume.Volume = (c.volumeDB + 20*math.Log10(c.gain)) / 20
}

func (c *Clip) detach() {
	c.out = nil
	c.resampler = nil
	c.filter = nil
	c.volume = nil
	c.panner = nil
}

func pitchRatio(percent float64) float64 {
	r := 1 + percent/100
	if r < 0.1 {
		r = 0.1
	}
	return r
}

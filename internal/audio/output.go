package audio

import (
	"os"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

var (
	audioOnce sync.Once
	audioCtx  *audio.Context
)

// getAudioContext returns the process-wide ebiten audio context; ebiten allows
// only one per process.
func getAudioContext(rate int) *audio.Context {
	audioOnce.Do(func() {
		audioCtx = audio.NewContext(rate)
	})
	return audioCtx
}

// Output drives a Mixer in real time, either into the audio device or, with
// GHOSTESCAPE_DISABLE_AUDIO=1, into a silent pump that only keeps time.
type Output struct {
	mixer  *Mixer
	player *audio.Player
	stop   chan struct{}
	wg     sync.WaitGroup
}

// StartOutput begins pulling from m.
func StartOutput(m *Mixer) (*Output, error) {
	if os.Getenv("GHOSTESCAPE_DISABLE_AUDIO") == "1" {
		return startSilent(m), nil
	}
	ctx := getAudioContext(int(m.rate))
	p, err := audio.NewPlayer(ctx, &pcmReader{src: m})
	if err != nil {
		return nil, err
	}
	p.SetBufferSize(50 * time.Millisecond)
	p.Play()
	return &Output{mixer: m, player: p}, nil
}

func startSilent(m *Mixer) *Output {
	o := &Output{mixer: m, stop: make(chan struct{})}
	const tick = 20 * time.Millisecond
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		t := time.NewTicker(tick)
		defer t.Stop()
		buf := make([][2]float64, m.rate.N(tick))
		for {
			select {
			case <-o.stop:
				return
			case <-t.C:
				m.Stream(buf)
			}
		}
	}()
	return o
}

// Close stops pulling from the mixer and detaches whatever is still
// attached to it.
func (o *Output) Close() error {
	if o == nil {
		return nil
	}
	if o.mixer != nil {
		defer o.mixer.Clear()
	}
	if o.stop != nil {
		close(o.stop)
		o.wg.Wait()
		o.stop = nil
	}
	if o.player != nil {
		err := o.player.Close()
		o.player = nil
		return err
	}
	return nil
}

// pcmReader encodes a streamer as 16-bit little-endian stereo, the format
// ebiten players consume.
type pcmReader struct {
	src beep.Streamer
	buf [][2]float64
}

func (r *pcmReader) Read(p []byte) (int, error) {
	frames := len(p) / 4
	if frames == 0 {
		return 0, nil
	}
	if cap(r.buf) < frames {
		r.buf = make([][2]float64, frames)
	}
	buf := r.buf[:frames]
	n, _ := r.src.Stream(buf)
	for i := n; i < frames; i++ {
		buf[i] = [2]float64{}
	}
	for i, s := range buf {
		l := toInt16(s[0])
		rr := toInt16(s[1])
		p[i*4] = byte(l)
		p[i*4+1] = byte(l >> 8)
		p[i*4+2] = byte(rr)
		p[i*4+3] = byte(rr >> 8)
	}
	return frames * 4, nil
}

func toInt16(v float64) int16 {
	if v > 1 {
		v = 1
	}
	if v < -1 {
		v = -1
	}
	return int16(v * 32767)
}

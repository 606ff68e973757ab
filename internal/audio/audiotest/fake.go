// Package audiotest provides a recording audio.Sound for tests.
package audiotest

import "github.com/CassBennett/Escape/internal/audio"

// Fake records every call made to it. A fake that is playing keeps playing
// until Finish or Stop is called.
type Fake struct {
	SoundName string
	Broken    bool
	Playing   bool
	Paused    bool
	Looped    bool
	Chans     int

	Plays, Pauses, Stops int
	SpatialUpdates       int

	Filter         audio.FilterKind
	FilterFreq     float64
	FilterOneOverQ float64
	FilterCalls    int
	VolumeDB       float64
	Pitch          float64
	Pan, Gain      float64
}

var _ audio.Sound = (*Fake)(nil)

func New(name string) *Fake {
	return &Fake{SoundName: name, Chans: 1, Gain: 1}
}

// NewBroken returns a fake that reports itself invalid.
func NewBroken(name string) *Fake {
	f := New(name)
	f.Broken = true
	return f
}

// Finish simulates the sound running to its end.
func (f *Fake) Finish() {
	f.Playing = false
	f.Paused = false
}

func (f *Fake) Name() string    { return f.SoundName }
func (f *Fake) IsValid() bool   { return !f.Broken }
func (f *Fake) IsPlaying() bool { return f.Playing && !f.Broken }
func (f *Fake) Channels() int   { return f.Chans }

func (f *Fake) Play() {
	f.Plays++
	f.Playing = true
	f.Paused = false
}

func (f *Fake) Pause() {
	f.Pauses++
	if f.Playing {
		f.Paused = true
	}
	f.Playing = false
}

func (f *Fake) Stop() {
	f.Stops++
	f.Playing = false
	f.Paused = false
}

func (f *Fake) SetLooped(looped bool) { f.Looped = looped }

func (f *Fake) SetFilter(kind audio.FilterKind, frequency, oneOverQ float64) {
	f.FilterCalls++
	f.Filter, f.FilterFreq, f.FilterOneOverQ = kind, frequency, oneOverQ
}

func (f *Fake) SetVolume(db float64)     { f.VolumeDB = db }
func (f *Fake) SetPitch(percent float64) { f.Pitch = percent }

func (f *Fake) SetSpatial(pan, gain float64) {
	f.SpatialUpdates++
	f.Pan, f.Gain = pan, gain
}

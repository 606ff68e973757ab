package spatial

import (
	"github.com/CassBennett/Escape/internal/audio"
	"github.com/CassBennett/Escape/internal/vecmath"
)

// Emitter is one positioned sound source spatialised against a Listener.
// An emitter whose sound is invalid degrades to a no-op.
type Emitter struct {
	sound        audio.Sound
	position     vecmath.Vector3
	listener     *Listener
	calc         Calculator
	cone         Cone
	coneEnabled  bool
	channelCount int
	curveScaler  float64
	last         Params
}

func NewEmitter(sound audio.Sound, pos vecmath.Vector3, listener *Listener, looped bool) *Emitter {
	e := &Emitter{
		sound:       audio.OrInvalid(sound),
		position:    pos,
		listener:    listener,
		calc:        InverseDistance{},
		curveScaler: 1,
	}
	if !e.sound.IsValid() {
		return e
	}
	e.sound.SetLooped(looped)
	e.channelCount = e.sound.Channels()
	return e
}

// NewConeEmitter builds an emitter whose volume follows a cone pointing from
// soundPoint toward orientationPoint.
func NewConeEmitter(sound audio.Sound, pos vecmath.Vector3, listener *Listener,
	soundPoint, orientationPoint vecmath.Vector3, looped bool) *Emitter {
	e := NewEmitter(sound, pos, listener, looped)
	e.cone = NewCone(soundPoint, orientationPoint)
	e.coneEnabled = true
	return e
}

// Update pushes fresh spatial parameters to the sound while it is playing.
func (e *Emitter) Update() {
	if e.listener == nil || !e.sound.IsPlaying() {
		return
	}
	src := Source{
		Position:     e.position,
		ChannelCount: e.channelCount,
		CurveScaler:  e.curveScaler,
	}
	if e.coneEnabled {
		cone := e.cone
		src.Cone = &cone
	}
	e.last = e.calc.Calculate(src, e.listener)
	e.sound.SetSpatial(e.last.Pan, e.last.Gain)
}

func (e *Emitter) Reset(play bool) {
	if play {
		e.Play()
	}
	e.Update()
}

// ChangeSound swaps in a new sound at pos. The emitter loses its cone.
func (e *Emitter) ChangeSound(s audio.Sound, pos vecmath.Vector3, looped bool) {
	if e.sound.IsValid() {
		e.sound.Stop()
	}
	e.sound = audio.OrInvalid(s)
	e.coneEnabled = false
	e.cone = Cone{}
	e.channelCount = e.sound.Channels()
	e.position = pos
	if e.sound.IsValid() {
		e.sound.SetLooped(looped)
		e.sound.Play()
	}
	e.Update()
}

func (e *Emitter) Play() {
	if e.sound.IsValid() {
		e.sound.Play()
	}
}

func (e *Emitter) Pause() {
	if e.sound.IsValid() {
		e.sound.Pause()
	}
}

func (e *Emitter) Stop() {
	if e.sound.IsValid() {
		e.sound.Stop()
	}
}

func (e *Emitter) SetFilter(kind audio.FilterKind, frequency, oneOverQ float64) {
	e.sound.SetFilter(kind, frequency, oneOverQ)
}

// SetPosition moves the emitter. Call Update to push the change.
func (e *Emitter) SetPosition(p vecmath.Vector3) { e.position = p }

func (e *Emitter) Position() vecmath.Vector3 { return e.position }
func (e *Emitter) IsActive() bool            { return e.sound.IsPlaying() }
func (e *Emitter) IsValid() bool             { return e.sound.IsValid() }
func (e *Emitter) HasCone() bool             { return e.coneEnabled }
func (e *Emitter) ChannelCount() int         { return e.channelCount }
func (e *Emitter) Sound() audio.Sound        { return e.sound }

// Cone returns the emitter's cone and whether it is applied.
func (e *Emitter) Cone() (Cone, bool) { return e.cone, e.coneEnabled }

// LastParams returns the parameters computed by the most recent Update.
func (e *Emitter) LastParams() Params { return e.last }

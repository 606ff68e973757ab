package audio

// FilterKind selects the filter a Sound applies to its output.
type FilterKind int

const (
	FilterNone FilterKind = iota
	FilterLowPass
	FilterHighPass
	FilterBandPass
)

func (k FilterKind) String() string {
	switch k {
	case FilterLowPass:
		return "lowpass"
	case FilterHighPass:
		return "highpass"
	case FilterBandPass:
		return "bandpass"
	default:
		return "none"
	}
}

// Sound is one playable sound resource. Playback calls on a sound that is
// not valid are no-ops.
type Sound interface {
	Name() string
	IsValid() bool
	IsPlaying() bool
	Play()
	Pause()
	Stop()
	SetLooped(looped bool)
	// SetFilter configures the output filter. oneOverQ is the damping term;
	// FilterNone removes any filter.
	SetFilter(kind FilterKind, frequency, oneOverQ float64)
	// SetVolume sets the base volume in decibels (0 is unity).
	SetVolume(db float64)
	// SetPitch shifts playback speed by percent (0 is natural, 50 is 1.5x).
	SetPitch(percent float64)
	// SetSpatial applies a stereo pan in [-1, 1] and a linear gain computed
	// by the spatialiser.
	SetSpatial(pan, gain float64)
	Channels() int
}

// Invalid is the handle returned for sounds that failed to load.
type Invalid struct {
	SoundName string
	Err       error
}

func (s Invalid) Name() string                           { return s.SoundName }
func (s Invalid) IsValid() bool                          { return false }
func (s Invalid) IsPlaying() bool                        { return false }
func (s Invalid) Play()                                  {}
func (s Invalid) Pause()                                 {}
func (s Invalid) Stop()                                  {}
func (s Invalid) SetLooped(bool)                         {}
func (s Invalid) SetFilter(FilterKind, float64, float64) {}
func (s Invalid) SetVolume(float64)                      {}
func (s Invalid) SetPitch(float64)                       {}
func (s Invalid) SetSpatial(float64, float64)            {}
func (s Invalid) Channels() int                          { return 0 }

// OrInvalid replaces a nil Sound with an Invalid handle.
func OrInvalid(s Sound) Sound {
	if s == nil {
		return Invalid{SoundName: "<nil>"}
	}
	return s
}

package spatial

import (
	"math"

	"github.com/CassBennett/Escape/internal/vecmath"
)

// Cone shapes an emitter's volume by the angle between its orientation and
// the listener. Angles are full cone widths in radians.
type Cone struct {
	InnerAngle  float64
	InnerVolume float64
	OuterAngle  float64
	OuterVolume float64
	Orientation vecmath.Vector3
}

// NewCone aims a cone from soundPoint toward orientationPoint. The cone
// narrows as the two points get farther apart.
func NewCone(soundPoint, orientationPoint vecmath.Vector3) Cone {
	axis := orientationPoint.Sub(soundPoint)
	inner := 2 * math.Atan(1.5/axis.Magnitude())
	return Cone{
		InnerAngle:  inner,
		InnerVolume: 1.5,
		OuterAngle:  inner + 0.2,
		OuterVolume: 0.5,
		Orientation: axis.Normalize(),
	}
}

// Gain returns the cone's volume factor for a listener in direction toListener
// (need not be normalised) from the emitter. A cone with no orientation is
// omnidirectional.
func (c Cone) Gain(toListener vecmath.Vector3) float64 {
	if c.Orientation.IsZero() {
		return 1
	}
	if toListener.IsZero() {
		return c.InnerVolume
	}
	cos := c.Orientation.Dot(toListener.Normalize())
	theta := math.Acos(math.Max(-1, math.Min(1, cos)))

	halfInner, halfOuter := c.InnerAngle/2, c.OuterAngle/2
	switch {
	case theta <= halfInner:
		return c.InnerVolume
	case theta >= halfOuter:
		return c.OuterVolume
	}
	t := (theta - halfInner) / (halfOuter - halfInner)
	return c.InnerVolume + t*(c.OuterVolume-c.InnerVolume)
}

// Source is the emitter geometry handed to a Calculator.
type Source struct {
	Position     vecmath.Vector3
	Cone         *Cone
	ChannelCount int
	CurveScaler  float64
}

// Params are the values pushed to a playing sound.
type Params struct {
	Pan      float64
	Gain     float64
	Distance float64
	ConeGain float64
}

// Calculator turns emitter and listener geometry into playback parameters.
type Calculator interface {
	Calculate(src Source, l *Listener) Params
}

// InverseDistance attenuates by scaler/distance beyond the curve scaler and
// pans by the emitter's bearing relative to the listener's right axis.
type InverseDistance struct{}

func (InverseDistance) Calculate(src Source, l *Listener) Params {
	toEmitter := src.Position.Sub(l.Position())
	dist := toEmitter.Magnitude()

	scaler := src.CurveScaler
	if scaler <= 0 {
		scaler = 1
	}
	gain := 1.0
	if dist > scaler {
		gain = scaler / dist
	}

	pan := 0.0
	if dist > 0 {
		pan = toEmitter.Normalize().Dot(l.Right())
	}

	coneGain := 1.0
	if src.Cone != nil {
		coneGain = src.Cone.Gain(toEmitter.Scale(-1))
	}

	return Params{
		Pan:      pan,
		Gain:     gain * coneGain,
		Distance: dist,
		ConeGain: coneGain,
	}
}

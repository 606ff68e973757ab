package audio

import (
	"math"

	"github.com/gopxl/beep"
)

// Filter is a state-variable filter stage. Frequency is the cutoff in Hz and
// oneOverQ the damping; both may be changed while streaming.
type Filter struct {
	Streamer beep.Streamer
	Kind     FilterKind

	rate     beep.SampleRate
	f        float64
	oneOverQ float64

	low, band [2]float64
}

// NewFilter wraps s. A FilterNone filter passes samples through untouched.
func NewFilter(s beep.Streamer, rate beep.SampleRate, kind FilterKind, frequency, oneOverQ float64) *Filter {
	f := &Filter{Streamer: s, rate: rate}
	f.Set(kind, frequency, oneOverQ)
	return f
}

// Set reconfigures the filter. The cutoff is clamped to rate/6 and the
// coefficient further limited so the state-variable form stays stable.
func (f *Filter) Set(kind FilterKind, frequency, oneOverQ float64) {
	if kind != f.Kind {
		f.low = [2]float64{}
		f.band = [2]float64{}
	}
	f.Kind = kind
	maxFreq := float64(f.rate) / 6
	if frequency > maxFreq {
		frequency = maxFreq
	}
	if frequency < 0 {
		frequency = 0
	}
	if oneOverQ <= 0 {
		oneOverQ = 1
	}
	if oneOverQ > 2 {
		oneOverQ = 2
	}
	f.oneOverQ = oneOverQ
	f.f = 2 * math.Sin(math.Pi*frequency/float64(f.rate))
	// keep f^2 + 2fq < 4 with some margin
	if limit := 0.9 * (math.Sqrt(oneOverQ*oneOverQ+4) - oneOverQ); f.f > limit {
		f.f = limit
	}
}

func (f *Filter) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = f.Streamer.Stream(samples)
	if f.Kind == FilterNone {
		return n, ok
	}
	for i := 0; i < n; i++ {
		for ch := 0; ch < 2; ch++ {
			in := samples[i][ch]
			f.low[ch] += f.f * f.band[ch]
			high := in - f.low[ch] - f.oneOverQ*f.band[ch]
			f.band[ch] += f.f * high

			switch f.Kind {
			case FilterLowPass:
				samples[i][ch] = f.low[ch]
			case FilterHighPass:
				samples[i][ch] = high
			case FilterBandPass:
				samples[i][ch] = f.band[ch]
			}
		}
	}
	return n, ok
}

func (f *Filter) Err() error { return f.Streamer.Err() }

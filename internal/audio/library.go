package audio

import (
	"fmt"
	"hash/fnv"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/wav"
	"github.com/sirupsen/logrus"

	"github.com/CassBennett/Escape/internal/logging"
)

const (
	placeholderLength = 600 * time.Millisecond
	placeholderGain   = 0.25
)

// Library loads named WAV files from a directory into clips on one mixer.
type Library struct {
	mixer      *Mixer
	dir        string
	synthesize bool
	log        *logrus.Entry
}

// NewLibrary returns a loader for dir. With synthesize set, a missing file is
// replaced by a generated tone instead of an Invalid sound.
func NewLibrary(mixer *Mixer, dir string, synthesize bool) *Library {
	if dir == "" {
		dir = "assets/sounds"
	}
	return &Library{
		mixer:      mixer,
		dir:        dir,
		synthesize: synthesize,
		log:        logging.Component("audio").WithField("dir", dir),
	}
}

// Load never fails: a sound that cannot be loaded comes back as Invalid and
// is reported through IsValid by whoever aggregates it.
func (l *Library) Load(name string) Sound {
	clip, err := l.loadFile(name)
	if err == nil {
		return clip
	}
	if l.synthesize && os.IsNotExist(err) {
		clip, serr := l.placeholder(name)
		if serr == nil {
			l.log.WithField("sound", name).Debug("using synthesized placeholder")
			return clip
		}
		err = serr
	}
	l.log.WithFields(logrus.Fields{"sound": name, "error": err}).Warn("sound unavailable")
	return Invalid{SoundName: name, Err: err}
}

func (l *Library) loadFile(name string) (*Clip, error) {
	f, err := os.Open(filepath.Join(l.dir, name))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return l.Decode(name, f)
}

// Decode reads a whole WAV stream into a clip, resampling to the mixer rate.
func (l *Library) Decode(name string, r io.Reader) (*Clip, error) {
	streamer, format, err := wav.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	defer streamer.Close()

	var src beep.Streamer = streamer
	if format.SampleRate != l.mixer.rate {
		src = beep.Resample(resampleQuality, format.SampleRate, l.mixer.rate, streamer)
	}
	buffer := beep.NewBuffer(beep.Format{SampleRate: l.mixer.rate, NumChannels: 2, Precision: 2})
	buffer.Append(src)
	if err := streamer.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	if buffer.Len() == 0 {
		return nil, fmt.Errorf("decode %s: no samples", name)
	}
	return l.mixer.NewClip(name, buffer, format.NumChannels), nil
}

// toneFor spreads placeholder tones over 200-900 Hz so different sounds stay
// distinguishable by ear.
func toneFor(name string) float64 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(name))
	return 200 + float64(h.Sum32()%700)
}

// placeholder renders a short quiet sine at the mixer rate in place of a
// missing file.
func (l *Library) placeholder(name string) (*Clip, error) {
	tone, err := generators.SineTone(l.mixer.rate, toneFor(name))
	if err != nil {
		return nil, fmt.Errorf("synthesize %s: %w", name, err)
	}
	quiet := &effects.Gain{
		Streamer: beep.Take(l.mixer.rate.N(placeholderLength), tone),
		Gain:     placeholderGain - 1,
	}
	buffer := beep.NewBuffer(beep.Format{SampleRate: l.mixer.rate, NumChannels: 2, Precision: 2})
	buffer.Append(quiet)
	return l.mixer.NewClip(name, buffer, 1), nil
}

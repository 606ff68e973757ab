package game

import (
	"errors"
	"fmt"

	"github.com/CassBennett/Escape/internal/audio"
	"github.com/CassBennett/Escape/internal/entities"
	"github.com/CassBennett/Escape/internal/tilemap"
)

// ErrInvalidSounds marks a room that cannot start because sounds are missing.
var ErrInvalidSounds = errors.New("invalid sounds")

// Loader resolves a sound by file name. *audio.Library is the usual one.
type Loader interface {
	Load(name string) audio.Sound
}

// Sounds is every sound a room needs. No two fields share a handle.
type Sounds struct {
	Player  entities.PlayerSounds
	Ghost   entities.GhostSounds
	Critter entities.CritterSounds

	Ambient    audio.Sound
	DoorOpen   audio.Sound
	HitWall    audio.Sound
	LockedDoor audio.Sound
	Outdoor    audio.Sound
	Collisions map[tilemap.Cell]audio.Sound
}

// LoadSounds loads the room's sounds by their file names.
func LoadSounds(l Loader) Sounds {
	return Sounds{
		Player: entities.PlayerSounds{
			Intro:     l.Load("RoomIntro.wav"),
			Outro:     l.Load("PlayerOutro.wav"),
			Turning:   l.Load("DefaultTurning.wav"),
			Capture:   l.Load("CaptureNoise.wav"),
			Breathing: l.Load("DefaultBreathing.wav"),
			Heartbeat: l.Load("HeartBeat.wav"),
			Footsteps: [3]audio.Sound{
				l.Load("DefaultFootsteps.wav"),
				l.Load("FootstepsVariant1.wav"),
				l.Load("CreakingFootsteps.wav"),
			},
			Pain: [3]audio.Sound{
				l.Load("PainSound1.wav"),
				l.Load("PainSound2.wav"),
				l.Load("PainSound3.wav"),
			},
		},
		Ghost: entities.GhostSounds{
			Intro:         l.Load("GhostIntro.wav"),
			Default:       l.Load("DefaultGhostNoise.wav"),
			FirstReaction: l.Load("GhostLaugh1.wav"),
			Damage:        l.Load("GhostYell.wav"),
			Death:         l.Load("GhostDeath.wav"),
			Laughs: [3]audio.Sound{
				l.Load("GhostLaugh1.wav"),
				l.Load("GhostLaugh2.wav"),
				l.Load("GhostLaugh3.wav"),
			},
			Stages: map[entities.StageKind]audio.Sound{
				entities.StageKnocking:   l.Load("KnockingSound.wav"),
				entities.StagePiano:      l.Load("PianoMusic.wav"),
				entities.StageTypewriter: l.Load("typewriter.wav"),
				entities.StageRadio:      l.Load("RadioSound.wav"),
			},
		},
		Critter: entities.CritterSounds{
			Bats: l.Load("BatsSound.wav"),
			Mice: l.Load("MiceSound.wav"),
		},
		Ambient:    l.Load("AmbientMusic.wav"),
		DoorOpen:   l.Load("DoorOpen.wav"),
		HitWall:    l.Load("HitWallNoise.wav"),
		LockedDoor: l.Load("LockedDoor.wav"),
		Outdoor:    l.Load("OutdoorSound.wav"),
		Collisions: map[tilemap.Cell]audio.Sound{
			tilemap.CellPiano:      l.Load("PianoCollision.wav"),
			tilemap.CellRadio:      l.Load("RadioCollision.wav"),
			tilemap.CellTable:      l.Load("TableCollision.wav"),
			tilemap.CellTypewriter: l.Load("TypewriterCollision.wav"),
		},
	}
}

func (s Sounds) room() []audio.Sound {
	all := []audio.Sound{s.Ambient, s.DoorOpen, s.HitWall, s.LockedDoor, s.Outdoor}
	for _, c := range []tilemap.Cell{tilemap.CellPiano, tilemap.CellRadio, tilemap.CellTable, tilemap.CellTypewriter} {
		all = append(all, s.Collisions[c])
	}
	return all
}

// All lists every sound, room sounds first.
func (s Sounds) All() []audio.Sound {
	all := s.room()
	all = append(all, s.Player.All()...)
	all = append(all, s.Ghost.All()...)
	return append(all, s.Critter.All()...)
}

// Validate returns ErrInvalidSounds joined with one error per sound that
// failed to load, or nil.
func (s Sounds) Validate() error {
	var errs []error
	for _, snd := range s.All() {
		snd = audio.OrInvalid(snd)
		if snd.IsValid() {
			continue
		}
		if inv, ok := snd.(audio.Invalid); ok && inv.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", snd.Name(), inv.Err))
			continue
		}
		errs = append(errs, fmt.Errorf("%s: not loaded", snd.Name()))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidSounds, errors.Join(errs...))
}

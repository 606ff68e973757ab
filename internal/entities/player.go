package entities

import (
	"math"

	"github.com/sirupsen/logrus"

	"github.com/CassBennett/Escape/internal/audio"
	"github.com/CassBennett/Escape/internal/logging"
	"github.com/CassBennett/Escape/internal/spatial"
	"github.com/CassBennett/Escape/internal/vecmath"
)

type PlayerConfig struct {
	Start  vecmath.Vector3 `yaml:"start"`
	Facing string          `yaml:"facing"`
	// Cooldowns in seconds before another step or turn is accepted.
	FootstepCooldown float64 `yaml:"footstep_cooldown"`
	TurnCooldown     float64 `yaml:"turn_cooldown"`
}

func DefaultPlayerConfig() PlayerConfig {
	return PlayerConfig{
		Start:            vecmath.Vector3{X: 8, Z: 2},
		Facing:           spatial.North.String(),
		FootstepCooldown: 1.0,
		TurnCooldown:     0.5,
	}
}

// PlayerSounds are the player's own, non-spatial sounds.
type PlayerSounds struct {
	Intro     audio.Sound
	Outro     audio.Sound
	Turning   audio.Sound
	Capture   audio.Sound
	Breathing audio.Sound
	Heartbeat audio.Sound
	Footsteps [3]audio.Sound
	Pain      [3]audio.Sound
}

func (s PlayerSounds) All() []audio.Sound {
	all := []audio.Sound{s.Intro, s.Outro, s.Turning, s.Capture, s.Breathing, s.Heartbeat}
	all = append(all, s.Footsteps[:]...)
	return append(all, s.Pain[:]...)
}

const (
	heartbeatMaxVolume = 0.0
	heartbeatMinVolume = -20.0
	heartbeatMaxPitch  = 50.0
)

// Player owns the listener and voices the player's own actions.
type Player struct {
	cfg      PlayerConfig
	sounds   PlayerSounds
	rng      Rand
	listener *spatial.Listener
	log      *logrus.Entry

	active      bool
	outroPlayed bool
	inPain      bool

	canMove, canTurn   bool
	sinceStep          float64
	sinceTurn          float64
	footstep, painSlot int
}

func NewPlayer(cfg PlayerConfig, sounds PlayerSounds, rng Rand) *Player {
	for _, s := range []*audio.Sound{&sounds.Intro, &sounds.Outro, &sounds.Turning,
		&sounds.Capture, &sounds.Breathing, &sounds.Heartbeat} {
		*s = audio.OrInvalid(*s)
	}
	for i := range sounds.Footsteps {
		sounds.Footsteps[i] = audio.OrInvalid(sounds.Footsteps[i])
		sounds.Pain[i] = audio.OrInvalid(sounds.Pain[i])
	}
	sounds.Breathing.SetLooped(true)
	sounds.Heartbeat.SetLooped(true)

	facing, ok := spatial.ParseDirection(cfg.Facing)
	if !ok {
		facing = spatial.North
	}
	return &Player{
		cfg:      cfg,
		sounds:   sounds,
		rng:      rng,
		listener: spatial.NewListener(cfg.Start, facing),
		log:      logging.Component("player"),
		canMove:  true,
		canTurn:  true,
	}
}

// Start plays the room intro. The player becomes active when it ends.
func (p *Player) Start() {
	p.sounds.Intro.Play()
}

func (p *Player) Update(ghostDistance float64, free bool, dt float64) {
	if !p.active && !p.sounds.Intro.IsPlaying() {
		p.activate()
	}

	if free && !p.outroPlayed {
		p.sounds.Outro.Play()
		p.outroPlayed = true
		p.log.Info("player free")
	}

	p.updateHeartbeat(ghostDistance)

	p.sinceStep += dt
	p.sinceTurn += dt
	if !p.currentFootsteps().IsPlaying() && p.sinceStep > p.cfg.FootstepCooldown {
		p.canMove = true
	}
	if !p.sounds.Turning.IsPlaying() && p.sinceTurn > p.cfg.TurnCooldown {
		p.canTurn = true
	}

	if p.listener.ConsumeMoved() {
		steps := p.currentFootsteps()
		steps.Stop()
		steps.Play()
		p.footstep = p.rng.Intn(len(p.sounds.Footsteps))
		p.sinceStep = 0
		p.canMove = false
	}

	if p.listener.ConsumeTurned() {
		p.sounds.Turning.Play()
		p.sinceTurn = 0
		p.canTurn = false
	}

	if p.inPain {
		p.sounds.Pain[p.painSlot].Play()
		p.painSlot = p.rng.Intn(len(p.sounds.Pain))
		p.inPain = false
	}
}

func (p *Player) activate() {
	p.sounds.Breathing.Play()
	p.sounds.Heartbeat.Play()
	p.active = true
	p.log.Debug("player active")
}

// updateHeartbeat raises heartbeat and breathing volume, and heartbeat rate,
// as the ghost gets closer.
func (p *Player) updateHeartbeat(distance float64) {
	if !p.active {
		return
	}
	if p.outroPlayed {
		p.sounds.Heartbeat.Pause()
		p.sounds.Breathing.Pause()
		return
	}
	volume := math.Max(heartbeatMinVolume, heartbeatMaxVolume-2*distance)
	p.sounds.Heartbeat.SetVolume(volume)
	p.sounds.Breathing.SetVolume(volume)
	p.sounds.Heartbeat.SetPitch(math.Max(0, heartbeatMaxPitch-5*distance))
}

func (p *Player) currentFootsteps() audio.Sound {
	return p.sounds.Footsteps[p.footstep]
}

func (p *Player) CaptureGhost() {
	p.sounds.Capture.Play()
}

// Hurt queues a pain sound for the next update.
func (p *Player) Hurt() { p.inPain = true }

func (p *Player) Stop() {
	for _, s := range p.sounds.All() {
		if s.IsValid() {
			s.Stop()
		}
	}
}

func (p *Player) IsValid() bool {
	for _, s := range p.sounds.All() {
		if !s.IsValid() {
			return false
		}
	}
	return true
}

func (p *Player) Listener() *spatial.Listener { return p.listener }
func (p *Player) IsActive() bool              { return p.active }
func (p *Player) CanMove() bool               { return p.canMove }
func (p *Player) CanTurn() bool               { return p.canTurn }
func (p *Player) InPain() bool                { return p.inPain }
func (p *Player) OutroPlayed() bool           { return p.outroPlayed }

package entities

import (
	"github.com/sirupsen/logrus"

	"github.com/CassBennett/Escape/internal/audio"
	"github.com/CassBennett/Escape/internal/logging"
	"github.com/CassBennett/Escape/internal/spatial"
	"github.com/CassBennett/Escape/internal/vecmath"
)

// StageKind names one of the room objects the ghost can haunt.
type StageKind int

const (
	StageKnocking StageKind = iota
	StagePiano
	StageTypewriter
	StageRadio
	stageKindCount
)

func (k StageKind) String() string {
	switch k {
	case StageKnocking:
		return "knocking"
	case StagePiano:
		return "piano"
	case StageTypewriter:
		return "typewriter"
	case StageRadio:
		return "radio"
	default:
		return "unknown"
	}
}

// StageKinds lists every stage in a fixed order.
func StageKinds() []StageKind {
	return []StageKind{StageKnocking, StagePiano, StageTypewriter, StageRadio}
}

type StagePositions struct {
	Knocking   vecmath.Vector3 `yaml:"knocking"`
	Piano      vecmath.Vector3 `yaml:"piano"`
	Typewriter vecmath.Vector3 `yaml:"typewriter"`
	Radio      vecmath.Vector3 `yaml:"radio"`
}

func (p StagePositions) Position(k StageKind) vecmath.Vector3 {
	switch k {
	case StagePiano:
		return p.Piano
	case StageTypewriter:
		return p.Typewriter
	case StageRadio:
		return p.Radio
	default:
		return p.Knocking
	}
}

type GhostConfig struct {
	Speed           float64         `yaml:"speed"`
	HitRadius       float64         `yaml:"hit_radius"`
	DetectionRadius float64         `yaml:"detection_radius"`
	StageLimit      int             `yaml:"stage_limit"`
	Start           vecmath.Vector3 `yaml:"start"`
	Stages          StagePositions  `yaml:"stages"`
}

func DefaultGhostConfig() GhostConfig {
	return GhostConfig{
		Speed:           1.5,
		HitRadius:       2.0,
		DetectionRadius: 3.5,
		StageLimit:      4,
		Start:           vecmath.Vector3{X: 8, Z: -1},
		Stages: StagePositions{
			Knocking:   vecmath.Vector3{X: 8},
			Piano:      vecmath.Vector3{X: 2, Z: 14},
			Typewriter: vecmath.Vector3{X: 2, Z: 2},
			Radio:      vecmath.Vector3{X: 13, Z: 9},
		},
	}
}

// GhostSounds are the sounds the ghost plays. The ghost's own emitter cycles
// through Intro, Default, FirstReaction, Damage, Death and the laughs; the
// event emitter cycles through Stages.
type GhostSounds struct {
	Intro         audio.Sound
	Default       audio.Sound
	FirstReaction audio.Sound
	Damage        audio.Sound
	Death         audio.Sound
	Laughs        [3]audio.Sound
	Stages        map[StageKind]audio.Sound
}

func (s GhostSounds) All() []audio.Sound {
	all := []audio.Sound{s.Intro, s.Default, s.FirstReaction, s.Damage, s.Death}
	all = append(all, s.Laughs[:]...)
	for _, k := range StageKinds() {
		all = append(all, s.Stages[k])
	}
	return all
}

// GhostPhase summarises the ghost's state machine.
type GhostPhase int

const (
	GhostDormant GhostPhase = iota
	GhostActive
	GhostMoving
	GhostAtStage
	GhostDefeated
)

func (p GhostPhase) String() string {
	switch p {
	case GhostActive:
		return "active"
	case GhostMoving:
		return "moving"
	case GhostAtStage:
		return "at-stage"
	case GhostDefeated:
		return "defeated"
	default:
		return "dormant"
	}
}

// CaptureResult is the outcome of a capture attempt.
type CaptureResult int

const (
	CaptureIgnored CaptureResult = iota
	CaptureHit
	CaptureMiss
)

// Ghost moves between stages until it has been caught at stageLimit of them.
type Ghost struct {
	cfg      GhostConfig
	sounds   GhostSounds
	rng      Rand
	listener *spatial.Listener
	log      *logrus.Entry

	emitter *spatial.Emitter
	event   *spatial.Emitter

	position vecmath.Vector3
	target   vecmath.Vector3
	path     vecmath.Vector3

	current    StageKind
	available  map[StageKind]bool
	remaining  []StageKind
	stageCount int

	isMoving   bool
	isAtStage  bool
	isDefeated bool
	isLaughing bool
	hasStarted bool
	active     bool
}

func NewGhost(cfg GhostConfig, sounds GhostSounds, listener *spatial.Listener, rng Rand) *Ghost {
	for i, s := range sounds.Laughs {
		sounds.Laughs[i] = audio.OrInvalid(s)
	}
	stages := make(map[StageKind]audio.Sound, stageKindCount)
	for _, k := range StageKinds() {
		stages[k] = audio.OrInvalid(sounds.Stages[k])
	}
	sounds.Stages = stages

	g := &Ghost{
		cfg:       cfg,
		sounds:    sounds,
		rng:       rng,
		listener:  listener,
		log:       logging.Component("ghost"),
		position:  cfg.Start,
		available: make(map[StageKind]bool, stageKindCount),
		remaining: StageKinds(),
	}
	for _, k := range g.remaining {
		g.available[k] = true
	}
	g.emitter = spatial.NewEmitter(sounds.Intro, g.position, listener, false)
	g.event = spatial.NewEmitter(stages[StageKnocking], cfg.Stages.Knocking, listener, true)
	return g
}

// Initialise runs every frame once the player is active. The first call
// starts the intro; the first stage is chosen once the intro has finished.
func (g *Ghost) Initialise() {
	if !g.active {
		g.Activate()
		return
	}
	if !g.hasStarted && !g.isDefeated && !g.emitter.IsActive() {
		g.SelectNewStage()
	}
}

func (g *Ghost) Activate() {
	if g.active {
		return
	}
	g.active = true
	g.emitter.Play()
	g.emitter.Update()
	g.log.Debug("ghost activated")
}

// SelectNewStage moves the ghost to a stage it has not used yet, or defeats
// it when none are left.
func (g *Ghost) SelectNewStage() {
	g.event.Pause()
	g.isAtStage = false
	if g.isDefeated {
		return
	}

	if g.stageCount >= g.cfg.StageLimit || len(g.remaining) == 0 {
		g.isDefeated = true
		g.isMoving = false
		g.isLaughing = false
		g.emitter.ChangeSound(g.sounds.Death, g.position, false)
		g.log.WithField("stages", g.stageCount).Info("ghost defeated")
		return
	}

	i := g.rng.Intn(len(g.remaining))
	kind := g.remaining[i]
	g.remaining = append(g.remaining[:i], g.remaining[i+1:]...)
	g.available[kind] = false

	g.current = kind
	g.target = g.cfg.Stages.Position(kind)
	g.stageCount++
	g.path = g.target.Sub(g.position).Horizontal().Normalize().Scale(g.cfg.Speed)
	g.isMoving = true
	g.isLaughing = false

	if !g.hasStarted {
		g.hasStarted = true
		g.emitter.ChangeSound(g.sounds.FirstReaction, g.position, false)
	} else {
		g.emitter.ChangeSound(g.sounds.Damage, g.position, false)
		g.event.Stop()
	}
	g.log.WithFields(logrus.Fields{
		"stage": kind,
		"count": g.stageCount,
	}).Debug("ghost heading to stage")
}

func (g *Ghost) Update(dt float64) {
	if g.isMoving {
		step := g.path.Scale(dt)
		remaining := vecmath.Distance(g.position, g.target)
		g.position = g.position.Add(step)
		g.emitter.SetPosition(g.position)
		g.emitter.Update()

		if remaining <= step.Magnitude() || vecmath.Distance(g.position, g.target) < g.cfg.HitRadius {
			g.arrive()
		}
	}

	if g.isLaughing && !g.emitter.IsActive() {
		g.emitter.ChangeSound(g.sounds.Default, g.position, true)
		g.isLaughing = false
	}
}

func (g *Ghost) arrive() {
	g.position = g.target
	g.isMoving = false
	g.isAtStage = true
	g.isLaughing = false
	g.event.ChangeSound(g.sounds.Stages[g.current], g.target, true)
	g.emitter.ChangeSound(g.sounds.Default, g.target, true)
	g.log.WithField("stage", g.current).Debug("ghost reached stage")
}

// Laugh plays one of the laugh variants once.
func (g *Ghost) Laugh() {
	g.isLaughing = true
	laugh := g.sounds.Laughs[g.rng.Intn(len(g.sounds.Laughs))]
	g.emitter.ChangeSound(laugh, g.position, false)
}

// Capture resolves a capture attempt by the listener.
func (g *Ghost) Capture() CaptureResult {
	if !g.active || g.isDefeated {
		return CaptureIgnored
	}
	if g.isAtStage && vecmath.Distance(g.listener.Position(), g.position) < g.cfg.DetectionRadius {
		g.log.WithField("stage", g.current).Info("ghost caught")
		g.SelectNewStage()
		return CaptureHit
	}
	g.Laugh()
	return CaptureMiss
}

// Reset refreshes both emitters after the listener has jumped.
func (g *Ghost) Reset() {
	g.emitter.Update()
	g.event.Update()
}

func (g *Ghost) Stop() {
	g.emitter.Stop()
	g.event.Stop()
}

func (g *Ghost) IsValid() bool {
	for _, s := range g.sounds.All() {
		if !audio.OrInvalid(s).IsValid() {
			return false
		}
	}
	return true
}

func (g *Ghost) Phase() GhostPhase {
	switch {
	case g.isDefeated:
		return GhostDefeated
	case g.isAtStage:
		return GhostAtStage
	case g.isMoving:
		return GhostMoving
	case g.active:
		return GhostActive
	default:
		return GhostDormant
	}
}

func (g *Ghost) Position() vecmath.Vector3 { return g.position }
func (g *Ghost) Target() vecmath.Vector3   { return g.target }
func (g *Ghost) CurrentStage() StageKind   { return g.current }
func (g *Ghost) StageCount() int           { return g.stageCount }
func (g *Ghost) IsDefeated() bool          { return g.isDefeated }
func (g *Ghost) IsAtStage() bool           { return g.isAtStage }
func (g *Ghost) IsMoving() bool            { return g.isMoving }
func (g *Ghost) IsLaughing() bool          { return g.isLaughing }
func (g *Ghost) IsActive() bool            { return g.active }

// Started reports whether the ghost has left its intro, either for a stage or
// straight to defeat.
func (g *Ghost) Started() bool { return g.hasStarted || g.isDefeated }

// Sounding reports whether the ghost's own emitter is still playing.
func (g *Ghost) Sounding() bool { return g.emitter.IsActive() }

// StageAvailable reports whether k can still be selected.
func (g *Ghost) StageAvailable(k StageKind) bool { return g.available[k] }

func (g *Ghost) Emitter() *spatial.Emitter      { return g.emitter }
func (g *Ghost) EventEmitter() *spatial.Emitter { return g.event }

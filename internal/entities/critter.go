package entities

import (
	"math"

	"github.com/sirupsen/logrus"

	"github.com/CassBennett/Escape/internal/audio"
	"github.com/CassBennett/Escape/internal/logging"
	"github.com/CassBennett/Escape/internal/spatial"
	"github.com/CassBennett/Escape/internal/vecmath"
)

type CritterKind int

const (
	CritterBats CritterKind = iota
	CritterMice
)

func (k CritterKind) String() string {
	if k == CritterMice {
		return "mice"
	}
	return "bats"
}

func (k CritterKind) other() CritterKind {
	if k == CritterBats {
		return CritterMice
	}
	return CritterBats
}

// Side is the edge of the room a crossing starts from.
type Side int

const (
	SideLeft Side = iota
	SideRight
)

func (s Side) String() string {
	if s == SideRight {
		return "right"
	}
	return "left"
}

func (s Side) other() Side {
	if s == SideLeft {
		return SideRight
	}
	return SideLeft
}

type CritterConfig struct {
	Speed       float64 `yaml:"speed"`
	MinInterval float64 `yaml:"min_interval"`
	MaxInterval float64 `yaml:"max_interval"`
	LeftLimit   float64 `yaml:"left_limit"`
	RightLimit  float64 `yaml:"right_limit"`
	BatHeight   float64 `yaml:"bat_height"`
	MouseHeight float64 `yaml:"mouse_height"`
	// Depth is the number of rows a crossing may start on, from z=1.
	Depth int `yaml:"depth"`
}

func DefaultCritterConfig() CritterConfig {
	return CritterConfig{
		Speed:       3.0,
		MinInterval: 15,
		MaxInterval: 20,
		LeftLimit:   -10,
		RightLimit:  31,
		BatHeight:   1,
		MouseHeight: 0,
		Depth:       16,
	}
}

type CritterSounds struct {
	Bats audio.Sound
	Mice audio.Sound
}

func (s CritterSounds) All() []audio.Sound {
	return []audio.Sound{s.Bats, s.Mice}
}

func (s CritterSounds) For(k CritterKind) audio.Sound {
	if k == CritterMice {
		return s.Mice
	}
	return s.Bats
}

// MovingCritter sends bats or mice across the room every so often, aimed at
// the listener, alternating side and kind after each crossing.
type MovingCritter struct {
	cfg      CritterConfig
	sounds   CritterSounds
	rng      Rand
	listener *spatial.Listener
	log      *logrus.Entry

	emitter *spatial.Emitter

	position  vecmath.Vector3
	direction vecmath.Vector3
	targetX   float64
	side      Side
	kind      CritterKind

	timer       float64
	nextTime    float64
	initialised bool
	moving      bool
}

func NewMovingCritter(cfg CritterConfig, sounds CritterSounds, listener *spatial.Listener, rng Rand) *MovingCritter {
	c := &MovingCritter{
		cfg:      cfg,
		sounds:   sounds,
		rng:      rng,
		listener: listener,
		log:      logging.Component("critter"),
		side:     SideLeft,
		kind:     CritterBats,
	}
	c.emitter = spatial.NewEmitter(sounds.For(c.kind), c.position, listener, true)
	c.rollInterval()
	return c
}

func (c *MovingCritter) rollInterval() {
	c.nextTime = c.cfg.MinInterval + c.rng.Float64()*(c.cfg.MaxInterval-c.cfg.MinInterval)
}

// Initialise starts the crossing timer. Later calls do nothing.
func (c *MovingCritter) Initialise() {
	if c.initialised {
		return
	}
	c.timer = 0
	c.initialised = true
}

func (c *MovingCritter) Update(dt float64) {
	if c.initialised {
		c.timer += dt
		if !c.moving && c.timer > c.nextTime {
			c.startCrossing()
			c.emitter.Play()
			c.rollInterval()
		}
	}
	if c.moving {
		c.move(dt)
	}
}

func (c *MovingCritter) startCrossing() {
	spawn := vecmath.Vector3{X: c.cfg.LeftLimit}
	c.targetX = c.cfg.RightLimit
	if c.side == SideRight {
		spawn.X = c.cfg.RightLimit
		c.targetX = c.cfg.LeftLimit
	}
	spawn.Y = c.cfg.MouseHeight
	if c.kind == CritterBats {
		spawn.Y = c.cfg.BatHeight
	}
	depth := c.cfg.Depth
	if depth < 1 {
		depth = 1
	}
	spawn.Z = float64(c.rng.Intn(depth) + 1)

	player := c.listener.Position()
	aim := vecmath.Vector3{X: player.X, Y: spawn.Y, Z: player.Z}
	dir := aim.Sub(spawn).Normalize().Scale(c.cfg.Speed)

	// A crossing must always make progress toward the far edge.
	toward := math.Copysign(1, c.targetX-spawn.X)
	if dir.X*toward <= 0 {
		dir = vecmath.Vector3{X: toward * c.cfg.Speed}
	}

	c.position = spawn
	c.direction = dir
	c.moving = true
	c.emitter.SetPosition(spawn)
	c.log.WithFields(logrus.Fields{
		"kind": c.kind,
		"side": c.side,
		"z":    spawn.Z,
	}).Debug("critter crossing")
}

func (c *MovingCritter) move(dt float64) {
	c.position = c.position.Add(c.direction.Scale(dt))
	c.emitter.SetPosition(c.position)
	c.emitter.Update()

	passed := c.position.X > c.targetX
	if c.side == SideRight {
		passed = c.position.X < c.targetX
	}
	if !passed {
		return
	}

	c.emitter.Pause()
	c.moving = false
	c.side = c.side.other()
	c.kind = c.kind.other()
	c.emitter.ChangeSound(c.sounds.For(c.kind), c.position, true)
	c.emitter.Pause()
	c.timer = 0
}

// Reset refreshes the emitter after the listener has jumped.
func (c *MovingCritter) Reset() {
	c.emitter.Update()
}

func (c *MovingCritter) Stop() {
	c.emitter.Stop()
}

func (c *MovingCritter) IsValid() bool {
	for _, s := range c.sounds.All() {
		if !audio.OrInvalid(s).IsValid() {
			return false
		}
	}
	return true
}

func (c *MovingCritter) Position() vecmath.Vector3  { return c.position }
func (c *MovingCritter) Direction() vecmath.Vector3 { return c.direction }
func (c *MovingCritter) Side() Side                 { return c.side }
func (c *MovingCritter) Kind() CritterKind          { return c.kind }
func (c *MovingCritter) IsMoving() bool             { return c.moving }
func (c *MovingCritter) NextInterval() float64      { return c.nextTime }
func (c *MovingCritter) Emitter() *spatial.Emitter  { return c.emitter }

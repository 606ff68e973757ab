package game

import (
	"math"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/CassBennett/Escape/internal/audio"
	"github.com/CassBennett/Escape/internal/entities"
	"github.com/CassBennett/Escape/internal/logging"
	"github.com/CassBennett/Escape/internal/spatial"
	"github.com/CassBennett/Escape/internal/tilemap"
	"github.com/CassBennett/Escape/internal/vecmath"
)

const (
	ambientVolumeDB = -25.0
	outdoorOffset   = 1.5
	outdoorCutoff   = 550.0
	outdoorOneOverQ = 1.2
)

// Intent is one discrete request from the frame driver.
type Intent int

const (
	IntentMoveForward Intent = iota
	IntentTurnLeft
	IntentTurnRight
	IntentCapture
	IntentReset
)

func (i Intent) String() string {
	switch i {
	case IntentMoveForward:
		return "move-forward"
	case IntentTurnLeft:
		return "turn-left"
	case IntentTurnRight:
		return "turn-right"
	case IntentCapture:
		return "capture"
	case IntentReset:
		return "reset"
	default:
		return "unknown"
	}
}

// Room owns the player, ghost, critter, outdoor emitter and grid, and runs
// them in a fixed order each frame.
type Room struct {
	cfg    Config
	id     uuid.UUID
	log    *logrus.Entry
	sounds Sounds
	grid   *tilemap.Grid

	player  *entities.Player
	ghost   *entities.Ghost
	critter *entities.MovingCritter
	outdoor *spatial.Emitter

	ambient    audio.Sound
	doorOpen   audio.Sound
	hitWall    audio.Sound
	lockedDoor audio.Sound
	collisions map[tilemap.Cell]audio.Sound

	doorPosition vecmath.Vector3

	initialised   bool
	isDoorOpen    bool
	doorExited    bool
	playerFree    bool
	ghostDistance float64
}

func NewRoom(cfg Config, sounds Sounds, rng entities.Rand) *Room {
	id := uuid.New()
	layout := layoutFor(cfg)

	r := &Room{
		cfg:        cfg,
		id:         id,
		log:        logging.Component("room").WithField("session", id.String()),
		sounds:     sounds,
		grid:       layout.Build(),
		ambient:    audio.OrInvalid(sounds.Ambient),
		doorOpen:   audio.OrInvalid(sounds.DoorOpen),
		hitWall:    audio.OrInvalid(sounds.HitWall),
		lockedDoor: audio.OrInvalid(sounds.LockedDoor),
		collisions: make(map[tilemap.Cell]audio.Sound, len(sounds.Collisions)),
	}
	r.doorPosition = vecmath.Vector3{X: float64(layout.DoorX), Z: float64(layout.DoorZ)}
	for _, c := range []tilemap.Cell{tilemap.CellPiano, tilemap.CellRadio, tilemap.CellTable, tilemap.CellTypewriter} {
		r.collisions[c] = audio.OrInvalid(sounds.Collisions[c])
	}

	r.player = entities.NewPlayer(cfg.Player, sounds.Player, rng)
	listener := r.player.Listener()
	r.ghost = entities.NewGhost(cfg.Ghost, sounds.Ghost, listener, rng)
	r.critter = entities.NewMovingCritter(cfg.Critter, sounds.Critter, listener, rng)

	outside := r.doorPosition.Sub(vecmath.Vector3{Z: outdoorOffset})
	r.outdoor = spatial.NewConeEmitter(sounds.Outdoor, outside, listener, outside, r.doorPosition, true)
	r.outdoor.SetFilter(audio.FilterLowPass, outdoorCutoff, outdoorOneOverQ)

	r.ambient.SetLooped(true)
	r.ambient.SetVolume(ambientVolumeDB)

	r.log.WithField("grid", "\n"+r.grid.String()).Debug("room built")
	return r
}

// layoutFor places the stage furniture where the ghost's stages are.
func layoutFor(cfg Config) tilemap.Layout {
	layout := tilemap.DefaultLayout()
	stages := map[tilemap.Cell]vecmath.Vector3{
		tilemap.CellPiano:      cfg.Ghost.Stages.Piano,
		tilemap.CellTypewriter: cfg.Ghost.Stages.Typewriter,
		tilemap.CellRadio:      cfg.Ghost.Stages.Radio,
	}
	for i, o := range layout.Obstacles {
		if pos, ok := stages[o.Kind]; ok {
			layout.Obstacles[i].X = int(math.Round(pos.X))
			layout.Obstacles[i].Z = int(math.Round(pos.Z))
		}
	}
	return layout
}

// Validate reports every sound that failed to load, wrapped in
// ErrInvalidSounds.
func (r *Room) Validate() error {
	return r.sounds.Validate()
}

// Start plays the intro, the ambient music and the outdoor ambience.
func (r *Room) Start() {
	r.player.Start()
	r.ambient.Play()
	r.outdoor.Reset(true)
	r.log.Info("room started")
}

// Step applies intents in order and then advances the room by dt seconds.
func (r *Room) Step(dt float64, intents ...Intent) {
	for _, in := range intents {
		switch in {
		case IntentMoveForward:
			r.MovePlayer()
		case IntentTurnLeft:
			r.TurnLeft()
		case IntentTurnRight:
			r.TurnRight()
		case IntentCapture:
			r.TryCapture()
		case IntentReset:
			r.Reset()
		}
	}
	r.Update(dt)
}

func (r *Room) Update(dt float64) {
	if !r.initialised && r.player.IsActive() {
		r.initialiseObjects()
	}
	r.checkDoor()
	r.updateDistance()

	r.player.Update(r.ghostDistance, r.playerFree, dt)
	r.ghost.Update(dt)
	r.critter.Update(dt)

	r.refreshEmitters()
}

func (r *Room) initialiseObjects() {
	r.ghost.Initialise()
	r.critter.Initialise()
	if r.ghost.Started() {
		r.initialised = true
	}
}

func (r *Room) refreshEmitters() {
	r.outdoor.Update()
	r.ghost.Reset()
	r.critter.Reset()
}

func (r *Room) ID() uuid.UUID                    { return r.id }
func (r *Room) Grid() *tilemap.Grid              { return r.grid }
func (r *Room) Player() *entities.Player         { return r.player }
func (r *Room) Ghost() *entities.Ghost           { return r.ghost }
func (r *Room) Critter() *entities.MovingCritter { return r.critter }
func (r *Room) Outdoor() *spatial.Emitter        { return r.outdoor }
func (r *Room) GhostDistance() float64           { return r.ghostDistance }

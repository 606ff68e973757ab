package spatial

import (
	"math"
	"strings"

	"github.com/CassBennett/Escape/internal/vecmath"
)

// Direction is one of the eight compass headings, 45 degrees apart, in
// clockwise order starting at North.
type Direction int

const (
	North Direction = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
	directionCount
)

var diag = 1 / math.Sqrt2

// North is +Z and East is +X.
var orientations = [directionCount]vecmath.Vector3{
	North:     {Z: 1},
	NorthEast: {X: diag, Z: diag},
	East:      {X: 1},
	SouthEast: {X: diag, Z: -diag},
	South:     {Z: -1},
	SouthWest: {X: -diag, Z: -diag},
	West:      {X: -1},
	NorthWest: {X: -diag, Z: diag},
}

var directionNames = [directionCount]string{
	"north", "northeast", "east", "southeast", "south", "southwest", "west", "northwest",
}

var upAxis = vecmath.Vector3{Y: 1}

func (d Direction) Valid() bool { return d >= North && d < directionCount }

// Vector returns the unit vector for d.
func (d Direction) Vector() vecmath.Vector3 {
	if !d.Valid() {
		return vecmath.Vector3{}
	}
	return orientations[d]
}

func (d Direction) Clockwise() Direction {
	return (d + 1) % directionCount
}

func (d Direction) CounterClockwise() Direction {
	return (d + directionCount - 1) % directionCount
}

// ParseDirection looks a direction up by its lower-case name.
func ParseDirection(name string) (Direction, bool) {
	for d, n := range directionNames {
		if n == strings.ToLower(strings.TrimSpace(name)) {
			return Direction(d), true
		}
	}
	return North, false
}

func (d Direction) String() string {
	if !d.Valid() {
		return "invalid"
	}
	return directionNames[d]
}

// Listener is the player's ears: a position on the room floor and one of the
// eight headings. Only yaw is modelled.
type Listener struct {
	position      vecmath.Vector3
	facing        Direction
	startPosition vecmath.Vector3
	startFacing   Direction

	justMoved  bool
	justTurned bool
}

func NewListener(start vecmath.Vector3, facing Direction) *Listener {
	if !facing.Valid() {
		facing = North
	}
	return &Listener{
		position:      start,
		facing:        facing,
		startPosition: start,
		startFacing:   facing,
	}
}

func (l *Listener) Position() vecmath.Vector3 { return l.position }
func (l *Listener) Facing() Direction         { return l.facing }
func (l *Listener) Front() vecmath.Vector3    { return l.facing.Vector() }

// Up is fixed; listeners only turn about it.
func (l *Listener) Up() vecmath.Vector3 { return upAxis }

// Right is the listener's right-hand axis on the floor plane.
func (l *Listener) Right() vecmath.Vector3 {
	f := l.Front()
	return vecmath.Vector3{X: f.Z, Z: -f.X}
}

// NextPosition is where MoveForward(distance) would put the listener.
func (l *Listener) NextPosition(distance float64) vecmath.Vector3 {
	return l.position.Add(l.facing.Vector().Scale(distance))
}

func (l *Listener) MoveForward(distance float64) {
	l.position = l.NextPosition(distance)
	l.justMoved = true
}

func (l *Listener) MoveTo(p vecmath.Vector3) {
	l.position = p
	l.justMoved = true
}

func (l *Listener) TurnTo(d Direction) {
	if !d.Valid() {
		return
	}
	l.facing = d
	l.justTurned = true
}

func (l *Listener) TurnClockwise() {
	l.TurnTo(l.facing.Clockwise())
}

func (l *Listener) TurnCounterClockwise() {
	l.TurnTo(l.facing.CounterClockwise())
}

// Reset returns to the start position and heading as an ordinary move and
// turn.
func (l *Listener) Reset() {
	l.MoveTo(l.startPosition)
	l.TurnTo(l.startFacing)
}

// ConsumeMoved reports whether the listener moved since the last call.
func (l *Listener) ConsumeMoved() bool {
	moved := l.justMoved
	l.justMoved = false
	return moved
}

// ConsumeTurned reports whether the listener turned since the last call.
func (l *Listener) ConsumeTurned() bool {
	turned := l.justTurned
	l.justTurned = false
	return turned
}

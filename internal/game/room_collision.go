package game

import (
	"github.com/sirupsen/logrus"

	"github.com/CassBennett/Escape/internal/audio"
	"github.com/CassBennett/Escape/internal/tilemap"
	"github.com/CassBennett/Escape/internal/vecmath"
)

// StepOutcome is the result of resolving one step against the grid.
type StepOutcome struct {
	Cell    tilemap.Cell
	Blocked bool
	// Exited is set when the step went through the open door.
	Exited bool
	// Sound is the collision sound triggered, if any.
	Sound audio.Sound
}

// ResolveStep classifies a step to next and triggers its collision sound.
// Every blocked step hurts the player.
func (r *Room) ResolveStep(next vecmath.Vector3) StepOutcome {
	cell := r.grid.CellAt(next)
	out := StepOutcome{Cell: cell, Blocked: cell != tilemap.CellFloor}
	if !out.Blocked {
		return out
	}

	switch {
	case cell == tilemap.CellDoor && r.isDoorOpen:
		r.doorExited = true
		out.Exited = true
		r.log.Info("player left through the door")
	case cell == tilemap.CellDoor:
		out.Sound = r.lockedDoor
		r.log.Debug("door is locked")
	case cell.IsObstacle():
		out.Sound = r.collisions[cell]
	default:
		out.Sound = r.hitWall
	}

	if out.Sound != nil {
		out.Sound.Play()
	}
	r.player.Hurt()
	r.log.WithFields(logrus.Fields{
		"cell": cell,
		"x":    next.X,
		"z":    next.Z,
	}).Debug("step blocked")
	return out
}

// MovePlayer tries one step forward.
func (r *Room) MovePlayer() {
	if r.doorExited {
		return
	}
	listener := r.player.Listener()
	out := r.ResolveStep(listener.NextPosition(1))
	if !out.Blocked && r.player.CanMove() {
		listener.MoveForward(1)
	}
	r.refreshEmitters()
}

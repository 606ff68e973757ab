package game

import "github.com/CassBennett/Escape/internal/entities"

func (r *Room) TurnLeft() {
	r.turn(r.player.Listener().TurnCounterClockwise)
}

func (r *Room) TurnRight() {
	r.turn(r.player.Listener().TurnClockwise)
}

func (r *Room) turn(step func()) {
	if !r.player.CanTurn() {
		return
	}
	for i := 0; i < r.cfg.TurnSteps; i++ {
		step()
	}
	r.refreshEmitters()
}

// TryCapture plays the capture sound and lets the ghost judge the attempt.
func (r *Room) TryCapture() entities.CaptureResult {
	r.player.CaptureGhost()
	res := r.ghost.Capture()
	if res == entities.CaptureHit {
		r.log.WithField("stages", r.ghost.StageCount()).Info("ghost captured")
	}
	return res
}

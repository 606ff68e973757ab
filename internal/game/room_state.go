package game

import (
	"github.com/CassBennett/Escape/internal/audio"
	"github.com/CassBennett/Escape/internal/vecmath"
)

// checkDoor opens the door once the ghost's death sound has ended, and frees
// the player once the door has finished opening.
func (r *Room) checkDoor() {
	if !r.ghost.IsDefeated() {
		return
	}
	if !r.isDoorOpen && !r.ghost.Sounding() {
		r.openDoor()
	}
	if r.isDoorOpen && !r.playerFree && !r.doorOpen.IsPlaying() {
		r.playerFree = true
	}
}

func (r *Room) openDoor() {
	r.doorOpen.Play()
	r.outdoor.SetFilter(audio.FilterNone, 0, 0)
	r.isDoorOpen = true
	r.log.Info("door opened")
}

func (r *Room) updateDistance() {
	r.ghostDistance = vecmath.Distance(r.player.Listener().Position(), r.ghost.Position())
}

// Reset puts the listener back at the start and refreshes every emitter.
func (r *Room) Reset() {
	r.player.Listener().Reset()
	r.ghost.Reset()
	r.critter.Reset()
	r.outdoor.Reset(true)
}

// Stop silences every sound in the room.
func (r *Room) Stop() {
	r.outdoor.Stop()
	for _, s := range r.sounds.room() {
		if s = audio.OrInvalid(s); s.IsValid() {
			s.Stop()
		}
	}
	r.player.Stop()
	r.ghost.Stop()
	r.critter.Stop()
}

func (r *Room) DoorOpen() bool   { return r.isDoorOpen }
func (r *Room) DoorExited() bool { return r.doorExited }
func (r *Room) PlayerFree() bool { return r.playerFree }

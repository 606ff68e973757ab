package game

import (
	"errors"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

type closeCounter struct {
	closes int
	err    error
}

func (c *closeCounter) Close() error {
	c.closes++
	return c.err
}

func TestScreenDimensionsPositive(t *testing.T) {
	r, _ := newTestRoom(t, nil)
	g := New(r, nil)
	if g.ScreenWidth() <= 0 || g.ScreenHeight() <= 0 {
		t.Fatalf("screen dimensions must be positive, got %dx%d", g.ScreenWidth(), g.ScreenHeight())
	}
}

func TestStepRunsRoom(t *testing.T) {
	r, l := newTestRoom(t, nil)
	out := &closeCounter{}
	g := New(r, out)

	if err := g.step(0.1, []Intent{IntentMoveForward}); err != nil {
		t.Fatalf("step: %v", err)
	}
	if l.get(t, "DefaultFootsteps.wav").Plays != 1 {
		t.Fatal("step should move the player and update the room")
	}
	if out.closes != 0 {
		t.Fatal("output closed while the game is running")
	}
}

func TestQuitTerminates(t *testing.T) {
	r, l := newTestRoom(t, nil)
	out := &closeCounter{err: errors.New("device gone")}
	g := New(r, out)
	r.Start()
	g.quit = true

	for i := 0; i < 2; i++ {
		if err := g.step(0.1, nil); !errors.Is(err, ebiten.Termination) {
			t.Fatalf("step %d: got %v, want ebiten.Termination", i, err)
		}
	}
	if out.closes != 1 {
		t.Fatalf("output closed %d times, want 1", out.closes)
	}
	if l.get(t, "AmbientMusic.wav").Playing {
		t.Fatal("room should be stopped on quit")
	}
}

func TestExitThroughDoorTerminates(t *testing.T) {
	r, l := newTestRoom(t, func(c *Config) {
		c.Ghost.StageLimit = 1
		c.Player.Facing = "south"
	})
	out := &closeCounter{}
	g := New(r, out)

	defeatGhost(t, r, l)
	l.get(t, "GhostDeath.wav").Finish()
	if err := g.step(0.1, nil); err != nil {
		t.Fatalf("step: %v", err)
	}
	if !r.DoorOpen() {
		t.Fatal("door should be open")
	}

	if err := g.step(0.1, []Intent{IntentMoveForward}); !errors.Is(err, ebiten.Termination) {
		t.Fatalf("got %v, want ebiten.Termination after leaving", err)
	}
	if out.closes != 1 {
		t.Fatalf("output closed %d times, want 1", out.closes)
	}
}

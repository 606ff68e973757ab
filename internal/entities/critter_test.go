package entities

import (
	"math/rand"
	"testing"

	"github.com/CassBennett/Escape/internal/audio/audiotest"
	"github.com/CassBennett/Escape/internal/spatial"
	"github.com/CassBennett/Escape/internal/vecmath"
)

func newTestCritter(rng Rand, listenerAt vecmath.Vector3) (*MovingCritter, *audiotest.Fake, *audiotest.Fake) {
	bats, mice := audiotest.New("bats"), audiotest.New("mice")
	l := spatial.NewListener(listenerAt, spatial.North)
	c := NewMovingCritter(DefaultCritterConfig(), CritterSounds{Bats: bats, Mice: mice}, l, rng)
	return c, bats, mice
}

// cross runs the critter until one crossing has started and finished.
func cross(t *testing.T, c *MovingCritter) {
	t.Helper()
	for i := 0; i < 1000 && !c.IsMoving(); i++ {
		c.Update(0.5)
	}
	if !c.IsMoving() {
		t.Fatal("crossing never started")
	}
	for i := 0; i < 10000 && c.IsMoving(); i++ {
		c.Update(0.05)
	}
	if c.IsMoving() {
		t.Fatalf("crossing never finished, at %v", c.Position())
	}
}

func TestCritterIntervalRange(t *testing.T) {
	cfg := DefaultCritterConfig()
	for _, f := range []float64{0, 0.5, 0.999999} {
		c, _, _ := newTestCritter(&scriptedRand{floats: []float64{f}}, vecmath.Vector3{X: 8, Z: 2})
		got := c.NextInterval()
		if got < cfg.MinInterval || got >= cfg.MaxInterval {
			t.Fatalf("Float64=%v: interval %v outside [%v,%v)", f, got, cfg.MinInterval, cfg.MaxInterval)
		}
	}

	rng := rand.New(rand.NewSource(7))
	c, _, _ := newTestCritter(rng, vecmath.Vector3{X: 8, Z: 2})
	for i := 0; i < 100; i++ {
		c.rollInterval()
		if c.nextTime < cfg.MinInterval || c.nextTime >= cfg.MaxInterval {
			t.Fatalf("interval %v outside range", c.nextTime)
		}
	}
}

func TestCritterIdlesUntilInitialised(t *testing.T) {
	c, bats, _ := newTestCritter(&scriptedRand{}, vecmath.Vector3{X: 8, Z: 2})
	for i := 0; i < 100; i++ {
		c.Update(1)
	}
	if c.IsMoving() || bats.Plays != 0 {
		t.Fatal("uninitialised critter started a crossing")
	}
}

func TestCritterWaitsForInterval(t *testing.T) {
	c, bats, _ := newTestCritter(&scriptedRand{}, vecmath.Vector3{X: 8, Z: 2})
	c.Initialise()
	for i := 0; i < 15; i++ {
		c.Update(1)
	}
	if c.IsMoving() {
		t.Fatal("crossing started before the interval elapsed")
	}
	c.Update(1)
	if !c.IsMoving() || !bats.Playing {
		t.Fatal("crossing did not start after the interval")
	}
}

func TestCritterSpawnAndAim(t *testing.T) {
	c, _, _ := newTestCritter(&scriptedRand{ints: []int{4}}, vecmath.Vector3{X: 8, Z: 2})
	c.Initialise()
	c.timer = 100
	c.startCrossing()

	if c.Position() != (vecmath.Vector3{X: -10, Y: 1, Z: 5}) {
		t.Fatalf("bats spawned at %v, want (-10,1,5)", c.Position())
	}
	d := c.Direction()
	if d.Y != 0 {
		t.Fatalf("direction has vertical component %v", d.Y)
	}
	want := vecmath.Vector3{X: 18, Z: -3}.Normalize().Scale(c.cfg.Speed)
	if vecmath.Distance(d, want) > 1e-9 {
		t.Fatalf("direction = %v, want %v", d, want)
	}
}

func TestCritterAlternatesSideAndKind(t *testing.T) {
	c, bats, mice := newTestCritter(&scriptedRand{}, vecmath.Vector3{X: 8, Z: 2})
	c.Initialise()
	if c.Side() != SideLeft || c.Kind() != CritterBats {
		t.Fatalf("start %v/%v, want left/bats", c.Side(), c.Kind())
	}

	cross(t, c)
	if c.Side() != SideRight || c.Kind() != CritterMice {
		t.Fatalf("after first crossing %v/%v, want right/mice", c.Side(), c.Kind())
	}
	if c.Position().X <= c.cfg.RightLimit {
		t.Fatalf("finished at x=%v, before the far edge", c.Position().X)
	}
	if c.Emitter().Sound() != mice {
		t.Fatal("emitter not switched to the mice sound")
	}
	if mice.Playing || bats.Playing {
		t.Fatal("critter sounds left playing between crossings")
	}
	if c.timer != 0 {
		t.Fatalf("timer = %v, want reset", c.timer)
	}

	cross(t, c)
	if c.Side() != SideLeft || c.Kind() != CritterBats {
		t.Fatalf("after second crossing %v/%v, want left/bats", c.Side(), c.Kind())
	}
	if c.Position().X >= c.cfg.LeftLimit {
		t.Fatalf("finished at x=%v, before the far edge", c.Position().X)
	}
	if c.Emitter().Sound() != bats {
		t.Fatal("emitter not switched back to bats")
	}
}

func TestCritterMiceRunOnTheFloor(t *testing.T) {
	c, _, _ := newTestCritter(&scriptedRand{}, vecmath.Vector3{X: 8, Z: 2})
	c.Initialise()
	cross(t, c)
	c.startCrossing()
	if c.Position().Y != 0 || c.Position().X != c.cfg.RightLimit {
		t.Fatalf("mice spawned at %v", c.Position())
	}
}

func TestCritterAlwaysHeadsForFarEdge(t *testing.T) {
	c, _, _ := newTestCritter(&scriptedRand{}, vecmath.Vector3{X: -20, Z: 2})
	c.Initialise()
	c.startCrossing()
	if c.Direction().X <= 0 {
		t.Fatalf("direction %v does not head right", c.Direction())
	}
	cross(t, c)
	if c.Side() != SideRight {
		t.Fatal("crossing did not complete")
	}
}

func TestCritterValidity(t *testing.T) {
	l := spatial.NewListener(vecmath.Vector3{}, spatial.North)
	c := NewMovingCritter(DefaultCritterConfig(), CritterSounds{Bats: audiotest.New("b")}, l, &scriptedRand{})
	if c.IsValid() {
		t.Fatal("missing mice sound not detected")
	}
	c.Update(1)
	c.Stop()
}

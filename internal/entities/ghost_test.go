package entities

import (
	"math/rand"
	"testing"

	"github.com/CassBennett/Escape/internal/audio"
	"github.com/CassBennett/Escape/internal/audio/audiotest"
	"github.com/CassBennett/Escape/internal/spatial"
	"github.com/CassBennett/Escape/internal/vecmath"
)

type ghostFakes struct {
	intro, def, first, damage, death *audiotest.Fake
	laughs                           [3]*audiotest.Fake
	stages                           map[StageKind]*audiotest.Fake
}

func newGhostFakes() (ghostFakes, GhostSounds) {
	f := ghostFakes{
		intro:  audiotest.New("intro"),
		def:    audiotest.New("default"),
		first:  audiotest.New("first"),
		damage: audiotest.New("damage"),
		death:  audiotest.New("death"),
		stages: map[StageKind]*audiotest.Fake{},
	}
	s := GhostSounds{
		Intro:         f.intro,
		Default:       f.def,
		FirstReaction: f.first,
		Damage:        f.damage,
		Death:         f.death,
		Stages:        map[StageKind]audio.Sound{},
	}
	for i := range f.laughs {
		f.laughs[i] = audiotest.New("laugh")
		s.Laughs[i] = f.laughs[i]
	}
	for _, k := range StageKinds() {
		f.stages[k] = audiotest.New(k.String())
		s.Stages[k] = f.stages[k]
	}
	return f, s
}

func newTestGhost(rng Rand) (*Ghost, ghostFakes, *spatial.Listener) {
	f, s := newGhostFakes()
	l := spatial.NewListener(vecmath.Vector3{X: 8, Z: 2}, spatial.North)
	return NewGhost(DefaultGhostConfig(), s, l, rng), f, l
}

// runUntilStill advances the ghost until it stops moving.
func runUntilStill(t *testing.T, g *Ghost) {
	t.Helper()
	for i := 0; i < 10000 && g.IsMoving(); i++ {
		g.Update(0.05)
	}
	if g.IsMoving() {
		t.Fatalf("ghost never reached %v, at %v", g.Target(), g.Position())
	}
}

func TestGhostDefeatedAfterStageLimit(t *testing.T) {
	g, f, _ := newTestGhost(&scriptedRand{})
	g.Activate()

	seen := map[StageKind]bool{}
	for i := 0; i < 4; i++ {
		g.SelectNewStage()
		if g.IsDefeated() {
			t.Fatalf("defeated after %d selections", i+1)
		}
		k := g.CurrentStage()
		if seen[k] {
			t.Fatalf("stage %v chosen twice", k)
		}
		seen[k] = true
		if g.StageAvailable(k) {
			t.Fatalf("stage %v still available after selection", k)
		}
	}
	if g.StageCount() != 4 {
		t.Fatalf("stage count = %d, want 4", g.StageCount())
	}

	g.SelectNewStage()
	if !g.IsDefeated() || g.Phase() != GhostDefeated {
		t.Fatal("fifth selection did not defeat the ghost")
	}
	if g.StageCount() != 4 {
		t.Fatalf("defeat consumed a stage slot: count %d", g.StageCount())
	}
	if !f.death.Playing || f.death.Looped {
		t.Fatal("death sound should play once")
	}

	g.SelectNewStage()
	if g.StageCount() != 4 || f.death.Plays != 1 {
		t.Fatal("selection after defeat changed state")
	}
}

func TestGhostStagesDistinctUnderRandomDraws(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		g, _, _ := newTestGhost(rand.New(rand.NewSource(seed)))
		g.Activate()
		seen := map[StageKind]bool{}
		for i := 0; i < 4; i++ {
			g.SelectNewStage()
			if seen[g.CurrentStage()] {
				t.Fatalf("seed %d: stage %v repeated", seed, g.CurrentStage())
			}
			seen[g.CurrentStage()] = true
		}
		g.SelectNewStage()
		if !g.IsDefeated() {
			t.Fatalf("seed %d: not defeated after four stages", seed)
		}
	}
}

func TestGhostStageLimitBelowStageCount(t *testing.T) {
	_, s := newGhostFakes()
	cfg := DefaultGhostConfig()
	cfg.StageLimit = 2
	g := NewGhost(cfg, s, spatial.NewListener(vecmath.Vector3{}, spatial.North), &scriptedRand{})
	g.Activate()
	g.SelectNewStage()
	g.SelectNewStage()
	g.SelectNewStage()
	if !g.IsDefeated() || g.StageCount() != 2 {
		t.Fatalf("defeated=%v count=%d, want true/2", g.IsDefeated(), g.StageCount())
	}
	if !g.StageAvailable(StageRadio) {
		t.Fatal("unused stage marked unavailable")
	}
}

func TestGhostIntroThenFirstStage(t *testing.T) {
	g, f, _ := newTestGhost(&scriptedRand{ints: []int{1}})
	if g.Phase() != GhostDormant {
		t.Fatalf("phase = %v, want dormant", g.Phase())
	}

	g.Initialise()
	if !f.intro.Playing || g.Phase() != GhostActive {
		t.Fatal("first Initialise should play the intro")
	}
	g.Initialise()
	if g.StageCount() != 0 {
		t.Fatal("stage selected while the intro is playing")
	}

	f.intro.Finish()
	g.Initialise()
	if g.StageCount() != 1 || g.CurrentStage() != StagePiano {
		t.Fatalf("after intro: count %d stage %v", g.StageCount(), g.CurrentStage())
	}
	if !f.first.Playing || f.first.Looped {
		t.Fatal("first reaction should play once")
	}
	if f.damage.Plays != 0 {
		t.Fatal("damage sound played on the first selection")
	}
	if g.Phase() != GhostMoving {
		t.Fatalf("phase = %v, want moving", g.Phase())
	}

	g.Initialise()
	if g.StageCount() != 1 {
		t.Fatal("Initialise selected a second stage")
	}
}

func TestGhostPathIsHorizontal(t *testing.T) {
	_, s := newGhostFakes()
	cfg := DefaultGhostConfig()
	cfg.Start = vecmath.Vector3{X: 8, Y: 3, Z: -1}
	g := NewGhost(cfg, s, spatial.NewListener(vecmath.Vector3{}, spatial.North), &scriptedRand{ints: []int{3}})
	g.Activate()
	g.SelectNewStage()
	if g.path.Y != 0 {
		t.Fatalf("path has vertical component %v", g.path.Y)
	}
	if got := g.path.Magnitude(); got < cfg.Speed-1e-9 || got > cfg.Speed+1e-9 {
		t.Fatalf("path speed = %v, want %v", got, cfg.Speed)
	}
}

func TestGhostArrivesAtStage(t *testing.T) {
	g, f, _ := newTestGhost(&scriptedRand{ints: []int{1}})
	g.Activate()
	g.SelectNewStage()
	runUntilStill(t, g)

	if g.Position() != g.cfg.Stages.Piano {
		t.Fatalf("ghost at %v, want snapped to piano", g.Position())
	}
	if g.Phase() != GhostAtStage {
		t.Fatalf("phase = %v, want at-stage", g.Phase())
	}
	piano := f.stages[StagePiano]
	if !piano.Playing || !piano.Looped {
		t.Fatal("stage sound should loop on the event emitter")
	}
	if g.EventEmitter().Position() != g.cfg.Stages.Piano {
		t.Fatal("event emitter not moved to the stage")
	}
	if !f.def.Playing || !f.def.Looped {
		t.Fatal("ghost should fall back to its default loop")
	}
}

func TestGhostCapture(t *testing.T) {
	tests := []struct {
		name      string
		listener  vecmath.Vector3
		want      CaptureResult
		wantCount int
	}{
		{name: "within radius", listener: vecmath.Vector3{X: 8, Z: 2}, want: CaptureHit, wantCount: 2},
		{name: "too far", listener: vecmath.Vector3{X: 14, Z: 14}, want: CaptureMiss, wantCount: 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g, f, l := newTestGhost(&scriptedRand{})
			g.Activate()
			g.SelectNewStage()
			runUntilStill(t, g)
			if g.CurrentStage() != StageKnocking {
				t.Fatalf("stage = %v, want knocking", g.CurrentStage())
			}
			l.MoveTo(tc.listener)

			if got := g.Capture(); got != tc.want {
				t.Fatalf("Capture = %v, want %v", got, tc.want)
			}
			if g.StageCount() != tc.wantCount {
				t.Fatalf("stage count = %d, want %d", g.StageCount(), tc.wantCount)
			}
			knock := f.stages[StageKnocking]
			switch tc.want {
			case CaptureHit:
				if !f.damage.Playing {
					t.Fatal("hit should play the damage yell")
				}
				if knock.Playing {
					t.Fatal("hit should silence the stage sound")
				}
			case CaptureMiss:
				if !g.IsLaughing() || !f.laughs[0].Playing {
					t.Fatal("miss should laugh")
				}
				if !knock.Playing {
					t.Fatal("miss should leave the stage sound running")
				}
			}
		})
	}
}

func TestGhostCaptureWhileMovingLaughs(t *testing.T) {
	g, _, l := newTestGhost(&scriptedRand{ints: []int{1}})
	g.Activate()
	g.SelectNewStage()
	l.MoveTo(g.Position())
	if got := g.Capture(); got != CaptureMiss {
		t.Fatalf("capture of a moving ghost = %v, want miss", got)
	}
}

func TestGhostLaughReturnsToDefault(t *testing.T) {
	g, f, l := newTestGhost(&scriptedRand{ints: []int{0, 2}})
	g.Activate()
	g.SelectNewStage()
	runUntilStill(t, g)
	l.MoveTo(vecmath.Vector3{X: 15, Z: 15})

	g.Capture()
	laugh := f.laughs[2]
	if !laugh.Playing || laugh.Looped {
		t.Fatal("third laugh should play once")
	}
	g.Update(0.1)
	if !g.IsLaughing() {
		t.Fatal("laugh cut short")
	}

	laugh.Finish()
	g.Update(0.1)
	if g.IsLaughing() {
		t.Fatal("laughing not cleared after the laugh ended")
	}
	if !f.def.Playing || !f.def.Looped {
		t.Fatal("default loop not restored")
	}
}

func TestGhostCaptureIgnored(t *testing.T) {
	g, f, _ := newTestGhost(&scriptedRand{})
	if got := g.Capture(); got != CaptureIgnored {
		t.Fatalf("dormant capture = %v, want ignored", got)
	}

	g.Activate()
	for i := 0; i < 5; i++ {
		g.SelectNewStage()
	}
	plays := f.death.Plays
	if got := g.Capture(); got != CaptureIgnored {
		t.Fatalf("capture after defeat = %v, want ignored", got)
	}
	if f.death.Plays != plays || g.IsLaughing() {
		t.Fatal("capture after defeat changed the ghost")
	}
}

func TestGhostValidity(t *testing.T) {
	g, _, _ := newTestGhost(&scriptedRand{})
	if !g.IsValid() {
		t.Fatal("ghost with valid sounds reports invalid")
	}

	_, s := newGhostFakes()
	s.Laughs[1] = audiotest.NewBroken("laugh2")
	g = NewGhost(DefaultGhostConfig(), s, spatial.NewListener(vecmath.Vector3{}, spatial.North), &scriptedRand{})
	if g.IsValid() {
		t.Fatal("broken laugh not detected")
	}

	_, s = newGhostFakes()
	delete(s.Stages, StageRadio)
	g = NewGhost(DefaultGhostConfig(), s, spatial.NewListener(vecmath.Vector3{}, spatial.North), &scriptedRand{})
	if g.IsValid() {
		t.Fatal("missing stage sound not detected")
	}
}

func TestGhostStop(t *testing.T) {
	g, f, _ := newTestGhost(&scriptedRand{})
	g.Activate()
	g.SelectNewStage()
	runUntilStill(t, g)
	g.Stop()
	if f.def.Playing || f.stages[StageKnocking].Playing {
		t.Fatal("Stop left sounds playing")
	}
}

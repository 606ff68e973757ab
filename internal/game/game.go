package game

import (
	"image/color"
	"io"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/sirupsen/logrus"

	"github.com/CassBennett/Escape/internal/logging"
)

const (
	screenWidth  = 640
	screenHeight = 480
)

const helpText = `GHOST ESCAPE - listen with headphones

Up      step forward
Left    turn left
Right   turn right
Space   try to capture the ghost
R       return to the start
I       show or hide this text
Esc/Q   quit

Find the ghost by ear and catch it at each of its haunts.
When it is gone, the door opens.`

// Game drives a Room from ebiten's update loop.
type Game struct {
	room     *Room
	output   io.Closer
	log      *logrus.Entry
	showHelp bool
	quit     bool
	stopped  bool
}

// New wraps room. output, if not nil, is closed when the game ends.
func New(room *Room, output io.Closer) *Game {
	return &Game{
		room:     room,
		output:   output,
		log:      logging.Component("game").WithField("session", room.ID().String()),
		showHelp: true,
	}
}

func (g *Game) ScreenWidth() int  { return screenWidth }
func (g *Game) ScreenHeight() int { return screenHeight }

func (g *Game) Update() error {
	intents := g.handleInput()
	return g.step(1/float64(ebiten.TPS()), intents)
}

// step advances the room and reports ebiten.Termination once the game is
// over.
func (g *Game) step(dt float64, intents []Intent) error {
	if g.quit {
		g.shutdown("quit")
		return ebiten.Termination
	}
	g.room.Step(dt, intents...)
	if g.room.DoorExited() {
		g.shutdown("escaped")
		return ebiten.Termination
	}
	return nil
}

func (g *Game) shutdown(reason string) {
	if g.stopped {
		return
	}
	g.stopped = true
	g.room.Stop()
	if g.output != nil {
		if err := g.output.Close(); err != nil {
			g.log.WithError(err).Warn("closing audio output")
		}
	}
	g.log.WithField("reason", reason).Info("game over")
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	if g.showHelp {
		ebitenutil.DebugPrint(screen, helpText)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func (g *Game) handleInput() []Intent {
	var intents []Intent
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) {
		intents = append(intents, IntentMoveForward)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) {
		intents = append(intents, IntentTurnLeft)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
		intents = append(intents, IntentTurnRight)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		intents = append(intents, IntentCapture)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		intents = append(intents, IntentReset)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyI) {
		g.showHelp = !g.showHelp
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		g.quit = true
	}
	return intents
}

package main

import (
	"github.com/gopxl/beep"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/CassBennett/Escape/internal/audio"
	"github.com/CassBennett/Escape/internal/game"
	"github.com/CassBennett/Escape/internal/logging"
)

func main() {
	logging.Init()
	log := logging.Component("main")

	cfg, err := game.LoadConfig()
	if err != nil {
		log.WithError(err).Fatal("loading config")
	}
	if !game.ConfigExists() {
		// first run: leave an editable copy of the defaults
		if err := game.SaveConfig(cfg); err != nil {
			log.WithError(err).Warn("could not write default config")
		}
	}

	mixer := audio.NewMixer(beep.SampleRate(cfg.SampleRate))
	library := audio.NewLibrary(mixer, cfg.SoundsDir, cfg.SynthesizeMissing)
	room := game.NewRoom(cfg, game.LoadSounds(library), cfg.Rand())
	if err := room.Validate(); err != nil {
		log.WithError(err).Fatal("room setup failed")
	}

	out, err := audio.StartOutput(mixer)
	if err != nil {
		log.WithError(err).Fatal("starting audio output")
	}
	room.Start()

	g := game.New(room, out)
	ebiten.SetWindowTitle("Ghost Escape")
	ebiten.SetWindowResizable(false)
	ebiten.SetWindowSize(g.ScreenWidth(), g.ScreenHeight())
	if err := ebiten.RunGame(g); err != nil {
		log.WithError(err).Fatal("game exited with error")
	}
}

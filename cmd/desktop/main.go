package main

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/tomz197/alienfield/internal/config"
	"github.com/tomz197/alienfield/internal/desktop"
	"github.com/tomz197/alienfield/internal/logging"
)

func main() {
	log, closeLog := logging.New(logging.FromEnv())
	defer closeLog()

	cfg := config.Session("ALIENFIELD_")
	game, err := desktop.New(cfg, log)
	if err != nil {
		log.Fatalw("invalid session config", "error", err)
	}

	ebiten.SetWindowTitle("Alien Field")
	ebiten.SetWindowSize(int(cfg.FieldWidth), int(cfg.FieldHeight)+desktop.StripHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatalw("game exited", "error", err)
	}
}

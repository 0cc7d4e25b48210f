//go:build ebiten

package main

import (
	"context"
	"errors"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/kpacha/neatbird"
	"github.com/kpacha/neatbird/config"
	"github.com/kpacha/neatbird/screen"
)

// runWindow trains in the background while the window shows every episode.
// Closing the window stops the training.
func runWindow(cancel context.CancelFunc, cfg config.Config, trainer *neatbird.Trainer, train func() error) error {
	s := screen.New(cfg, cancel)
	trainer.Renderer = s

	go func() {
		if err := train(); err != nil {
			log.Printf("training stopped: %+v", err)
			return
		}
		log.Println("training finished, close the window to exit")
	}()

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle("NEAT bird")
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetRunnableOnUnfocused(true)
	if err := ebiten.RunGame(s); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

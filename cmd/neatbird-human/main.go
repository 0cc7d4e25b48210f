//go:build ebiten

package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/kpacha/neatbird"
	"github.com/kpacha/neatbird/config"
	"github.com/kpacha/neatbird/screen"
)

func main() {
	var (
		gpath = flag.String("game", "", "path to a YAML file overriding the game defaults")
		tpath = flag.String("trace", "", "path of a file recording every decision as JSON lines")
	)
	flag.Parse()

	cfg, err := config.Load(*gpath)
	if err != nil {
		log.Fatal(err.Error())
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := screen.New(cfg, cancel)
	var player neatbird.Decider = s
	if *tpath != "" {
		file, err := os.Create(*tpath)
		if err != nil {
			log.Fatal(err.Error())
		}
		defer file.Close()
		player = neatbird.TraceDecider{Decider: s, Out: file}
	}

	trainer := neatbird.NewTrainer(ctx, cfg, neatbird.NewRand(cfg.World.Seed))
	trainer.Renderer = s
	trainer.Sprites = screen.Sprites(cfg)

	go func() {
		for ctx.Err() == nil {
			summary := trainer.RunGeneration([]neatbird.Agent{{ID: 1, Decider: player}})
			log.Printf("score: %d, fitness: %.1f", summary.Score, summary.Results[0].Fitness)
		}
	}()

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle("NEAT bird (human edition)")
	ebiten.SetWindowClosingHandled(true)
	if err := ebiten.RunGame(s); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err.Error())
	}
}

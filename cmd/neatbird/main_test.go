package main

import (
	"context"
	"reflect"
	"testing"

	"github.com/kpacha/neatbird/config"
	"github.com/kpacha/neatbird/screen"
)

func TestNewTrainingSharesTheDrawnSprite(t *testing.T) {
	cfg := config.Default()
	trainer, evaluator := newTraining(context.Background(), cfg)

	if trainer.Sprites == nil || trainer.Sprites != evaluator.Sprites {
		t.Fatal("trainer and evaluator should collide with the same sprites")
	}
	drawn := screen.GopherMask(cfg.Bird.Width, cfg.Bird.Height)
	if !reflect.DeepEqual(trainer.Sprites.Bird, drawn) {
		t.Error("the bird collides with a shape other than the drawn gopher")
	}
	if evaluator.Seed != cfg.World.Seed {
		t.Errorf("evaluator seed %d", evaluator.Seed)
	}
}

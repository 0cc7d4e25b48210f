//go:build !ebiten

package main

import (
	"context"
	"log"

	"github.com/kpacha/neatbird"
	"github.com/kpacha/neatbird/config"
)

// runWindow trains without a window: this binary was built without the
// ebiten tag.
func runWindow(_ context.CancelFunc, _ config.Config, _ *neatbird.Trainer, train func() error) error {
	log.Println("built without the ebiten tag, training without a window")
	return train()
}

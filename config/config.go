// Package config loads the game and training tunables.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds all tunables of the game and the training driver.
type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Bird     BirdConfig     `yaml:"bird"`
	Pipe     PipeConfig     `yaml:"pipe"`
	World    WorldConfig    `yaml:"world"`
	Training TrainingConfig `yaml:"training"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Width          int `yaml:"width"`
	Height         int `yaml:"height"`
	TicksPerSecond int `yaml:"ticks_per_second"` // 0 runs unpaced
}

// BirdConfig holds the spawn point and footprint of every bird.
type BirdConfig struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
}

// PipeConfig holds pipe geometry. The gap top is drawn from [GapMin, GapMax).
type PipeConfig struct {
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
	Gap    float64 `yaml:"gap"`
	GapMin int     `yaml:"gap_min"`
	GapMax int     `yaml:"gap_max"`
	SpawnX float64 `yaml:"spawn_x"`
}

// WorldConfig holds scrolling and episode limits.
type WorldConfig struct {
	Velocity    float64 `yaml:"velocity"`
	GroundY     float64 `yaml:"ground_y"`
	GroundWidth float64 `yaml:"ground_width"`
	MaxTicks    int     `yaml:"max_ticks"` // 0 means no limit
	Seed        int64   `yaml:"seed"`      // 0 seeds from the clock
}

// TrainingConfig holds driver settings.
type TrainingConfig struct {
	Generations int `yaml:"generations"`
	SolvedScore int `yaml:"solved_score"`
}

// Default returns the embedded defaults.
func Default() Config {
	var c Config
	if err := yaml.Unmarshal(defaultsYAML, &c); err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return c
}

// Load reads the defaults and overlays the file at path, if any.
func Load(path string) (Config, error) {
	c := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return c, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(data, &c); err != nil {
			return c, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

// Validate checks the values the simulation relies on.
func (c Config) Validate() error {
	switch {
	case c.Bird.Width <= 0 || c.Bird.Height <= 0:
		return fmt.Errorf("%w: bird footprint %dx%d", ErrInvalid, c.Bird.Width, c.Bird.Height)
	case c.Pipe.Width <= 0 || c.Pipe.Height <= 0:
		return fmt.Errorf("%w: pipe footprint %dx%d", ErrInvalid, c.Pipe.Width, c.Pipe.Height)
	case c.Pipe.Gap < 0:
		return fmt.Errorf("%w: negative pipe gap %v", ErrInvalid, c.Pipe.Gap)
	case c.Pipe.GapMax <= c.Pipe.GapMin:
		return fmt.Errorf("%w: empty gap range [%d, %d)", ErrInvalid, c.Pipe.GapMin, c.Pipe.GapMax)
	case c.World.Velocity <= 0:
		return fmt.Errorf("%w: velocity %v", ErrInvalid, c.World.Velocity)
	case c.World.GroundWidth <= 0:
		return fmt.Errorf("%w: ground width %v", ErrInvalid, c.World.GroundWidth)
	case c.Window.TicksPerSecond < 0:
		return fmt.Errorf("%w: ticks per second %d", ErrInvalid, c.Window.TicksPerSecond)
	}
	return nil
}

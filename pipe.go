package neatbird

import (
	"math"
	"math/rand"

	"github.com/kpacha/neatbird/config"
	"github.com/kpacha/neatbird/mask"
)

// Sprites holds the occupancy masks used for collisions.
type Sprites struct {
	Bird       *mask.Mask
	PipeTop    *mask.Mask
	PipeBottom *mask.Mask
}

// DefaultSprites builds masks matching the configured footprints: an ellipse
// for the bird and solid pipes.
func DefaultSprites(cfg config.Config) *Sprites {
	bottom := mask.Rect(cfg.Pipe.Width, cfg.Pipe.Height)
	return &Sprites{
		Bird:       mask.Ellipse(cfg.Bird.Width, cfg.Bird.Height),
		PipeTop:    bottom.FlipV(),
		PipeBottom: bottom,
	}
}

// Pipe is a pair of barriers with a gap between GapTop and GapBottom. The
// upper barrier hangs from GapTop upwards, the lower one stands on GapBottom.
type Pipe struct {
	X         float64
	GapTop    float64
	GapBottom float64
	Passed    bool

	width int
}

// NewPipe returns a pipe at x whose gap starts at top and is gap units high.
func NewPipe(x, top, gap float64, width int) *Pipe {
	return &Pipe{X: x, GapTop: top, GapBottom: top + gap, width: width}
}

// SpawnPipe returns a pipe at x with its gap top drawn uniformly from
// [GapMin, GapMax).
func SpawnPipe(x float64, cfg config.PipeConfig, r *rand.Rand) *Pipe {
	top := cfg.GapMin + r.Intn(cfg.GapMax-cfg.GapMin)
	return NewPipe(x, float64(top), cfg.Gap, cfg.Width)
}

// Width returns the barrier width.
func (p *Pipe) Width() float64 { return float64(p.width) }

// Move scrolls the pipe left by v.
func (p *Pipe) Move(v float64) { p.X -= v }

// OffScreen reports whether the pipe has fully left the view on the left.
func (p *Pipe) OffScreen() bool { return p.X+p.Width() < 0 }

// Collide tests the bird mask against both barrier masks at their relative
// offsets.
func (p *Pipe) Collide(b *Bird, s *Sprites) bool {
	_, th := s.PipeTop.Size()
	dx := int(math.Round(p.X)) - int(math.Round(b.X))
	by := int(math.Round(b.Y))
	topY := int(math.Round(p.GapTop)) - th
	bottomY := int(math.Round(p.GapBottom))

	if _, hit := s.Bird.Overlap(s.PipeBottom, dx, bottomY-by); hit {
		return true
	}
	_, hit := s.Bird.Overlap(s.PipeTop, dx, topY-by)
	return hit
}

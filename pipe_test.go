package neatbird

import (
	"math/rand"
	"testing"

	"github.com/kpacha/neatbird/config"
)

func TestSpawnPipeGap(t *testing.T) {
	cfg := config.Default()
	r := rand.New(rand.NewSource(1))
	seen := map[float64]bool{}
	for i := 0; i < 5000; i++ {
		p := SpawnPipe(600, cfg.Pipe, r)
		if p.GapBottom-p.GapTop != 200 {
			t.Fatalf("gap = %v, want 200", p.GapBottom-p.GapTop)
		}
		if p.GapTop < 50 || p.GapTop >= 450 {
			t.Fatalf("gap top %v out of [50, 450)", p.GapTop)
		}
		if p.X != 600 || p.Passed {
			t.Fatalf("unexpected new pipe %+v", p)
		}
		seen[p.GapTop] = true
	}
	if !seen[50] || !seen[449] {
		t.Error("range ends never drawn")
	}
}

func TestPipeMove(t *testing.T) {
	p := NewPipe(0, 100, 200, 104)
	p.Move(5)
	if p.X != -5 {
		t.Errorf("x = %v, want -5", p.X)
	}
	if p.OffScreen() {
		t.Error("pipe still partly visible")
	}
	p.X = -104
	if p.OffScreen() {
		t.Error("pipe edge at 0 is not off screen yet")
	}
	p.Move(1)
	if !p.OffScreen() {
		t.Error("pipe should be off screen")
	}
}

func TestPipeCollide(t *testing.T) {
	cfg := config.Default()
	s := DefaultSprites(cfg)
	b := NewBird(230, 350) // footprint x [230, 298), y [350, 398)

	for _, tc := range []struct {
		name string
		pipe *Pipe
		want bool
	}{
		{"inside gap", NewPipe(230, 300, 200, 104), false},
		{"ahead", NewPipe(298, 0, 0, 104), false},
		{"behind", NewPipe(126, 0, 0, 104), false},
		{"top barrier", NewPipe(230, 360, 200, 104), true},
		{"bottom barrier", NewPipe(230, 150, 200, 104), true},
		{"zero gap", NewPipe(230, 374, 0, 104), true},
		{"box corner only", NewPipe(296, 196, 200, 104), false},
		{"belly", NewPipe(250, 196, 200, 104), true},
	} {
		if got := tc.pipe.Collide(b, s); got != tc.want {
			t.Errorf("%s: collide = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestBaseWraps(t *testing.T) {
	b := NewBase(730, 20)
	for i := 0; i < 100; i++ {
		b.Move(5)
		if b.X1+b.Width() < 0 || b.X2+b.Width() < 0 {
			t.Fatalf("tick %d: segment left behind: %v %v", i, b.X1, b.X2)
		}
		d := b.X2 - b.X1
		if d != b.Width() && d != -b.Width() {
			t.Fatalf("tick %d: segments %v and %v do not tile", i, b.X1, b.X2)
		}
	}
}

func TestBaseBothWrap(t *testing.T) {
	b := &Base{X1: -6, X2: -7, width: 5}
	b.Move(0)
	if b.X1 != -2 || b.X2 != 3 {
		t.Errorf("segments = %v, %v, want -2, 3", b.X1, b.X2)
	}
}

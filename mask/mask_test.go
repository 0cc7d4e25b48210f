package mask

import (
	"image"
	"image/color"
	"math/rand"
	"testing"
)

func naiveOverlap(a, b *Mask, dx, dy int) bool {
	for y := 0; y < a.h; y++ {
		for x := 0; x < a.w; x++ {
			if a.Get(x, y) && b.Get(x-dx, y-dy) {
				return true
			}
		}
	}
	return false
}

func randomMask(r *rand.Rand, w, h int, density float64) *Mask {
	m := New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if r.Float64() < density {
				m.Set(x, y)
			}
		}
	}
	return m
}

func TestOverlapMatchesPixelScan(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 300; i++ {
		a := randomMask(r, 1+r.Intn(150), 1+r.Intn(40), 0.05)
		b := randomMask(r, 1+r.Intn(150), 1+r.Intn(40), 0.05)
		dx, dy := r.Intn(300)-150, r.Intn(80)-40
		p, got := a.Overlap(b, dx, dy)
		if want := naiveOverlap(a, b, dx, dy); got != want {
			t.Fatalf("case %d: overlap at (%d,%d) = %v, want %v", i, dx, dy, got, want)
		}
		if got && !(a.Get(p.X, p.Y) && b.Get(p.X-dx, p.Y-dy)) {
			t.Fatalf("case %d: reported point %v is not shared", i, p)
		}
	}
}

func TestOverlapIsNotBoundingBox(t *testing.T) {
	bird := Ellipse(68, 48)
	corner := Rect(4, 4)
	// the box corners intersect, the ellipse does not reach them
	if _, hit := bird.Overlap(corner, -2, -2); hit {
		t.Error("ellipse corner reported as solid")
	}
	if _, hit := bird.Overlap(corner, 32, 22); !hit {
		t.Error("ellipse centre reported as empty")
	}
}

func TestTouchingEdgesDoNotOverlap(t *testing.T) {
	a, b := Rect(10, 10), Rect(10, 10)
	for _, off := range []image.Point{{10, 0}, {-10, 0}, {0, 10}, {0, -10}} {
		if _, hit := a.Overlap(b, off.X, off.Y); hit {
			t.Errorf("offset %v: adjacent rectangles overlap", off)
		}
	}
	if _, hit := a.Overlap(b, 9, 9); !hit {
		t.Error("corner pixel overlap missed")
	}
}

func TestFromImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(2, 3, 7, 6))
	img.Set(2, 3, color.NRGBA{A: 255})
	img.Set(6, 5, color.NRGBA{A: 200})
	img.Set(4, 4, color.NRGBA{A: 20})
	m := FromImage(img)
	if w, h := m.Size(); w != 5 || h != 3 {
		t.Fatalf("size = %dx%d, want 5x3", w, h)
	}
	if !m.Get(0, 0) || !m.Get(4, 2) || m.Get(2, 1) {
		t.Errorf("unexpected mask pixels")
	}
	if n := m.Count(); n != 2 {
		t.Errorf("count = %d, want 2", n)
	}
}

func TestFlipV(t *testing.T) {
	m := New(70, 3)
	m.Set(65, 0)
	f := m.FlipV()
	if !f.Get(65, 2) || f.Get(65, 0) {
		t.Error("flip did not mirror rows")
	}
}

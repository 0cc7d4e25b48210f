package screen

import (
	"testing"

	"github.com/kpacha/neatbird/config"
)

func TestGopherMask(t *testing.T) {
	m := GopherMask(68, 48)
	if w, h := m.Size(); w != 68 || h != 48 {
		t.Fatalf("size = %dx%d", w, h)
	}
	n := m.Count()
	if n == 0 || n == 68*48 {
		t.Errorf("solid pixels = %d, expected a partly transparent sprite", n)
	}
}

func TestSprites(t *testing.T) {
	cfg := config.Default()
	s := Sprites(cfg)
	if w, h := s.Bird.Size(); w != cfg.Bird.Width || h != cfg.Bird.Height {
		t.Errorf("bird mask %dx%d", w, h)
	}
	if w, h := s.PipeTop.Size(); w != cfg.Pipe.Width || h != cfg.Pipe.Height {
		t.Errorf("pipe mask %dx%d", w, h)
	}
}

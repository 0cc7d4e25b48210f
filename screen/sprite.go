// Package screen draws episodes in a window and reads the human player's
// input. The window itself needs the ebiten build tag; sprites do not.
package screen

import (
	"bytes"
	"image"
	_ "image/png"
	"log"

	resources "github.com/hajimehoshi/ebiten/v2/examples/resources/images/flappy"
	"golang.org/x/image/draw"

	"github.com/kpacha/neatbird"
	"github.com/kpacha/neatbird/config"
	"github.com/kpacha/neatbird/mask"
)

var gopherSource image.Image

func init() {
	img, _, err := image.Decode(bytes.NewReader(resources.Gopher_png))
	if err != nil {
		log.Fatal(err)
	}
	gopherSource = img
}

// GopherImage returns the gopher sprite scaled to w×h.
func GopherImage(w, h int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), gopherSource, gopherSource.Bounds(), draw.Over, nil)
	return dst
}

// GopherMask returns the collision mask of the gopher sprite drawn at w×h,
// so what collides is what is drawn.
func GopherMask(w, h int) *mask.Mask {
	return mask.FromImage(GopherImage(w, h))
}

// Sprites returns the collision masks matching what the screen draws.
func Sprites(cfg config.Config) *neatbird.Sprites {
	s := neatbird.DefaultSprites(cfg)
	s.Bird = GopherMask(cfg.Bird.Width, cfg.Bird.Height)
	return s
}

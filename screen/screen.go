//go:build ebiten

package screen

import (
	"context"
	"fmt"
	"image/color"
	"log"
	"math"
	"sync"
	"sync/atomic"

	"github.com/golang/freetype/truetype"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/examples/resources/fonts"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"

	"github.com/kpacha/neatbird"
	"github.com/kpacha/neatbird/config"
)

const (
	fontSize  = 24
	hudMargin = 10
)

var (
	skyColor    = color.RGBA{0x80, 0xa0, 0xc0, 0xff}
	pipeColor   = color.RGBA{0x54, 0xa8, 0x3c, 0xff}
	rimColor    = color.RGBA{0x2e, 0x6b, 0x22, 0xff}
	groundColor = color.RGBA{0xde, 0xd8, 0x95, 0xff}
	stripeColor = color.RGBA{0x8c, 0xcb, 0x4b, 0xff}
)

var arcadeFont font.Face

func init() {
	tt, err := truetype.Parse(fonts.PressStart2P_ttf)
	if err != nil {
		log.Fatal(err)
	}
	const dpi = 72
	arcadeFont = truetype.NewFace(tt, &truetype.Options{
		Size:    fontSize,
		DPI:     dpi,
		Hinting: font.HintingFull,
	})
}

// Screen is both the episode renderer and the ebiten game showing it. The
// episode runs on its own goroutine; Render hands over the latest snapshot.
type Screen struct {
	cfg    config.Config
	cancel context.CancelFunc
	gopher *ebiten.Image

	mu   sync.Mutex
	last neatbird.Snapshot

	jumps atomic.Int32
}

// New returns a screen for the configured window. cancel is called when the
// window is closed.
func New(cfg config.Config, cancel context.CancelFunc) *Screen {
	return &Screen{
		cfg:    cfg,
		cancel: cancel,
		gopher: ebiten.NewImageFromImage(GopherImage(cfg.Bird.Width, cfg.Bird.Height)),
	}
}

// Render stores the snapshot for the next frame.
func (s *Screen) Render(snap neatbird.Snapshot) {
	s.mu.Lock()
	s.last = snap
	s.mu.Unlock()
}

func (s *Screen) snapshot() neatbird.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// Decide returns 1 if the player pressed jump since the previous call.
func (s *Screen) Decide(neatbird.Observation) float64 {
	if s.jumps.Swap(0) > 0 {
		return 1
	}
	return 0
}

// Update reads the input. Closing the window or pressing escape stops the
// episode.
func (s *Screen) Update() error {
	if ebiten.IsWindowBeingClosed() || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		s.cancel()
		return ebiten.Termination
	}
	if jumpPressed() {
		s.jumps.Add(1)
	}
	return nil
}

func jumpPressed() bool {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		return true
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return true
	}
	return len(inpututil.AppendJustPressedTouchIDs(nil)) > 0
}

// Layout keeps the logical screen at the configured window size.
func (s *Screen) Layout(_, _ int) (int, int) {
	return s.cfg.Window.Width, s.cfg.Window.Height
}

// Draw paints the latest snapshot.
func (s *Screen) Draw(screen *ebiten.Image) {
	snap := s.snapshot()
	screen.Fill(skyColor)

	for _, p := range snap.Pipes {
		s.drawPipe(screen, p)
	}
	s.drawGround(screen, snap)
	for _, b := range snap.Birds {
		s.drawBird(screen, b)
	}

	score := fmt.Sprintf("Score: %d", snap.Score)
	w := font.MeasureString(arcadeFont, score).Ceil()
	text.Draw(screen, score, arcadeFont, s.cfg.Window.Width-hudMargin-w, hudMargin+fontSize, color.White)
	text.Draw(screen, fmt.Sprintf("Gen: %d", snap.Generation), arcadeFont, hudMargin, hudMargin+fontSize, color.White)

	status := fmt.Sprintf("Alive: %d  Tick: %d  FPS: %0.2f", snap.Alive(), snap.Tick, ebiten.ActualFPS())
	if snap.Terminated {
		status += "  (done)"
	}
	ebitenutil.DebugPrintAt(screen, status, hudMargin, s.cfg.Window.Height-20)
}

func (s *Screen) drawPipe(screen *ebiten.Image, p neatbird.PipeState) {
	const rim = 24
	h := float32(s.cfg.Pipe.Height)
	x, w := float32(p.X), float32(p.Width)
	top, bottom := float32(p.GapTop), float32(p.GapBottom)

	vector.DrawFilledRect(screen, x, top-h, w, h, pipeColor, false)
	vector.DrawFilledRect(screen, x, top-rim, w, rim, rimColor, false)
	vector.DrawFilledRect(screen, x, bottom, w, h, pipeColor, false)
	vector.DrawFilledRect(screen, x, bottom, w, rim, rimColor, false)
}

func (s *Screen) drawGround(screen *ebiten.Image, snap neatbird.Snapshot) {
	const stripe = 16
	y := float32(snap.GroundY)
	h := float32(s.cfg.Window.Height) - y
	w := float32(s.cfg.World.GroundWidth)
	for _, x := range snap.Ground {
		x := float32(x)
		vector.DrawFilledRect(screen, x, y, w, h, groundColor, false)
		for sx := x; sx < x+w; sx += 2 * stripe {
			vector.DrawFilledRect(screen, sx, y, stripe, stripe, stripeColor, false)
		}
	}
}

func (s *Screen) drawBird(screen *ebiten.Image, b neatbird.BirdState) {
	w, h := s.gopher.Bounds().Dx(), s.gopher.Bounds().Dy()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-float64(w)/2.0, -float64(h)/2.0)
	// positive tilt points the nose up, which is counterclockwise on screen
	op.GeoM.Rotate(-b.Tilt * math.Pi / 180)
	op.GeoM.Translate(float64(w)/2.0, float64(h)/2.0)
	op.GeoM.Translate(b.X, b.Y)
	if b.Gliding {
		op.ColorScale.Scale(0.8, 0.8, 0.8, 1)
	}
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(s.gopher, op)
}

// Package mask implements per-pixel occupancy masks and the offset overlap
// test used for exact sprite collisions.
package mask

import (
	"image"
	"math/bits"
)

// alphaThreshold is the minimum alpha a pixel needs to count as solid.
const alphaThreshold = 127

// Mask is a fixed-size bitmap of solid pixels. Rows are packed into 64-bit
// words, bit i of word w covering column w*64+i.
type Mask struct {
	w, h  int
	words int
	bits  []uint64
}

// New returns an empty mask of the given size.
func New(w, h int) *Mask {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	words := (w + 63) / 64
	return &Mask{w: w, h: h, words: words, bits: make([]uint64, words*h)}
}

// Rect returns a fully solid mask.
func Rect(w, h int) *Mask {
	m := New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			m.Set(x, y)
		}
	}
	return m
}

// Ellipse returns a mask with the ellipse inscribed in a w×h box set.
func Ellipse(w, h int) *Mask {
	m := New(w, h)
	rx, ry := float64(w)/2, float64(h)/2
	for y := 0; y < h; y++ {
		dy := (float64(y) + 0.5 - ry) / ry
		for x := 0; x < w; x++ {
			dx := (float64(x) + 0.5 - rx) / rx
			if dx*dx+dy*dy <= 1 {
				m.Set(x, y)
			}
		}
	}
	return m
}

// FromImage builds a mask from the alpha channel of img.
func FromImage(img image.Image) *Mask {
	b := img.Bounds()
	m := New(b.Dx(), b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			_, _, _, a := img.At(x, y).RGBA()
			if a>>8 > alphaThreshold {
				m.Set(x-b.Min.X, y-b.Min.Y)
			}
		}
	}
	return m
}

// Size returns the mask dimensions.
func (m *Mask) Size() (int, int) { return m.w, m.h }

// Set marks (x, y) as solid. Out of range coordinates are ignored.
func (m *Mask) Set(x, y int) {
	if x < 0 || y < 0 || x >= m.w || y >= m.h {
		return
	}
	m.bits[y*m.words+x/64] |= 1 << uint(x%64)
}

// Get reports whether (x, y) is solid.
func (m *Mask) Get(x, y int) bool {
	if x < 0 || y < 0 || x >= m.w || y >= m.h {
		return false
	}
	return m.bits[y*m.words+x/64]&(1<<uint(x%64)) != 0
}

// Count returns the number of solid pixels.
func (m *Mask) Count() int {
	n := 0
	for _, w := range m.bits {
		n += bits.OnesCount64(w)
	}
	return n
}

// FlipV returns a vertically mirrored copy.
func (m *Mask) FlipV() *Mask {
	out := New(m.w, m.h)
	for y := 0; y < m.h; y++ {
		copy(out.bits[(m.h-1-y)*m.words:(m.h-y)*m.words], m.bits[y*m.words:(y+1)*m.words])
	}
	return out
}

// Overlap reports whether m and other share a solid pixel when other's top
// left corner sits at (dx, dy) relative to m's top left corner. The first
// shared pixel, in m's coordinates, is returned along with the result.
func (m *Mask) Overlap(other *Mask, dx, dy int) (image.Point, bool) {
	x0, y0 := max(0, dx), max(0, dy)
	x1, y1 := min(m.w, dx+other.w), min(m.h, dy+other.h)
	if x0 >= x1 || y0 >= y1 {
		return image.Point{}, false
	}
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; {
			n := min(64-x%64, x1-x)
			a := m.bits[y*m.words+x/64] >> uint(x%64)
			if n < 64 {
				a &= 1<<uint(n) - 1
			}
			if a != 0 {
				b := other.row(y-dy, x-dx, n)
				if hit := a & b; hit != 0 {
					return image.Pt(x+bits.TrailingZeros64(hit), y), true
				}
			}
			x += n
		}
	}
	return image.Point{}, false
}

// row returns n bits of row y starting at column x, low bit first.
func (m *Mask) row(y, x, n int) uint64 {
	base := y * m.words
	i, s := x/64, uint(x%64)
	v := m.bits[base+i] >> s
	if s != 0 && i+1 < m.words {
		v |= m.bits[base+i+1] << (64 - s)
	}
	if n < 64 {
		v &= 1<<uint(n) - 1
	}
	return v
}

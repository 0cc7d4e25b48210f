package neatbird

// Base is the scrolling ground, made of two segments of equal width that
// take turns at the front.
type Base struct {
	Y     float64
	X1    float64
	X2    float64
	width float64
}

// NewBase returns a ground at height y with segments of the given width.
func NewBase(y, width float64) *Base {
	return &Base{Y: y, X1: 0, X2: width, width: width}
}

// Move scrolls both segments by v and moves any segment that left the view
// behind the other one.
func (b *Base) Move(v float64) {
	b.X1 -= v
	b.X2 -= v
	if b.X1+b.width < 0 {
		b.X1 = b.X2 + b.width
	}
	if b.X2+b.width < 0 {
		b.X2 = b.X1 + b.width
	}
}

// Width returns the segment width.
func (b *Base) Width() float64 { return b.width }

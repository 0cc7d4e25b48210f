package neatbird

import "math"

const (
	maxRotation   = 25
	rotationSpeed = 20
	minTilt       = -90
	glideTilt     = -80

	jumpVelocity         = -10.5
	halfAcceleration     = 1.5
	terminalDisplacement = 16
	liftCorrection       = 2
	// a bird keeps its nose up until it drops this far below its jump height
	tiltHoldDistance = 50
)

// Bird is the falling and jumping actor. Its motion is indexed by ticks since
// the last jump, never by wall-clock time.
type Bird struct {
	X    float64
	Y    float64
	Tilt float64

	vel    float64
	ticks  int
	height float64
}

// NewBird returns a bird at rest at (x, y).
func NewBird(x, y float64) *Bird {
	return &Bird{X: x, Y: y, height: y}
}

// Jump restarts the arc from the current height. It may be called on every
// tick.
func (b *Bird) Jump() {
	b.vel = jumpVelocity
	b.ticks = 0
	b.height = b.Y
}

// Move advances the bird by one tick and returns the applied displacement.
func (b *Bird) Move() float64 {
	b.ticks++
	d := Displacement(b.vel, b.ticks)
	b.Y += d

	if d < 0 || b.Y < b.height+tiltHoldDistance {
		if b.Tilt < maxRotation {
			b.Tilt = maxRotation
		}
	} else {
		b.Tilt = math.Max(b.Tilt-rotationSpeed, minTilt)
	}
	return d
}

// Gliding reports whether the bird is diving steeply enough to stop flapping.
func (b *Bird) Gliding() bool { return b.Tilt <= glideTilt }

// Displacement is the vertical move t ticks after a jump with initial
// velocity vel: constant acceleration capped at the terminal displacement,
// with upward moves made slightly sharper.
func Displacement(vel float64, t int) float64 {
	ft := float64(t)
	d := vel*ft + halfAcceleration*ft*ft
	if d >= terminalDisplacement {
		d = terminalDisplacement
	}
	if d < 0 {
		d -= liftCorrection
	}
	return d
}

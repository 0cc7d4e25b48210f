package neatbird

import "testing"

func TestDisplacementAfterJump(t *testing.T) {
	for _, tc := range []struct {
		ticks int
		want  float64
	}{
		{1, -11},
		{2, -17},
		{3, -20},
		{4, -20},
		{5, -17},
		{6, -11},
		{7, 0},
		{8, 12},
		{9, 16},
		{40, 16},
	} {
		if got := Displacement(jumpVelocity, tc.ticks); got != tc.want {
			t.Errorf("d(%d) = %v, want %v", tc.ticks, got, tc.want)
		}
	}
}

func TestBirdJumpArc(t *testing.T) {
	b := NewBird(230, 350)
	b.Jump()
	y := []float64{339, 322, 302, 282, 265, 254, 254, 266, 282}
	for i, want := range y {
		b.Move()
		if b.Y != want {
			t.Fatalf("tick %d: y = %v, want %v", i+1, b.Y, want)
		}
	}
}

func TestBirdFreeFall(t *testing.T) {
	b := NewBird(0, 0)
	for i, want := range []float64{1.5, 7.5, 21, 37, 53} {
		b.Move()
		if b.Y != want {
			t.Fatalf("tick %d: y = %v, want %v", i+1, b.Y, want)
		}
	}
}

func TestBirdTiltBounds(t *testing.T) {
	b := NewBird(230, 350)
	b.Jump()
	for i := 0; i < 200; i++ {
		if i%37 == 0 {
			b.Jump()
		}
		b.Move()
		if b.Tilt < minTilt || b.Tilt > maxRotation {
			t.Fatalf("tick %d: tilt %v out of [%d, %d]", i, b.Tilt, minTilt, maxRotation)
		}
	}

	b = NewBird(0, 0)
	b.Jump()
	b.Move()
	if b.Tilt != maxRotation {
		t.Errorf("rising bird tilt = %v, want %d", b.Tilt, maxRotation)
	}
	for i := 0; i < 30; i++ {
		b.Move()
	}
	if b.Tilt != minTilt {
		t.Errorf("diving bird tilt = %v, want %d", b.Tilt, minTilt)
	}
	if !b.Gliding() {
		t.Error("diving bird should glide")
	}
}

func TestJumpEveryTick(t *testing.T) {
	b := NewBird(0, 500)
	for i := 0; i < 5; i++ {
		b.Jump()
		b.Move()
	}
	if b.Y != 500-5*11 {
		t.Errorf("y = %v, want %v", b.Y, 500-5*11)
	}
}

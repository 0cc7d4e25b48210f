package neatbird

// Renderer consumes a snapshot once per tick. It must not retain the slices
// beyond the call unless it copies them; the episode never reads them back.
type Renderer interface {
	Render(Snapshot)
}

// BirdState is the drawable state of a live bird.
type BirdState struct {
	X, Y    float64
	Tilt    float64
	Gliding bool
}

// PipeState is the drawable state of a pipe.
type PipeState struct {
	X         float64
	Width     float64
	GapTop    float64
	GapBottom float64
}

// Snapshot is the read-only view of an episode after a tick.
type Snapshot struct {
	Generation int
	Tick       int
	Score      int
	Birds      []BirdState
	Pipes      []PipeState
	Ground     [2]float64
	GroundY    float64
	Terminated bool
}

// Alive returns the number of live birds.
func (s Snapshot) Alive() int { return len(s.Birds) }

package neatbird

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/kpacha/neatbird/config"
)

const (
	survivalReward   = 0.1
	passReward       = 5
	collisionPenalty = 1
)

// State is the episode lifecycle state.
type State int

const (
	Running State = iota
	Terminated
)

func (s State) String() string {
	if s == Terminated {
		return "terminated"
	}
	return "running"
}

// Cause tells why a bird left the episode.
type Cause int

const (
	Flying Cause = iota
	HitPipe
	HitGround
	FlewAway
	Stopped
)

var causeNames = [...]string{"flying", "pipe", "ground", "ceiling", "stopped"}

func (c Cause) String() string {
	if int(c) < len(causeNames) {
		return causeNames[c]
	}
	return "unknown"
}

// Agent pairs an identifier with the decider that controls one bird.
type Agent struct {
	ID      int64
	Decider Decider
}

// Result is the final account of one agent.
type Result struct {
	ID      int64
	Fitness float64
	Ticks   int
	Cause   Cause
}

// Summary is the outcome of an episode.
type Summary struct {
	Generation int
	Ticks      int
	Score      int
	Stopped    bool
	Results    []Result
}

// agent is the unit of removal: a bird, its decider and its fitness.
type agent struct {
	id      int64
	bird    *Bird
	decider Decider
	fitness float64
	ticks   int
	cause   Cause
}

// Episode evaluates a cohort of agents on one run of the game. It is not safe
// for concurrent use; independent episodes share nothing.
type Episode struct {
	Renderer Renderer

	cfg        config.Config
	sprites    *Sprites
	rand       *rand.Rand
	generation int

	agents []*agent // every agent, in the order given
	live   []*agent // live subset, same relative order
	pipes  []*Pipe
	base   *Base

	tick    int
	score   int
	state   State
	stopped bool

	// StopScore ends the episode once the score reaches it; 0 disables it.
	StopScore int
}

// NewEpisode spawns one bird per agent at the configured start point, the
// first pipe and the ground. A nil sprites uses DefaultSprites.
func NewEpisode(cfg config.Config, generation int, agents []Agent, sprites *Sprites, r *rand.Rand) *Episode {
	if sprites == nil {
		sprites = DefaultSprites(cfg)
	}
	e := &Episode{
		cfg:        cfg,
		sprites:    sprites,
		rand:       r,
		generation: generation,
		agents:     make([]*agent, len(agents)),
		live:       make([]*agent, len(agents)),
		base:       NewBase(cfg.World.GroundY, cfg.World.GroundWidth),
	}
	for i, a := range agents {
		e.agents[i] = &agent{id: a.ID, bird: NewBird(cfg.Bird.X, cfg.Bird.Y), decider: a.Decider}
		e.live[i] = e.agents[i]
	}
	e.pipes = []*Pipe{SpawnPipe(cfg.Pipe.SpawnX, cfg.Pipe, r)}
	return e
}

// State returns the lifecycle state.
func (e *Episode) State() State { return e.state }

// Tick returns the number of completed ticks.
func (e *Episode) Tick() int { return e.tick }

// Score returns the number of pipes passed.
func (e *Episode) Score() int { return e.score }

// Alive returns the number of live birds.
func (e *Episode) Alive() int { return len(e.live) }

// Pipes returns the live pipes, front to back. Callers may reposition them
// between ticks.
func (e *Episode) Pipes() []*Pipe { return e.pipes }

// Birds returns the live birds in agent order.
func (e *Episode) Birds() []*Bird {
	out := make([]*Bird, len(e.live))
	for i, a := range e.live {
		out[i] = a.bird
	}
	return out
}

// Base returns the ground.
func (e *Episode) Base() *Base { return e.base }

// Step runs one tick and reports whether the episode is still running. The
// context is the external stop signal: once it is done the episode ends
// without touching the accumulated fitness.
func (e *Episode) Step(ctx context.Context) bool {
	if e.state == Terminated {
		return false
	}
	if ctx.Err() != nil || e.limitReached() {
		e.stopped = true
		e.terminate()
		return false
	}
	if len(e.live) == 0 {
		e.terminate()
		return false
	}
	e.tick++

	observed := e.observedPipe()
	for _, a := range e.live {
		a.bird.Move()
		a.ticks++
		a.fitness += survivalReward
		obs := Observation{
			Y:      a.bird.Y,
			Top:    math.Abs(a.bird.Y - observed.GapTop),
			Bottom: math.Abs(a.bird.Y - observed.GapBottom),
		}
		if shouldJump(a.decider.Decide(obs)) {
			a.bird.Jump()
		}
	}

	addPipe := false
	var rem []*Pipe
	for _, p := range e.pipes {
		var hit []*agent
		for _, a := range e.live {
			if p.Collide(a.bird, e.sprites) {
				a.fitness -= collisionPenalty
				a.cause = HitPipe
				hit = append(hit, a)
			}
			if !p.Passed && p.X < a.bird.X {
				p.Passed = true
				addPipe = true
			}
		}
		e.retire(hit)
		if p.OffScreen() {
			rem = append(rem, p)
		}
		p.Move(e.cfg.World.Velocity)
	}

	if addPipe {
		e.score++
		for _, a := range e.live {
			a.fitness += passReward
		}
		e.pipes = append(e.pipes, SpawnPipe(e.cfg.Pipe.SpawnX, e.cfg.Pipe, e.rand))
	}
	e.removePipes(rem)

	var out []*agent
	for _, a := range e.live {
		switch {
		case a.bird.Y+float64(e.cfg.Bird.Height) > e.cfg.World.GroundY:
			a.cause = HitGround
		case a.bird.Y < 0:
			a.cause = FlewAway
		default:
			continue
		}
		out = append(out, a)
	}
	e.retire(out)

	e.base.Move(e.cfg.World.Velocity)
	e.publish()
	return true
}

// Run steps the episode until it terminates. With a positive tick rate it
// waits for the next tick between steps.
func (e *Episode) Run(ctx context.Context) Summary {
	var next <-chan time.Time
	if tps := e.cfg.Window.TicksPerSecond; tps > 0 {
		ticker := time.NewTicker(time.Second / time.Duration(tps))
		defer ticker.Stop()
		next = ticker.C
	}
	for e.Step(ctx) {
		if next == nil {
			continue
		}
		select {
		case <-ctx.Done():
		case <-next:
		}
	}
	return e.Summary()
}

// Summary returns the current account of the episode. After termination it
// is final.
func (e *Episode) Summary() Summary {
	s := Summary{
		Generation: e.generation,
		Ticks:      e.tick,
		Score:      e.score,
		Stopped:    e.stopped,
		Results:    make([]Result, len(e.agents)),
	}
	for i, a := range e.agents {
		s.Results[i] = Result{ID: a.id, Fitness: a.fitness, Ticks: a.ticks, Cause: a.cause}
	}
	return s
}

// Snapshot returns the drawable state.
func (e *Episode) Snapshot() Snapshot {
	s := Snapshot{
		Generation: e.generation,
		Tick:       e.tick,
		Score:      e.score,
		Birds:      make([]BirdState, len(e.live)),
		Pipes:      make([]PipeState, len(e.pipes)),
		Ground:     [2]float64{e.base.X1, e.base.X2},
		GroundY:    e.base.Y,
		Terminated: e.state == Terminated,
	}
	for i, a := range e.live {
		s.Birds[i] = BirdState{X: a.bird.X, Y: a.bird.Y, Tilt: a.bird.Tilt, Gliding: a.bird.Gliding()}
	}
	for i, p := range e.pipes {
		s.Pipes[i] = PipeState{X: p.X, Width: p.Width(), GapTop: p.GapTop, GapBottom: p.GapBottom}
	}
	return s
}

func (e *Episode) publish() {
	if e.Renderer != nil {
		e.Renderer.Render(e.Snapshot())
	}
}

func (e *Episode) terminate() {
	e.state = Terminated
	if e.stopped {
		for _, a := range e.live {
			a.cause = Stopped
		}
	}
	e.publish()
}

func (e *Episode) limitReached() bool {
	if e.cfg.World.MaxTicks > 0 && e.tick >= e.cfg.World.MaxTicks {
		return true
	}
	return e.StopScore > 0 && e.score >= e.StopScore
}

// observedPipe is the first pipe, or the second one once the birds have
// cleared the first. All birds share the same x.
func (e *Episode) observedPipe() *Pipe {
	if len(e.pipes) == 0 {
		e.pipes = append(e.pipes, SpawnPipe(e.cfg.Pipe.SpawnX, e.cfg.Pipe, e.rand))
	}
	first := e.pipes[0]
	if len(e.pipes) > 1 && e.live[0].bird.X > first.X+first.Width() {
		return e.pipes[1]
	}
	return first
}

// retire drops the given agents from the live set in one pass.
func (e *Episode) retire(dead []*agent) {
	if len(dead) == 0 {
		return
	}
	gone := make(map[*agent]bool, len(dead))
	for _, a := range dead {
		gone[a] = true
	}
	live := e.live[:0]
	for _, a := range e.live {
		if !gone[a] {
			live = append(live, a)
		}
	}
	for i := len(live); i < len(e.live); i++ {
		e.live[i] = nil
	}
	e.live = live
}

func (e *Episode) removePipes(rem []*Pipe) {
	if len(rem) == 0 {
		return
	}
	pipes := e.pipes[:0]
	for _, p := range e.pipes {
		drop := false
		for _, r := range rem {
			if p == r {
				drop = true
				break
			}
		}
		if !drop {
			pipes = append(pipes, p)
		}
	}
	e.pipes = pipes
}

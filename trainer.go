package neatbird

import (
	"context"
	"log"
	"math/rand"
	"time"

	"github.com/klokare/evo"

	"github.com/kpacha/neatbird/config"
)

// soloScoreLimit ends solo evaluations when no other limit is configured.
const soloScoreLimit = 100

// GenerationReport sums up one evaluated generation.
type GenerationReport struct {
	Generation  int     `csv:"generation" json:"generation"`
	Population  int     `csv:"population" json:"population"`
	Score       int     `csv:"score" json:"score"`
	Ticks       int     `csv:"ticks" json:"ticks"`
	BestID      int64   `csv:"best_id" json:"best_id"`
	BestFitness float64 `csv:"best_fitness" json:"best_fitness"`
	MeanFitness float64 `csv:"mean_fitness" json:"mean_fitness"`
	Stopped     bool    `csv:"stopped" json:"stopped"`
	DurationMS  int64   `csv:"duration_ms" json:"duration_ms"`
}

// NewGenerationReport builds the report of a finished episode.
func NewGenerationReport(s Summary, elapsed time.Duration) GenerationReport {
	r := GenerationReport{
		Generation: s.Generation,
		Population: len(s.Results),
		Score:      s.Score,
		Ticks:      s.Ticks,
		Stopped:    s.Stopped,
		DurationMS: elapsed.Milliseconds(),
	}
	if len(s.Results) == 0 {
		return r
	}
	total := 0.0
	for i, res := range s.Results {
		total += res.Fitness
		if i == 0 || res.Fitness > r.BestFitness {
			r.BestFitness = res.Fitness
			r.BestID = res.ID
		}
	}
	r.MeanFitness = total / float64(len(s.Results))
	return r
}

// GenerationListener is notified after every generation.
type GenerationListener func(GenerationReport) error

// Trainer drives one episode per generation. It implements evo.Searcher so
// a whole population shares a single run of the game.
type Trainer struct {
	Config    config.Config
	Sprites   *Sprites
	Renderer  Renderer
	Listeners []GenerationListener

	// stop is the external stop signal; evo's searcher API has no context.
	stop       context.Context
	rand       *rand.Rand
	generation int
}

// NewTrainer returns a trainer whose episodes end when ctx is done.
func NewTrainer(ctx context.Context, cfg config.Config, r *rand.Rand) *Trainer {
	t := &Trainer{
		Config: cfg,
		stop:   ctx,
		rand:   r,
	}
	log.Printf("Trainer created with %d generations and a pipe gap of %.0f", cfg.Training.Generations, cfg.Pipe.Gap)
	return t
}

// Generation returns the number of generations run so far.
func (t *Trainer) Generation() int { return t.generation }

// RunGeneration evaluates the agents in a new episode and notifies the
// listeners.
func (t *Trainer) RunGeneration(agents []Agent) Summary {
	t.generation++
	ep := NewEpisode(t.Config, t.generation, agents, t.Sprites, t.rand)
	ep.Renderer = t.Renderer
	ep.StopScore = t.Config.Training.SolvedScore

	start := time.Now()
	s := ep.Run(t.stop)
	report := NewGenerationReport(s, time.Since(start))
	log.Printf("generation %d: score %d, ticks %d, best %d (%.1f), mean %.2f, stopped %t",
		report.Generation, report.Score, report.Ticks, report.BestID, report.BestFitness, report.MeanFitness, report.Stopped)

	for _, l := range t.Listeners {
		if err := l(report); err != nil {
			log.Println("generation listener:", err.Error())
		}
	}
	return s
}

// Search evaluates all the phenomes together in one episode. The evaluator
// is not used: fitness comes from the shared run.
func (t *Trainer) Search(_ evo.Evaluator, phenomes []evo.Phenome) ([]evo.Result, error) {
	agents := make([]Agent, len(phenomes))
	for i, p := range phenomes {
		agents[i] = Agent{ID: p.ID, Decider: PhenomeDecider{Phenome: p}}
	}
	s := t.RunGeneration(agents)
	return toResults(s, t.Config.Training.SolvedScore), nil
}

// Evaluator scores a single phenome in a solo, unpaced episode. Solo
// episodes share nothing, so it can run under a ParallelSearcher.
type Evaluator struct {
	Config  config.Config
	Sprites *Sprites
	// Seed draws the pipes of every solo episode; 0 seeds each one from the
	// clock.
	Seed int64
}

// Evaluate runs the phenome until its bird dies or the score limit is met.
func (e Evaluator) Evaluate(p evo.Phenome) (evo.Result, error) {
	cfg := e.Config
	cfg.Window.TicksPerSecond = 0
	limit := cfg.Training.SolvedScore
	if limit <= 0 && cfg.World.MaxTicks <= 0 {
		limit = soloScoreLimit
	}
	agents := []Agent{{ID: p.ID, Decider: PhenomeDecider{Phenome: p}}}
	ep := NewEpisode(cfg, 0, agents, e.Sprites, NewRand(e.Seed))
	ep.StopScore = limit

	s := ep.Run(context.Background())
	return toResults(s, limit)[0], nil
}

// toResults converts an episode summary into evo results. evo expects
// non-negative fitness, so early collisions are floored at zero.
func toResults(s Summary, solvedScore int) []evo.Result {
	solved := solvedScore > 0 && s.Score >= solvedScore
	results := make([]evo.Result, len(s.Results))
	for i, r := range s.Results {
		f := r.Fitness
		if f < 0 {
			f = 0
		}
		results[i] = evo.Result{
			ID:      r.ID,
			Fitness: f,
			Solved:  solved && r.Cause == Stopped,
		}
	}
	return results
}

// NewRand returns a generator seeded with seed, or with the clock if seed
// is zero.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// ShowBest logs the leading genome of the population next to the mean
// fitness. It is an evo listener.
func ShowBest(pop evo.Population) error {
	best, ok := bestGenome(pop)
	if !ok {
		return nil
	}
	mean := 0.0
	for _, g := range pop.Genomes {
		mean += g.Fitness
	}
	mean /= float64(len(pop.Genomes))
	log.Printf("population %d: best %d (species %d, fitness %.2f, solved %t, complexity %d), mean %.2f",
		pop.Generation, best.ID, best.Species, best.Fitness, best.Solved, best.Complexity(), mean)
	return nil
}

// bestGenome ranks a copy of the genomes, leaving the population order to
// the other listeners.
func bestGenome(pop evo.Population) (evo.Genome, bool) {
	if len(pop.Genomes) == 0 {
		return evo.Genome{}, false
	}
	genomes := make([]evo.Genome, len(pop.Genomes))
	copy(genomes, pop.Genomes)
	evo.SortBy(genomes, evo.BySolved, evo.ByFitness, evo.ByComplexity, evo.ByAge)
	return genomes[len(genomes)-1], true
}

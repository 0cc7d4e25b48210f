package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/klokare/evo"
	evoconfig "github.com/klokare/evo/config"
	"github.com/klokare/evo/config/source"
	"github.com/klokare/evo/neat"

	"github.com/kpacha/neatbird"
	"github.com/kpacha/neatbird/bolt"
	"github.com/kpacha/neatbird/config"
	"github.com/kpacha/neatbird/screen"
)

func main() {
	// Parse the command-line flags
	var (
		iter     = flag.Int("iterations", 0, "number of generations, 0 takes it from the game config")
		cpath    = flag.String("config", "neatbird.json", "path to the NEAT configuration file")
		gpath    = flag.String("game", "", "path to a YAML file overriding the game defaults")
		dbpath   = flag.String("db", "neatbird.db", "path to the history database")
		headless = flag.Bool("headless", false, "train without a window and without pacing")
		tpath    = flag.String("traces", "", "imitate the decisions recorded in this trace log instead of playing")
		solo     = flag.Bool("solo", false, "fly every genome in its own episode, in parallel and without a window")
	)
	flag.Parse()

	// the window only follows the shared episode of the trainer
	windowed := !*headless && !*solo && *tpath == ""

	cfg, err := config.Load(*gpath)
	if err != nil {
		log.Fatal(err.Error())
	}
	if *iter > 0 {
		cfg.Training.Generations = *iter
	}
	if !windowed {
		cfg.Window.TicksPerSecond = 0
	}

	client, err := bolt.New(*dbpath)
	if err != nil {
		log.Fatal(err.Error())
	}
	defer client.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	trainer, evaluator := newTraining(ctx, cfg)
	history, err := bolt.NewHistory(client, bolt.Run{
		Started:     time.Now(),
		Seed:        cfg.World.Seed,
		Generations: cfg.Training.Generations,
	})
	if err != nil {
		log.Fatal(err.Error())
	}
	trainer.Listeners = append(trainer.Listeners, history.Store)

	src, err := source.NewJSONFromFile(*cpath)
	if err != nil {
		log.Fatalf("%+v\n", err)
	}
	c := evoconfig.Configurer{Source: source.Multi([]evoconfig.Source{
		source.Flag{},        // Check flags  first
		source.Environment{}, // Then check environment variables
		src,                  // Lastly, consult the configuration file
	})}
	exp := neat.NewExperiment(c)
	// by default the whole population flies in one episode per generation
	var eval evo.Evaluator = evaluator
	exp.Searcher = trainer
	switch {
	case *tpath != "":
		eval = loadTraceEvaluator(*tpath)
		exp.Searcher = neatbird.ParallelSearcher{}
	case *solo:
		exp.Searcher = neatbird.ParallelSearcher{}
	}
	exp.AddSubscription(evo.Subscription{Event: evo.Completed, Callback: neatbird.ShowBest})
	exp.AddSubscription(evo.Subscription{Event: evo.Evaluated, Callback: neatbird.ShowBest})

	// Run the experiment for a set number of iterations
	ctx, fn, cb := evo.WithIterations(ctx, cfg.Training.Generations)
	defer fn() // ensure the context cancels
	exp.AddSubscription(evo.Subscription{Event: evo.Evaluated, Callback: cb})

	// Stop the experiment if there is a solution
	ctx, fn, cb = evo.WithSolution(ctx)
	defer fn() // ensure the context cancels
	exp.AddSubscription(evo.Subscription{Event: evo.Evaluated, Callback: cb})

	train := func() error {
		_, err := evo.Run(ctx, exp, eval)
		return err
	}

	if !windowed {
		if err := train(); err != nil {
			log.Fatalf("%+v\n", err)
		}
		return
	}
	if err := runWindow(cancel, cfg, trainer, train); err != nil {
		log.Fatal(err.Error())
	}
}

// newTraining returns the shared-episode trainer and the solo evaluator.
// Both collide with the sprite the window draws, so a genome scores the same
// with or without a window.
func newTraining(ctx context.Context, cfg config.Config) (*neatbird.Trainer, neatbird.Evaluator) {
	sprites := screen.Sprites(cfg)
	trainer := neatbird.NewTrainer(ctx, cfg, neatbird.NewRand(cfg.World.Seed))
	trainer.Sprites = sprites
	return trainer, neatbird.Evaluator{Config: cfg, Sprites: sprites, Seed: cfg.World.Seed}
}

func loadTraceEvaluator(path string) neatbird.TraceEvaluator {
	file, err := os.Open(path)
	if err != nil {
		log.Fatal("reading the training data:", err.Error())
	}
	defer file.Close()

	traces, err := neatbird.LoadTraces(file)
	if err != nil {
		log.Fatal("reading the training data:", err.Error())
	}
	log.Printf("imitating %d recorded decisions from %s", len(traces), path)
	return neatbird.TraceEvaluator{Traces: traces}
}

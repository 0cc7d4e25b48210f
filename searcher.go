package neatbird

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/klokare/evo"
)

// ParallelSearcher evaluates phenomes concurrently on a fixed number of
// workers. It suits evaluators that share no state, such as TraceEvaluator
// or the solo Evaluator.
type ParallelSearcher struct {
	// Workers bounds the concurrent evaluations; 0 uses one per CPU.
	Workers int
}

// Search evaluates every phenome and returns the results in phenome order.
// Failed evaluations are left out and their errors joined.
func (s ParallelSearcher) Search(eval evo.Evaluator, phenomes []evo.Phenome) ([]evo.Result, error) {
	workers := s.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(phenomes) {
		workers = len(phenomes)
	}

	results := make([]evo.Result, len(phenomes))
	errs := make([]error, len(phenomes))
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				r, err := eval.Evaluate(phenomes[i])
				if err != nil {
					errs[i] = fmt.Errorf("phenome %d: %w", phenomes[i].ID, err)
					continue
				}
				results[i] = r
			}
		}()
	}
	for i := range phenomes {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	out := results[:0]
	for i, r := range results {
		if errs[i] == nil {
			out = append(out, r)
		}
	}
	return out, errors.Join(errs...)
}

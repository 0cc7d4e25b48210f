package neatbird

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math"

	"github.com/klokare/evo"
	"gonum.org/v1/gonum/mat"
)

// ErrNoTraces is returned when a trace log holds no decisions.
var ErrNoTraces = errors.New("no training data")

// LoadTraces reads the JSON lines written by a TraceDecider.
func LoadTraces(r io.Reader) ([]Trace, error) {
	decoder := json.NewDecoder(r)
	var samples []Trace
	for {
		var data Trace
		err := decoder.Decode(&data)
		if err == io.EOF {
			break
		}
		if err != nil {
			return samples, fmt.Errorf("decoding trace %d: %w", len(samples)+1, err)
		}
		samples = append(samples, data)
	}
	if len(samples) == 0 {
		return nil, ErrNoTraces
	}
	return samples, nil
}

// TraceEvaluator scores a phenome by how many recorded decisions it
// reproduces, so a population can imitate a human player before flying on
// its own.
type TraceEvaluator struct {
	Traces []Trace
}

// Evaluate activates the phenome with every recorded observation in one
// batch.
func (e TraceEvaluator) Evaluate(p evo.Phenome) (evo.Result, error) {
	if len(e.Traces) == 0 {
		return evo.Result{}, ErrNoTraces
	}

	input := make([]float64, 0, 3*len(e.Traces))
	for _, sample := range e.Traces {
		input = append(input, sample.In.Inputs()...)
	}
	outputs, err := p.Activate(mat.NewDense(len(e.Traces), 3, input))
	if err != nil {
		return evo.Result{}, fmt.Errorf("activating phenome %d: %w", p.ID, err)
	}

	oks := 0
	for i, sample := range e.Traces {
		if sample.Jump == shouldJump(outputs.At(i, 0)) {
			oks++
		}
	}

	solved := oks > 9999*len(e.Traces)/10000
	log.Printf("phenome: %06d, oks: [%d/%d] solved: %v", p.ID, oks, len(e.Traces), solved)

	return evo.Result{
		ID:      p.ID,
		Fitness: math.Pow(float64(oks), 2),
		Solved:  solved,
	}, nil
}

package neatbird

import (
	"encoding/json"
	"io"
	"log"

	"github.com/klokare/evo"
	"gonum.org/v1/gonum/mat"
)

// jumpThreshold is the signal a decider has to exceed to make its bird jump.
const jumpThreshold = 0.5

// Observation is what a bird sees on every tick: its height and its vertical
// distances to the edges of the gap it is heading for.
type Observation struct {
	Y      float64 `json:"y"`
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
}

// Inputs returns the observation as a network input vector.
func (o Observation) Inputs() []float64 {
	return []float64{o.Y, o.Top, o.Bottom}
}

// Decider maps an observation to a jump signal.
type Decider interface {
	Decide(Observation) float64
}

// DeciderFunc adapts a plain function to a Decider.
type DeciderFunc func(Observation) float64

// Decide calls f.
func (f DeciderFunc) Decide(o Observation) float64 { return f(o) }

// shouldJump is false for NaN signals.
func shouldJump(signal float64) bool { return signal > jumpThreshold }

// PhenomeDecider activates an evo phenome with a single-row input matrix.
type PhenomeDecider struct {
	Phenome evo.Phenome
}

// Decide returns the first output of the network, or 0 if the activation
// fails.
func (d PhenomeDecider) Decide(o Observation) float64 {
	in := o.Inputs()
	outputs, err := d.Phenome.Activate(mat.NewDense(1, len(in), in))
	if err != nil {
		return 0
	}
	if rcv, ok := outputs.(mat.RawColViewer); ok {
		if col := rcv.RawColView(0); len(col) > 0 {
			return col[0]
		}
		return 0
	}
	return outputs.At(0, 0)
}

// Trace is one recorded decision.
type Trace struct {
	In     Observation `json:"in"`
	Signal float64     `json:"signal"`
	Jump   bool        `json:"jump"`
}

// TraceDecider records every decision of the wrapped decider as a JSON line.
type TraceDecider struct {
	Decider Decider
	Out     io.Writer
}

// Decide delegates to the wrapped decider and logs the result.
func (t TraceDecider) Decide(o Observation) float64 {
	signal := t.Decider.Decide(o)
	data := Trace{In: o, Signal: signal, Jump: shouldJump(signal)}
	if err := json.NewEncoder(t.Out).Encode(data); err != nil {
		log.Println("error logging the decision:", err.Error())
	}
	return signal
}

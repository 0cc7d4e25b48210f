package neatbird

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"
)

func TestTraceDeciderRecordsDecisions(t *testing.T) {
	buf := new(bytes.Buffer)
	d := TraceDecider{Decider: hover, Out: buf}
	if got := d.Decide(Observation{Y: 420, Top: 1, Bottom: 2}); got != 1 {
		t.Errorf("signal = %v, want 1", got)
	}
	d.Decide(Observation{Y: 300})

	traces, err := LoadTraces(buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(traces) != 2 {
		t.Fatalf("got %d traces, want 2", len(traces))
	}
	if !traces[0].Jump || traces[0].In.Top != 1 || traces[1].Jump {
		t.Errorf("unexpected traces %+v", traces)
	}
}

func TestLoadTracesErrors(t *testing.T) {
	if _, err := LoadTraces(strings.NewReader("")); !errors.Is(err, ErrNoTraces) {
		t.Errorf("empty log: %v", err)
	}
	if _, err := LoadTraces(strings.NewReader(`{"in":{"y":1}}` + "\n{oops")); err == nil {
		t.Error("expected a decoding error")
	}
}

func TestShouldJump(t *testing.T) {
	for _, tc := range []struct {
		signal float64
		want   bool
	}{
		{0, false},
		{0.5, false},
		{0.51, true},
		{math.NaN(), false},
		{math.Inf(1), true},
		{math.Inf(-1), false},
	} {
		if got := shouldJump(tc.signal); got != tc.want {
			t.Errorf("shouldJump(%v) = %v, want %v", tc.signal, got, tc.want)
		}
	}
}

package bolt

import (
	"bytes"
	"encoding/gob"
	"log"
	"time"

	"github.com/kpacha/neatbird"
)

// Run describes one training session.
type Run struct {
	ID          uint64
	Started     time.Time
	Seed        int64
	Generations int
	Population  int
}

// History records generation reports of one run. Keys are the big-endian
// run id followed by the big-endian generation number, so a bucket scan
// returns them in order.
type History struct {
	Client *Client
	Run    uint64
}

// NewHistory registers a new run and returns its history.
func NewHistory(c *Client, run Run) (*History, error) {
	id, err := c.NextSequence(RunBucket)
	if err != nil {
		return nil, err
	}
	run.ID = id
	if err := c.Update(RunBucket, itob(id), run); err != nil {
		return nil, err
	}
	log.Printf("recording run %d into the history", id)
	return &History{Client: c, Run: id}, nil
}

// Store is a neatbird.GenerationListener persisting every report.
func (h *History) Store(r neatbird.GenerationReport) error {
	return h.Client.Update(GenerationBucket, h.key(r.Generation), r)
}

// List returns the reports of the run ordered by generation.
func (h *History) List() ([]neatbird.GenerationReport, error) {
	prefix := itob(h.Run)
	var out []neatbird.GenerationReport
	err := h.Client.ForEach(GenerationBucket, func(k, v []byte) error {
		if !bytes.HasPrefix(k, prefix) {
			return nil
		}
		var r neatbird.GenerationReport
		if err := gob.NewDecoder(bytes.NewReader(v)).Decode(&r); err != nil {
			return err
		}
		out = append(out, r)
		return nil
	})
	return out, err
}

// Best returns the report with the highest best fitness.
func (h *History) Best() (neatbird.GenerationReport, error) {
	reports, err := h.List()
	if err != nil {
		return neatbird.GenerationReport{}, err
	}
	if len(reports) == 0 {
		return neatbird.GenerationReport{}, ErrNotFound
	}
	best := reports[0]
	for _, r := range reports[1:] {
		if r.BestFitness > best.BestFitness {
			best = r
		}
	}
	return best, nil
}

func (h *History) key(generation int) []byte {
	return append(itob(h.Run), itob(uint64(generation))...)
}

// Runs returns every recorded run ordered by id.
func (c *Client) Runs() ([]Run, error) {
	var out []Run
	err := c.ForEach(RunBucket, func(k, v []byte) error {
		var r Run
		if err := gob.NewDecoder(bytes.NewReader(v)).Decode(&r); err != nil {
			return err
		}
		if r.ID == 0 {
			r.ID = btoi(k)
		}
		out = append(out, r)
		return nil
	})
	return out, err
}

// Package report exports generation history as CSV and as a chart.
package report

import (
	"errors"
	"fmt"
	"image/color"
	"io"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/kpacha/neatbird"
)

// ErrEmpty is returned when there is nothing to plot.
var ErrEmpty = errors.New("no generations to report")

// WriteCSV writes one row per generation with a header line.
func WriteCSV(w io.Writer, reports []neatbird.GenerationReport) error {
	if err := gocsv.Marshal(reports, w); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}
	return nil
}

// ReadCSV parses the output of WriteCSV.
func ReadCSV(r io.Reader) ([]neatbird.GenerationReport, error) {
	var out []neatbird.GenerationReport
	if err := gocsv.Unmarshal(r, &out); err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}
	return out, nil
}

// Plot saves a chart of best fitness, mean fitness and score per
// generation. The image format follows the file extension.
func Plot(path string, reports []neatbird.GenerationReport) error {
	p, err := NewPlot(reports)
	if err != nil {
		return err
	}
	if err := p.Save(8*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("saving plot: %w", err)
	}
	return nil
}

// NewPlot builds the chart without saving it.
func NewPlot(reports []neatbird.GenerationReport) (*plot.Plot, error) {
	if len(reports) == 0 {
		return nil, ErrEmpty
	}
	best := make(plotter.XYs, len(reports))
	mean := make(plotter.XYs, len(reports))
	score := make(plotter.XYs, len(reports))
	for i, r := range reports {
		x := float64(r.Generation)
		best[i] = plotter.XY{X: x, Y: r.BestFitness}
		mean[i] = plotter.XY{X: x, Y: r.MeanFitness}
		score[i] = plotter.XY{X: x, Y: float64(r.Score)}
	}

	p := plot.New()
	p.Title.Text = "Fitness per generation"
	p.X.Label.Text = "generation"
	p.Y.Label.Text = "fitness"
	p.Legend.Top = true

	for _, s := range []struct {
		name string
		xys  plotter.XYs
		c    color.Color
	}{
		{"best", best, color.RGBA{R: 0xd0, G: 0x30, B: 0x30, A: 0xff}},
		{"mean", mean, color.RGBA{R: 0x30, G: 0x60, B: 0xd0, A: 0xff}},
		{"score", score, color.RGBA{R: 0x30, G: 0xa0, B: 0x40, A: 0xff}},
	} {
		line, err := plotter.NewLine(s.xys)
		if err != nil {
			return nil, fmt.Errorf("%s line: %w", s.name, err)
		}
		line.Color = s.c
		p.Add(line)
		p.Legend.Add(s.name, line)
	}
	p.Add(plotter.NewGrid())
	return p, nil
}

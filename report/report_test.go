package report

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/kpacha/neatbird"
)

var history = []neatbird.GenerationReport{
	{Generation: 1, Population: 20, Score: 0, Ticks: 40, BestID: 3, BestFitness: 4.1, MeanFitness: 2.5},
	{Generation: 2, Population: 20, Score: 1, Ticks: 110, BestID: 31, BestFitness: 16, MeanFitness: 5.25, Stopped: true, DurationMS: 12},
}

func TestCSV(t *testing.T) {
	buf := new(bytes.Buffer)
	if err := WriteCSV(buf, history); err != nil {
		t.Fatal(err)
	}
	header := strings.SplitN(buf.String(), "\n", 2)[0]
	if header != "generation,population,score,ticks,best_id,best_fitness,mean_fitness,stopped,duration_ms" {
		t.Errorf("unexpected header %q", header)
	}
	got, err := ReadCSV(buf)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, history) {
		t.Errorf("read back %+v", got)
	}
}

func TestPlot(t *testing.T) {
	if _, err := NewPlot(nil); !errors.Is(err, ErrEmpty) {
		t.Errorf("unexpected error: %v", err)
	}
	path := filepath.Join(t.TempDir(), "fitness.png")
	if err := Plot(path, history); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Error("empty chart")
	}
}

package main

import (
	"flag"
	"log"
	"os"

	"github.com/kpacha/neatbird/bolt"
	"github.com/kpacha/neatbird/report"
)

func main() {
	var (
		dbpath = flag.String("db", "neatbird.db", "path to the history database")
		run    = flag.Uint64("run", 0, "run to report, 0 picks the latest")
		csv    = flag.String("csv", "-", "CSV output path, - for stdout, empty to skip")
		chart  = flag.String("plot", "", "chart output path (.png, .svg, .pdf), empty to skip")
	)
	flag.Parse()

	client, err := bolt.New(*dbpath)
	if err != nil {
		log.Fatal(err.Error())
	}
	defer client.Close()

	id := *run
	if id == 0 {
		runs, err := client.Runs()
		if err != nil {
			log.Fatal(err.Error())
		}
		if len(runs) == 0 {
			log.Fatal("no runs recorded in ", *dbpath)
		}
		id = runs[len(runs)-1].ID
	}

	history := &bolt.History{Client: client, Run: id}
	reports, err := history.List()
	if err != nil {
		log.Fatal(err.Error())
	}
	log.Printf("run %d: %d generations", id, len(reports))
	if best, err := history.Best(); err == nil {
		log.Printf("best: generation %d, agent %d, fitness %.1f, score %d", best.Generation, best.BestID, best.BestFitness, best.Score)
	}

	switch *csv {
	case "":
	case "-":
		if err := report.WriteCSV(os.Stdout, reports); err != nil {
			log.Fatal(err.Error())
		}
	default:
		file, err := os.Create(*csv)
		if err != nil {
			log.Fatal(err.Error())
		}
		if err := report.WriteCSV(file, reports); err != nil {
			log.Fatal(err.Error())
		}
		if err := file.Close(); err != nil {
			log.Fatal(err.Error())
		}
	}

	if *chart != "" {
		if err := report.Plot(*chart, reports); err != nil {
			log.Fatal(err.Error())
		}
	}
}

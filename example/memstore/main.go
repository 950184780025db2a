package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	motormon "github.com/Mckzne/Motor-Monitoring-and-Fault-Classification-using-ML"
	"github.com/Mckzne/Motor-Monitoring-and-Fault-Classification-using-ML/internal/adapters/observability"
	"github.com/Mckzne/Motor-Monitoring-and-Fault-Classification-using-ML/internal/analytics"
	"github.com/Mckzne/Motor-Monitoring-and-Fault-Classification-using-ML/internal/app/pipeline"
	"github.com/Mckzne/Motor-Monitoring-and-Fault-Classification-using-ML/internal/corpus"
	"github.com/Mckzne/Motor-Monitoring-and-Fault-Classification-using-ML/internal/report"
	"github.com/Mckzne/Motor-Monitoring-and-Fault-Classification-using-ML/internal/synth"
)

// End-to-end demo without Postgres or CSV files: a tiny in-memory corpus,
// the in-memory store, a fast appender, and the aggregation pipeline.
func main() {
	c := corpus.New(
		&corpus.Table{Name: "NORMAL_OP.csv", Rows: [][]float64{
			{1.1, 1.2, 48.0, 3.4, 40.1, 39.8, 40.5, 11.9},
			{1.0, 1.3, 48.2, 3.3, 40.0, 39.9, 40.4, 12.0},
		}},
		&corpus.Table{Name: "HB1_OVER_TEMP.csv", Rows: [][]float64{
			{2.7, 2.9, 47.1, 6.0, 88.2, 41.0, 40.9, 11.2},
		}},
	)

	store := motormon.NewMemoryStore()
	syn := synth.New(rand.NewSource(7))
	obs := observability.Nop{}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	count, err := pipeline.RunAppender(ctx, c, syn, store, 100*time.Millisecond, obs)
	if err != nil {
		log.Fatalf("appender: %v", err)
	}
	fmt.Printf("streamed %d samples\n\n", count)

	snapshot, err := store.QueryDescending(context.Background())
	if err != nil {
		log.Fatalf("query: %v", err)
	}

	for _, fc := range analytics.FaultFrequency(snapshot) {
		fmt.Printf("%-16s %d\n", fc.Label, fc.Count)
	}
	fmt.Println()

	doc := report.Compile(snapshot, time.Now())
	fmt.Print(string(doc.RenderText()))
}

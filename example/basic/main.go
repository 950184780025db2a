package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	motormon "github.com/Mckzne/Motor-Monitoring-and-Fault-Classification-using-ML"
)

// Runs both roles against the configured Postgres store: the generator
// streams synthetic verdicts while the dashboard API serves analytics.
func main() {
	cfg, err := motormon.LoadConfig("../../data/config.yaml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	rt, err := motormon.NewRuntime(cfg)
	if err != nil {
		log.Fatalf("runtime: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		count, err := rt.RunGenerator(ctx)
		if err != nil {
			log.Printf("generator exited: %v", err)
			return
		}
		log.Printf("generator done, %d samples sent", count)
	}()

	if err := rt.RunDashboard(ctx); err != nil && err != context.Canceled {
		log.Fatalf("dashboard exited: %v", err)
	}
}

package observability

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/Mckzne/Motor-Monitoring-and-Fault-Classification-using-ML/internal/ports"
)

func TestPromObsMetrics(t *testing.T) {
	obs := NewPromObs(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)), prometheus.NewRegistry())

	obs.IncCounter("pmsm_samples_appended_total", 5)
	if got := testutil.ToFloat64(obs.counters["pmsm_samples_appended_total"]); got != 5 {
		t.Fatalf("expected appended counter 5, got %f", got)
	}

	obs.IncCounter("pmsm_cache_hits_total", 2)
	if got := testutil.ToFloat64(obs.counters["pmsm_cache_hits_total"]); got != 2 {
		t.Fatalf("expected cache hit counter 2, got %f", got)
	}

	obs.SetGauge("pmsm_snapshot_size", 42)
	if got := testutil.ToFloat64(obs.gauges["pmsm_snapshot_size"]); got != 42 {
		t.Fatalf("expected snapshot gauge 42, got %f", got)
	}

	obs.ObserveLatency("pmsm_store_query_latency_seconds", 0.5)
	hCollector := obs.histos["pmsm_store_query_latency_seconds"].(prometheus.Collector)
	if samples := testutil.CollectAndCount(hCollector); samples != 1 {
		t.Fatalf("expected latency histogram to record 1 sample, got %d", samples)
	}

	// Unknown metric names are ignored, not a panic.
	obs.IncCounter("pmsm_bogus_total", 1)
	obs.SetGauge("pmsm_bogus", 1)
	obs.ObserveLatency("pmsm_bogus_seconds", 1)
}

func TestPromObsLogsFields(t *testing.T) {
	var buf bytes.Buffer
	obs := NewPromObs(slog.New(slog.NewTextHandler(&buf, nil)), prometheus.NewRegistry())

	obs.LogInfo("sample_pushed", ports.Field{Key: "source_file", Value: "NORMAL_OP.csv"})
	out := buf.String()
	if !strings.Contains(out, "sample_pushed") || !strings.Contains(out, "NORMAL_OP.csv") {
		t.Fatalf("expected structured log line, got %q", out)
	}
}

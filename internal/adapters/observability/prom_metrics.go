package observability

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Mckzne/Motor-Monitoring-and-Fault-Classification-using-ML/internal/ports"
)

// PromObs backs the Observability port with Prometheus metrics and slog.
type PromObs struct {
	log      *slog.Logger
	counters map[string]prometheus.Counter
	gauges   map[string]prometheus.Gauge
	histos   map[string]prometheus.Observer
}

// NewPromObs registers the pipeline's metrics. A nil registerer means the
// default registry; a nil logger means slog.Default().
func NewPromObs(logger *slog.Logger, reg prometheus.Registerer) *PromObs {
	if logger == nil {
		logger = slog.Default()
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	appended := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pmsm_samples_appended_total",
		Help: "Verdicts successfully submitted to the store.",
	})
	appendFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pmsm_append_failures_total",
		Help: "Verdict submissions rejected by the store.",
	})
	queries := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pmsm_store_queries_total",
		Help: "Full descending reads issued against the store.",
	})
	queryFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pmsm_query_failures_total",
		Help: "Store reads that surfaced as data-unavailable.",
	})
	cacheHits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pmsm_cache_hits_total",
		Help: "FetchAll calls served from the TTL cache without a store read.",
	})
	reports := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pmsm_reports_compiled_total",
		Help: "Summary report documents compiled.",
	})
	snapshotSize := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "pmsm_snapshot_size",
		Help: "Verdict count in the most recent cached snapshot.",
	})
	queryLatency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "pmsm_store_query_latency_seconds",
		Help:    "Latency of full descending store reads.",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
	})
	appendLatency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "pmsm_store_append_latency_seconds",
		Help:    "Latency of single verdict appends.",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
	})

	reg.MustRegister(appended, appendFailures, queries, queryFailures, cacheHits, reports, snapshotSize, queryLatency, appendLatency)

	return &PromObs{
		log: logger,
		counters: map[string]prometheus.Counter{
			"pmsm_samples_appended_total": appended,
			"pmsm_append_failures_total":  appendFailures,
			"pmsm_store_queries_total":    queries,
			"pmsm_query_failures_total":   queryFailures,
			"pmsm_cache_hits_total":       cacheHits,
			"pmsm_reports_compiled_total": reports,
		},
		gauges: map[string]prometheus.Gauge{
			"pmsm_snapshot_size": snapshotSize,
		},
		histos: map[string]prometheus.Observer{
			"pmsm_store_query_latency_seconds":  queryLatency,
			"pmsm_store_append_latency_seconds": appendLatency,
		},
	}
}

func (p *PromObs) LogInfo(msg string, fields ...ports.Field) {
	p.log.Info(msg, attrs(fields)...)
}

func (p *PromObs) LogError(msg string, err error, fields ...ports.Field) {
	p.log.Error(msg, append(attrs(fields), slog.Any("error", err))...)
}

func (p *PromObs) LogCritical(msg string, err error, fields ...ports.Field) {
	p.log.Error(msg, append(attrs(fields), slog.Any("error", err), slog.Bool("critical", true))...)
}

func (p *PromObs) IncCounter(name string, v float64) {
	if c, ok := p.counters[name]; ok {
		c.Add(v)
	}
}

func (p *PromObs) ObserveLatency(name string, seconds float64) {
	if h, ok := p.histos[name]; ok {
		h.Observe(seconds)
	}
}

func (p *PromObs) SetGauge(name string, v float64) {
	if g, ok := p.gauges[name]; ok {
		g.Set(v)
	}
}

func attrs(fields []ports.Field) []any {
	out := make([]any, 0, len(fields)+1)
	for _, f := range fields {
		out = append(out, slog.Any(f.Key, f.Value))
	}
	return out
}

// Nop satisfies the Observability port while doing nothing. Used by tests
// and one-shot commands that have no metrics endpoint.
type Nop struct{}

func (Nop) LogInfo(string, ...ports.Field)            {}
func (Nop) LogError(string, error, ...ports.Field)    {}
func (Nop) LogCritical(string, error, ...ports.Field) {}
func (Nop) IncCounter(string, float64)                {}
func (Nop) ObserveLatency(string, float64)            {}
func (Nop) SetGauge(string, float64)                  {}

var (
	_ ports.Observability = (*PromObs)(nil)
	_ ports.Observability = Nop{}
)

package motormon

import (
	"github.com/Mckzne/Motor-Monitoring-and-Fault-Classification-using-ML/internal/app/config"
	"github.com/Mckzne/Motor-Monitoring-and-Fault-Classification-using-ML/internal/domain"
	"github.com/Mckzne/Motor-Monitoring-and-Fault-Classification-using-ML/internal/ports"
)

// Config re-exports the root configuration struct so downstream projects
// can construct or modify it programmatically.
type Config = config.Config

type (
	// CorpusConfig names the reference datasets and their directory.
	CorpusConfig = config.CorpusConfig
	// StoreConfig configures the shared verdict store.
	StoreConfig = config.StoreConfig
	// GeneratorConfig sets the appender cadence.
	GeneratorConfig = config.GeneratorConfig
	// DashboardConfig sets the read-side addr, refresh cadence, and TTL.
	DashboardConfig = config.DashboardConfig
	// MetricsConfig configures the metrics HTTP server.
	MetricsConfig = config.MetricsConfig
	// Duration is the YAML-friendly duration used across config sections.
	Duration = config.Duration

	// Verdict is one persisted labeled sensor sample.
	Verdict = domain.Verdict
	// VerdictStore is the append-only store consumed by both runtimes.
	VerdictStore = ports.VerdictStore
	// Observability is the logging/metrics backend contract.
	Observability = ports.Observability
	// Field is one structured log attribute.
	Field = ports.Field
)

// LoadConfig loads YAML from disk using the internal config reader.
func LoadConfig(path string) (*Config, error) {
	return config.Load(path)
}

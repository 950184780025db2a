package motormon

import (
	"math/rand"

	base "github.com/Mckzne/Motor-Monitoring-and-Fault-Classification-using-ML/pkg/motormon"
)

// Type aliases so consumers can import the module root directly.
type (
	Config          = base.Config
	CorpusConfig    = base.CorpusConfig
	StoreConfig     = base.StoreConfig
	GeneratorConfig = base.GeneratorConfig
	DashboardConfig = base.DashboardConfig
	MetricsConfig   = base.MetricsConfig
	Duration        = base.Duration
	Verdict         = base.Verdict
	VerdictStore    = base.VerdictStore
	Observability   = base.Observability
	Field           = base.Field
	Runtime         = base.Runtime
	Option          = base.Option
)

// Config helpers.
func LoadConfig(path string) (*Config, error) {
	return base.LoadConfig(path)
}

// Runtime and options.
func NewRuntime(cfg *Config, opts ...Option) (*Runtime, error) {
	return base.NewRuntime(cfg, opts...)
}

func WithStore(s VerdictStore) Option {
	return base.WithStore(s)
}

func WithObservability(obs Observability) Option {
	return base.WithObservability(obs)
}

func WithRandSource(src rand.Source) Option {
	return base.WithRandSource(src)
}

// NewMemoryStore returns an in-process store for demos and tests.
func NewMemoryStore() VerdictStore {
	return base.NewMemoryStore()
}

package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Mckzne/Motor-Monitoring-and-Fault-Classification-using-ML/internal/corpus"
)

// Duration accepts "60s"-style strings (or raw nanosecond integers) in
// YAML, which time.Duration alone does not.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", s, err)
		}
		*d = Duration(parsed)
		return nil
	}
	var n int64
	if err := value.Decode(&n); err != nil {
		return err
	}
	*d = Duration(n)
	return nil
}

func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d Duration) String() string { return time.Duration(d).String() }

type Config struct {
	Corpus    CorpusConfig    `yaml:"corpus"`
	Store     StoreConfig     `yaml:"store"`
	Generator GeneratorConfig `yaml:"generator"`
	Dashboard DashboardConfig `yaml:"dashboard"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

type CorpusConfig struct {
	Dir   string   `yaml:"dir"`
	Files []string `yaml:"files"`
}

type StoreConfig struct {
	ConnString string `yaml:"conn_string"`
	Table      string `yaml:"table"`
}

type GeneratorConfig struct {
	// Interval is the pause between submitted samples.
	Interval Duration `yaml:"interval"`
}

type DashboardConfig struct {
	Addr string `yaml:"addr"`
	// RefreshInterval is the cadence of the external refresh trigger and is
	// advertised to API consumers; CacheTTL must exceed it or every poll
	// turns into a live store read.
	RefreshInterval Duration `yaml:"refresh_interval"`
	CacheTTL        Duration `yaml:"cache_ttl"`
	LiveFeedLimit   int      `yaml:"live_feed_limit"`
	ConfidenceBins  int      `yaml:"confidence_bins"`
}

type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Corpus.Dir == "" {
		c.Corpus.Dir = "."
	}
	if len(c.Corpus.Files) == 0 {
		c.Corpus.Files = append([]string(nil), corpus.DefaultFiles...)
	}
	if c.Store.Table == "" {
		c.Store.Table = "verdicts"
	}
	if c.Generator.Interval == 0 {
		c.Generator.Interval = Duration(time.Minute)
	}
	if c.Dashboard.Addr == "" {
		c.Dashboard.Addr = ":8080"
	}
	if c.Dashboard.RefreshInterval == 0 {
		c.Dashboard.RefreshInterval = Duration(5 * time.Second)
	}
	if c.Dashboard.CacheTTL == 0 {
		c.Dashboard.CacheTTL = Duration(10 * time.Second)
	}
	if c.Dashboard.LiveFeedLimit == 0 {
		c.Dashboard.LiveFeedLimit = 15
	}
	if c.Dashboard.ConfidenceBins == 0 {
		c.Dashboard.ConfidenceBins = 20
	}
	if c.Metrics.Addr == "" {
		c.Metrics.Addr = ":9100"
	}
}

func (c *Config) validate() error {
	if c.Store.ConnString == "" {
		return fmt.Errorf("store.conn_string is required")
	}
	if c.Generator.Interval <= 0 {
		return fmt.Errorf("generator.interval must be positive")
	}
	if c.Dashboard.CacheTTL <= c.Dashboard.RefreshInterval {
		return fmt.Errorf("dashboard.cache_ttl (%s) must exceed dashboard.refresh_interval (%s)",
			c.Dashboard.CacheTTL, c.Dashboard.RefreshInterval)
	}
	if c.Dashboard.ConfidenceBins < 0 {
		return fmt.Errorf("dashboard.confidence_bins must not be negative")
	}
	return nil
}

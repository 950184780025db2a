package motormon

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"sync"
	"time"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Mckzne/Motor-Monitoring-and-Fault-Classification-using-ML/internal/adapters/observability"
	"github.com/Mckzne/Motor-Monitoring-and-Fault-Classification-using-ML/internal/adapters/store"
	"github.com/Mckzne/Motor-Monitoring-and-Fault-Classification-using-ML/internal/app/pipeline"
	"github.com/Mckzne/Motor-Monitoring-and-Fault-Classification-using-ML/internal/app/server"
	"github.com/Mckzne/Motor-Monitoring-and-Fault-Classification-using-ML/internal/corpus"
	"github.com/Mckzne/Motor-Monitoring-and-Fault-Classification-using-ML/internal/domain"
	"github.com/Mckzne/Motor-Monitoring-and-Fault-Classification-using-ML/internal/ports"
	"github.com/Mckzne/Motor-Monitoring-and-Fault-Classification-using-ML/internal/query"
	"github.com/Mckzne/Motor-Monitoring-and-Fault-Classification-using-ML/internal/report"
	"github.com/Mckzne/Motor-Monitoring-and-Fault-Classification-using-ML/internal/synth"
)

// NewMemoryStore returns an in-process store implementing VerdictStore,
// for demos and tests that should not touch Postgres.
func NewMemoryStore() VerdictStore { return store.NewMemoryStore() }

// Option customizes the dependencies used by Runtime.
type Option func(*overrides)

type overrides struct {
	store      ports.VerdictStore
	obs        ports.Observability
	randSource rand.Source
}

// WithStore injects a custom verdict store (in-memory, a different
// database, a recording fake).
func WithStore(s VerdictStore) Option {
	return func(o *overrides) { o.store = s }
}

// WithObservability plugs in a custom logging/metrics backend.
func WithObservability(obs Observability) Option {
	return func(o *overrides) { o.obs = obs }
}

// WithRandSource fixes the synthesizer's random source so sampling is
// reproducible.
func WithRandSource(src rand.Source) Option {
	return func(o *overrides) { o.randSource = src }
}

// Runtime wires the corpus → synthesizer → store pipeline on the write
// side and the cache → analytics → report pipeline on the read side. One
// Runtime can host either role, or both in a single process.
type Runtime struct {
	cfg    *Config
	obs    ports.Observability
	store  ports.VerdictStore
	synth  *synth.Synthesizer
	reader *query.CachedReader

	// mu guards the servers and db: generator and dashboard may run in the
	// same process and race on startup/shutdown otherwise.
	mu         sync.Mutex
	db         *sql.DB
	metricsSrv *http.Server
	apiSrv     *http.Server
}

// NewRuntime bootstraps the default adapters (Postgres store, Prometheus +
// slog observability, time-seeded sampling). Options override any of them.
func NewRuntime(cfg *Config, opts ...Option) (*Runtime, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	var ov overrides
	for _, opt := range opts {
		if opt != nil {
			opt(&ov)
		}
	}

	obs := ov.obs
	if obs == nil {
		obs = observability.NewPromObs(nil, nil)
	}

	var (
		db  *sql.DB
		st  ports.VerdictStore
		err error
	)
	if ov.store != nil {
		st = ov.store
	} else {
		db, err = sql.Open("postgres", cfg.Store.ConnString)
		if err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}
		st = store.NewPostgresStore(db, cfg.Store.Table)
	}

	return &Runtime{
		cfg:    cfg,
		obs:    obs,
		store:  st,
		synth:  synth.New(ov.randSource),
		reader: query.NewCachedReader(st, cfg.Dashboard.CacheTTL.Std(), obs),
		db:     db,
	}, nil
}

// Store exposes the wired verdict store.
func (r *Runtime) Store() VerdictStore { return r.store }

// RunGenerator loads the corpus and drives the appender until ctx is
// cancelled, then returns the total number of submitted samples. An
// entirely unloadable corpus is fatal; single bad files are skipped.
func (r *Runtime) RunGenerator(ctx context.Context) (int, error) {
	c, err := corpus.Load(r.cfg.Corpus.Dir, r.cfg.Corpus.Files, r.obs)
	if err != nil {
		return 0, err
	}

	r.startMetrics()
	count, err := pipeline.RunAppender(ctx, c, r.synth, r.store, r.cfg.Generator.Interval.Std(), r.obs)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return count, errors.Join(err, r.Shutdown(shutdownCtx))
}

// RunDashboard serves the read API until ctx is cancelled.
func (r *Runtime) RunDashboard(ctx context.Context) error {
	r.startMetrics()

	srv := server.New(r.reader, r.obs,
		server.WithLiveFeedLimit(r.cfg.Dashboard.LiveFeedLimit),
		server.WithConfidenceBins(r.cfg.Dashboard.ConfidenceBins),
		server.WithRefreshInterval(r.cfg.Dashboard.RefreshInterval.Std()),
	)
	apiSrv := &http.Server{
		Addr:    r.cfg.Dashboard.Addr,
		Handler: srv.Router(),
	}
	r.mu.Lock()
	r.apiSrv = apiSrv
	r.mu.Unlock()

	errCh := make(chan error, 1)
	go func() {
		if err := apiSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	r.obs.LogInfo("dashboard_listening", Field{Key: "addr", Value: r.cfg.Dashboard.Addr})

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return r.Shutdown(shutdownCtx)
}

// CompileReport fetches the current snapshot through the cache and compiles
// the summary document.
func (r *Runtime) CompileReport(ctx context.Context) (*report.Document, error) {
	snapshot, err := r.reader.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	doc := report.Compile(snapshot, time.Now())
	r.obs.IncCounter("pmsm_reports_compiled_total", 1)
	return doc, nil
}

// FetchSnapshot exposes the cached read path for embedding callers.
func (r *Runtime) FetchSnapshot(ctx context.Context) ([]*domain.Verdict, error) {
	return r.reader.FetchAll(ctx)
}

// Shutdown stops the HTTP servers and closes the store connection.
func (r *Runtime) Shutdown(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []error

	if r.apiSrv != nil {
		if err := r.apiSrv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs = append(errs, err)
		}
		r.apiSrv = nil
	}

	if r.metricsSrv != nil {
		if err := r.metricsSrv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs = append(errs, err)
		}
		r.metricsSrv = nil
	}

	if r.db != nil {
		if err := r.db.Close(); err != nil {
			errs = append(errs, err)
		}
		r.db = nil
	}

	return errors.Join(errs...)
}

func (r *Runtime) startMetrics() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.metricsSrv != nil || r.cfg.Metrics.Addr == "" {
		return
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	srv := &http.Server{
		Addr:    r.cfg.Metrics.Addr,
		Handler: mux,
	}
	r.metricsSrv = srv

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			r.obs.LogError("metrics_server_exited", err)
		}
	}()
}

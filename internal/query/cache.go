package query

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/Mckzne/Motor-Monitoring-and-Fault-Classification-using-ML/internal/domain"
	"github.com/Mckzne/Motor-Monitoring-and-Fault-Classification-using-ML/internal/ports"
)

// ErrUnavailable marks a failed store read. Callers must show "data
// unavailable", never an empty dashboard: an empty snapshot and a failed
// read are different states.
var ErrUnavailable = errors.New("verdict data unavailable")

// CachedReader serves descending-time snapshots of the store under a TTL:
// any number of pollers collapse into at most one store read per TTL
// window. Concurrent cache misses additionally collapse via singleflight.
// The returned snapshot is shared and must be treated as read-only.
type CachedReader struct {
	store ports.VerdictStore
	ttl   time.Duration
	obs   ports.Observability
	now   func() time.Time

	flight singleflight.Group

	mu         sync.RWMutex
	snapshot   []*domain.Verdict
	capturedAt time.Time
}

func NewCachedReader(store ports.VerdictStore, ttl time.Duration, obs ports.Observability) *CachedReader {
	return &CachedReader{
		store: store,
		ttl:   ttl,
		obs:   obs,
		now:   time.Now,
	}
}

// FetchAll returns the verdicts newest first, from cache while it is
// younger than the TTL, otherwise from a fresh store read.
func (r *CachedReader) FetchAll(ctx context.Context) ([]*domain.Verdict, error) {
	r.mu.RLock()
	if r.snapshot != nil && r.now().Sub(r.capturedAt) < r.ttl {
		snap := r.snapshot
		r.mu.RUnlock()
		r.obs.IncCounter("pmsm_cache_hits_total", 1)
		return snap, nil
	}
	r.mu.RUnlock()

	v, err, _ := r.flight.Do("fetch_all", func() (any, error) {
		// A waiter that lost the race may find the cache already fresh.
		r.mu.RLock()
		if r.snapshot != nil && r.now().Sub(r.capturedAt) < r.ttl {
			snap := r.snapshot
			r.mu.RUnlock()
			return snap, nil
		}
		r.mu.RUnlock()

		start := time.Now()
		verdicts, err := r.store.QueryDescending(ctx)
		if err != nil {
			r.obs.IncCounter("pmsm_query_failures_total", 1)
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		r.obs.IncCounter("pmsm_store_queries_total", 1)
		r.obs.ObserveLatency("pmsm_store_query_latency_seconds", time.Since(start).Seconds())
		r.obs.SetGauge("pmsm_snapshot_size", float64(len(verdicts)))

		r.mu.Lock()
		r.snapshot = verdicts
		r.capturedAt = r.now()
		r.mu.Unlock()
		return verdicts, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]*domain.Verdict), nil
}

// TTL reports the configured validity window.
func (r *CachedReader) TTL() time.Duration { return r.ttl }

package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Mckzne/Motor-Monitoring-and-Fault-Classification-using-ML/internal/domain"
	"github.com/Mckzne/Motor-Monitoring-and-Fault-Classification-using-ML/internal/ports"
)

// MemoryStore is an in-process verdict collection for tests, examples, and
// demos. It mimics the remote store's contract: server-assigned, monotonic
// non-decreasing timestamps in insertion order.
type MemoryStore struct {
	mu       sync.Mutex
	verdicts []*domain.Verdict
	now      func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: time.Now}
}

// NewMemoryStoreWithClock fixes the timestamp source for deterministic tests.
func NewMemoryStoreWithClock(now func() time.Time) *MemoryStore {
	return &MemoryStore{now: now}
}

func (m *MemoryStore) Name() string { return "memory" }

func (m *MemoryStore) Append(_ context.Context, v *domain.Verdict) (*domain.Verdict, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	stored := v.Clone()
	stored.ID = uuid.NewString()
	stored.Timestamp = m.now()
	if n := len(m.verdicts); n > 0 && stored.Timestamp.Before(m.verdicts[n-1].Timestamp) {
		stored.Timestamp = m.verdicts[n-1].Timestamp
	}
	m.verdicts = append(m.verdicts, stored)
	return stored.Clone(), nil
}

func (m *MemoryStore) QueryDescending(context.Context) ([]*domain.Verdict, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*domain.Verdict, len(m.verdicts))
	for i, v := range m.verdicts {
		out[len(m.verdicts)-1-i] = v.Clone()
	}
	return out, nil
}

func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.verdicts)
}

var _ ports.VerdictStore = (*MemoryStore)(nil)

package ports

import (
	"context"

	"github.com/Mckzne/Motor-Monitoring-and-Fault-Classification-using-ML/internal/domain"
)

// VerdictStore is the shared append-only verdict collection. There is
// exactly one writer (the generator); readers are free to poll.
type VerdictStore interface {
	// Append persists one verdict. The store assigns the timestamp (and
	// record ID) on acceptance and returns the stored copy.
	Append(ctx context.Context, v *domain.Verdict) (*domain.Verdict, error)

	// QueryDescending returns every verdict ordered newest first. An empty
	// store yields an empty slice, not an error.
	QueryDescending(ctx context.Context) ([]*domain.Verdict, error)

	Name() string
}

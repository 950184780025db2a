package store

import (
	"context"
	"testing"
	"time"

	"github.com/Mckzne/Motor-Monitoring-and-Fault-Classification-using-ML/internal/domain"
)

func TestMemoryStoreAssignsServerTimestamps(t *testing.T) {
	clock := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	st := NewMemoryStoreWithClock(func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	})

	v := &domain.Verdict{FaultLabel: "NORMAL_OP", Confidence: 0.9, SourceFile: "NORMAL_OP.csv"}

	first, err := st.Append(context.Background(), v)
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	second, err := st.Append(context.Background(), v)
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	if first.ID == "" || second.ID == "" || first.ID == second.ID {
		t.Fatalf("expected distinct store-assigned ids, got %q and %q", first.ID, second.ID)
	}
	if !second.Timestamp.After(first.Timestamp) {
		t.Fatalf("timestamps must be non-decreasing in insertion order")
	}
	if !v.Timestamp.IsZero() {
		t.Fatalf("input verdict must not be mutated")
	}
}

func TestMemoryStoreRejectsInvalidConfidence(t *testing.T) {
	st := NewMemoryStore()
	if _, err := st.Append(context.Background(), &domain.Verdict{FaultLabel: "X", Confidence: -0.1}); err == nil {
		t.Fatalf("expected rejection, confidence must never be clamped")
	}
	if st.Len() != 0 {
		t.Fatalf("rejected verdict must not be stored")
	}
}

func TestMemoryStoreQueryDescending(t *testing.T) {
	st := NewMemoryStore()
	for _, label := range []string{"a", "b", "c"} {
		if _, err := st.Append(context.Background(), &domain.Verdict{FaultLabel: label, Confidence: 0.5}); err != nil {
			t.Fatalf("append %s: %v", label, err)
		}
	}

	verdicts, err := st.QueryDescending(context.Background())
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(verdicts) != 3 {
		t.Fatalf("expected 3 verdicts, got %d", len(verdicts))
	}
	if verdicts[0].FaultLabel != "c" || verdicts[2].FaultLabel != "a" {
		t.Fatalf("expected newest first, got %s .. %s", verdicts[0].FaultLabel, verdicts[2].FaultLabel)
	}

	// Returned records are copies; mutating them must not corrupt the store.
	verdicts[0].FaultLabel = "mutated"
	again, _ := st.QueryDescending(context.Background())
	if again[0].FaultLabel != "c" {
		t.Fatalf("store leaked internal state to callers")
	}
}

func TestMemoryStoreEmptyQuery(t *testing.T) {
	st := NewMemoryStore()
	verdicts, err := st.QueryDescending(context.Background())
	if err != nil {
		t.Fatalf("empty store must not error: %v", err)
	}
	if len(verdicts) != 0 {
		t.Fatalf("expected empty snapshot, got %d", len(verdicts))
	}
}

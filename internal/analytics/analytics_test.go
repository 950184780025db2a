package analytics

import (
	"errors"
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/Mckzne/Motor-Monitoring-and-Fault-Classification-using-ML/internal/domain"
)

func verdicts(labels ...string) []*domain.Verdict {
	out := make([]*domain.Verdict, 0, len(labels))
	for i, l := range labels {
		out = append(out, &domain.Verdict{
			ID:         string(rune('a' + i)),
			FaultLabel: l,
			Confidence: 0.8,
		})
	}
	return out
}

func TestFaultFrequencyCountsEveryRecordOnce(t *testing.T) {
	snap := verdicts(
		"NORMAL_OP", "HB1_OVER_TEMP", "NORMAL_OP", "HB1_OVER_TEMP",
		"NORMAL_OP", "HB2_HIGH_SIDE_SC", "NORMAL_OP", "NORMAL_OP",
		"HB1_OVER_TEMP", "NORMAL_OP",
	)

	got := FaultFrequency(snap)
	want := []LabelCount{
		{Label: "NORMAL_OP", Count: 6},
		{Label: "HB1_OVER_TEMP", Count: 3},
		{Label: "HB2_HIGH_SIDE_SC", Count: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}

	total := 0
	for _, lc := range got {
		total += lc.Count
	}
	if total != len(snap) {
		t.Fatalf("counts sum to %d, snapshot has %d records", total, len(snap))
	}
}

func TestFaultFrequencyOrderIsDeterministic(t *testing.T) {
	// Ties break on label so repeated runs over map iteration agree.
	snap := verdicts("B", "A", "C", "A", "C", "B")
	want := []LabelCount{{"A", 2}, {"B", 2}, {"C", 2}}
	for i := 0; i < 20; i++ {
		if got := FaultFrequency(snap); !reflect.DeepEqual(got, want) {
			t.Fatalf("run %d: got %v, want %v", i, got, want)
		}
	}
}

func TestFaultFrequencyEmptySnapshot(t *testing.T) {
	if got := FaultFrequency(nil); len(got) != 0 {
		t.Fatalf("expected no buckets, got %v", got)
	}
}

func TestLocationHistogramBucketsMissingLocationAsUnknown(t *testing.T) {
	snap := []*domain.Verdict{
		{FaultLabel: "NORMAL_OP", Location: "HB1"},
		{FaultLabel: "NORMAL_OP", Location: ""},
		{FaultLabel: "NORMAL_OP", Location: ""},
	}
	got := LocationHistogram(snap)
	want := []LabelCount{{Label: domain.LocationUnknown, Count: 2}, {Label: "HB1", Count: 1}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestConfidenceDistributionBinEdges(t *testing.T) {
	snap := []*domain.Verdict{
		{Confidence: 0},    // first bin
		{Confidence: 0.05}, // second bin boundary
		{Confidence: 0.97},
		{Confidence: 1}, // must land in the last bin, not past it
	}
	bins := ConfidenceDistribution(snap, 20)
	if len(bins) != 20 {
		t.Fatalf("expected 20 bins, got %d", len(bins))
	}
	if bins[0].Count != 1 || bins[1].Count != 1 {
		t.Fatalf("low-edge placement wrong: %v %v", bins[0], bins[1])
	}
	if bins[19].Count != 2 {
		t.Fatalf("expected 0.97 and 1.0 in the last bin, got %d", bins[19].Count)
	}
	if bins[19].High != 1 {
		t.Fatalf("last bin must close at 1, got %v", bins[19].High)
	}

	total := 0
	for _, b := range bins {
		total += b.Count
	}
	if total != len(snap) {
		t.Fatalf("bins hold %d records, snapshot has %d", total, len(snap))
	}
}

func TestConfidenceDistributionDefaultsBinCount(t *testing.T) {
	if got := ConfidenceDistribution(nil, 0); len(got) != DefaultConfidenceBins {
		t.Fatalf("expected %d default bins, got %d", DefaultConfidenceBins, len(got))
	}
}

func TestSensorSeriesPreservesOrderAndSkipsGaps(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	snap := []*domain.Verdict{
		{Timestamp: base.Add(2 * time.Minute), Features: map[string]float64{"Ia": 3}},
		{Timestamp: base.Add(time.Minute), Features: map[string]float64{"Ib": 9}}, // no Ia
		{Timestamp: base, Features: map[string]float64{"Ia": 1}},
	}

	points, err := SensorSeries(snap, "Ia")
	if err != nil {
		t.Fatalf("series: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(points))
	}
	if points[0].Value != 3 || points[1].Value != 1 {
		t.Fatalf("snapshot order not preserved: %v", points)
	}
}

func TestSensorSeriesRejectsUnknownChannel(t *testing.T) {
	_, err := SensorSeries(nil, "FDD")
	if !errors.Is(err, ErrUnknownChannel) {
		t.Fatalf("expected ErrUnknownChannel, got %v", err)
	}
}

func TestSummarizeUptimeSpan(t *testing.T) {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	snap := make([]*domain.Verdict, 0, 50)
	for i := 0; i < 50; i++ {
		// Newest first, the order the store serves.
		snap = append(snap, &domain.Verdict{
			Timestamp:  base.Add(time.Duration(50-1-i) * (150 * time.Minute) / 49),
			Confidence: 0.8,
		})
	}

	s, err := Summarize(snap)
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if s.SampleCount != 50 {
		t.Fatalf("expected 50 samples, got %d", s.SampleCount)
	}
	if math.Abs(s.UptimeHours-2.5) > 1e-9 {
		t.Fatalf("expected 2.5 uptime hours, got %v", s.UptimeHours)
	}
	if math.Abs(s.MeanConfidence-0.8) > 1e-9 {
		t.Fatalf("expected mean confidence 0.8, got %v", s.MeanConfidence)
	}
}

func TestSummarizeSingleSampleHasZeroSpan(t *testing.T) {
	s, err := Summarize([]*domain.Verdict{{Timestamp: time.Now(), Confidence: 0.9}})
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if s.UptimeHours != 0 {
		t.Fatalf("single sample must span zero hours, got %v", s.UptimeHours)
	}
}

func TestSummarizeEmptySnapshot(t *testing.T) {
	_, err := Summarize(nil)
	if !errors.Is(err, ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
}

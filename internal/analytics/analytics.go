// Package analytics derives aggregate statistics from a verdict snapshot.
// Every function is pure: same snapshot, same output, no hidden state.
package analytics

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/Mckzne/Motor-Monitoring-and-Fault-Classification-using-ML/internal/domain"
)

// ErrNoData distinguishes "nothing ingested yet" from a zero statistic.
var ErrNoData = errors.New("analytics: empty snapshot")

// ErrUnknownChannel rejects series requests for channels outside the fixed
// sensor vocabulary.
var ErrUnknownChannel = errors.New("analytics: unknown sensor channel")

// DefaultConfidenceBins matches the dashboard's confidence histogram.
const DefaultConfidenceBins = 20

type LabelCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

type Bin struct {
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
	Count int     `json:"count"`
}

type Point struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
}

type Summary struct {
	SampleCount    int     `json:"sample_count"`
	MeanConfidence float64 `json:"mean_confidence"`
	UptimeHours    float64 `json:"uptime_hours"`
}

// FaultFrequency groups the snapshot by fault label. Output is ordered by
// count descending, label ascending on ties, so repeated calls over the
// same snapshot are byte-identical.
func FaultFrequency(snapshot []*domain.Verdict) []LabelCount {
	return countBy(snapshot, func(v *domain.Verdict) string { return v.FaultLabel })
}

// LocationHistogram groups by location. Verdicts without a location are a
// first-class "unknown" bucket, not an error.
func LocationHistogram(snapshot []*domain.Verdict) []LabelCount {
	return countBy(snapshot, func(v *domain.Verdict) string {
		if v.Location == "" {
			return domain.LocationUnknown
		}
		return v.Location
	})
}

// ConfidenceDistribution buckets confidences into bins equal-width bins
// over [0,1]. A confidence of exactly 1 lands in the last bin.
func ConfidenceDistribution(snapshot []*domain.Verdict, bins int) []Bin {
	if bins <= 0 {
		bins = DefaultConfidenceBins
	}
	width := 1.0 / float64(bins)
	out := make([]Bin, bins)
	for i := range out {
		out[i].Low = float64(i) * width
		out[i].High = float64(i+1) * width
	}
	out[bins-1].High = 1
	for _, v := range snapshot {
		idx := int(v.Confidence * float64(bins))
		if idx >= bins {
			idx = bins - 1
		}
		out[idx].Count++
	}
	return out
}

// SensorSeries extracts (timestamp, value) pairs for one channel,
// preserving the snapshot's order. Requesting a channel outside the fixed
// vocabulary is an input error, never a silent empty result.
func SensorSeries(snapshot []*domain.Verdict, channel string) ([]Point, error) {
	if !domain.IsSensorChannel(channel) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownChannel, channel)
	}
	points := make([]Point, 0, len(snapshot))
	for _, v := range snapshot {
		value, ok := v.Features[channel]
		if !ok {
			continue
		}
		points = append(points, Point{Timestamp: v.Timestamp, Value: value})
	}
	return points, nil
}

// Summarize computes sample count, mean confidence, and the observed
// uptime span in hours. An empty snapshot returns ErrNoData so callers
// report "unavailable" instead of a misleading zero or NaN. A single
// sample has a span of zero.
func Summarize(snapshot []*domain.Verdict) (Summary, error) {
	if len(snapshot) == 0 {
		return Summary{}, ErrNoData
	}

	var sum float64
	min, max := snapshot[0].Timestamp, snapshot[0].Timestamp
	for _, v := range snapshot {
		sum += v.Confidence
		if v.Timestamp.Before(min) {
			min = v.Timestamp
		}
		if v.Timestamp.After(max) {
			max = v.Timestamp
		}
	}

	return Summary{
		SampleCount:    len(snapshot),
		MeanConfidence: sum / float64(len(snapshot)),
		UptimeHours:    max.Sub(min).Hours(),
	}, nil
}

func countBy(snapshot []*domain.Verdict, key func(*domain.Verdict) string) []LabelCount {
	counts := make(map[string]int)
	for _, v := range snapshot {
		counts[key(v)]++
	}
	out := make([]LabelCount, 0, len(counts))
	for label, n := range counts {
		out = append(out, LabelCount{Label: label, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	return out
}

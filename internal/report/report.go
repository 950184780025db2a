package report

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/Mckzne/Motor-Monitoring-and-Fault-Classification-using-ML/internal/analytics"
	"github.com/Mckzne/Motor-Monitoring-and-Fault-Classification-using-ML/internal/domain"
)

const Title = "PMSM Fault Diagnosis Report"

// Document is the passive content contract handed to an external
// typesetting collaborator. It owns content selection and ordering only;
// layout belongs to the renderer.
type Document struct {
	Title       string    `json:"title"`
	GeneratedAt time.Time `json:"generated_at"`

	// NoData indicates an empty snapshot; the numeric fields below are
	// meaningless when it is set.
	NoData bool `json:"no_data"`

	SampleCount       int                    `json:"sample_count"`
	MeanConfidencePct float64                `json:"mean_confidence_pct"`
	UptimeHours       float64                `json:"uptime_hours"`
	FaultCounts       []analytics.LabelCount `json:"fault_counts"`
}

// Compile assembles the report content from a snapshot. generatedAt is the
// wall-clock compilation time, independent of the snapshot's own
// timestamps.
func Compile(snapshot []*domain.Verdict, generatedAt time.Time) *Document {
	doc := &Document{
		Title:       Title,
		GeneratedAt: generatedAt,
	}

	summary, err := analytics.Summarize(snapshot)
	if err != nil {
		if errors.Is(err, analytics.ErrNoData) {
			doc.NoData = true
			return doc
		}
		// Summarize only fails on empty input today; stay explicit anyway.
		doc.NoData = true
		return doc
	}

	doc.SampleCount = summary.SampleCount
	doc.MeanConfidencePct = summary.MeanConfidence * 100
	doc.UptimeHours = summary.UptimeHours
	doc.FaultCounts = analytics.FaultFrequency(snapshot)
	return doc
}

// RenderText is the built-in plain renderer, used by the CLI and the
// download endpoint. External collaborators may render the Document any
// other way.
func (d *Document) RenderText() []byte {
	var b bytes.Buffer
	fmt.Fprintln(&b, d.Title)
	fmt.Fprintf(&b, "Generated: %s\n\n", d.GeneratedAt.Format("2006-01-02 15:04:05"))

	if d.NoData {
		fmt.Fprintln(&b, "No data available.")
		return b.Bytes()
	}

	fmt.Fprintf(&b, "Total Samples Processed: %d\n", d.SampleCount)
	fmt.Fprintf(&b, "Average Confidence: %.2f%%\n", d.MeanConfidencePct)
	fmt.Fprintf(&b, "System Uptime: %.2f hours\n\n", d.UptimeHours)

	fmt.Fprintf(&b, "%-24s %s\n", "Fault", "Count")
	for _, fc := range d.FaultCounts {
		fmt.Fprintf(&b, "%-24s %d\n", fc.Label, fc.Count)
	}
	return b.Bytes()
}

// Filename names the downloadable artifact after its generation time.
func Filename(generatedAt time.Time) string {
	return fmt.Sprintf("pmsm_report_%s.txt", generatedAt.Format("20060102_150405"))
}

package domain

import (
	"fmt"
	"strings"
	"time"
)

// SensorChannels is the fixed measurement vocabulary shared by every
// verdict. The order matches the corpus CSV columns.
var SensorChannels = []string{"Ia", "Ib", "VDC", "IDC", "T1", "T2", "T3", "VD"}

// FaultIndicatorColumn is carried by the reference datasets for training
// purposes and is never emitted in a verdict.
const FaultIndicatorColumn = "FDD"

// LabelNormal marks samples drawn from the normal-operation dataset.
const LabelNormal = "NORMAL_OP"

// LocationUnknown is the histogram bucket for verdicts whose producer never
// set a location.
const LocationUnknown = "unknown"

// Verdict is one persisted labeled sensor sample. The store assigns ID and
// Timestamp on acceptance; a verdict is immutable once written.
type Verdict struct {
	ID          string             `json:"id,omitempty"`
	Timestamp   time.Time          `json:"timestamp"`
	FaultLabel  string             `json:"fault_label"`
	Location    string             `json:"location,omitempty"`
	Confidence  float64            `json:"confidence"`
	Description string             `json:"description,omitempty"`
	SourceFile  string             `json:"source_file"`
	Features    map[string]float64 `json:"features"`
}

// IsSensorChannel reports whether name belongs to the fixed channel set.
func IsSensorChannel(name string) bool {
	for _, ch := range SensorChannels {
		if ch == name {
			return true
		}
	}
	return false
}

// LabelForFile derives the fault label from a corpus file name
// ("HB1_OVER_TEMP.csv" -> "HB1_OVER_TEMP").
func LabelForFile(name string) string {
	return strings.TrimSuffix(name, ".csv")
}

// Validate rejects verdicts that would poison downstream aggregation.
// Out-of-range confidence is an error, never clamped.
func (v *Verdict) Validate() error {
	if v.FaultLabel == "" {
		return fmt.Errorf("verdict: fault_label is required")
	}
	if v.Confidence < 0 || v.Confidence > 1 {
		return fmt.Errorf("verdict: confidence %g outside [0,1]", v.Confidence)
	}
	for name := range v.Features {
		if !IsSensorChannel(name) {
			return fmt.Errorf("verdict: unknown sensor channel %q", name)
		}
	}
	return nil
}

// Clone returns a deep copy so stores can hand out records without sharing
// the features map.
func (v *Verdict) Clone() *Verdict {
	cp := *v
	if v.Features != nil {
		cp.Features = make(map[string]float64, len(v.Features))
		for k, val := range v.Features {
			cp.Features[k] = val
		}
	}
	return &cp
}

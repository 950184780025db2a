package synth

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"

	"github.com/Mckzne/Motor-Monitoring-and-Fault-Classification-using-ML/internal/corpus"
	"github.com/Mckzne/Motor-Monitoring-and-Fault-Classification-using-ML/internal/domain"
)

func testCorpus() *corpus.Corpus {
	return corpus.New(
		&corpus.Table{Name: "A.csv", Rows: [][]float64{
			{1, 2, 3, 4, 5, 6, 7, 8},
			{11, 12, 13, 14, 15, 16, 17, 18},
			{21, 22, 23, 24, 25, 26, 27, 28},
		}},
		&corpus.Table{Name: "B.csv", Rows: [][]float64{
			{31, 32, 33, 34, 35, 36, 37, 38},
			{41, 42, 43, 44, 45, 46, 47, 48},
		}},
	)
}

func TestSynthesizeProvenance(t *testing.T) {
	c := testCorpus()
	s := New(rand.NewSource(42))

	for i := 0; i < 100; i++ {
		v, err := s.Synthesize(c)
		if err != nil {
			t.Fatalf("synthesize %d: %v", i, err)
		}
		if v.SourceFile != "A.csv" && v.SourceFile != "B.csv" {
			t.Fatalf("unexpected source_file %q", v.SourceFile)
		}
		if v.FaultLabel != domain.LabelForFile(v.SourceFile) {
			t.Fatalf("label %q does not match source %q", v.FaultLabel, v.SourceFile)
		}
		if !v.Timestamp.IsZero() {
			t.Fatalf("timestamp must stay unset until the store assigns it")
		}
		if v.Confidence < 0 || v.Confidence > 1 {
			t.Fatalf("confidence %f outside [0,1]", v.Confidence)
		}

		// Every feature vector must exactly match one row of the claimed
		// dataset.
		table := c.Table(v.SourceFile)
		matched := false
		for i := range table.Rows {
			if reflect.DeepEqual(v.Features, table.Row(i)) {
				matched = true
				break
			}
		}
		if !matched {
			t.Fatalf("features %v match no row of %s", v.Features, v.SourceFile)
		}
	}
}

func TestSynthesizeDeterministicWithFixedSeed(t *testing.T) {
	c := testCorpus()
	a := New(rand.NewSource(7))
	b := New(rand.NewSource(7))

	for i := 0; i < 20; i++ {
		va, err := a.Synthesize(c)
		if err != nil {
			t.Fatalf("synthesize: %v", err)
		}
		vb, err := b.Synthesize(c)
		if err != nil {
			t.Fatalf("synthesize: %v", err)
		}
		if va.SourceFile != vb.SourceFile || !reflect.DeepEqual(va.Features, vb.Features) || va.Confidence != vb.Confidence {
			t.Fatalf("same seed produced different samples at draw %d", i)
		}
	}
}

func TestSynthesizeEmptyCorpus(t *testing.T) {
	s := New(rand.NewSource(1))
	if _, err := s.Synthesize(corpus.New()); !errors.Is(err, corpus.ErrEmptyCorpus) {
		t.Fatalf("expected ErrEmptyCorpus, got %v", err)
	}
	if _, err := s.Synthesize(nil); !errors.Is(err, corpus.ErrEmptyCorpus) {
		t.Fatalf("expected ErrEmptyCorpus for nil corpus, got %v", err)
	}
}

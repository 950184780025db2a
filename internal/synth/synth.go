package synth

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/Mckzne/Motor-Monitoring-and-Fault-Classification-using-ML/internal/corpus"
	"github.com/Mckzne/Motor-Monitoring-and-Fault-Classification-using-ML/internal/domain"
)

// Synthesizer draws labeled samples from the fault corpus. The random
// source is injectable so tests can fix the (dataset, row) sequence.
type Synthesizer struct {
	rng *rand.Rand
}

// New builds a Synthesizer. A nil source falls back to a time-seeded one.
func New(src rand.Source) *Synthesizer {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &Synthesizer{rng: rand.New(src)}
}

// Synthesize picks a dataset uniformly at random, then a row uniformly at
// random within it, and packages the row's sensor channels as a verdict.
// The timestamp stays unset; the store is the single source of temporal
// truth and assigns it at the persistence boundary.
func (s *Synthesizer) Synthesize(c *corpus.Corpus) (*domain.Verdict, error) {
	if c == nil || c.Len() == 0 {
		return nil, corpus.ErrEmptyCorpus
	}

	names := c.Names()
	name := names[s.rng.Intn(len(names))]
	table := c.Table(name)
	idx := s.rng.Intn(len(table.Rows))

	v := &domain.Verdict{
		FaultLabel:  table.Label,
		Confidence:  0.75 + 0.25*s.rng.Float64(),
		Description: fmt.Sprintf("reference row %d of %s", idx, name),
		SourceFile:  name,
		Features:    table.Row(idx),
	}
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return v, nil
}

package pipeline

import (
	"context"
	"time"

	"github.com/Mckzne/Motor-Monitoring-and-Fault-Classification-using-ML/internal/corpus"
	"github.com/Mckzne/Motor-Monitoring-and-Fault-Classification-using-ML/internal/ports"
	"github.com/Mckzne/Motor-Monitoring-and-Fault-Classification-using-ML/internal/synth"
)

// RunAppender drives the synthetic stream: one synthesized verdict is
// submitted per interval until ctx is cancelled. The store assigns
// timestamps on acceptance. A rejected append is logged and the loop moves
// on; the next cycle is the implicit retry. This is a single-writer design:
// run exactly one appender per store.
//
// The current iteration always completes before cancellation takes effect,
// so a stop mid-sleep never leaves a partially submitted record. Returns
// the number of verdicts actually accepted by the store.
func RunAppender(ctx context.Context, c *corpus.Corpus, s *synth.Synthesizer, store ports.VerdictStore, interval time.Duration, obs ports.Observability) (int, error) {
	if c == nil || c.Len() == 0 {
		return 0, corpus.ErrEmptyCorpus
	}
	if interval <= 0 {
		interval = time.Minute
	}

	obs.LogInfo("stream_started",
		ports.Field{Key: "interval", Value: interval.String()},
		ports.Field{Key: "datasets", Value: c.Len()},
		ports.Field{Key: "store", Value: store.Name()})

	count := 0
	timer := time.NewTimer(interval)
	defer timer.Stop()

	for {
		v, err := s.Synthesize(c)
		if err != nil {
			obs.LogError("synthesize_failed", err)
		} else {
			start := time.Now()
			stored, err := store.Append(ctx, v)
			if err != nil {
				obs.IncCounter("pmsm_append_failures_total", 1)
				obs.LogError("verdict_append_failed", err, ports.Field{Key: "source_file", Value: v.SourceFile})
			} else {
				count++
				obs.IncCounter("pmsm_samples_appended_total", 1)
				obs.ObserveLatency("pmsm_store_append_latency_seconds", time.Since(start).Seconds())
				obs.LogInfo("sample_pushed",
					ports.Field{Key: "n", Value: count},
					ports.Field{Key: "fault_label", Value: stored.FaultLabel},
					ports.Field{Key: "source_file", Value: stored.SourceFile},
					ports.Field{Key: "confidence", Value: stored.Confidence})
			}
		}

		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(interval)

		select {
		case <-ctx.Done():
			obs.LogInfo("stream_stopped", ports.Field{Key: "total", Value: count})
			return count, nil
		case <-timer.C:
		}
	}
}

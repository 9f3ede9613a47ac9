package engine

import (
	"time"

	"gonum.org/v1/gonum/stat"
)

// avgItemDuration returns the mean processing duration observed for a
// queue's finished tasks, falling back to a 3-minute estimate when the
// queue has no history yet.
func avgItemDuration(q *Queue) time.Duration {
	if len(q.Finished) == 0 {
		return fallbackItemDuration
	}
	samples := make([]float64, len(q.Finished))
	for i, f := range q.Finished {
		samples[i] = float64(f.Duration())
	}
	return time.Duration(stat.Mean(samples, nil))
}

// failureFraction returns the fraction of a queue's finished tasks whose
// turnaround time breached the queue's SLA. Zero if there is no history.
func failureFraction(q *Queue) float64 {
	if len(q.Finished) == 0 {
		return 0
	}
	failed := 0
	for _, f := range q.Finished {
		if f.SLAFailed(q.SLA) {
			failed++
		}
	}
	return float64(failed) / float64(len(q.Finished))
}

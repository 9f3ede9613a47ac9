package simulator

import (
	"time"

	"gonum.org/v1/gonum/stat"
)

// fallbackItemDuration is used when a queue has no finished-task history
// yet, matching the engine's fallback.
const fallbackItemDuration = 3 * time.Minute

// avgItemDuration is the mean duration of a queue's finished tasks, or the
// fallback if it has none. Grounded on the teacher's aggregate-statistics
// helpers in sim/trace/summary.go, using gonum/stat rather than a
// hand-rolled loop.
func avgItemDuration(q *Queue) time.Duration {
	if len(q.Finished) == 0 {
		return fallbackItemDuration
	}
	samples := make([]float64, len(q.Finished))
	for i, f := range q.Finished {
		samples[i] = float64(f.Duration)
	}
	return time.Duration(stat.Mean(samples, nil))
}

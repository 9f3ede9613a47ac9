package engine

import "time"

// Populate expands every agent against every queue and, within each pair,
// against every distinct priority present in the queue's pending list,
// producing one Candidate per (agent, queue, priority) combination.
//
// Compatibility in the baseline is unconditional: user-switching cost is
// already encoded in the Idle/Working transition overheads, so every
// (agent, queue) pair is populated.
func Populate(agents []*Agent, queues []*Queue, now time.Time, decisionHorizon time.Duration) []*Candidate {
	var out []*Candidate
	for _, agent := range agents {
		for _, queue := range queues {
			priorities := queue.distinctPendingPriorities()
			for _, priority := range priorities {
				transition := agent.State.TransitionTo(agent, queue, now)
				itemDuration := avgItemDuration(queue)
				cand := &Candidate{
					Agent:     agent,
					Queue:     queue,
					Priority:  priority,
					TaskCount: queue.countPending(priority),
					state:     agent.State,
					realCapacity: computeRealCapacity(
						transition.Overhead, decisionHorizon, itemDuration,
					),
				}
				out = append(out, cand)
			}
		}
	}
	return out
}

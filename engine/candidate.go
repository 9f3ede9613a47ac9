package engine

import "time"

// Candidate is a populated (agent, queue, priority) combination: one
// possible assignment the greedy selector may choose.
type Candidate struct {
	Agent     *Agent
	Queue     *Queue
	Priority  int
	TaskCount int

	state        ResourceState // agent's state at population time, cached
	realCapacity int
}

// RealCapacity returns the cached real-capacity for this candidate:
// floor((decisionHorizon - setupOverhead) / avgItemDuration), or 0 if the
// horizon doesn't even cover the setup overhead.
func (c *Candidate) RealCapacity() int { return c.realCapacity }

// RelativeCapacity is min(realCapacity/taskCount, 1). A task count of zero
// or less is considered trivially satisfied (no work left to equalize).
func (c *Candidate) RelativeCapacity() float64 {
	if c.TaskCount <= 0 {
		return 1
	}
	rel := float64(c.realCapacity) / float64(c.TaskCount)
	if rel > 1 {
		return 1
	}
	return rel
}

// Transition re-derives the overhead/command sequence this candidate would
// incur, as of now.
func (c *Candidate) Transition(now time.Time) Transition {
	return c.state.TransitionTo(c.Agent, c.Queue, now)
}

func computeRealCapacity(overhead, decisionHorizon, itemDuration time.Duration) int {
	if decisionHorizon <= overhead {
		return 0
	}
	return int((decisionHorizon - overhead) / itemDuration)
}

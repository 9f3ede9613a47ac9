package engine

import (
	"time"

	"github.com/fleetsim/fleetsim/trace"
)

// Assignment is one element of a Decide() result: an agent paired with the
// ordered abstract commands it should execute to reach its assigned queue.
type Assignment struct {
	Agent    *Agent
	Queue    *Queue
	Commands []Command
}

// Options configures a single Decide() call.
type Options struct {
	// DecisionHorizon bounds the real-capacity lookahead.
	DecisionHorizon time.Duration
	// Bias weights the SLA-failure fraction inside queue_weight.
	Bias      float64
	Overrides OverrideConfig
	// Trace, if non-nil and enabled, receives a DecisionRecord for this
	// call. Purely additive observability: Decide's return value is
	// identical whether or not a trace is attached.
	Trace *trace.SimulationTrace
}

// Decide orchestrates Populate → Redistribute → greedy selection and
// returns one Assignment per selected candidate, in selection order. It is
// a pure function of its inputs and now: Decide never mutates the agents
// or queues it's given (Candidate bookkeeping is private), and empty input
// yields empty output. The outer loop removes exactly one candidate per
// iteration, so it always terminates in at most len(Populate(...))
// iterations.
func Decide(agents []*Agent, queues []*Queue, now time.Time, opts Options) []Assignment {
	candidates := Populate(agents, queues, now, opts.DecisionHorizon)
	if len(candidates) == 0 {
		return nil
	}

	var rec *trace.DecisionRecord
	recIndex := map[*Candidate]int{}
	if opts.Trace.Enabled() {
		rec = &trace.DecisionRecord{
			Timestamp:   now,
			InputAgents: len(agents),
			InputQueues: len(queues),
		}
		for _, c := range candidates {
			recIndex[c] = len(rec.Candidates)
			rec.Candidates = append(rec.Candidates, candidateRecord(c, computeBenefit(c, opts.Bias, 0, opts.Overrides)))
		}
	}

	assignedCounts := make(map[string]int)
	var assignments []Assignment

	for len(candidates) > 0 {
		Redistribute(candidates)

		bestIdx := selectBest(candidates, opts.Bias, assignedCounts, opts.Overrides)
		best := candidates[bestIdx]

		transition := best.Transition(now)
		assignments = append(assignments, Assignment{
			Agent:    best.Agent,
			Queue:    best.Queue,
			Commands: transition.Commands,
		})
		assignedCounts[best.Queue.ID]++

		if rec != nil {
			rec.SelectionOrder = append(rec.SelectionOrder, best.Agent.ID)
			rec.Candidates[recIndex[best]].Selected = true
			rec.Assignments = append(rec.Assignments, trace.AssignmentRecord{
				AgentID:  best.Agent.ID,
				QueueID:  best.Queue.ID,
				Commands: commandNames(transition.Commands),
			})
		}

		// An agent's decision is settled once it's selected: drop every
		// other candidate belonging to it so later rounds never assign it
		// twice. Candidates for other agents at the same queue and
		// priority have their task_count reduced by what best already
		// covers, which is what lets an over-subscribed queue fall out of
		// contention once enough agents have been committed to it.
		remaining := make([]*Candidate, 0, len(candidates)-1)
		for _, c := range candidates {
			if c == best || c.Agent == best.Agent {
				continue
			}
			if c.Priority == best.Priority && c.Queue.ID == best.Queue.ID {
				c.TaskCount -= best.TaskCount
			}
			remaining = append(remaining, c)
		}
		candidates = remaining
	}

	if rec != nil {
		opts.Trace.RecordDecision(*rec)
	}

	return assignments
}

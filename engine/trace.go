package engine

import "github.com/fleetsim/fleetsim/trace"

// candidateRecord snapshots a candidate and its benefit (computed against
// assignedCount=0, i.e. its value at population time before any sibling
// has been committed) for the decision trace.
func candidateRecord(c *Candidate, b Benefit) trace.CandidateRecord {
	return trace.CandidateRecord{
		AgentID:   c.Agent.ID,
		QueueID:   c.Queue.ID,
		Priority:  c.Priority,
		TaskCount: c.TaskCount,
		Benefit:   benefitTag(b),
	}
}

func benefitTag(b Benefit) trace.BenefitTag {
	if b.Kind == BenefitInfinite {
		return trace.BenefitTag{Kind: trace.BenefitKindInfinite}
	}
	return trace.BenefitTag{Kind: trace.BenefitKindFinite, Value: b.Value}
}

func commandNames(cmds []Command) []string {
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.String()
	}
	return names
}

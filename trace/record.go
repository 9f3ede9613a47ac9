package trace

import "time"

// BenefitKind tags a recorded benefit's variant for JSON-friendliness —
// the engine's Benefit sum type doesn't marshal cleanly on its own since
// Infinite carries no meaningful Value.
type BenefitKind string

const (
	BenefitKindFinite   BenefitKind = "finite"
	BenefitKindInfinite BenefitKind = "infinite"
)

// BenefitTag is the recorded form of engine.Benefit.
type BenefitTag struct {
	Kind  BenefitKind `json:"kind"`
	Value float64     `json:"value,omitempty"`
}

// CandidateRecord captures one populated candidate as it stood when the
// candidates were populated, before the greedy loop ran, including whether
// the greedy loop ultimately picked it.
type CandidateRecord struct {
	AgentID   string     `json:"agentId"`
	QueueID   string     `json:"queueId"`
	Priority  int        `json:"priority"`
	TaskCount int        `json:"taskCount"`
	Benefit   BenefitTag `json:"benefit"`
	Selected  bool       `json:"selected"`
}

// AssignmentRecord is the final per-agent command sequence a Decide() call
// returned for one selected candidate.
type AssignmentRecord struct {
	AgentID  string   `json:"agentId"`
	QueueID  string   `json:"queueId"`
	Commands []string `json:"commands"`
}

// DecisionRecord captures a single Decide() invocation end to end: the
// input size, every populated candidate with its benefit, the order the
// greedy selector picked them in, and the final assignments.
type DecisionRecord struct {
	Timestamp      time.Time          `json:"timestamp"`
	InputAgents    int                `json:"inputAgents"`
	InputQueues    int                `json:"inputQueues"`
	Candidates     []CandidateRecord  `json:"candidates"`
	SelectionOrder []string           `json:"selectionOrder"`
	Assignments    []AssignmentRecord `json:"assignments"`
}

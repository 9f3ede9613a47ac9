// Package engine implements the decision engine: a pure function that maps
// a snapshot of agents and queues to an ordered sequence of setup commands
// per selected agent. It has no knowledge of simulated time beyond the
// instant "now" passed into it, and never mutates its inputs' identities —
// candidate bookkeeping happens on engine-private copies.
package engine

import (
	"sort"
	"time"
)

// Command is one of the abstract setup commands the engine can hand back for
// an agent to execute. Empty means "no transition required".
type Command int

const (
	CommandEmpty Command = iota
	CommandLogin
	CommandLogout
	CommandExecuteQueue
)

func (c Command) String() string {
	switch c {
	case CommandLogin:
		return "Login"
	case CommandLogout:
		return "Logout"
	case CommandExecuteQueue:
		return "ExecuteQueue"
	default:
		return "Empty"
	}
}

// Agent is the engine-side view of a resource. AvgLogin/AvgLogout and
// LastItemStart are properties of the agent itself, independent of which
// ResourceState variant currently classifies it.
type Agent struct {
	ID            string
	Name          string
	State         ResourceState
	AvgLogin      time.Duration
	AvgLogout     time.Duration
	LastItemStart *time.Time
}

// Task is a pending unit of work inside a queue.
type Task struct {
	ID          string
	QueueID     string
	CreatedAt   time.Time
	SLADeadline time.Time
	// Priority: lower = higher priority. Zero-value tasks (no priority
	// declared) are treated as priority 1, per the design spec's note that
	// a single priority level of 1 reproduces observed baseline behavior
	// when priorities aren't declared per task.
	Priority int
}

// EffectivePriority returns Priority, or 1 if it was left at the zero value.
func (t *Task) EffectivePriority() int {
	if t.Priority == 0 {
		return 1
	}
	return t.Priority
}

// FinishedTask is an append-only history record of a completed task.
type FinishedTask struct {
	ID      string
	QueueID string
	AgentID string
	// Loaded is when the task joined its queue (used for SLA-failure
	// detection: CompletedAt.Sub(Loaded) > the queue's SLA).
	Loaded      time.Time
	CompletedAt time.Time
	// WorkTime and AttemptWorkTime are summed to produce the task's total
	// processing duration for the real-capacity estimate.
	WorkTime        time.Duration
	AttemptWorkTime time.Duration
}

// Duration returns the task's total processing time.
func (f *FinishedTask) Duration() time.Duration {
	return f.WorkTime + f.AttemptWorkTime
}

// SLAFailed reports whether this finished task breached its queue's SLA.
func (f *FinishedTask) SLAFailed(sla time.Duration) bool {
	return f.CompletedAt.Sub(f.Loaded) > sla
}

// Queue is the engine-side view of a work queue.
type Queue struct {
	ID          string
	Name        string
	OwnerUserID string
	Pending     []*Task
	Finished    []*FinishedTask
	AvgSetup    time.Duration
	SLA         time.Duration
	Criticality int

	MinResources int
	MaxResources int
	ForceMax     bool
	MustRun      bool
}

// fallbackItemDuration is used when a queue has no finished-task history.
const fallbackItemDuration = 3 * time.Minute

// distinctPendingPriorities returns the distinct priorities present in the
// queue's pending list, ascending.
func (q *Queue) distinctPendingPriorities() []int {
	seen := map[int]bool{}
	var out []int
	for _, t := range q.Pending {
		p := t.EffectivePriority()
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	sort.Ints(out)
	return out
}

// countPending returns the number of pending tasks at exactly priority p.
func (q *Queue) countPending(p int) int {
	n := 0
	for _, t := range q.Pending {
		if t.EffectivePriority() == p {
			n++
		}
	}
	return n
}


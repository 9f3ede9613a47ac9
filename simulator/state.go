package simulator

import "time"

// AgentState is the simulator-side lifecycle state of an agent. Unlike the
// decision engine's ResourceState (a polymorphic variant carrying its own
// overhead/command behavior), this is a plain lifecycle enum: the six
// states here don't each carry distinct behavior, they're just where an
// agent currently sits between LoggedOut and Working, grounded on the
// teacher's own string-enum treatment of RequestState in sim/cluster/events.go.
type AgentState string

const (
	AgentLoggedOut      AgentState = "LOGGED_OUT"
	AgentLoggingIn      AgentState = "LOGGING_IN"
	AgentIdle           AgentState = "IDLE"
	AgentLoggingOut     AgentState = "LOGGING_OUT"
	AgentSettingUpQueue AgentState = "SETTING_UP_QUEUE"
	AgentWorking        AgentState = "WORKING"
)

// Agent is the simulator-side view of a resource (RPA bot, human, or AI
// worker). Transient states (LoggingIn, LoggingOut, SettingUpQueue) never
// receive new pending commands: Worker.invokeEngine leaves their sequence
// as it is and Worker.dispatchPending skips them.
type Agent struct {
	ID   string
	Name string

	State AgentState

	AvgLogin  time.Duration
	AvgLogout time.Duration

	CurrentUser  string // "" when not logged in
	CurrentQueue string // "" when not assigned a queue
	CurrentItem  string // "" when not holding an item

	LastItemStart time.Time // zero value means unset

	ProcessEnabled  bool
	StopRequestedAt time.Time // zero value means no stop requested

	PendingCommands []SimCommand
}

func (a *Agent) hasCurrentItem() bool { return a.CurrentItem != "" }

// Clone returns a deep copy; PendingCommands entries are themselves
// immutable value types so a shallow slice copy is sufficient for them.
func (a *Agent) Clone() *Agent {
	clone := *a
	clone.PendingCommands = append([]SimCommand(nil), a.PendingCommands...)
	return &clone
}

// Task is a single pending unit of work inside a queue.
type Task struct {
	ID        string
	QueueID   string
	CreatedAt time.Time
	SLADue    time.Time
	// Priority: lower = higher priority. Zero means "undeclared"; queues
	// that never set it behave as a single priority-1 level.
	Priority int
}

func (t *Task) Clone() *Task {
	clone := *t
	return &clone
}

// FinishedTask is an append-only completed-work record. There's no
// separate "loaded" timestamp on the simulator side; the engine-side
// adapter derives one from CompletedAt and Duration when it replays this
// history.
type FinishedTask struct {
	ID          string
	QueueID     string
	AgentID     string
	CompletedAt time.Time
	Duration    time.Duration
}

func (f *FinishedTask) Clone() *FinishedTask {
	clone := *f
	return &clone
}

// Queue is a named bucket of pending work owned by a user credential.
type Queue struct {
	ID          string
	Name        string
	OwnerUserID string

	Pending  []*Task
	Finished []*FinishedTask

	AvgSetup    time.Duration
	SLA         time.Duration
	Criticality int

	MinResources int
	MaxResources int
	ForceMax     bool
	MustRun      bool
}

func (q *Queue) Clone() *Queue {
	clone := *q
	clone.Pending = make([]*Task, len(q.Pending))
	for i, t := range q.Pending {
		clone.Pending[i] = t.Clone()
	}
	clone.Finished = make([]*FinishedTask, len(q.Finished))
	for i, f := range q.Finished {
		clone.Finished[i] = f.Clone()
	}
	return &clone
}

// removePending removes the pending task with the given id, if present, and
// returns it.
func (q *Queue) removePending(id string) *Task {
	for i, t := range q.Pending {
		if t.ID == id {
			q.Pending = append(q.Pending[:i], q.Pending[i+1:]...)
			return t
		}
	}
	return nil
}

// State is the full mutable world the live loop or a forecast clone
// operates on: every agent and every queue, keyed by id. Every pending
// task's QueueID must resolve to one of these queues.
type State struct {
	Agents []*Agent
	Queues []*Queue
}

// NewState builds a State from agent/queue slices, taking ownership of them.
func NewState(agents []*Agent, queues []*Queue) *State {
	return &State{Agents: agents, Queues: queues}
}

func (s *State) Agent(id string) *Agent {
	for _, a := range s.Agents {
		if a.ID == id {
			return a
		}
	}
	return nil
}

func (s *State) Queue(id string) *Queue {
	for _, q := range s.Queues {
		if q.ID == id {
			return q
		}
	}
	return nil
}

// ClaimedItems returns the set of item ids currently held by some agent,
// the input to the claim-and-schedule protocol.
func (s *State) ClaimedItems() map[string]bool {
	claimed := make(map[string]bool, len(s.Agents))
	for _, a := range s.Agents {
		if a.hasCurrentItem() {
			claimed[a.CurrentItem] = true
		}
	}
	return claimed
}

// AllDrained reports whether every queue has no pending work left (used by
// the live-mode termination check).
func (s *State) AllDrained() bool {
	for _, q := range s.Queues {
		if len(q.Pending) > 0 {
			return false
		}
	}
	return true
}

// Clone deep-copies every agent and queue: mutating the clone must never
// be observable in the original.
func (s *State) Clone() *State {
	agents := make([]*Agent, len(s.Agents))
	for i, a := range s.Agents {
		agents[i] = a.Clone()
	}
	queues := make([]*Queue, len(s.Queues))
	for i, q := range s.Queues {
		queues[i] = q.Clone()
	}
	return &State{Agents: agents, Queues: queues}
}

package simulator

import "time"

// AgentSnapshot is the per-agent slice of the observability snapshot.
type AgentSnapshot struct {
	Name         string `json:"name"`
	State        string `json:"state"`
	CurrentQueue string `json:"currentQueue,omitempty"`
	CurrentUser  string `json:"currentUser,omitempty"`
}

// QueueSnapshot is the per-queue slice of the observability snapshot.
type QueueSnapshot struct {
	Name      string `json:"name"`
	Pending   int    `json:"pending"`
	Completed int    `json:"completed"`
}

// Snapshot is the JSON-serializable observability view for external
// consumers: a web transport and visualization renderer are the intended
// readers, but this struct is the boundary they consume, not a dependency
// of anything in this module. The tick loop does not publish snapshots by
// itself; a caller builds one with Simulator.Snapshot whenever it wants
// one.
type Snapshot struct {
	SimulatedClock   time.Time       `json:"simulatedClock"`
	Agents           []AgentSnapshot `json:"agents"`
	Queues           []QueueSnapshot `json:"queues"`
	CompletedPerHour float64         `json:"completedPerHour"`
	UtilizationPct   float64         `json:"utilizationPct"`
	EventLog         []string        `json:"eventLog,omitempty"`
	IsFinished       bool            `json:"isFinished"`
	Error            string          `json:"error,omitempty"`
}

// recentLogLines caps how many trailing event-log lines a snapshot carries.
const recentLogLines = 20

// Snapshot builds the current observability snapshot. elapsed is the
// simulated duration since the run started, used to derive
// completed-per-hour; it must be > 0 to avoid a divide-by-zero (a fresh
// run reports 0 rather than dividing).
func (s *Simulator) Snapshot(elapsed time.Duration) Snapshot {
	snap := Snapshot{
		SimulatedClock: s.Clock.Now(),
		IsFinished:     s.isFinished,
		Error:          s.lastError,
	}

	var completed, working int
	for _, a := range s.State.Agents {
		snap.Agents = append(snap.Agents, AgentSnapshot{
			Name:         a.Name,
			State:        string(a.State),
			CurrentQueue: a.CurrentQueue,
			CurrentUser:  a.CurrentUser,
		})
		if a.State == AgentWorking {
			working++
		}
	}
	for _, q := range s.State.Queues {
		snap.Queues = append(snap.Queues, QueueSnapshot{
			Name:      q.Name,
			Pending:   len(q.Pending),
			Completed: len(q.Finished),
		})
		completed += len(q.Finished)
	}

	if elapsed > 0 {
		snap.CompletedPerHour = float64(completed) / elapsed.Hours()
	}
	if len(s.State.Agents) > 0 {
		snap.UtilizationPct = 100 * float64(working) / float64(len(s.State.Agents))
	}
	if n := len(s.eventLog); n > 0 {
		start := 0
		if n > recentLogLines {
			start = n - recentLogLines
		}
		snap.EventLog = append(snap.EventLog, s.eventLog[start:]...)
	}

	return snap
}

// LogEvent appends a human-readable line to the simulator's running event
// log, surfaced in Snapshot.EventLog. Grounded on the teacher's tick-loop
// logrus.Infof call sites, redirected here to an in-memory log the
// snapshot can publish rather than only going to stderr. The log itself
// keeps every line; only Snapshot trims it to the most recent lines.
func (s *Simulator) LogEvent(line string) {
	s.eventLog = append(s.eventLog, line)
}

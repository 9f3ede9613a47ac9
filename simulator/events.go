package simulator

import (
	"container/heap"
	"fmt"
	"sort"
	"time"

	"github.com/fleetsim/fleetsim/errs"
)

// Event is a single timestamped state transition. Apply is the sole
// mutator: it may also enqueue successor events (e.g. SetupDone schedules
// the first ItemDone for the agent it just put to work).
type Event interface {
	Timestamp() time.Time
	seq() uint64
	Apply(s *State, eq *EventQueue) error
	Clone() Event
}

// baseEvent carries the fields every variant needs: its timestamp, and a
// monotonic sequence number that breaks ties between same-timestamp events
// so batch ordering is deterministic, grounded on the teacher's
// globalEventID counter in sim/cluster/events.go.
type baseEvent struct {
	at       time.Time
	sequence uint64
}

func (e baseEvent) Timestamp() time.Time { return e.at }
func (e baseEvent) seq() uint64          { return e.sequence }

// LoginDoneEvent: agent finished logging in as user.
type LoginDoneEvent struct {
	baseEvent
	AgentID string
	User    string
}

func (e *LoginDoneEvent) Apply(s *State, eq *EventQueue) error {
	a := s.Agent(e.AgentID)
	if a == nil {
		return fmt.Errorf("%w: LoginDone names unknown agent %q", errs.ErrReferenceMissing, e.AgentID)
	}
	a.State = AgentIdle
	a.CurrentUser = e.User
	return nil
}

func (e *LoginDoneEvent) Clone() Event {
	clone := *e
	return &clone
}

// LogoutDoneEvent: agent finished logging out.
type LogoutDoneEvent struct {
	baseEvent
	AgentID string
}

func (e *LogoutDoneEvent) Apply(s *State, eq *EventQueue) error {
	a := s.Agent(e.AgentID)
	if a == nil {
		return fmt.Errorf("%w: LogoutDone names unknown agent %q", errs.ErrReferenceMissing, e.AgentID)
	}
	a.State = AgentLoggedOut
	a.CurrentUser = ""
	return nil
}

func (e *LogoutDoneEvent) Clone() Event {
	clone := *e
	return &clone
}

// SetupDoneEvent: agent finished setting up a queue and is ready to work it.
type SetupDoneEvent struct {
	baseEvent
	AgentID string
	QueueID string
}

func (e *SetupDoneEvent) Apply(s *State, eq *EventQueue) error {
	a := s.Agent(e.AgentID)
	if a == nil {
		return fmt.Errorf("%w: SetupDone names unknown agent %q", errs.ErrReferenceMissing, e.AgentID)
	}
	q := s.Queue(e.QueueID)
	if q == nil {
		return fmt.Errorf("%w: SetupDone names unknown queue %q", errs.ErrReferenceMissing, e.QueueID)
	}
	a.State = AgentWorking
	a.ProcessEnabled = true
	a.CurrentQueue = q.ID
	claimAndSchedule(a, q, e.Timestamp(), s, eq)
	return nil
}

func (e *SetupDoneEvent) Clone() Event {
	clone := *e
	return &clone
}

// ItemDoneEvent: agent finished processing a single item of a queue.
type ItemDoneEvent struct {
	baseEvent
	AgentID string
	ItemID  string
	QueueID string
}

func (e *ItemDoneEvent) Apply(s *State, eq *EventQueue) error {
	a := s.Agent(e.AgentID)
	if a == nil {
		return fmt.Errorf("%w: ItemDone names unknown agent %q", errs.ErrReferenceMissing, e.AgentID)
	}
	q := s.Queue(e.QueueID)
	if q == nil {
		return fmt.Errorf("%w: ItemDone names unknown queue %q", errs.ErrReferenceMissing, e.QueueID)
	}

	q.removePending(e.ItemID)
	q.Finished = append(q.Finished, &FinishedTask{
		ID:          e.ItemID,
		QueueID:     q.ID,
		AgentID:     a.ID,
		CompletedAt: e.Timestamp(),
		Duration:    e.Timestamp().Sub(a.LastItemStart),
	})
	a.CurrentItem = ""
	a.LastItemStart = time.Time{}

	if a.ProcessEnabled && len(q.Pending) > 0 && a.StopRequestedAt.IsZero() {
		claimAndSchedule(a, q, e.Timestamp(), s, eq)
	} else {
		a.State = AgentIdle
		a.ProcessEnabled = false
		a.StopRequestedAt = time.Time{}
	}
	return nil
}

func (e *ItemDoneEvent) Clone() Event {
	clone := *e
	return &clone
}

// claimAndSchedule prevents two agents finishing setup or an item in the
// same batch from claiming the same pending item.
func claimAndSchedule(a *Agent, q *Queue, now time.Time, s *State, eq *EventQueue) {
	claimed := s.ClaimedItems()

	var chosen *Task
	for _, t := range q.Pending {
		if !claimed[t.ID] {
			chosen = t
			break
		}
	}

	if chosen == nil {
		a.State = AgentIdle
		a.ProcessEnabled = false
		return
	}

	a.CurrentItem = chosen.ID
	a.LastItemStart = now
	eq.Schedule(&ItemDoneEvent{
		baseEvent: eq.newBase(now.Add(avgItemDuration(q))),
		AgentID:   a.ID,
		ItemID:    chosen.ID,
		QueueID:   q.ID,
	})
}

// EventQueue is a time-ordered multimap: schedule is O(log n); popBatch
// removes and returns every event sharing the earliest timestamp, in
// insertion order within that batch. Grounded on the teacher's
// container/heap-backed EventHeap (sim/cluster/event_heap.go), generalized
// to time.Time timestamps and batch (not single-event) retrieval.
type EventQueue struct {
	h       eventHeap
	nextSeq uint64
	// floor is the timestamp of the most recently popped batch. Scheduling
	// an event earlier than floor would let the tick loop apply something
	// out of order — a programming bug, not recoverable input, so Schedule
	// panics rather than returning an error (mirroring the teacher's own
	// clock-monotonicity assertion in sim/cluster/simulator.go).
	floor time.Time
}

// NewEventQueue returns an empty queue.
func NewEventQueue() *EventQueue {
	eq := &EventQueue{}
	heap.Init(&eq.h)
	return eq
}

// newBase stamps a new event with the next sequence number, used by every
// event constructor in this package (command dispatch, claimAndSchedule) so
// every scheduled event gets a deterministic tie-break key.
func (eq *EventQueue) newBase(at time.Time) baseEvent {
	eq.nextSeq++
	return baseEvent{at: at, sequence: eq.nextSeq}
}

// Schedule adds an event to the queue.
func (eq *EventQueue) Schedule(e Event) {
	if e.Timestamp().Before(eq.floor) {
		panic(fmt.Errorf("%w: scheduled %T at %s, earlier than already-applied floor %s",
			errs.ErrEventOrdering, e, e.Timestamp(), eq.floor))
	}
	heap.Push(&eq.h, e)
}

// NextTimestamp returns the earliest pending timestamp, or false if empty.
func (eq *EventQueue) NextTimestamp() (time.Time, bool) {
	if eq.h.Len() == 0 {
		return time.Time{}, false
	}
	return eq.h.events[0].Timestamp(), true
}

// PopBatch removes and returns every event sharing the earliest timestamp.
// Calling it on an empty queue is a programmer error.
func (eq *EventQueue) PopBatch() ([]Event, error) {
	if eq.h.Len() == 0 {
		return nil, errs.ErrBatchMissing
	}
	earliest := eq.h.events[0].Timestamp()
	var batch []Event
	for eq.h.Len() > 0 && eq.h.events[0].Timestamp().Equal(earliest) {
		batch = append(batch, heap.Pop(&eq.h).(Event))
	}
	eq.floor = earliest
	// The heap only orders by (timestamp, seq); within an identical
	// timestamp, sort by seq to guarantee insertion order.
	sort.Slice(batch, func(i, j int) bool { return batch[i].seq() < batch[j].seq() })
	return batch, nil
}

// Clear drops every pending event.
func (eq *EventQueue) Clear() {
	eq.h.events = nil
}

// Clone deep-copies every pending event; the sequence counter and floor are
// copied too, so the clone keeps numbering from where the original left off
// (clone and original then issue the same numbers independently).
func (eq *EventQueue) Clone() *EventQueue {
	clone := &EventQueue{nextSeq: eq.nextSeq, floor: eq.floor}
	clone.h.events = make([]Event, len(eq.h.events))
	for i, e := range eq.h.events {
		clone.h.events[i] = e.Clone()
	}
	return clone
}

// eventHeap implements container/heap.Interface, ordered by (timestamp, seq)
// for deterministic tie-breaking.
type eventHeap struct {
	events []Event
}

func (h *eventHeap) Len() int { return len(h.events) }

func (h *eventHeap) Less(i, j int) bool {
	ti, tj := h.events[i].Timestamp(), h.events[j].Timestamp()
	if !ti.Equal(tj) {
		return ti.Before(tj)
	}
	return h.events[i].seq() < h.events[j].seq()
}

func (h *eventHeap) Swap(i, j int) { h.events[i], h.events[j] = h.events[j], h.events[i] }

func (h *eventHeap) Push(x any) { h.events = append(h.events, x.(Event)) }

func (h *eventHeap) Pop() any {
	old := h.events
	n := len(old)
	item := old[n-1]
	h.events = old[:n-1]
	return item
}

package simulator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetsim/fleetsim/errs"
)

func mustPopBatch(t *testing.T, eq *EventQueue) []Event {
	batch, err := eq.PopBatch()
	require.NoError(t, err)
	return batch
}

// TestEventQueue_PopBatch_GroupsByTimestamp verifies all events in a batch
// share a timestamp, and the next timestamp (if any) is strictly greater.
func TestEventQueue_PopBatch_GroupsByTimestamp(t *testing.T) {
	eq := NewEventQueue()
	base := time.Now()
	eq.Schedule(&LoginDoneEvent{baseEvent: eq.newBase(base), AgentID: "a1"})
	eq.Schedule(&LoginDoneEvent{baseEvent: eq.newBase(base), AgentID: "a2"})
	eq.Schedule(&LoginDoneEvent{baseEvent: eq.newBase(base.Add(time.Second)), AgentID: "a3"})

	batch := mustPopBatch(t, eq)
	require.Len(t, batch, 2)
	for _, e := range batch {
		assert.True(t, e.Timestamp().Equal(base))
	}

	next, ok := eq.NextTimestamp()
	require.True(t, ok)
	assert.True(t, next.After(base))
}

// TestEventQueue_PopBatch_PreservesInsertionOrder checks that events
// sharing a timestamp come back in the order they were scheduled.
func TestEventQueue_PopBatch_PreservesInsertionOrder(t *testing.T) {
	eq := NewEventQueue()
	at := time.Now()
	eq.Schedule(&LoginDoneEvent{baseEvent: eq.newBase(at), AgentID: "first"})
	eq.Schedule(&LoginDoneEvent{baseEvent: eq.newBase(at), AgentID: "second"})
	eq.Schedule(&LoginDoneEvent{baseEvent: eq.newBase(at), AgentID: "third"})

	batch := mustPopBatch(t, eq)
	require.Len(t, batch, 3)
	assert.Equal(t, "first", batch[0].(*LoginDoneEvent).AgentID)
	assert.Equal(t, "second", batch[1].(*LoginDoneEvent).AgentID)
	assert.Equal(t, "third", batch[2].(*LoginDoneEvent).AgentID)
}

func TestEventQueue_PopBatch_EmptyIsBatchMissing(t *testing.T) {
	eq := NewEventQueue()
	_, err := eq.PopBatch()
	assert.ErrorIs(t, err, errs.ErrBatchMissing)
}

// TestEventQueue_Schedule_PastOfFloorPanics checks the ordering guard: an
// event scheduled earlier than the most recently popped batch is a
// programming bug, not recoverable input.
func TestEventQueue_Schedule_PastOfFloorPanics(t *testing.T) {
	eq := NewEventQueue()
	now := time.Now()
	eq.Schedule(&LoginDoneEvent{baseEvent: eq.newBase(now), AgentID: "a1"})
	mustPopBatch(t, eq) // advances floor to `now`

	assert.Panics(t, func() {
		eq.Schedule(&LoginDoneEvent{baseEvent: eq.newBase(now.Add(-time.Second)), AgentID: "a2"})
	})
}

func TestEventQueue_Clone_IsIndependent(t *testing.T) {
	eq := NewEventQueue()
	at := time.Now()
	eq.Schedule(&LoginDoneEvent{baseEvent: eq.newBase(at), AgentID: "a1"})

	clone := eq.Clone()
	clone.Schedule(&LoginDoneEvent{baseEvent: clone.newBase(at.Add(time.Minute)), AgentID: "a2"})

	assert.Equal(t, 1, eq.h.Len())
	assert.Equal(t, 2, clone.h.Len())
}

// TestClaimAndSchedule_TwoAgentsSameBatch_NoDoubleClaim verifies that two
// agents reaching SetupDone in the same batch on a queue with two pending
// items never end up holding the same item.
func TestClaimAndSchedule_TwoAgentsSameBatch_NoDoubleClaim(t *testing.T) {
	q := &Queue{ID: "q1", OwnerUserID: "u", Pending: []*Task{{ID: "t1", QueueID: "q1"}, {ID: "t2", QueueID: "q1"}}}
	a := &Agent{ID: "a", State: AgentSettingUpQueue}
	b := &Agent{ID: "b", State: AgentSettingUpQueue}
	s := &State{Agents: []*Agent{a, b}, Queues: []*Queue{q}}
	eq := NewEventQueue()
	now := time.Now()

	setupA := &SetupDoneEvent{baseEvent: eq.newBase(now), AgentID: "a", QueueID: "q1"}
	setupB := &SetupDoneEvent{baseEvent: eq.newBase(now), AgentID: "b", QueueID: "q1"}

	require.NoError(t, setupA.Apply(s, eq))
	require.NoError(t, setupB.Apply(s, eq))

	assert.NotEqual(t, a.CurrentItem, "")
	assert.NotEqual(t, b.CurrentItem, "")
	assert.NotEqual(t, a.CurrentItem, b.CurrentItem)
}

// TestClaimAndSchedule_ExhaustedPending_GoesIdle checks that an agent
// finding no unclaimed pending item falls back to idle.
func TestClaimAndSchedule_ExhaustedPending_GoesIdle(t *testing.T) {
	q := &Queue{ID: "q1", OwnerUserID: "u"}
	a := &Agent{ID: "a", State: AgentSettingUpQueue, CurrentUser: "u"}
	s := &State{Agents: []*Agent{a}, Queues: []*Queue{q}}
	eq := NewEventQueue()

	setup := &SetupDoneEvent{baseEvent: eq.newBase(time.Now()), AgentID: "a", QueueID: "q1"}
	require.NoError(t, setup.Apply(s, eq))

	assert.Equal(t, AgentIdle, a.State)
	assert.False(t, a.ProcessEnabled)
}

func TestLoginDoneEvent_UnknownAgent_ReferenceMissing(t *testing.T) {
	s := &State{}
	eq := NewEventQueue()
	e := &LoginDoneEvent{baseEvent: eq.newBase(time.Now()), AgentID: "ghost"}
	err := e.Apply(s, eq)
	assert.Error(t, err)
}

package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultOptions() Options {
	return Options{DecisionHorizon: time.Hour, Bias: 0.5}
}

// TestDecide_EmptyAgentsOrQueues_YieldsEmptyOutput checks that an empty
// agent list or an empty queue list yields empty output.
func TestDecide_EmptyAgentsOrQueues_YieldsEmptyOutput(t *testing.T) {
	q := newQueue("q1", 5, 3)
	a := newIdleAgent("a1", q.OwnerUserID)

	assert.Empty(t, Decide(nil, []*Queue{q}, time.Now(), defaultOptions()))
	assert.Empty(t, Decide([]*Agent{a}, nil, time.Now(), defaultOptions()))
	assert.Empty(t, Decide(nil, nil, time.Now(), defaultOptions()))
}

// TestDecide_ColdStart_SingleAgentLogsInThenExecutesQueue verifies that a
// single logged-out agent against a single queue returns [Login,
// ExecuteQueue].
func TestDecide_ColdStart_SingleAgentLogsInThenExecutesQueue(t *testing.T) {
	q := newQueue("q1", 5, 8)
	q.AvgSetup = time.Minute
	q.SLA = 2 * time.Minute
	a := newLoggedOutAgent("a1")

	assignments := Decide([]*Agent{a}, []*Queue{q}, time.Now(), Options{
		DecisionHorizon: 10 * time.Minute, Bias: 0.5,
	})

	require.Len(t, assignments, 1)
	assert.Equal(t, []Command{CommandLogin, CommandExecuteQueue}, assignments[0].Commands)
	assert.Equal(t, "q1", assignments[0].Queue.ID)
}

// TestDecide_HigherCriticalityQueueWinsFirst verifies that with three idle
// agents and three queues of decreasing criticality (and bias=0 so history
// plays no role), selection order follows criticality.
func TestDecide_HigherCriticalityQueueWinsFirst(t *testing.T) {
	q1 := newQueue("q1", 5, 8)
	q2 := newQueue("q2", 4, 6)
	q3 := newQueue("q3", 3, 5)
	// all queues share one owning user so every agent is equally compatible
	q1.OwnerUserID, q2.OwnerUserID, q3.OwnerUserID = "u", "u", "u"

	agents := []*Agent{newIdleAgent("a1", "u"), newIdleAgent("a2", "u"), newIdleAgent("a3", "u")}
	queues := []*Queue{q1, q2, q3}

	assignments := Decide(agents, queues, time.Now(), Options{
		DecisionHorizon: time.Hour, Bias: 0,
	})

	require.Len(t, assignments, 3)
	assert.Equal(t, "q1", assignments[0].Queue.ID)
	assert.Equal(t, "q2", assignments[1].Queue.ID)
	assert.Equal(t, "q3", assignments[2].Queue.ID)
}

// TestDecide_MustRunQueue_SelectedFirstOverHigherRawBenefitRival verifies
// that a must-run, priority-1 queue is selected first even against a much
// higher raw-finite-benefit rival.
func TestDecide_MustRunQueue_SelectedFirstOverHigherRawBenefitRival(t *testing.T) {
	rival := newQueue("rival", 100, 50) // huge pending count drives a high finite benefit
	rival.AvgSetup = time.Second
	mustRun := newQueue("must-run", 1, 1)
	mustRun.MustRun = true
	mustRun.AvgSetup = time.Second

	agents := []*Agent{newIdleAgent("a1", "u"), newIdleAgent("a2", "u")}
	rival.OwnerUserID, mustRun.OwnerUserID = "u", "u"

	assignments := Decide(agents, []*Queue{rival, mustRun}, time.Now(), Options{
		DecisionHorizon: time.Hour, Bias: 0,
	})

	require.NotEmpty(t, assignments)
	assert.Equal(t, "must-run", assignments[0].Queue.ID)
}

// TestDecide_MustRunAtOtherPriority_NotPromoted verifies that must_run only
// promotes priority-1 candidates to Infinite.
func TestDecide_MustRunAtOtherPriority_NotPromoted(t *testing.T) {
	q := newQueue("q1", 1, 0)
	q.MustRun = true
	q.Pending = []*Task{{ID: "t1", Priority: 2}}

	c := &Candidate{Agent: newIdleAgent("a", q.OwnerUserID), Queue: q, Priority: 2, TaskCount: 1, realCapacity: 1}
	b := computeBenefit(c, 0.5, 0, OverrideConfig{})
	assert.Equal(t, BenefitFinite, b.Kind)
}

// TestDecide_ZeroRealCapacity_OnlySelectedByOverride verifies that a
// candidate with no real capacity left has zero benefit unless an override
// rule (min-resources, must-run) promotes it.
func TestDecide_ZeroRealCapacity_OnlySelectedByOverride(t *testing.T) {
	q := newQueue("q1", 5, 3)
	c := &Candidate{Agent: newIdleAgent("a", q.OwnerUserID), Queue: q, Priority: 1, TaskCount: 3, realCapacity: 0}
	b := computeBenefit(c, 0.5, 0, OverrideConfig{})
	assert.Equal(t, Finite(0), b)
}

// TestDecide_TerminatesWithBoundedOutput verifies that output size never
// exceeds the number of populated candidates, and the call terminates.
func TestDecide_TerminatesWithBoundedOutput(t *testing.T) {
	var agents []*Agent
	var queues []*Queue
	for i := 0; i < 5; i++ {
		agents = append(agents, newIdleAgent(string(rune('a'+i)), "u"))
	}
	for i := 0; i < 4; i++ {
		q := newQueue(string(rune('q'+i)), i+1, i+2)
		q.OwnerUserID = "u"
		queues = append(queues, q)
	}

	candidateCount := len(Populate(agents, queues, time.Now(), time.Hour))
	assignments := Decide(agents, queues, time.Now(), defaultOptions())

	assert.LessOrEqual(t, len(assignments), candidateCount)
}

// TestDecide_DoesNotMutateInputIdentity ensures Decide is side-effect-free
// on the Agent/Queue values it's handed beyond its own candidate
// bookkeeping (queues' Pending slices are untouched).
func TestDecide_DoesNotMutateInputIdentity(t *testing.T) {
	q := newQueue("q1", 5, 4)
	originalPendingLen := len(q.Pending)
	a := newIdleAgent("a1", q.OwnerUserID)

	Decide([]*Agent{a}, []*Queue{q}, time.Now(), defaultOptions())

	assert.Len(t, q.Pending, originalPendingLen)
}

package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetsim/fleetsim/trace"
)

// TestDecide_Trace_PurelyAdditive checks that Decide's return value is
// identical whether or not a trace is attached.
func TestDecide_Trace_PurelyAdditive(t *testing.T) {
	q := newQueue("q1", 5, 8)
	a := newLoggedOutAgent("a1")
	now := time.Now()
	opts := Options{DecisionHorizon: 10 * time.Minute, Bias: 0.5}

	without := Decide([]*Agent{a}, []*Queue{q}, now, opts)

	st := trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevelDecisions})
	opts.Trace = st
	with := Decide([]*Agent{a}, []*Queue{q}, now, opts)

	assert.Equal(t, without, with)
}

// TestDecide_Trace_RecordsCandidatesAndSelection checks that an enabled
// trace captures the input size, every populated candidate, the selection
// order, and the final assignments for one Decide() call.
func TestDecide_Trace_RecordsCandidatesAndSelection(t *testing.T) {
	q1 := newQueue("q1", 5, 8)
	q2 := newQueue("q2", 3, 5)
	q1.OwnerUserID, q2.OwnerUserID = "u", "u"
	agents := []*Agent{newIdleAgent("a1", "u"), newIdleAgent("a2", "u")}
	queues := []*Queue{q1, q2}

	st := trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevelDecisions})
	now := time.Now()
	assignments := Decide(agents, queues, now, Options{
		DecisionHorizon: time.Hour, Bias: 0, Trace: st,
	})

	require.Len(t, st.Decisions, 1)
	rec := st.Decisions[0]
	assert.Equal(t, 2, rec.InputAgents)
	assert.Equal(t, 2, rec.InputQueues)
	assert.NotEmpty(t, rec.Candidates)
	assert.Len(t, rec.SelectionOrder, len(assignments))
	assert.Len(t, rec.Assignments, len(assignments))

	var selected int
	for _, c := range rec.Candidates {
		if c.Selected {
			selected++
		}
	}
	assert.Equal(t, len(assignments), selected)
}

// TestDecide_Trace_DisabledLevel_RecordsNothing checks that a trace at
// TraceLevelNone (Enabled() == false) never accumulates decisions, even
// though it's non-nil.
func TestDecide_Trace_DisabledLevel_RecordsNothing(t *testing.T) {
	q := newQueue("q1", 5, 8)
	a := newIdleAgent("a1", q.OwnerUserID)
	st := trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevelNone})

	Decide([]*Agent{a}, []*Queue{q}, time.Now(), Options{
		DecisionHorizon: time.Hour, Bias: 0.5, Trace: st,
	})

	assert.Empty(t, st.Decisions)
}

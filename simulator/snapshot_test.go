package simulator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetsim/fleetsim/engine"
)

func newSnapshotTestSimulator() *Simulator {
	agents := []*Agent{
		{ID: "a1", Name: "agent-1", State: AgentWorking},
		{ID: "a2", Name: "agent-2", State: AgentIdle},
	}
	queues := []*Queue{{
		ID: "q1", Name: "queue-1",
		Finished: []*FinishedTask{{ID: "t1"}, {ID: "t2"}},
	}}
	worker := NewWorker(time.Minute, time.Hour, 0.5, engine.OverrideConfig{})
	return NewSimulator(NewState(agents, queues), time.Now(), time.Second, worker, nil)
}

func TestSnapshot_UtilizationAndThroughput(t *testing.T) {
	sim := newSnapshotTestSimulator()
	snap := sim.Snapshot(time.Hour)

	assert.Equal(t, 50.0, snap.UtilizationPct, "1 of 2 agents is Working")
	assert.Equal(t, 2.0, snap.CompletedPerHour)
	require.Len(t, snap.Agents, 2)
	require.Len(t, snap.Queues, 1)
	assert.Equal(t, 2, snap.Queues[0].Completed)
}

func TestSnapshot_ZeroElapsedAvoidsDivideByZero(t *testing.T) {
	sim := newSnapshotTestSimulator()
	snap := sim.Snapshot(0)
	assert.Equal(t, 0.0, snap.CompletedPerHour)
}

func TestSnapshot_EventLogCappedToRecentLines(t *testing.T) {
	sim := newSnapshotTestSimulator()
	for i := 0; i < recentLogLines+5; i++ {
		sim.LogEvent("line")
	}
	snap := sim.Snapshot(time.Hour)
	assert.Len(t, snap.EventLog, recentLogLines)
}

func TestSnapshot_NoEventLogWhenEmpty(t *testing.T) {
	sim := newSnapshotTestSimulator()
	snap := sim.Snapshot(time.Hour)
	assert.Empty(t, snap.EventLog)
}

package cmd

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleScenario = `
start: 2026-01-01T00:00:00Z
agents:
  - id: a1
    name: bot-1
    avgLogin: 30s
    avgLogout: 20s
  - name: bot-2
    avgLogin: 45s
    avgLogout: 20s
queues:
  - id: q1
    name: invoices
    ownerUserId: bob
    avgSetup: 1m
    sla: 2h
    criticality: 5
    minResources: 1
    pending:
      - id: t1
        priority: 1
        slaIn: 1h
      - priority: 2
waves:
  - at: 2026-01-01T01:00:00Z
    queueId: q1
    tasks:
      - id: t3
        priority: 1
`

func writeScenario(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadScenario_ParsesAllSections(t *testing.T) {
	path := writeScenario(t, sampleScenario)

	sf, err := LoadScenario(path)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), sf.Start)
	require.Len(t, sf.Agents, 2)
	assert.Equal(t, 30*time.Second, time.Duration(sf.Agents[0].AvgLogin))
	require.Len(t, sf.Queues, 1)
	assert.Equal(t, time.Minute, time.Duration(sf.Queues[0].AvgSetup))
	require.Len(t, sf.Queues[0].Pending, 2)
	require.Len(t, sf.Waves, 1)
}

func TestLoadScenario_UnknownFieldRejected(t *testing.T) {
	path := writeScenario(t, sampleScenario+"\nbogusField: true\n")
	_, err := LoadScenario(path)
	assert.Error(t, err)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestBuild_GeneratesIDsForOmittedFields(t *testing.T) {
	path := writeScenario(t, sampleScenario)
	sf, err := LoadScenario(path)
	require.NoError(t, err)

	state, waves, start := sf.Build()
	require.Len(t, state.Agents, 2)
	assert.Equal(t, "a1", state.Agents[0].ID)
	assert.NotEmpty(t, state.Agents[1].ID)
	assert.NotEqual(t, state.Agents[0].ID, state.Agents[1].ID)

	require.Len(t, state.Queues, 1)
	require.Len(t, state.Queues[0].Pending, 2)
	assert.Equal(t, "t1", state.Queues[0].Pending[0].ID)
	assert.Equal(t, 1, state.Queues[0].Pending[0].Priority)
	assert.NotEmpty(t, state.Queues[0].Pending[1].ID)
	assert.Equal(t, 2, state.Queues[0].Pending[1].Priority)

	require.Len(t, waves, 1)
	assert.Equal(t, "q1", waves[0].Tasks[0].QueueID)
	assert.Equal(t, start, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
}

func TestBuild_DefaultPriorityIsOneWhenUnset(t *testing.T) {
	sf := &ScenarioFile{
		Queues: []ScenarioQueue{{ID: "q1", Pending: []ScenarioTask{{ID: "t1"}}}},
	}
	state, _, _ := sf.Build()
	assert.Equal(t, 1, state.Queues[0].Pending[0].Priority)
}

func TestBuild_DefaultsStartToNowWhenUnset(t *testing.T) {
	sf := &ScenarioFile{}
	_, _, start := sf.Build()
	assert.False(t, start.IsZero())
}

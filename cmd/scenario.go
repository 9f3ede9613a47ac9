package cmd

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/fleetsim/fleetsim/simulator"
)

// yamlDuration lets ScenarioFile accept Go duration strings ("90s", "10m")
// in YAML instead of forcing every field to nanosecond integers.
type yamlDuration time.Duration

func (d *yamlDuration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = yamlDuration(parsed)
	return nil
}

// ScenarioAgent is one agent entry in a scenario file. Id is optional: when
// omitted a uuid v4 is generated, mirroring the production path where ids
// instead come from the out-of-scope ingestion connectors.
type ScenarioAgent struct {
	ID        string       `yaml:"id"`
	Name      string       `yaml:"name"`
	AvgLogin  yamlDuration `yaml:"avgLogin"`
	AvgLogout yamlDuration `yaml:"avgLogout"`
}

// ScenarioTask is a pending task as it appears either in a queue's initial
// backlog or in a later wave.
type ScenarioTask struct {
	ID       string       `yaml:"id"`
	Priority int          `yaml:"priority"`
	SLAIn    yamlDuration `yaml:"slaIn"` // SLA deadline, expressed relative to the task's creation
}

// ScenarioQueue is one queue entry, with its initial backlog inline.
type ScenarioQueue struct {
	ID           string         `yaml:"id"`
	Name         string         `yaml:"name"`
	OwnerUserID  string         `yaml:"ownerUserId"`
	AvgSetup     yamlDuration   `yaml:"avgSetup"`
	SLA          yamlDuration   `yaml:"sla"`
	Criticality  int            `yaml:"criticality"`
	MinResources int            `yaml:"minResources"`
	MaxResources int            `yaml:"maxResources"`
	ForceMax     bool           `yaml:"forceMax"`
	MustRun      bool           `yaml:"mustRun"`
	Pending      []ScenarioTask `yaml:"pending"`
}

// ScenarioWave is a batch of tasks arriving at a queue at a later simulated
// timestamp, the stand-in for out-of-scope ingestion connectors.
type ScenarioWave struct {
	At      time.Time      `yaml:"at"`
	QueueID string         `yaml:"queueId"`
	Tasks   []ScenarioTask `yaml:"tasks"`
}

// ScenarioFile is the minimal YAML shape the CLI loads to drive a run or a
// forecast: initial agents and queues, plus any task waves that should be
// admitted once the simulated clock reaches them.
type ScenarioFile struct {
	Start  time.Time       `yaml:"start"`
	Agents []ScenarioAgent `yaml:"agents"`
	Queues []ScenarioQueue `yaml:"queues"`
	Waves  []ScenarioWave  `yaml:"waves"`
}

// LoadScenario reads and strictly parses a scenario file — unknown fields
// are a load error, catching typos the way the teacher's defaults.yaml
// loader does via yaml.Decoder.KnownFields(true).
func LoadScenario(path string) (*ScenarioFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario file: %w", err)
	}
	var sf ScenarioFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&sf); err != nil {
		return nil, fmt.Errorf("parsing scenario file %s: %w", path, err)
	}
	return &sf, nil
}

func ensureID(id string) string {
	if id != "" {
		return id
	}
	return uuid.NewString()
}

func buildTask(queueID string, t ScenarioTask, now time.Time) *simulator.Task {
	priority := t.Priority
	if priority == 0 {
		priority = 1
	}
	slaDue := now.Add(time.Duration(t.SLAIn))
	return &simulator.Task{
		ID:        ensureID(t.ID),
		QueueID:   queueID,
		CreatedAt: now,
		SLADue:    slaDue,
		Priority:  priority,
	}
}

// Build realizes the scenario into a simulator.State plus its scheduled
// task waves, generating any omitted ids as it goes.
func (sf *ScenarioFile) Build() (*simulator.State, []simulator.TaskWave, time.Time) {
	start := sf.Start
	if start.IsZero() {
		start = time.Now().UTC()
	}

	agents := make([]*simulator.Agent, 0, len(sf.Agents))
	for _, sa := range sf.Agents {
		agents = append(agents, &simulator.Agent{
			ID:        ensureID(sa.ID),
			Name:      sa.Name,
			State:     simulator.AgentLoggedOut,
			AvgLogin:  time.Duration(sa.AvgLogin),
			AvgLogout: time.Duration(sa.AvgLogout),
		})
	}

	queues := make([]*simulator.Queue, 0, len(sf.Queues))
	for _, sq := range sf.Queues {
		queueID := ensureID(sq.ID)
		pending := make([]*simulator.Task, 0, len(sq.Pending))
		for _, st := range sq.Pending {
			pending = append(pending, buildTask(queueID, st, start))
		}
		queues = append(queues, &simulator.Queue{
			ID:           queueID,
			Name:         sq.Name,
			OwnerUserID:  sq.OwnerUserID,
			Pending:      pending,
			AvgSetup:     time.Duration(sq.AvgSetup),
			SLA:          time.Duration(sq.SLA),
			Criticality:  sq.Criticality,
			MinResources: sq.MinResources,
			MaxResources: sq.MaxResources,
			ForceMax:     sq.ForceMax,
			MustRun:      sq.MustRun,
		})
	}

	var waves []simulator.TaskWave
	for _, sw := range sf.Waves {
		tasks := make([]*simulator.Task, 0, len(sw.Tasks))
		for _, st := range sw.Tasks {
			tasks = append(tasks, buildTask(sw.QueueID, st, sw.At))
		}
		waves = append(waves, simulator.TaskWave{At: sw.At, Tasks: tasks})
	}

	return simulator.NewState(agents, queues), waves, start
}

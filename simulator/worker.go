package simulator

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fleetsim/fleetsim/engine"
	"github.com/fleetsim/fleetsim/trace"
)

// Worker watches the live state after each event drain, decides whether
// the decision engine needs to run, and dispatches whatever pending
// commands stable-state agents are holding.
type Worker struct {
	DecisionInterval time.Duration
	DecisionHorizon  time.Duration
	Bias             float64
	Overrides        engine.OverrideConfig
	// Trace, if set, receives a DecisionRecord for every engine invocation —
	// purely additive, never consulted by the dispatch logic.
	Trace *trace.SimulationTrace

	lastCall time.Time // zero value behaves as negative infinity
	log      *logrus.Entry
}

// NewWorker builds a Worker bound to the given decision parameters.
func NewWorker(decisionInterval, decisionHorizon time.Duration, bias float64, overrides engine.OverrideConfig) *Worker {
	return &Worker{
		DecisionInterval: decisionInterval,
		DecisionHorizon:  decisionHorizon,
		Bias:             bias,
		Overrides:        overrides,
		log:              logrus.WithField("component", "worker"),
	}
}

// Observe runs once per tick, after the event batch drain.
func (w *Worker) Observe(s *State, eq *EventQueue, now time.Time) {
	if w.shouldInvokeEngine(s, now) {
		w.invokeEngine(s, now)
		w.lastCall = now
	}
	w.dispatchPending(s, eq, now)
}

func (w *Worker) shouldInvokeEngine(s *State, now time.Time) bool {
	timerDue := w.lastCall.IsZero() || now.Sub(w.lastCall) >= w.DecisionInterval
	if timerDue {
		return true
	}
	for _, a := range s.Agents {
		if a.State == AgentIdle && len(a.PendingCommands) == 0 {
			return true
		}
	}
	return false
}

func (w *Worker) invokeEngine(s *State, now time.Time) {
	agents, queues, _ := adaptState(s)
	assignments := engine.Decide(agents, queues, now, engine.Options{
		DecisionHorizon: w.DecisionHorizon,
		Bias:            w.Bias,
		Overrides:       w.Overrides,
		Trace:           w.Trace,
	})

	w.log.WithField("assignments", len(assignments)).Debug("decision engine invoked")

	for _, a := range assignments {
		agent := s.Agent(a.Agent.ID)
		if agent == nil {
			continue
		}
		// Agents mid-transition keep their current sequence until they
		// reach a stable state.
		if agent.State == AgentLoggingIn || agent.State == AgentLoggingOut || agent.State == AgentSettingUpQueue {
			continue
		}
		agent.PendingCommands = translateCommands(a)
	}
}

// dispatchPending executes one pending command per stable-state agent.
// Agents in transient states are skipped.
func (w *Worker) dispatchPending(s *State, eq *EventQueue, now time.Time) {
	for _, a := range s.Agents {
		if a.State != AgentLoggedOut && a.State != AgentIdle {
			continue
		}
		if len(a.PendingCommands) == 0 {
			continue
		}
		cmd := a.PendingCommands[0]
		a.PendingCommands = a.PendingCommands[1:]
		cmd.dispatch(a, now, eq)
	}
}

package simulator

import (
	"time"

	"github.com/fleetsim/fleetsim/engine"
)

// adaptState builds the engine-side snapshot from the live simulator
// state, conservatively collapsing the simulator's six lifecycle states
// into the engine's three ResourceState variants:
//
//	LoggedOut, LoggingIn      -> engine.LoggedOut{}    (not yet ready)
//	Idle, LoggingOut, Setting -> engine.Idle{User}     (still/almost active)
//	Working                   -> engine.Working{Queue}
//
// Queues are built first since Working variants reference them by pointer;
// each engine queue is built with an empty task list, then its tasks are
// built referencing it, then appended — a two-phase construction that
// resolves the queue<->task cycle.
func adaptState(s *State) ([]*engine.Agent, []*engine.Queue, map[string]*engine.Queue) {
	engineQueues := make([]*engine.Queue, len(s.Queues))
	byID := make(map[string]*engine.Queue, len(s.Queues))
	for i, q := range s.Queues {
		eq := &engine.Queue{
			ID:           q.ID,
			Name:         q.Name,
			OwnerUserID:  q.OwnerUserID,
			AvgSetup:     q.AvgSetup,
			SLA:          q.SLA,
			Criticality:  q.Criticality,
			MinResources: q.MinResources,
			MaxResources: q.MaxResources,
			ForceMax:     q.ForceMax,
			MustRun:      q.MustRun,
		}
		engineQueues[i] = eq
		byID[q.ID] = eq
	}

	for i, q := range s.Queues {
		eq := engineQueues[i]
		eq.Pending = make([]*engine.Task, len(q.Pending))
		for j, t := range q.Pending {
			eq.Pending[j] = &engine.Task{
				ID:          t.ID,
				QueueID:     t.QueueID,
				CreatedAt:   t.CreatedAt,
				SLADeadline: t.SLADue,
				Priority:    t.Priority,
			}
		}
		eq.Finished = make([]*engine.FinishedTask, len(q.Finished))
		for j, f := range q.Finished {
			eq.Finished[j] = &engine.FinishedTask{
				ID:      f.ID,
				QueueID: f.QueueID,
				AgentID: f.AgentID,
				// loaded = completed - duration (the simulator doesn't
				// track a separate load timestamp per finished task).
				Loaded:      f.CompletedAt.Add(-f.Duration),
				CompletedAt: f.CompletedAt,
				WorkTime:    f.Duration,
			}
		}
	}

	engineAgents := make([]*engine.Agent, len(s.Agents))
	for i, a := range s.Agents {
		engineAgents[i] = &engine.Agent{
			ID:            a.ID,
			Name:          a.Name,
			State:         adaptResourceState(a, byID),
			AvgLogin:      a.AvgLogin,
			AvgLogout:     a.AvgLogout,
			LastItemStart: optionalTime(a.LastItemStart),
		}
	}

	return engineAgents, engineQueues, byID
}

func adaptResourceState(a *Agent, queues map[string]*engine.Queue) engine.ResourceState {
	switch a.State {
	case AgentLoggedOut, AgentLoggingIn:
		return engine.LoggedOut{}
	case AgentWorking:
		return engine.Working{Queue: queues[a.CurrentQueue]}
	default: // Idle, LoggingOut, SettingUpQueue
		return engine.Idle{User: a.CurrentUser}
	}
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	cp := t
	return &cp
}

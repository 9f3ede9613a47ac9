package engine

import "time"

// Transition bundles the setup overhead and the command sequence needed to
// reach a target queue from a given resource state.
type Transition struct {
	Overhead time.Duration
	Commands []Command
}

// ResourceState is a polymorphic variant: LoggedOut, Idle(user), or
// Working(queue). Each variant knows how to get an agent to a target queue;
// callers never switch on a state's identity.
type ResourceState interface {
	// TransitionTo computes the overhead and command sequence for agent to
	// begin working target, given the current simulated time now (needed
	// only by Working, to account for an in-flight item).
	TransitionTo(agent *Agent, target *Queue, now time.Time) Transition
}

// LoggedOut means the agent holds no session at all.
type LoggedOut struct{}

func (LoggedOut) TransitionTo(agent *Agent, target *Queue, _ time.Time) Transition {
	return Transition{
		Overhead: agent.AvgLogin + target.AvgSetup,
		Commands: []Command{CommandLogin, CommandExecuteQueue},
	}
}

// Idle means the agent is logged in as User but not processing any queue.
type Idle struct {
	User string
}

func (s Idle) TransitionTo(agent *Agent, target *Queue, _ time.Time) Transition {
	if s.User == target.OwnerUserID {
		return Transition{
			Overhead: target.AvgSetup,
			Commands: []Command{CommandExecuteQueue},
		}
	}
	return Transition{
		Overhead: agent.AvgLogin + agent.AvgLogout + target.AvgSetup,
		Commands: []Command{CommandLogout, CommandLogin, CommandExecuteQueue},
	}
}

// Working means the agent is actively processing Queue.
type Working struct {
	Queue *Queue
}

func (s Working) TransitionTo(agent *Agent, target *Queue, now time.Time) Transition {
	if s.Queue.ID == target.ID {
		return Transition{Commands: []Command{CommandEmpty}}
	}

	finishCurrentItem := avgItemDuration(s.Queue)
	if agent.LastItemStart != nil {
		elapsed := now.Sub(*agent.LastItemStart)
		finishCurrentItem -= elapsed
	}
	if finishCurrentItem < 0 {
		finishCurrentItem = 0
	}

	if s.Queue.OwnerUserID == target.OwnerUserID {
		return Transition{
			Overhead: finishCurrentItem + target.AvgSetup,
			Commands: []Command{CommandExecuteQueue},
		}
	}
	return Transition{
		Overhead: finishCurrentItem + target.AvgSetup + agent.AvgLogin + agent.AvgLogout,
		Commands: []Command{CommandLogout, CommandLogin, CommandExecuteQueue},
	}
}

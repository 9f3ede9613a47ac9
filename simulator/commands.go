package simulator

import "time"

// SimCommand is one command in an agent's pending-commands sequence,
// dispatched one per tick while the agent is in a stable state (LoggedOut
// or Idle). Unlike the engine's abstract Command enum, each variant here
// already names the concrete queue/user it targets, since it's the output
// of the Command Translator, not the decision engine itself.
type SimCommand interface {
	// dispatch executes the command against agent at simulated time now,
	// transitioning it to a transient state and scheduling the event that
	// will complete it.
	dispatch(a *Agent, now time.Time, eq *EventQueue)
}

// LoginCommand logs the agent in as User.
type LoginCommand struct {
	User string
}

func (c LoginCommand) dispatch(a *Agent, now time.Time, eq *EventQueue) {
	a.State = AgentLoggingIn
	eq.Schedule(&LoginDoneEvent{
		baseEvent: eq.newBase(now.Add(a.AvgLogin)),
		AgentID:   a.ID,
		User:      c.User,
	})
}

// LogoutCommand logs the agent out of its current session.
type LogoutCommand struct{}

func (c LogoutCommand) dispatch(a *Agent, now time.Time, eq *EventQueue) {
	a.State = AgentLoggingOut
	eq.Schedule(&LogoutDoneEvent{
		baseEvent: eq.newBase(now.Add(a.AvgLogout)),
		AgentID:   a.ID,
	})
}

// StartProcessCommand begins setting up the given queue.
type StartProcessCommand struct {
	QueueID string
	Setup   time.Duration
}

func (c StartProcessCommand) dispatch(a *Agent, now time.Time, eq *EventQueue) {
	a.State = AgentSettingUpQueue
	a.CurrentQueue = c.QueueID
	eq.Schedule(&SetupDoneEvent{
		baseEvent: eq.newBase(now.Add(c.Setup)),
		AgentID:   a.ID,
		QueueID:   c.QueueID,
	})
}

// StopProcessCommand passively requests that the agent stop after its
// current item: the next ItemDone will route it to Idle instead of
// claiming another item.
type StopProcessCommand struct{}

func (c StopProcessCommand) dispatch(a *Agent, now time.Time, _ *EventQueue) {
	a.StopRequestedAt = now
}

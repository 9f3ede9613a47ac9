package simulator

import "github.com/fleetsim/fleetsim/engine"

// translateCommands maps one engine assignment's abstract command sequence
// into concrete simulator commands against the assignment's target queue.
// Empty is omitted entirely — it means "no transition required".
func translateCommands(a engine.Assignment) []SimCommand {
	out := make([]SimCommand, 0, len(a.Commands))
	for _, c := range a.Commands {
		switch c {
		case engine.CommandLogin:
			out = append(out, LoginCommand{User: a.Queue.OwnerUserID})
		case engine.CommandLogout:
			out = append(out, LogoutCommand{})
		case engine.CommandExecuteQueue:
			out = append(out, StartProcessCommand{QueueID: a.Queue.ID, Setup: a.Queue.AvgSetup})
		case engine.CommandEmpty:
			// omit
		}
	}
	return out
}

package engine

import (
	"strconv"
	"time"
)

func newQueue(id string, criticality int, pendingCount int) *Queue {
	q := &Queue{
		ID:          id,
		Name:        id,
		OwnerUserID: "user-" + id,
		AvgSetup:    time.Minute,
		SLA:         2 * time.Minute,
		Criticality: criticality,
	}
	for i := 0; i < pendingCount; i++ {
		q.Pending = append(q.Pending, &Task{
			ID:       id + "-task-" + strconv.Itoa(i),
			QueueID:  id,
			Priority: 1,
		})
	}
	return q
}

func newIdleAgent(id, user string) *Agent {
	return &Agent{
		ID:        id,
		Name:      id,
		State:     Idle{User: user},
		AvgLogin:  30 * time.Second,
		AvgLogout: 20 * time.Second,
	}
}

func newLoggedOutAgent(id string) *Agent {
	return &Agent{
		ID:        id,
		Name:      id,
		State:     LoggedOut{},
		AvgLogin:  30 * time.Second,
		AvgLogout: 20 * time.Second,
	}
}


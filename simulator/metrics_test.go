package simulator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAvgItemDuration_FallbackWhenNoHistory(t *testing.T) {
	q := &Queue{ID: "q1"}
	assert.Equal(t, fallbackItemDuration, avgItemDuration(q))
}

func TestAvgItemDuration_MeansFinishedDurations(t *testing.T) {
	q := &Queue{ID: "q1", Finished: []*FinishedTask{
		{Duration: 2 * time.Minute},
		{Duration: 4 * time.Minute},
		{Duration: 6 * time.Minute},
	}}
	assert.Equal(t, 4*time.Minute, avgItemDuration(q))
}

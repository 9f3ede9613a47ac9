package simulator

import (
	"fmt"
	"time"

	"github.com/fleetsim/fleetsim/errs"
)

// Clock is a monotonically increasing simulated time source. It never reads
// the wall clock; time only moves when Advance is called, mirroring the
// teacher's int64 tick counter but expressed in time.Time so live and
// forecast runs can be inspected in human terms.
type Clock struct {
	now time.Time
}

// NewClock starts a clock at the given simulated start time.
func NewClock(start time.Time) *Clock {
	return &Clock{now: start}
}

// Now returns the current simulated time.
func (c *Clock) Now() time.Time {
	return c.now
}

// Advance moves the clock forward by step and returns the new time. A
// non-positive step is a programming bug, not recoverable input: the tick
// loop is the only caller and it always advances by a fixed positive step.
func (c *Clock) Advance(step time.Duration) time.Time {
	if step <= 0 {
		panic(fmt.Errorf("%w: clock advance step must be positive, got %s", errs.ErrEventOrdering, step))
	}
	c.now = c.now.Add(step)
	return c.now
}

// Clone returns an independent copy.
func (c *Clock) Clone() *Clock {
	return &Clock{now: c.now}
}

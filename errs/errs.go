// Package errs defines the error kinds shared by the decision engine and the
// simulator. Wrapping always uses fmt.Errorf("%w", ...) so callers can
// errors.Is/errors.As against the sentinels below.
package errs

import "errors"

var (
	// ErrConfigurationInvalid is returned at validation time, never at runtime.
	ErrConfigurationInvalid = errors.New("configuration invalid")

	// ErrEventOrdering means an event was applied with a timestamp before the
	// clock's current time. Treated as a programming bug: the tick loop halts.
	ErrEventOrdering = errors.New("event applied out of order")

	// ErrReferenceMissing means an event names an agent or queue not present
	// in state. Same handling as ErrEventOrdering.
	ErrReferenceMissing = errors.New("referenced entity missing from state")

	// ErrBatchMissing is returned by PopBatch on an empty event queue.
	ErrBatchMissing = errors.New("no events pending")
)

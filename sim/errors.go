package sim

import "errors"

// Error taxonomy of the scheduling core. Argument and duplicate-key errors
// are caller bugs and are never retried. A missing key is not an error at
// all: lookups and removals report it through a comma-ok result so that
// idempotent cleanup stays silent.
var (
	// ErrInvalidArgument reports a negative delay, an empty key, or a
	// target tick in the past.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrDuplicateKey reports scheduling a key that is already scheduled.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrStalled reports that the scheduler advanced through its whole
	// safety bound without finding a single due event.
	ErrStalled = errors.New("scheduler stalled: no event within the safety bound")
)

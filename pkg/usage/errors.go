package usage

import "errors"

// Domain errors for usage counting.
var (
	ErrNoCounterRegistered = errors.New("usage.errors.no_counter_registered")
	ErrCountingFailed      = errors.New("usage.errors.counting_failed")
)

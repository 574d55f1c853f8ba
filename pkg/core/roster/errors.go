package roster

import "errors"

var (
	// ErrMalformedInput indicates the caller's data is structurally invalid.
	// Unlike constraint violations, this is unrecoverable - there is no
	// partial result to return.
	ErrMalformedInput = errors.New("malformed input")

	// ErrScheduleImmutable indicates an attempted mutation or illegal
	// lifecycle transition against a published or archived schedule
	ErrScheduleImmutable = errors.New("schedule is immutable")

	// ErrConcurrentGeneration indicates another generation is already in
	// flight for the same month
	ErrConcurrentGeneration = errors.New("generation already in progress for this month")
)

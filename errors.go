package wets

import "errors"

// Sentinel errors returned by Scheduler operations. All are total: every
// exported operation returns one of these (wrapped with context via
// fmt.Errorf/%w where noted) or nil, never a panic, for caller-driven
// argument mistakes.
var (
	// ErrWrongParams is returned for an invalid priority, a zero or
	// reserved (NoEvent) flag, a nil callback, or a zero cyclic period.
	ErrWrongParams = errors.New("wets: wrong params")

	// ErrNoEventFound is returned by RemoveEvent when the targeted bank has
	// no slot matching the given flag.
	ErrNoEventFound = errors.New("wets: no event found")

	// ErrEventBufferFull is returned by AddEvent when the targeted bank has
	// no free slot.
	ErrEventBufferFull = errors.New("wets: event buffer full")

	// ErrEventJustSet is returned by AddEvent when the targeted bank's
	// status already has the given flag armed.
	ErrEventJustSet = errors.New("wets: event just set")

	// ErrNoTimerAvailable is returned by AddDelay/AddCyclic when the
	// respective timer table has no free slot.
	ErrNoTimerAvailable = errors.New("wets: no timer available")

	// ErrNoTimerFound is returned by UpdateDelay/RemoveDelay/EditCyclic/
	// RemoveCyclic when no armed slot matches the given (priority, flag).
	ErrNoTimerFound = errors.New("wets: no timer found")

	// ErrSchedulerAlreadyRunning is returned by Run when called on a
	// scheduler that is already running.
	ErrSchedulerAlreadyRunning = errors.New("wets: scheduler is already running")

	// ErrSchedulerStopped is returned by Run when called on a scheduler
	// that has already run to completion (Run does not restart).
	ErrSchedulerStopped = errors.New("wets: scheduler has been stopped")

	// ErrSchedulerNotRunning is returned by Stop when called on a
	// scheduler that was never started.
	ErrSchedulerNotRunning = errors.New("wets: scheduler is not running")
)

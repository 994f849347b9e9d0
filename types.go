package wets

// Flag identifies an event within a priority bank. Each set bit is a
// distinct event pattern chosen by the caller; the dispatcher treats the
// whole word as a bitmask, never interpreting individual bits itself.
type Flag uint32

// Priority selects which [EventBank] an operation targets. Priority 0 is
// serviced before priority 1, and so on — lower numbers are more urgent.
type Priority uint8

// Callback is the bare function-pointer contract every event and timer
// binds to: it receives the full status word its bank carried at dispatch
// time, and returns the set of flags it wants OR-ed back into that status
// word once the dispatched slot is freed. Returning 0 means "handled
// everything"; returning (at least) the callback's own flag sets that bit
// in status again, but the dispatched slot is not re-created, so the
// callback itself is not invoked again — see mostImportantLocked's orphan
// bit handling, which clears such a bit on the next scan.
//
// No closure state is threaded through beyond what the function value
// itself captures — callers needing per-registration context use a Go
// closure, which already satisfies this signature.
type Callback func(status uint32) uint32

const (
	// NoEvent is the sentinel flag value marking a free event or timer
	// slot. It is also, deliberately, not a valid argument to AddEvent et
	// al: accepting it as a real flag would make an armed slot
	// indistinguishable from a free one.
	NoEvent Flag = 0xFFFFFFFF

	// NoPriority is the sentinel priority value marking a free timer slot.
	NoPriority Priority = 0xFF

	// EventsPerPriority is the fixed slot count of every [EventBank]. It is
	// not configurable: dispatch selection bit-scans a 32-bit status word
	// and expects exactly one slot per bit, so the slot count and the flag
	// width must match by construction.
	EventsPerPriority = 32
)

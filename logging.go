package wets

import (
	"io"

	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
)

// Logger is the structured logger type used throughout this package: a
// logiface.Logger backed by stumpy's JSON event implementation. The
// scheduler never reinvents its own logging front-end — the rest of the
// module family this package was grown out of standardizes on
// logiface/stumpy for exactly this cross-cutting concern.
type Logger = logiface.Logger[*stumpy.Event]

// NewJSONLogger builds a Logger that writes newline-delimited JSON to w at
// the given minimum level. Pass logiface.LevelDisabled to build a logger
// that costs nothing on the hot dispatch path (the default, via
// defaultLogger).
func NewJSONLogger(w io.Writer, level logiface.Level) *Logger {
	return stumpy.L.New(
		stumpy.L.WithStumpy(stumpy.WithWriter(w)),
		logiface.WithLevel[*stumpy.Event](level),
	)
}

func defaultLogger() *Logger {
	return NewJSONLogger(io.Discard, logiface.LevelDisabled)
}

// logEventBufferFull records, at warning level, a slot-exhaustion rejection
// in the event store — the kind of condition a firmware image wants
// visible in its log even though the caller also receives ErrEventBufferFull.
func (s *Scheduler) logEventBufferFull(priority Priority, flag Flag) {
	s.logger.Warning().
		Uint64("priority", uint64(priority)).
		Uint64("flag", uint64(flag)).
		Log("event buffer full")
}

func (s *Scheduler) logOrphanBitCleared(priority Priority, bit Flag) {
	s.logger.Debug().
		Uint64("priority", uint64(priority)).
		Uint64("bit", uint64(bit)).
		Log("cleared orphaned status bit with no matching slot")
}

func (s *Scheduler) logTimerUnavailable(kind string, priority Priority, flag Flag) {
	s.logger.Warning().
		Str("timer", kind).
		Uint64("priority", uint64(priority)).
		Uint64("flag", uint64(flag)).
		Log("no timer slot available")
}

func (s *Scheduler) logDispatch(priority Priority, slot int, status uint32) {
	s.logger.Debug().
		Uint64("priority", uint64(priority)).
		Int("slot", slot).
		Uint64("status", uint64(status)).
		Log("dispatching event")
}

package wets

import "sync/atomic"

// Clock is the scheduler's monotonic millisecond counter, advanced only by
// the timer ISR (Scheduler.TimerISR). It and the timerFired latch are the
// only two cells both the ISR and the foreground loop touch; both are
// plain atomics rather than CriticalSection-guarded, matching spec.md §5's
// carve-out that word-aligned reads/writes don't need a critical section on
// hosts where they're atomic — which Go's atomic package guarantees on
// every supported platform.
type Clock struct {
	now32      atomic.Uint32
	now64      atomic.Uint64
	wide       bool
	timerFired atomic.Bool
	periodMs   uint32
}

func newClock(periodMs uint32, wide bool) *Clock {
	return &Clock{periodMs: periodMs, wide: wide}
}

// isr is invoked from Scheduler.TimerISR. It advances now by periodMs and
// sets the timerFired latch. With a 32-bit counter (the default, and the
// literal spec.md contract) this wraps every 2^32 ms, about 49.7 days; see
// deadline for how that wraparound propagates into timer comparisons.
func (c *Clock) isr() {
	if c.wide {
		c.now64.Add(uint64(c.periodMs))
	} else {
		c.now32.Add(c.periodMs)
	}
	c.timerFired.Store(true)
}

// Now returns the current millisecond counter.
func (c *Clock) Now() uint64 {
	if c.wide {
		return c.now64.Load()
	}
	return uint64(c.now32.Load())
}

// consumeFired atomically clears and returns the timerFired latch. Called
// only from the foreground loop, never the ISR, per spec.md §4.5.
func (c *Clock) consumeFired() bool {
	return c.timerFired.CompareAndSwap(true, false)
}

// deadline computes an absolute deadline ms milliseconds from now, in the
// same width as the counter itself. In the default 32-bit mode this means
// the addition can itself wrap, so a timer armed just before a wraparound
// gets a deadline just after it — reproducing, deliberately, the documented
// "now >= deadline" wraparound limitation of spec.md §4.3/§9 rather than
// papering over it. WithWideClock opts into a 64-bit counter where this is
// not a practical concern.
func (c *Clock) deadline(ms uint32) uint64 {
	if c.wide {
		return c.now64.Load() + uint64(ms)
	}
	return uint64(c.now32.Load() + ms)
}

// deadlineFrom computes an absolute deadline period milliseconds after
// from, in the counter's native width, with the same deliberate wraparound
// behavior as deadline. Used to rearm a cyclic timer relative to the now
// value its sweep was run with, rather than re-reading the live counter.
func (c *Clock) deadlineFrom(from uint64, period uint32) uint64 {
	if c.wide {
		return from + uint64(period)
	}
	return uint64(uint32(from) + period)
}

func (c *Clock) reset() {
	c.now32.Store(0)
	c.now64.Store(0)
	c.timerFired.Store(false)
}

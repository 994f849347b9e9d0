package wets

import (
	"context"
	"time"
)

// SleepPrimitive is the low-power wait-for-interrupt hook the foreground
// loop blocks on while idle: USE_LOW_POWER_MODE's wfi() in spec.md §4.4.
// Wait must return as soon as possible after any of a signal arriving on
// wake (sent by TimerISR, Stop, or a callback's re-posted flags) or ctx
// being cancelled — whichever comes first.
type SleepPrimitive interface {
	Wait(ctx context.Context, wake <-chan struct{})
}

// channelSleep is the default SleepPrimitive when USE_LOW_POWER_MODE is
// enabled (the default): it blocks on wake or ctx, the same pattern the
// teacher's eventloop uses for its fastWakeupCh (eventloop/loop.go).
type channelSleep struct{}

func (channelSleep) Wait(ctx context.Context, wake <-chan struct{}) {
	select {
	case <-wake:
	case <-ctx.Done():
	}
}

// busyPollSleep is the SleepPrimitive selected when WithLowPowerMode(false)
// is in effect and no explicit WithSleepPrimitive was given: it returns
// immediately instead of blocking, so the loop spins back into its scan
// rather than waiting for an interrupt. This mirrors
// !USE_LOW_POWER_MODE's effect in the original — the wfi() call is
// simply never made — at the cost of busy-waiting the CPU instead of
// letting it idle.
type busyPollSleep struct{}

func (busyPollSleep) Wait(context.Context, <-chan struct{}) {}

// Run executes the cooperative dispatch loop until ctx is cancelled or
// Stop is called. Run runs at most once: a concurrent second call returns
// ErrSchedulerAlreadyRunning and a call after it returns gets
// ErrSchedulerStopped. Run transitions the scheduler from stateNew to
// stateRunning and, on return, to stateStopped.
//
// Each iteration is: drain any timer work latched since the last
// iteration, then scan priority banks from 0 (highest) to
// priorities-1 (lowest), MSB-first within each bank, dispatching at most
// one event before restarting the scan from priority 0 — the same
// run-to-completion, snapshot-zero-dispatch-restore sequence as
// WETS_loop in _examples/original_source/wets-event.c. When no bank has
// any event armed, the loop invokes the configured sleep hooks and blocks
// on the sleep primitive until woken.
func (s *Scheduler) Run(ctx context.Context) error {
	if !s.state.tryTransition(stateNew, stateRunning) {
		switch s.state.load() {
		case stateRunning:
			return ErrSchedulerAlreadyRunning
		default:
			return ErrSchedulerStopped
		}
	}
	defer s.state.store(stateStopped)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-s.stopCh:
			cancel()
		case <-runCtx.Done():
		}
	}()

	for {
		if runCtx.Err() != nil {
			return nil
		}

		s.drainTimers()

		if s.dispatchOne() {
			continue
		}

		if runCtx.Err() != nil {
			return nil
		}

		s.cfg.beforeSleep()
		s.cfg.sleep.Wait(runCtx, s.wake)
		s.cfg.afterWakeup()

		if s.metrics != nil {
			s.metrics.IdleCycles.Add(1)
		}
	}
}

// drainTimers consumes the timer-fired latch, if set, and sweeps the delay
// and cyclic tables exactly once. It must only ever be called from the
// foreground loop.
func (s *Scheduler) drainTimers() {
	if !s.clock.consumeFired() {
		return
	}
	s.cs.Enter()
	defer s.cs.Leave()
	now := s.clock.Now()
	s.updateDelayEventsLocked(now)
	s.updateCyclicEventsLocked(now)
}

// dispatchOne performs one MSB-first, priority-ordered scan-and-dispatch
// pass. It returns true if an event was dispatched (the caller should
// immediately restart its scan at priority 0), or false if every bank was
// empty.
func (s *Scheduler) dispatchOne() bool {
	for p := Priority(0); p < s.cfg.priorities; p++ {
		b := s.bank(p)

		s.cs.Enter()
		idx, _, found := b.mostImportantLocked(func(orphan Flag) {
			if s.metrics != nil {
				s.metrics.OrphanBitsCleared.Add(1)
			}
			s.logOrphanBitCleared(p, orphan)
		})
		if !found {
			s.cs.Leave()
			continue
		}

		cb := b.slots[idx].cb
		// Per spec.md §4.2 step 1 (WETS_loop, wets-event.c:252-257): snapshot
		// and zero the *whole* bank status, not just the dispatched bit.
		// Only the dispatched slot is freed; every other currently-armed
		// slot's flag stays set in its slot even though its status bit is
		// now gone — an orphaned slot, intentionally, until the callback's
		// return value re-posts that bit (see applyCallbackResult).
		statusAtDispatch := b.status.Load()
		b.slots[idx] = eventSlot{flag: NoEvent}
		b.status.Store(0)
		s.logDispatch(p, idx, statusAtDispatch)
		s.cs.Leave()

		if s.metrics != nil {
			s.metrics.Dispatches.Add(1)
		}

		result := cb(statusAtDispatch)
		if result != 0 {
			s.applyCallbackResult(p, result)
		}
		return true
	}
	return false
}

// applyCallbackResult ORs a callback's non-zero return value back into its
// bank's status word directly, without creating a slot — this is the
// mechanism spec.md §9 identifies as the source of orphaned status bits,
// preserved here because clearing it would change the scheduler's
// observable re-trigger semantics for callbacks that rely on it.
func (s *Scheduler) applyCallbackResult(priority Priority, result uint32) {
	b := s.bank(priority)
	s.cs.Enter()
	b.status.Store(b.status.Load() | result)
	s.cs.Leave()
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Stop requests that Run return at its next opportunity. It is safe to
// call from any goroutine, including from within an event callback.
func (s *Scheduler) Stop() error {
	switch s.state.load() {
	case stateNew:
		return ErrSchedulerNotRunning
	case stateStopped:
		return nil
	}
	s.stopOnce.Do(func() {
		close(s.stopCh)
	})
	select {
	case s.wake <- struct{}{}:
	default:
	}
	return nil
}

// TimerISR is the single asynchronous preemptor in this design: the one
// function meant to be invoked from an actual hardware interrupt handler
// (or a time.Ticker standing in for one off real hardware). It must be
// called roughly every ISRPeriod; it only ever touches the monotonic clock
// and the wake channel, never the event, delay, or cyclic tables directly,
// keeping the ISR side of spec.md §5's concurrency contract trivially
// correct.
func (s *Scheduler) TimerISR() {
	s.clock.isr()
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// ISRPeriod returns the configured period TimerISR is expected to be
// invoked at (WithISRPeriod, default 5ms).
func (s *Scheduler) ISRPeriod() time.Duration {
	return time.Duration(s.cfg.isrPeriodMs) * time.Millisecond
}

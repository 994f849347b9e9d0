// Package wets implements a cooperative, priority-banked event scheduler
// for the kind of run-to-completion main loop a bare-metal microcontroller
// firmware image runs: init once, register callbacks, then service events
// by strict priority until power-off.
//
// # Architecture
//
// A [Scheduler] owns three fixed-capacity tables and a monotonic clock:
//
//   - an event store: one [EventBank] per priority level, each a 32-slot
//     table plus an OR-reduced status word, so the highest-priority
//     highest-bit event can be located in O(1)+O(32) without scanning
//     every slot's flag individually;
//   - a delay table of fixed-capacity one-shot timers;
//   - a cyclic table of fixed-capacity periodic timers;
//   - a [Clock], advanced only by [Scheduler.TimerISR], the single entry
//     point an external hardware timer driver is expected to call on a
//     fixed period.
//
// [Scheduler.Run] is the non-returning dispatcher: each iteration it scans
// priority banks from 0 (highest) to the configured maximum, dispatches the
// single highest-priority/MSB-first pending event to completion, and
// restarts the scan. When no bank has pending events it calls the
// before-sleep hook, blocks on the configured [SleepPrimitive], calls the
// after-wakeup hook, and — if the ISR has fired since the last check —
// drains the delay and cyclic tables, which may post events back into the
// store.
//
// # Concurrency
//
// Exactly one asynchronous preemptor exists: the timer ISR
// ([Scheduler.TimerISR]), which only ever touches the clock. Every other
// mutation — arming, removing, or dispatching an event or timer — happens
// on the foreground goroutine that calls [Scheduler.Run], serialized by a
// [CriticalSection] the same way disabling the hardware timer interrupt
// would serialize access on real hardware. No event callback is ever
// preempted by another callback.
//
// # Usage
//
//	s, err := wets.New(wets.WithPriorityLevels(2))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := s.AddEvent(func(status uint32) uint32 {
//	    fmt.Println("handled", status)
//	    return 0
//	}, 0, 0x1); err != nil {
//	    log.Fatal(err)
//	}
//
//	go func() {
//	    t := time.NewTicker(s.ISRPeriod())
//	    defer t.Stop()
//	    for range t.C {
//	        s.TimerISR()
//	    }
//	}()
//
//	if err := s.Run(context.Background()); err != nil {
//	    log.Println("scheduler stopped:", err)
//	}
package wets

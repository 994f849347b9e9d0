// Command wetsdemo is a host-side stand-in for a firmware main loop built
// on wets.Scheduler. It arms one immediate event, one one-shot delay, and
// one periodic cyclic timer across two priority levels, drives TimerISR
// from a goroutine standing in for a hardware timer interrupt, and runs
// until a context timeout.
//
// Run with: go run ./cmd/wetsdemo
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joeycumines/logiface"

	wets "github.com/joeycumines/go-wets"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	s, err := wets.New(
		wets.WithPriorityLevels(2),
		wets.WithISRPeriod(5*time.Millisecond),
		wets.WithMetrics(true),
		wets.WithLogger(wets.NewJSONLogger(os.Stderr, logiface.LevelWarning)),
		wets.WithSleepHooks(
			func() { fmt.Println("wetsdemo: entering idle, awaiting ISR") },
			func() { fmt.Println("wetsdemo: woken from idle") },
		),
	)
	if err != nil {
		panic(err)
	}

	const (
		flagButton    wets.Flag = 1 << 0
		flagUartRx    wets.Flag = 1 << 1
		flagHeartbeat wets.Flag = 1 << 2
	)

	if err := s.AddEvent(func(flag uint32) uint32 {
		fmt.Printf("wetsdemo: priority-0 immediate event fired, flag=%#x\n", flag)
		return 0
	}, 0, flagButton); err != nil {
		panic(err)
	}

	if err := s.AddDelay(func(flag uint32) uint32 {
		fmt.Printf("wetsdemo: priority-0 delay fired, flag=%#x, now=%dms\n", flag, s.Now())
		return 0
	}, 0, flagUartRx, 50); err != nil {
		panic(err)
	}

	if err := s.AddCyclic(func(flag uint32) uint32 {
		fmt.Printf("wetsdemo: priority-1 heartbeat fired, flag=%#x, now=%dms\n", flag, s.Now())
		return 0
	}, 1, flagHeartbeat, 200); err != nil {
		panic(err)
	}

	// Stands in for the hardware timer driver: a real port would instead
	// register s.TimerISR as the interrupt handler for a free-running
	// timer programmed for s.ISRPeriod().
	go func() {
		ticker := time.NewTicker(s.ISRPeriod())
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.TimerISR()
			case <-ctx.Done():
				return
			}
		}
	}()

	if err := s.Run(ctx); err != nil {
		fmt.Printf("wetsdemo: scheduler exited with error: %v\n", err)
	}

	if snap, ok := s.Metrics(); ok {
		fmt.Printf("wetsdemo: dispatches=%d delayExpiries=%d cyclicExpiries=%d idleCycles=%d\n",
			snap.Dispatches, snap.DelayExpiries, snap.CyclicExpiries, snap.IdleCycles)
	}
}

package wets

import "sync"

// CriticalSection is the platform hook for spec.md's "critical section"
// discipline: the smallest region during which the timer ISR must not be
// allowed to preempt. On real hardware this is a disable/enable of the
// timer interrupt (or a global interrupt mask); on a hosted build it is a
// mutex, since there is no interrupt to mask — the mutex instead excludes
// the goroutine standing in for the ISR driver.
//
// Implementations MUST NOT block indefinitely inside Enter: on real
// hardware this runs with interrupts already partially masked.
type CriticalSection interface {
	Enter()
	Leave()
}

// mutexCriticalSection is the default, hosted-build CriticalSection.
type mutexCriticalSection struct {
	mu sync.Mutex
}

func (c *mutexCriticalSection) Enter() { c.mu.Lock() }
func (c *mutexCriticalSection) Leave() { c.mu.Unlock() }

func newMutexCriticalSection() CriticalSection {
	return &mutexCriticalSection{}
}

package wets

import "sync"

// Scheduler is a cooperative, priority-banked, run-to-completion event
// dispatcher: the Go rendering of WETS, Warcomeb's Easy Task Scheduler.
// Exactly one foreground goroutine should call Run; exactly one other
// source (typically a time.Ticker standing in for a hardware timer
// interrupt) should call TimerISR. Every other exported method may be
// called from any goroutine, including from within an event callback
// running on the Run goroutine.
//
// A Scheduler must be built with New and used once: Run returns
// ErrSchedulerAlreadyRunning or ErrSchedulerStopped on a second call.
type Scheduler struct {
	cfg *config

	banks []*EventBank

	delays         *delayTable
	delayCallbacks []Callback

	cyclics         *cyclicTable
	cyclicCallbacks []Callback

	clock *Clock
	cs    CriticalSection

	state    atomicState
	stopCh   chan struct{}
	stopOnce sync.Once
	wake     chan struct{}

	logger  *Logger
	metrics *Metrics
}

// New builds a Scheduler from the given Options. It returns ErrWrongParams
// if any option's value is invalid.
func New(opts ...Option) (*Scheduler, error) {
	cfg, err := resolveOptions(opts)
	if err != nil {
		return nil, err
	}

	s := &Scheduler{
		cfg:             cfg,
		banks:           make([]*EventBank, cfg.priorities),
		delays:          newDelayTable(cfg.delaySlots),
		delayCallbacks:  make([]Callback, cfg.delaySlots),
		cyclics:         newCyclicTable(cfg.cyclicSlots),
		cyclicCallbacks: make([]Callback, cfg.cyclicSlots),
		clock:           newClock(cfg.isrPeriodMs, cfg.wideClock),
		cs:              cfg.criticalSection,
		stopCh:          make(chan struct{}),
		wake:            make(chan struct{}, 1),
		logger:          cfg.logger,
	}
	for i := range s.banks {
		s.banks[i] = newEventBank()
	}
	if cfg.metricsEnabled {
		s.metrics = &Metrics{}
	}
	if cfg.sleep == nil {
		// USE_LOW_POWER_MODE gates which default wait strategy applies;
		// an explicit WithSleepPrimitive always overrides both.
		if cfg.lowPower {
			cfg.sleep = channelSleep{}
		} else {
			cfg.sleep = busyPollSleep{}
		}
	}

	return s, nil
}

// Logger returns the scheduler's configured logger.
func (s *Scheduler) Logger() *Logger {
	return s.logger
}

// Now returns the scheduler's current millisecond clock value, as last
// advanced by TimerISR.
func (s *Scheduler) Now() uint64 {
	return s.clock.Now()
}

package engine

// State is one of the three circuit states.
type State int32

const (
	// StateClosed is the normal-operation state: requests pass through and
	// failures accumulate against the threshold.
	StateClosed State = iota

	// StateOpen is the tripped state: Allow() short-circuits every caller
	// until the deadline elapses.
	StateOpen

	// StateHalfOpen is the probing state: a single trial request is
	// admitted to test recovery.
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// snapshot is the immutable triple (state, counter, deadline) held behind a
// single atomic.Pointer on Breaker. It is never mutated in place — every
// transition constructs a new snapshot and CASes it in wholesale, so a
// reader either sees the pre- or post-transition snapshot in full, never a
// torn mix of the two.
//
//   - CLOSED:    counter is a live SlidingWindowCounter, deadlineNanos == 0.
//   - OPEN:      counter is the no-op counter, deadlineNanos = opened-at + circuitOpenWindow.
//   - HALF_OPEN: counter is the no-op counter, deadlineNanos = entered-at + trialRequestInterval.
type snapshot struct {
	state         State
	counter       Counter
	deadlineNanos int64
}

// checkTimeout reports whether this snapshot's deadline has elapsed as of
// now. A zero deadline (CLOSED) never times out.
func (s *snapshot) checkTimeout(now int64) bool {
	return s.deadlineNanos > 0 && s.deadlineNanos <= now
}

// newClosedState builds a fresh CLOSED snapshot with a new sliding-window
// counter sized from cfg.
func newClosedState(clock Clock, cfg *Config) *snapshot {
	return &snapshot{
		state:   StateClosed,
		counter: NewSlidingWindowCounter(clock, int64(cfg.CounterSlidingWindow), int64(cfg.CounterUpdateInterval)),
	}
}

// newOpenState builds a fresh OPEN snapshot with a deadline circuitOpenWindow
// past now.
func newOpenState(now int64, cfg *Config) *snapshot {
	return &snapshot{
		state:         StateOpen,
		counter:       noopCounter{},
		deadlineNanos: now + int64(cfg.CircuitOpenWindow),
	}
}

// newHalfOpenState builds a fresh HALF_OPEN snapshot with a deadline
// trialRequestInterval past now.
func newHalfOpenState(now int64, cfg *Config) *snapshot {
	return &snapshot{
		state:         StateHalfOpen,
		counter:       noopCounter{},
		deadlineNanos: now + int64(cfg.TrialRequestInterval),
	}
}

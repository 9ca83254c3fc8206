package engine

import "sync/atomic"

// Breaker is a lock-free circuit breaker. It owns a single atomic pointer to
// the current snapshot; every operation either reads that pointer or CASes a
// freshly constructed snapshot into it. There is no lock anywhere in the hot
// path, and no background goroutine: time only advances when a caller's
// clock read notices it has.
//
// The zero Breaker is not usable; construct one with New.
type Breaker struct {
	cfg     atomic.Pointer[Config]
	current atomic.Pointer[snapshot]
}

// New constructs a Breaker in StateClosed from cfg. cfg is validated and
// defaulted by NewConfig before this is called in the common path (see the
// root package's New), but New itself trusts cfg is already valid.
func New(cfg *Config) *Breaker {
	b := &Breaker{}
	b.cfg.Store(cfg)
	b.current.Store(newClosedState(cfg.Clock, cfg))
	return b
}

// Config returns the breaker's currently active configuration. The returned
// value is immutable; a concurrent UpdateConfig swaps in a different *Config
// entirely rather than mutating this one.
func (b *Breaker) Config() *Config {
	return b.cfg.Load()
}

// Name returns the breaker's name, fixed at construction.
func (b *Breaker) Name() string {
	return b.cfg.Load().Name
}

// State returns the current circuit state. It is a point-in-time read: the
// state may change the instant after this returns.
func (b *Breaker) State() State {
	return b.current.Load().state
}

// Allow reports whether a new request may proceed. Exactly one caller per
// elapsed deadline observes the OPEN->HALF_OPEN (or HALF_OPEN->HALF_OPEN,
// refreshed) "trial granted" edge; every other concurrent caller sees false.
// In CLOSED every caller is allowed.
func (b *Breaker) Allow() bool {
	cfg := b.cfg.Load()
	s := b.current.Load()

	switch s.state {
	case StateClosed:
		return true

	case StateOpen, StateHalfOpen:
		now := cfg.Clock.Now()
		if !s.checkTimeout(now) {
			return false
		}
		fresh := newHalfOpenState(now, cfg)
		if b.current.CompareAndSwap(s, fresh) {
			cfg.Logger.Transition(cfg.Name, s.state, StateHalfOpen)
			return true
		}
		// Lost the race: some other caller already advanced the deadline
		// (or the state). Not our trial to grant.
		return false

	default:
		panic("tripwire: unreachable circuit state")
	}
}

// Success reports a successful call outcome.
func (b *Breaker) Success() {
	cfg := b.cfg.Load()
	s := b.current.Load()

	switch s.state {
	case StateClosed:
		s.counter.OnSuccess()

	case StateHalfOpen:
		fresh := newClosedState(cfg.Clock, cfg)
		if b.current.CompareAndSwap(s, fresh) {
			cfg.Logger.Transition(cfg.Name, s.state, StateClosed)
		}
		// Lost the race: another outcome already moved the state past this
		// trial. This success report is stale; drop it.

	case StateOpen:
		// Stale: a result arriving after the circuit has already tripped
		// open must not re-close it without passing through HALF_OPEN.
	}
}

// Fail reports a failed call outcome with no classified cause. It always
// counts the failure: unlike FailWithCause, it never consults CauseFilter.
func (b *Breaker) Fail() {
	b.failInternal()
}

// FailWithCause reports a failed call outcome whose cause can be classified
// by the configured CauseFilter. If the filter rejects the cause (or panics,
// which is treated as rejection), the failure is not counted at all.
func (b *Breaker) FailWithCause(cause error) {
	cfg := b.cfg.Load()
	if !safeFilter(cfg.CauseFilter, cause, cfg.Name, cfg.Logger) {
		return
	}
	b.failInternal()
}

func (b *Breaker) failInternal() {
	cfg := b.cfg.Load()
	s := b.current.Load()

	switch s.state {
	case StateClosed:
		s.counter.OnFailure()
		if exceedsThreshold(cfg, s.counter.Count()) {
			fresh := newOpenState(cfg.Clock.Now(), cfg)
			if b.current.CompareAndSwap(s, fresh) {
				cfg.Logger.Transition(cfg.Name, s.state, StateOpen)
			}
		}

	case StateHalfOpen:
		fresh := newOpenState(cfg.Clock.Now(), cfg)
		if b.current.CompareAndSwap(s, fresh) {
			cfg.Logger.Transition(cfg.Name, s.state, StateOpen)
		}

	case StateOpen:
		// Already tripped; nothing to do.
	}
}

// exceedsThreshold implements the trip predicate: trip iff there have been
// any observations, at least MinimumRequestThreshold of them, and the
// observed failure rate strictly exceeds FailureRateThreshold.
func exceedsThreshold(cfg *Config, c EventCount) bool {
	total := c.Total()
	return total > 0 &&
		total >= cfg.MinimumRequestThreshold &&
		c.FailureRate() > cfg.FailureRateThreshold
}

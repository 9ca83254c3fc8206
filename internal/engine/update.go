package engine

import "time"

// ConfigUpdate describes a partial runtime change to a Breaker's Config.
// Nil fields leave the corresponding Config field untouched; only non-nil
// fields are applied. Validation runs against the resulting merged Config
// before anything is swapped in, so a rejected update changes nothing.
type ConfigUpdate struct {
	FailureRateThreshold    *float64
	MinimumRequestThreshold *uint64
	CircuitOpenWindow       *time.Duration
	TrialRequestInterval    *time.Duration
	CounterSlidingWindow    *time.Duration
	CounterUpdateInterval   *time.Duration
	CauseFilter             *CauseFilter
}

// UpdateConfig atomically replaces the breaker's Config with the result of
// merging update onto the current one. It never partially applies an
// invalid update: NewConfig validates the merged result first, and if that
// fails, UpdateConfig returns the error and leaves the breaker untouched.
//
// A changed CounterSlidingWindow or CounterUpdateInterval only takes effect
// the next time a fresh CLOSED counter is constructed (on the next
// CLOSED-state transition); it does not retroactively resize a counter
// that's already accumulating, since that counter is an immutable part of
// the current snapshot.
func (b *Breaker) UpdateConfig(update ConfigUpdate) error {
	old := b.cfg.Load()
	merged := *old

	if update.FailureRateThreshold != nil {
		merged.FailureRateThreshold = *update.FailureRateThreshold
	}
	if update.MinimumRequestThreshold != nil {
		merged.MinimumRequestThreshold = *update.MinimumRequestThreshold
	}
	if update.CircuitOpenWindow != nil {
		merged.CircuitOpenWindow = *update.CircuitOpenWindow
	}
	if update.TrialRequestInterval != nil {
		merged.TrialRequestInterval = *update.TrialRequestInterval
	}
	if update.CounterSlidingWindow != nil {
		merged.CounterSlidingWindow = *update.CounterSlidingWindow
	}
	if update.CounterUpdateInterval != nil {
		merged.CounterUpdateInterval = *update.CounterUpdateInterval
	}
	if update.CauseFilter != nil {
		merged.CauseFilter = *update.CauseFilter
	}

	validated, err := NewConfig(merged)
	if err != nil {
		return err
	}
	// NewConfig would otherwise mint a fresh name/logger/clock/generator for
	// zero-valued fields; since merged started from a fully-populated
	// Config, none of those fields are zero, so nothing is silently
	// reassigned here. Swap the validated copy in wholesale.
	b.cfg.Store(validated)
	return nil
}

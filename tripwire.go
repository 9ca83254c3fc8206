// Package tripwire implements a lock-free circuit breaker for protecting
// calls to a remote or otherwise unreliable dependency.
//
// A Breaker sits in front of calls to a downstream service. Callers ask
// Allow before issuing a call, and report the outcome afterward with
// Success, Fail, or FailWithCause. The breaker tracks a time-windowed
// failure rate while CLOSED, trips to OPEN once the rate exceeds
// FailureRateThreshold, and periodically grants a single HALF_OPEN trial
// request to probe recovery.
//
// Every state transition is a single compare-and-swap on an immutable
// snapshot; there is no lock and no background goroutine anywhere in the
// package.
package tripwire

import (
	"time"

	"github.com/tripwire-go/tripwire/internal/engine"
)

// State is one of the three circuit states.
type State = engine.State

const (
	StateClosed   = engine.StateClosed
	StateOpen     = engine.StateOpen
	StateHalfOpen = engine.StateHalfOpen
)

// EventCount is an immutable success/failure tally over some window.
type EventCount = engine.EventCount

// CauseFilter classifies a reported failure cause; true counts it toward
// the failure rate. A nil filter accepts every cause. A panicking filter is
// treated as having returned false.
type CauseFilter = engine.CauseFilter

// Clock is the time source a Breaker reads from. Defaults to the system
// clock; override in tests to advance time deterministically.
type Clock = engine.Clock

// Logger receives state-transition and filter-fault events.
type Logger = engine.Logger

// NoopLogger discards every event.
type NoopLogger = engine.NoopLogger

// NameGenerator mints a name for a breaker constructed without one.
type NameGenerator = engine.NameGenerator

// ConfigUpdate describes a partial runtime change to a Breaker's Config.
type ConfigUpdate = engine.ConfigUpdate

// Snapshot is a point-in-time observability view over a Breaker.
type Snapshot = engine.Snapshot

// ErrInvalidConfig wraps every validation failure returned by New.
var ErrInvalidConfig = engine.ErrInvalidConfig

// Config is the immutable parameter bundle a Breaker is built from. Pass it
// to New or MustNew, which validate it and fill in defaults.
type Config struct {
	Name                    string
	FailureRateThreshold    float64
	MinimumRequestThreshold uint64
	CircuitOpenWindow       time.Duration
	TrialRequestInterval    time.Duration
	CounterSlidingWindow    time.Duration
	CounterUpdateInterval   time.Duration
	CauseFilter             CauseFilter
	Clock                   Clock
	Logger                  Logger
	NameGenerator           NameGenerator
}

func (c Config) toEngine() engine.Config {
	return engine.Config{
		Name:                    c.Name,
		FailureRateThreshold:    c.FailureRateThreshold,
		MinimumRequestThreshold: c.MinimumRequestThreshold,
		CircuitOpenWindow:       c.CircuitOpenWindow,
		TrialRequestInterval:    c.TrialRequestInterval,
		CounterSlidingWindow:    c.CounterSlidingWindow,
		CounterUpdateInterval:   c.CounterUpdateInterval,
		CauseFilter:             c.CauseFilter,
		Clock:                   c.Clock,
		Logger:                  c.Logger,
		NameGenerator:           c.NameGenerator,
	}
}

// Breaker is a lock-free circuit breaker. Construct one with New or MustNew.
type Breaker struct {
	eng *engine.Breaker
}

// New validates cfg, applies defaults, and returns a Breaker in StateClosed.
// Construction errors (an out-of-range threshold, a non-positive duration)
// are returned rather than panicked, since they're routinely the result of
// config loaded from an external source rather than a literal in code.
func New(cfg Config) (*Breaker, error) {
	validated, err := engine.NewConfig(cfg.toEngine())
	if err != nil {
		return nil, err
	}
	return &Breaker{eng: engine.New(validated)}, nil
}

// MustNew is New, but panics instead of returning an error. Convenient for
// package-level breakers built from a literal Config known at compile time.
func MustNew(cfg Config) *Breaker {
	b, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return b
}

// Name returns the breaker's name.
func (b *Breaker) Name() string { return b.eng.Name() }

// State returns the current circuit state.
func (b *Breaker) State() State { return b.eng.State() }

// Allow reports whether a new request may proceed.
func (b *Breaker) Allow() bool { return b.eng.Allow() }

// Success reports a successful call outcome.
func (b *Breaker) Success() { b.eng.Success() }

// Fail reports a failed call outcome with no classified cause.
func (b *Breaker) Fail() { b.eng.Fail() }

// FailWithCause reports a failed call outcome whose cause can be classified
// by the configured CauseFilter.
func (b *Breaker) FailWithCause(cause error) { b.eng.FailWithCause(cause) }

// UpdateConfig atomically applies a partial configuration change.
func (b *Breaker) UpdateConfig(update ConfigUpdate) error { return b.eng.UpdateConfig(update) }

// Snapshot returns the breaker's current observability view.
func (b *Breaker) Snapshot() Snapshot { return b.eng.Snapshot() }

// Config returns the breaker's currently active configuration. The result
// reflects the most recent UpdateConfig call, if any.
func (b *Breaker) Config() Config {
	eng := b.eng.Config()
	return Config{
		Name:                    eng.Name,
		FailureRateThreshold:    eng.FailureRateThreshold,
		MinimumRequestThreshold: eng.MinimumRequestThreshold,
		CircuitOpenWindow:       eng.CircuitOpenWindow,
		TrialRequestInterval:    eng.TrialRequestInterval,
		CounterSlidingWindow:    eng.CounterSlidingWindow,
		CounterUpdateInterval:   eng.CounterUpdateInterval,
		CauseFilter:             eng.CauseFilter,
		Clock:                   eng.Clock,
		Logger:                  eng.Logger,
		NameGenerator:           eng.NameGenerator,
	}
}

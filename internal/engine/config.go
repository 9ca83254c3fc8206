package engine

import (
	"errors"
	"fmt"
	"time"
)

// CauseFilter classifies a reported failure cause, returning true if it
// should count toward the failure-rate threshold. A nil CauseFilter accepts
// every cause. A filter that panics is treated as if it had returned false
// (see panicsafe.go) — a broken filter must never trip the breaker on its
// own account.
type CauseFilter func(cause error) bool

// Config is the immutable parameter bundle consumed by a Breaker. Build one
// with NewConfig, which validates and fills in defaults; the zero Config is
// not valid on its own.
type Config struct {
	// Name identifies the breaker in log lines. If empty, NewConfig assigns
	// one via NameGenerator at construction time.
	Name string

	// FailureRateThreshold is the failure rate that, once exceeded (strictly,
	// not met), trips CLOSED -> OPEN. Must be in (0, 1].
	FailureRateThreshold float64

	// MinimumRequestThreshold is the minimum number of observations in the
	// current window before the failure rate is evaluated at all. Guards
	// against tripping on a handful of unlucky early requests.
	MinimumRequestThreshold uint64

	// CircuitOpenWindow is how long the breaker stays OPEN before a trial
	// request is admitted.
	CircuitOpenWindow time.Duration

	// TrialRequestInterval is how long a HALF_OPEN trial is given to
	// resolve (via Success/Fail) before another trial is granted.
	TrialRequestInterval time.Duration

	// CounterSlidingWindow is the total length of the CLOSED-state rolling
	// failure-rate window.
	CounterSlidingWindow time.Duration

	// CounterUpdateInterval is the bucket size within CounterSlidingWindow.
	// Must be > 0 and <= CounterSlidingWindow.
	CounterUpdateInterval time.Duration

	// CauseFilter classifies failure causes reported via FailWithCause.
	CauseFilter CauseFilter

	// Clock is the time source. Defaults to SystemClock.
	Clock Clock

	// Logger receives state-transition and filter-fault events. Defaults to
	// a zerolog-backed sink; pass NoopLogger{} to silence it.
	Logger Logger

	// NameGenerator mints a name when Name is empty. Defaults to a
	// uuid-backed generator.
	NameGenerator NameGenerator
}

// ErrInvalidConfig wraps every validation failure raised by NewConfig.
var ErrInvalidConfig = errors.New("tripwire: invalid config")

const (
	defaultFailureRateThreshold    = 0.05
	defaultMinimumRequestThreshold = 20
	defaultCircuitOpenWindow       = 60 * time.Second
	defaultTrialRequestInterval    = 60 * time.Second
	defaultCounterSlidingWindow    = 60 * time.Second
	defaultCounterUpdateInterval   = time.Second
)

// NewConfig validates cfg, fills in zero-valued fields with defaults, and
// returns an immutable copy. Construction-time errors (bad thresholds,
// bad durations) are a distinct, fatal-to-this-breaker error kind — they
// are never retried or defaulted away silently.
func NewConfig(cfg Config) (*Config, error) {
	out := cfg

	if out.FailureRateThreshold == 0 {
		out.FailureRateThreshold = defaultFailureRateThreshold
	}
	if out.FailureRateThreshold <= 0 || out.FailureRateThreshold > 1 {
		return nil, fmt.Errorf("%w: FailureRateThreshold must be in (0, 1], got %v", ErrInvalidConfig, out.FailureRateThreshold)
	}

	if out.MinimumRequestThreshold == 0 {
		out.MinimumRequestThreshold = defaultMinimumRequestThreshold
	}

	if out.CircuitOpenWindow == 0 {
		out.CircuitOpenWindow = defaultCircuitOpenWindow
	}
	if out.CircuitOpenWindow <= 0 {
		return nil, fmt.Errorf("%w: CircuitOpenWindow must be > 0, got %v", ErrInvalidConfig, out.CircuitOpenWindow)
	}

	if out.TrialRequestInterval == 0 {
		out.TrialRequestInterval = defaultTrialRequestInterval
	}
	if out.TrialRequestInterval <= 0 {
		return nil, fmt.Errorf("%w: TrialRequestInterval must be > 0, got %v", ErrInvalidConfig, out.TrialRequestInterval)
	}

	if out.CounterSlidingWindow == 0 {
		out.CounterSlidingWindow = defaultCounterSlidingWindow
	}
	if out.CounterSlidingWindow <= 0 {
		return nil, fmt.Errorf("%w: CounterSlidingWindow must be > 0, got %v", ErrInvalidConfig, out.CounterSlidingWindow)
	}

	if out.CounterUpdateInterval == 0 {
		out.CounterUpdateInterval = minDuration(defaultCounterUpdateInterval, out.CounterSlidingWindow)
	}
	if out.CounterUpdateInterval <= 0 || out.CounterUpdateInterval > out.CounterSlidingWindow {
		return nil, fmt.Errorf("%w: CounterUpdateInterval must be in (0, CounterSlidingWindow], got %v for window %v",
			ErrInvalidConfig, out.CounterUpdateInterval, out.CounterSlidingWindow)
	}

	if out.Clock == nil {
		out.Clock = SystemClock{}
	}
	if out.Logger == nil {
		out.Logger = newZerologSink()
	}
	if out.NameGenerator == nil {
		out.NameGenerator = defaultNameGenerator{}
	}
	if out.Name == "" {
		out.Name = out.NameGenerator.Generate()
	}

	return &out, nil
}

func minDuration(a, b time.Duration) time.Duration {
	if a < b {
		return a
	}
	return b
}

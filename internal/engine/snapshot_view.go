package engine

import "time"

// Snapshot is a point-in-time observability view over a Breaker, combining
// state, window counts, and a couple of forward-looking predictions into
// one value. It is built from sequential atomic reads (config, then
// current snapshot), so it is not a single torn-free instant the way the
// breaker's own state machine is — a transition landing mid-read yields a
// Snapshot pairing state from one instant with counts from another.
// Acceptable for dashboards and health checks; not for anything that needs
// linearizable accounting.
type Snapshot struct {
	Name  string
	State State
	Count EventCount

	// WillTripNext reports whether one more failure, recorded right now,
	// would trip the breaker. Only meaningful in StateClosed; always false
	// otherwise.
	WillTripNext bool

	// TimeUntilProbe is the remaining time before the breaker grants a
	// HALF_OPEN trial. Only meaningful in StateOpen; zero otherwise.
	TimeUntilProbe time.Duration
}

// Snapshot returns the breaker's current observability view.
func (b *Breaker) Snapshot() Snapshot {
	cfg := b.cfg.Load()
	s := b.current.Load()
	count := s.counter.Count()

	out := Snapshot{
		Name:  cfg.Name,
		State: s.state,
		Count: count,
	}

	if s.state == StateClosed {
		simulated := EventCount{Success: count.Success, Failure: count.Failure + 1}
		out.WillTripNext = exceedsThreshold(cfg, simulated)
	}

	if s.state == StateOpen {
		if remaining := s.deadlineNanos - cfg.Clock.Now(); remaining > 0 {
			out.TimeUntilProbe = time.Duration(remaining)
		}
	}

	return out
}

//go:build debug

package engine

import "fmt"

// validateSnapshotInvariant checks the §3 snapshot invariant: CLOSED pairs
// with a live counter and a zero deadline; OPEN and HALF_OPEN pair with the
// no-op counter and a positive deadline. Built only under the debug tag —
// it's a development aid, not something the hot path should ever pay for.
func (b *Breaker) validateSnapshotInvariant() error {
	s := b.current.Load()

	switch s.state {
	case StateClosed:
		if s.deadlineNanos != 0 {
			return fmt.Errorf("inconsistent: state=Closed but deadlineNanos=%d", s.deadlineNanos)
		}
		if _, ok := s.counter.(*SlidingWindowCounter); !ok {
			return fmt.Errorf("inconsistent: state=Closed but counter is %T, want *SlidingWindowCounter", s.counter)
		}

	case StateOpen, StateHalfOpen:
		if s.deadlineNanos <= 0 {
			return fmt.Errorf("inconsistent: state=%v but deadlineNanos=%d", s.state, s.deadlineNanos)
		}
		if _, ok := s.counter.(noopCounter); !ok {
			return fmt.Errorf("inconsistent: state=%v but counter is %T, want noopCounter", s.state, s.counter)
		}

	default:
		return fmt.Errorf("unknown state tag %d", s.state)
	}

	return nil
}

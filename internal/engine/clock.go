package engine

import "time"

// Clock yields a strictly non-decreasing nanosecond timestamp. It is the
// sole source of time for the breaker and its counters, injected at
// construction so tests can advance time deterministically instead of
// sleeping.
//
// Implementations must never regress: Now() called after an earlier Now()
// on the same Clock must return a value >= the earlier one, from any
// goroutine.
type Clock interface {
	Now() int64
}

// SystemClock is the production Clock, backed by the runtime's monotonic
// clock reading: Now reports nanoseconds elapsed since processStart.
type SystemClock struct{}

// processStart carries a monotonic clock reading; time.Since against it is
// unaffected by wall-clock adjustments.
var processStart = time.Now()

// Now returns the current monotonic time in nanoseconds.
func (SystemClock) Now() int64 {
	return int64(time.Since(processStart))
}

package engine

import (
	"os"

	"github.com/rs/zerolog"
)

// Logger receives the breaker's observability events: state transitions and
// filter faults. Implementations must be safe for concurrent use, since
// transitions can be logged from any goroutine that happens to win a CAS.
type Logger interface {
	// Transition logs a completed state change for the named breaker.
	Transition(name string, from, to State)

	// FilterPanic logs a CauseFilter recovering from a panic.
	FilterPanic(name string, recovered any)
}

// zerologSink is the default Logger, backed by a zerolog.Logger writing
// structured JSON to stderr.
type zerologSink struct {
	log zerolog.Logger
}

func newZerologSink() *zerologSink {
	return &zerologSink{log: zerolog.New(os.Stderr).With().Timestamp().Logger()}
}

func (s *zerologSink) Transition(name string, from, to State) {
	s.log.Info().
		Str("breaker", name).
		Str("from", from.String()).
		Str("to", to.String()).
		Msg("tripwire: state transition")
}

func (s *zerologSink) FilterPanic(name string, recovered any) {
	s.log.Warn().
		Str("breaker", name).
		Interface("recovered", recovered).
		Msg("tripwire: cause filter panicked, treating cause as non-failure")
}

// NoopLogger discards every event. Use it to silence a breaker entirely.
type NoopLogger struct{}

func (NoopLogger) Transition(string, State, State) {}
func (NoopLogger) FilterPanic(string, any)         {}

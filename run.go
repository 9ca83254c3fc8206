package tripwire

import "context"

// Run wraps fn with circuit breaker protection: it calls Allow, and if
// granted, calls fn and reports the outcome via Success/Fail.
//
// If the circuit refuses the call, Run returns ErrOpen without calling fn.
// If fn panics, Run counts the panic as a failure and re-panics with the
// original value once bookkeeping is done, so the caller's own recovery
// (if any) still sees the original panic.
func (b *Breaker) Run(fn func() error) error {
	if !b.Allow() {
		return ErrOpen
	}

	panicked := true
	defer func() {
		if panicked {
			b.Fail()
		}
	}()

	err := fn()
	panicked = false

	if err != nil {
		b.FailWithCause(err)
		return err
	}
	b.Success()
	return nil
}

// RunContext is Run, but returns ctx.Err() immediately without calling fn if
// ctx is already done, and does not count a post-call context cancellation
// as a success or a failure: cancellation is caller-initiated, not a signal
// about the downstream dependency's health.
func (b *Breaker) RunContext(ctx context.Context, fn func(context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !b.Allow() {
		return ErrOpen
	}

	panicked := true
	defer func() {
		if panicked {
			b.Fail()
		}
	}()

	err := fn(ctx)
	panicked = false

	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	if err != nil {
		b.FailWithCause(err)
		return err
	}
	b.Success()
	return nil
}

// ErrOpen is returned by Run/RunContext when the circuit refuses the call.
var ErrOpen = errOpen{}

type errOpen struct{}

func (errOpen) Error() string { return "tripwire: circuit open" }

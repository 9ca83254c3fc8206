package engine

import "sync/atomic"

// fakeClock is a manually-advanced Clock for deterministic tests. All
// advances happen via Advance; Now() never moves on its own, so tests never
// need time.Sleep to exercise deadline logic.
type fakeClock struct {
	nanos atomic.Int64
}

func newFakeClock() *fakeClock {
	c := &fakeClock{}
	c.nanos.Store(1) // nonzero start keeps deadlineNanos==0 unambiguous for CLOSED
	return c
}

func (c *fakeClock) Now() int64 {
	return c.nanos.Load()
}

func (c *fakeClock) Advance(d int64) {
	c.nanos.Add(d)
}

func testConfig(t interface{ Helper() }, clock Clock) *Config {
	t.Helper()
	cfg, err := NewConfig(Config{
		Name:                    "test",
		FailureRateThreshold:    0.5,
		MinimumRequestThreshold: 10,
		CircuitOpenWindow:       1_000_000_000,
		TrialRequestInterval:    1_000_000_000,
		CounterSlidingWindow:    10_000_000_000,
		CounterUpdateInterval:   1_000_000_000,
		Clock:                   clock,
		Logger:                  NoopLogger{},
	})
	if err != nil {
		panic(err)
	}
	return cfg
}

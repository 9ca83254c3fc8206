package tripwire

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

// fakeClock is a manually-advanced Clock for deterministic tests.
type fakeClock struct {
	nanos atomic.Int64
}

func newFakeClock() *fakeClock {
	c := &fakeClock{}
	c.nanos.Store(1)
	return c
}

func (c *fakeClock) Now() int64      { return c.nanos.Load() }
func (c *fakeClock) Advance(d int64) { c.nanos.Add(d) }

func testConfig(clock Clock) Config {
	return Config{
		Name:                    "test",
		FailureRateThreshold:    0.5,
		MinimumRequestThreshold: 10,
		CircuitOpenWindow:       time.Second,
		TrialRequestInterval:    time.Second,
		CounterSlidingWindow:    10 * time.Second,
		CounterUpdateInterval:  time.Second,
		Clock:                   clock,
		Logger:                  NoopLogger{},
	}
}

func TestNewValidatesConfig(t *testing.T) {
	_, err := New(Config{FailureRateThreshold: -1})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("New() error = %v, want ErrInvalidConfig", err)
	}
}

func TestMustNewPanicsOnInvalidConfig(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustNew() with invalid config did not panic")
		}
	}()
	MustNew(Config{FailureRateThreshold: -1})
}

func TestBreakerBasicLifecycle(t *testing.T) {
	clock := newFakeClock()
	b, err := New(testConfig(clock))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if b.State() != StateClosed {
		t.Fatalf("State() = %v, want StateClosed", b.State())
	}

	for i := 0; i < 4; i++ {
		b.Success()
	}
	for i := 0; i < 6; i++ {
		b.Fail()
	}

	if b.State() != StateOpen {
		t.Fatalf("State() = %v, want StateOpen", b.State())
	}
	if b.Allow() {
		t.Error("Allow() = true while OPEN, want false")
	}

	clock.Advance(int64(time.Second))
	if !b.Allow() {
		t.Fatal("Allow() = false, want true for the half-open trial")
	}
	b.Success()
	if b.State() != StateClosed {
		t.Errorf("State() = %v, want StateClosed after recovery", b.State())
	}
}

func TestUpdateConfigThroughFacade(t *testing.T) {
	clock := newFakeClock()
	b, err := New(testConfig(clock))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	threshold := 0.9
	if err := b.UpdateConfig(ConfigUpdate{FailureRateThreshold: &threshold}); err != nil {
		t.Fatalf("UpdateConfig() error = %v", err)
	}
	if got := b.Config().FailureRateThreshold; got != threshold {
		t.Errorf("Config().FailureRateThreshold = %v, want %v", got, threshold)
	}
}

func TestSnapshotThroughFacade(t *testing.T) {
	clock := newFakeClock()
	b, err := New(testConfig(clock))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	b.Success()

	snap := b.Snapshot()
	if snap.Count.Success != 1 {
		t.Errorf("Snapshot().Count.Success = %v, want 1", snap.Count.Success)
	}
}

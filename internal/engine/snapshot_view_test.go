package engine

import "testing"

func TestSnapshotReflectsState(t *testing.T) {
	clock := newFakeClock()
	b := newTestBreaker(t, clock)

	b.Success()
	b.Success()
	b.Fail()

	snap := b.Snapshot()
	if snap.State != StateClosed {
		t.Errorf("State = %v, want StateClosed", snap.State)
	}
	if snap.Count.Success != 2 || snap.Count.Failure != 1 {
		t.Errorf("Count = %+v, want {Success:2 Failure:1}", snap.Count)
	}
	if snap.Name != "test" {
		t.Errorf("Name = %q, want %q", snap.Name, "test")
	}
}

func TestSnapshotWillTripNext(t *testing.T) {
	clock := newFakeClock()
	b := newTestBreaker(t, clock)

	// threshold 0.5/10: 4 successes + 5 failures (total 9, rate ~0.556) is
	// still under the minimum request threshold, but one more failure would
	// cross both minimum and the rate threshold.
	for i := 0; i < 4; i++ {
		b.Success()
	}
	for i := 0; i < 5; i++ {
		b.Fail()
	}

	if !b.Snapshot().WillTripNext {
		t.Error("WillTripNext = false, want true with one failure away from tripping")
	}
}

func TestSnapshotWillTripNextFalseWhenNotClose(t *testing.T) {
	clock := newFakeClock()
	b := newTestBreaker(t, clock)
	b.Success()

	if b.Snapshot().WillTripNext {
		t.Error("WillTripNext = true, want false far from the threshold")
	}
}

func TestSnapshotTimeUntilProbe(t *testing.T) {
	clock := newFakeClock()
	b := newTestBreaker(t, clock)
	tripToOpen(b)

	remaining := b.Snapshot().TimeUntilProbe
	if remaining <= 0 {
		t.Errorf("TimeUntilProbe = %v, want > 0 right after tripping", remaining)
	}

	clock.Advance(int64(b.cfg.Load().CircuitOpenWindow))
	if got := b.Snapshot().TimeUntilProbe; got != 0 {
		t.Errorf("TimeUntilProbe = %v after the window elapses, want 0", got)
	}
}

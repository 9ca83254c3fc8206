package engine

import (
	"errors"
	"testing"
)

func TestSafeFilterNilFilterAccepts(t *testing.T) {
	if !safeFilter(nil, errors.New("x"), "b", NoopLogger{}) {
		t.Error("safeFilter(nil, ...) = false, want true")
	}
}

func TestSafeFilterPropagatesResult(t *testing.T) {
	accept := func(error) bool { return true }
	reject := func(error) bool { return false }

	if !safeFilter(accept, errors.New("x"), "b", NoopLogger{}) {
		t.Error("safeFilter with accepting filter = false, want true")
	}
	if safeFilter(reject, errors.New("x"), "b", NoopLogger{}) {
		t.Error("safeFilter with rejecting filter = true, want false")
	}
}

func TestSafeFilterRecoversPanic(t *testing.T) {
	panicky := func(error) bool { panic("boom") }

	got := safeFilter(panicky, errors.New("x"), "b", NoopLogger{})
	if got {
		t.Error("safeFilter with panicking filter = true, want false")
	}
}

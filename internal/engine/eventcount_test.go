package engine

import "testing"

func TestEventCountTotal(t *testing.T) {
	c := EventCount{Success: 3, Failure: 7}
	if got := c.Total(); got != 10 {
		t.Errorf("Total() = %v, want 10", got)
	}
}

func TestEventCountFailureRate(t *testing.T) {
	cases := []struct {
		name string
		c    EventCount
		want float64
	}{
		{"zero total", EventCount{}, 0},
		{"all success", EventCount{Success: 5}, 0},
		{"all failure", EventCount{Failure: 5}, 1},
		{"mixed", EventCount{Success: 3, Failure: 1}, 0.25},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.c.FailureRate(); got != tc.want {
				t.Errorf("FailureRate() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestZeroEventCount(t *testing.T) {
	if ZeroEventCount.Total() != 0 || ZeroEventCount.FailureRate() != 0 {
		t.Errorf("ZeroEventCount = %+v, want all zero", ZeroEventCount)
	}
}

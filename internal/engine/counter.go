package engine

import (
	"math"
	"sync/atomic"
)

// Counter accumulates success/failure outcomes and produces EventCount
// snapshots. Implementations must be safe for arbitrary concurrent callers.
type Counter interface {
	OnSuccess()
	OnFailure()
	Count() EventCount
}

// bucket accumulates increments for one window slice. Once sealed (rotated
// out of currentBucket), its counters are never written again — only read
// via the snapshot taken at rotation time.
type bucket struct {
	startNanos int64
	success    atomic.Uint64
	failure    atomic.Uint64
}

// sealedBucket is an immutable, already-summed bucket retained in the
// archive until it ages out of the window.
type sealedBucket struct {
	startNanos int64
	count      EventCount
}

// archive is an immutable list of sealed buckets, swapped wholesale.
type archive struct {
	buckets []sealedBucket
}

// SlidingWindowCounter aggregates success/failure counts over a rolling
// window of length `window`, split into buckets of length `bucketInterval`.
// Rotation (sealing the current bucket and merging it into the archive) is
// lock-free: readers never block, and concurrent writers racing to rotate
// resolve via CompareAndSwap on the current-bucket pointer — exactly one
// wins, the rest simply observe the freshly rotated bucket.
//
// Accuracy is approximate at bucket boundaries: an increment landing at the
// exact moment of rotation may be attributed to either the old or the new
// bucket. Skew is bounded by bucketInterval, which is the accuracy spec this
// type is held to.
type SlidingWindowCounter struct {
	clock          Clock
	window         int64 // nanoseconds
	bucketInterval int64 // nanoseconds

	current atomic.Pointer[bucket]
	sealed  atomic.Pointer[archive]
}

// NewSlidingWindowCounter creates a counter whose window and bucket size are
// given in nanoseconds (the units the Clock interface operates in).
func NewSlidingWindowCounter(clock Clock, window, bucketInterval int64) *SlidingWindowCounter {
	c := &SlidingWindowCounter{
		clock:          clock,
		window:         window,
		bucketInterval: bucketInterval,
	}
	c.current.Store(&bucket{startNanos: clock.Now()})
	c.sealed.Store(&archive{})
	return c
}

// OnSuccess records one success in the current bucket.
func (c *SlidingWindowCounter) OnSuccess() {
	c.rotateIfStale()
	c.current.Load().success.Add(1)
}

// OnFailure records one failure in the current bucket.
func (c *SlidingWindowCounter) OnFailure() {
	c.rotateIfStale()
	c.current.Load().failure.Add(1)
}

// Count returns a consistent snapshot of the window: the live current
// bucket plus every still-live archived bucket, as of "now".
func (c *SlidingWindowCounter) Count() EventCount {
	c.rotateIfStale()

	cur := c.current.Load()
	sum := EventCount{
		Success: cur.success.Load(),
		Failure: cur.failure.Load(),
	}

	now := c.clock.Now()
	cutoff := now - c.window
	for _, b := range c.sealed.Load().buckets {
		if b.startNanos >= cutoff {
			sum.Success = saturatingAdd(sum.Success, b.count.Success)
			sum.Failure = saturatingAdd(sum.Failure, b.count.Failure)
		}
	}
	return sum
}

// saturatingAdd caps at math.MaxUint64 instead of wrapping, the same
// saturation-over-overflow guarantee the teacher's safeIncrementCounter
// gives its uint32 counters — at uint64 width an actual wraparound is not a
// practical concern, but the merge step honors the guarantee anyway rather
// than silently dropping it because the happy path makes it unreachable.
func saturatingAdd(a, b uint64) uint64 {
	if a > math.MaxUint64-b {
		return math.MaxUint64
	}
	return a + b
}

// rotateIfStale seals the current bucket and starts a fresh one once at
// least bucketInterval has elapsed since the current bucket began. At most
// one concurrent caller actually performs the rotation; others retry their
// staleness check against whatever bucket is current once they lose the
// race, which is by construction fresh.
func (c *SlidingWindowCounter) rotateIfStale() {
	for {
		cur := c.current.Load()
		now := c.clock.Now()
		if now-cur.startNanos < c.bucketInterval {
			return
		}

		sealed := sealedBucket{
			startNanos: cur.startNanos,
			count: EventCount{
				Success: cur.success.Load(),
				Failure: cur.failure.Load(),
			},
		}
		fresh := &bucket{startNanos: now}

		if !c.current.CompareAndSwap(cur, fresh) {
			// Lost the race: another goroutine already rotated. Re-check
			// staleness against the new current bucket instead of assuming
			// our work is done, since a very long gap could in principle
			// require more than one rotation.
			continue
		}

		c.mergeSealed(sealed, now)
		return
	}
}

// mergeSealed appends a newly sealed bucket to the archive and drops any
// archived buckets that have aged out of the window, via CAS retry loop.
func (c *SlidingWindowCounter) mergeSealed(sealed sealedBucket, now int64) {
	cutoff := now - c.window
	for {
		old := c.sealed.Load()
		next := make([]sealedBucket, 0, len(old.buckets)+1)
		for _, b := range old.buckets {
			if b.startNanos >= cutoff {
				next = append(next, b)
			}
		}
		next = append(next, sealed)

		if c.sealed.CompareAndSwap(old, &archive{buckets: next}) {
			return
		}
	}
}

// noopCounter is the zero-cost counter used in OPEN and HALF_OPEN, where
// accounting is pointless: the breaker isn't admitting closed-state traffic
// that the rate threshold cares about.
type noopCounter struct{}

func (noopCounter) OnSuccess()        {}
func (noopCounter) OnFailure()        {}
func (noopCounter) Count() EventCount { return ZeroEventCount }

package testutil

import (
	"sync"
	"time"
)

// FixedClock is a settable clock for tests.
//
// Unlike clock.System, FixedClock only moves when told to. This pins the
// "today" seen by renewal, ticket and payment workflows.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type FixedClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFixedClock creates a clock frozen at now.
func NewFixedClock(now time.Time) *FixedClock {
	return &FixedClock{now: now}
}

// NewFixedClockOn creates a clock frozen at noon UTC on an ISO date.
// Panics on a malformed date; it is meant for test literals.
func NewFixedClockOn(date string) *FixedClock {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic("testutil: bad date literal " + date)
	}
	return NewFixedClock(d.Add(12 * time.Hour))
}

// Now returns the frozen time.
func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set moves the clock to t.
func (c *FixedClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// AdvanceDays moves the clock forward by n calendar days.
func (c *FixedClock) AdvanceDays(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.AddDate(0, 0, n)
}

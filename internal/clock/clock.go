// Package clock supplies the wall-clock reading that workflows use for
// "today". It is injected so tests can pin the date.
package clock

import (
	"time"

	"github.com/roach88/registry/internal/domain"
)

// Clock reports the current time.
type Clock interface {
	Now() time.Time
}

// System reads the local wall clock.
//
// Thread-safety: System is stateless and safe for concurrent use.
type System struct{}

// Now returns time.Now().
func (System) Now() time.Time {
	return time.Now()
}

// Today returns the calendar date of c.Now().
func Today(c Clock) time.Time {
	return domain.DateOf(c.Now())
}

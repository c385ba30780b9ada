package clock

import "time"

// Clock allows injecting time in domain/services.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

// NewSystem returns a clock backed by time.Now, in UTC and truncated to
// microseconds so values survive a round trip through the database.
func NewSystem() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return Normalize(time.Now())
}

type fixedClock struct {
	now time.Time
}

// NewFixed returns a clock that always returns the same instant (useful for tests).
func NewFixed(t time.Time) Clock {
	return fixedClock{now: Normalize(t)}
}

func (f fixedClock) Now() time.Time {
	return f.now
}

// Normalize converts t to the storage representation: UTC, microsecond precision.
func Normalize(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

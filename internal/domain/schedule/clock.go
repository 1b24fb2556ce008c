package schedule

import "time"

// Clock supplies the current time. Services take a Clock instead of calling
// time.Now directly so scheduling decisions stay reproducible in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// FixedClock always returns the same instant.
type FixedClock struct {
	T time.Time
}

func (c FixedClock) Now() time.Time {
	return c.T
}

// Fixed returns a Clock pinned to t.
func Fixed(t time.Time) Clock {
	return FixedClock{T: t}
}

package engine

import "time"

// Clock abstracts time.Now() to allow deterministic testing.
// It is used to resolve "today" for the relative date policy and to stamp
// the generated feed.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// Now returns the current local time.
func (RealClock) Now() time.Time {
	return time.Now()
}

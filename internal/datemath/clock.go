package datemath

import "time"

// Clock abstracts time.Now() to allow deterministic testing.
// Every component that needs "today" receives a Clock instead of reading
// ambient time.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// Now returns the current local time.
func (RealClock) Now() time.Time {
	return time.Now()
}

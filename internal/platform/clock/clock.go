package clock

import "time"

// Clock abstracts time to keep the stopwatch and aggregation deterministic in tests.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// Millis reads c as epoch milliseconds, the unit every session timestamp uses.
func Millis(c Clock) int64 {
	return c.Now().UnixMilli()
}

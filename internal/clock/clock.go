package clock

import "time"

// Clock supplies "now" so use cases that depend on the current day can be
// tested with a fixed time.
type Clock func() time.Time

func System() Clock {
	return time.Now
}

// Today formats the clock's current day as a booking day key.
func Today(c Clock) string {
	return c().Format("2006-01-02")
}

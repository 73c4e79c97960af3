package service

import "time"

// Clock supplies the current time. Injecting it lets tests pin the
// hour for surge-window checks.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall-clock implementation of Clock.
type SystemClock struct{}

// Now returns the current time in UTC.
func (SystemClock) Now() time.Time { return time.Now().UTC() }

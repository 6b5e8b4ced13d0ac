package audio

import "time"

// Timer is a pending callback.
type Timer interface {
	Stop() bool
}

// Timers schedules one-shot callbacks. The browser backend maps it onto
// setTimeout; tests use a manual clock.
type Timers interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// RealTimers schedules callbacks on the Go runtime timer.
type RealTimers struct{}

// AfterFunc implements Timers.
func (RealTimers) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

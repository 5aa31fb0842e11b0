package core

import "time"

// Clock supplies wall-clock time to the engine. Power-up expiry and
// survival-mode score accrual are wall-clock driven, while spawn cadence
// and laser cycling count frames; keeping the two clocks distinct makes
// both testable. Tests inject a fake clock to step time explicitly.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by time.Now.
func SystemClock() Clock {
	return systemClock{}
}

// ManualClock is a controllable clock for tests.
type ManualClock struct {
	Current time.Time
}

// NewManualClock creates a manual clock starting at the given time.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{Current: start}
}

// Now returns the clock's current time.
func (c *ManualClock) Now() time.Time {
	return c.Current
}

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) {
	c.Current = c.Current.Add(d)
}

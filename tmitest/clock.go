package tmitest

import "sync"

// Clock is a tmi.TimeKeeper a test can advance by hand, instead of
// sleeping, in the same spirit as the original library's TimeKeeper
// capability.
type Clock struct {
	mu  sync.Mutex
	now float64
}

// NewClock returns a Clock starting at t0 seconds.
func NewClock(t0 float64) *Clock {
	return &Clock{now: t0}
}

// Now implements tmi.TimeKeeper.
func (c *Clock) Now() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by seconds.
func (c *Clock) Advance(seconds float64) {
	c.mu.Lock()
	c.now += seconds
	c.mu.Unlock()
}

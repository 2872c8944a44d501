package tmi

import "time"

// TimeKeeper supplies the current time to the engine as seconds since an
// arbitrary epoch. It exists so tests can control the clock directly instead
// of sleeping; production code uses realTimeKeeper.
type TimeKeeper interface {
	Now() float64
}

// realTimeKeeper implements TimeKeeper with the system clock.
type realTimeKeeper struct{}

func (realTimeKeeper) Now() float64 {
	return float64(time.Now().UnixNano()) / float64(time.Second)
}

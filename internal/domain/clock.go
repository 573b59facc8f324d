package domain

import "github.com/jonboulle/clockwork"

// clock is the package time source: heat decay and normalization stamps read
// it instead of time.Now so tests can freeze time via SetClock.
var clock = clockwork.NewRealClock()

// SetClock swaps the package time source. Passing nil restores the real clock.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}

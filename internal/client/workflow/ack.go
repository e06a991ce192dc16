package workflow

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// acknowledgment is a flag that clears itself a fixed interval after it was
// last raised.
type acknowledgment struct {
	mu       sync.Mutex
	clock    clock.Clock
	interval time.Duration
	active   bool
	gen      uint64
	timer    *clock.Timer
}

func newAcknowledgment(c clock.Clock, interval time.Duration) *acknowledgment {
	return &acknowledgment{clock: c, interval: interval}
}

// raise turns the flag on and restarts the countdown.
func (a *acknowledgment) raise() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.timer != nil {
		a.timer.Stop()
	}
	a.gen++
	gen := a.gen
	a.active = true
	a.timer = a.clock.AfterFunc(a.interval, func() {
		a.mu.Lock()
		defer a.mu.Unlock()
		if a.gen == gen {
			a.active = false
			a.timer = nil
		}
	})
}

// clear turns the flag off immediately.
func (a *acknowledgment) clear() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.gen++
	a.active = false
}

func (a *acknowledgment) isActive() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.active
}

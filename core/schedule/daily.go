package schedule

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// Daily invokes a callback at every local midnight until stopped
type Daily struct {
	mu      sync.Mutex
	clock   clock.Clock
	fn      func()
	timer   *clock.Timer
	stopped bool
}

// NewDaily creates and arms the daily trigger
func NewDaily(clock clock.Clock, fn func()) *Daily {
	d := &Daily{
		clock: clock,
		fn:    fn,
	}

	d.mu.Lock()
	d.arm()
	d.mu.Unlock()

	return d
}

// Midnight returns the start of the local day following t
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, t.Location())
}

func (d *Daily) arm() {
	now := d.clock.Now()
	d.timer = d.clock.AfterFunc(Midnight(now).Sub(now), d.fire)
}

func (d *Daily) fire() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.arm()
	d.mu.Unlock()

	d.fn()
}

// Stop cancels the trigger. It does not wait for a running callback.
func (d *Daily) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
	}
}

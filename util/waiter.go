package util

import (
	"fmt"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// Waiter tracks the age of the latest value
type Waiter struct {
	mu      sync.Mutex
	clock   clock.Clock
	updated time.Time
	timeout time.Duration
}

// NewWaiter creates new waiter. A zero timeout disables the overdue check.
func NewWaiter(clock clock.Clock, timeout time.Duration) *Waiter {
	return &Waiter{
		clock:   clock,
		timeout: timeout,
	}
}

// Update is called when data has been received successfully
func (p *Waiter) Update() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.updated = p.clock.Now()
}

// Updated returns the time of the last update
func (p *Waiter) Updated() time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.updated
}

// Overdue returns an error if no update has been received at all or the latest one exceeds the timeout
func (p *Waiter) Overdue() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.updated.IsZero() {
		return fmt.Errorf("no initial value")
	}

	if elapsed := p.clock.Since(p.updated); p.timeout != 0 && elapsed > p.timeout {
		return fmt.Errorf("timeout: %v", elapsed.Round(time.Second))
	}

	return nil
}

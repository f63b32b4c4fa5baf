package engine

import (
	"sync"
	"time"
)

const (
	debounceDelay = 150 * time.Millisecond
	// compatDelay accommodates players whose property notifications
	// trail their actual state changes.
	compatDelay = 800 * time.Millisecond
)

// Dispatcher coalesces bursts of change notifications into a single
// downstream refresh. The first trigger after a quiet period arms one
// delayed refresh; triggers arriving while armed are absorbed.
type Dispatcher struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
	fire  func()
}

// NewDispatcher creates a dispatcher. fire runs once per armed window,
// on the timer goroutine.
func NewDispatcher(compatibility bool, fire func()) *Dispatcher {
	delay := debounceDelay
	if compatibility {
		delay = compatDelay
	}
	return &Dispatcher{delay: delay, fire: fire}
}

// Trigger arms the refresh timer, or absorbs the call if one is
// already armed.
func (d *Dispatcher) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		return
	}
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		d.timer = nil
		d.mu.Unlock()
		d.fire()
	})
}

// Stop cancels any armed refresh. Safe to call repeatedly.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

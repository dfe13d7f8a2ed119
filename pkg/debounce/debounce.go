package debounce

import (
	"sync"
	"time"
)

// Debouncer coalesces bursts of calls into a single trailing invocation.
// Each Call resets the timer; only the last function passed within the
// window runs once the window elapses. Cancel drops any pending invocation.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
}

// New returns a debouncer with the given trailing window.
func New(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = 300 * time.Millisecond
	}
	return &Debouncer{delay: delay}
}

// Call schedules fn to run after the window elapses, replacing any pending fn.
func (d *Debouncer) Call(fn func()) {
	if fn == nil {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Cancel drops the pending invocation, if any.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Flush runs the pending invocation immediately, if any.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	timer := d.timer
	d.timer = nil
	d.mu.Unlock()

	if timer != nil && timer.Stop() {
		// Stop returning true means fn has not fired yet; run it now.
		timer.Reset(0)
	}
}

package changefeed

import (
	"sync"
	"time"
)

// Debouncer coalesces bursts of triggers into one call of fn after a quiet
// interval. A new trigger replaces the pending timer, it never stacks a
// second one.
type Debouncer struct {
	interval time.Duration
	fn       func()

	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
}

func NewDebouncer(interval time.Duration, fn func()) *Debouncer {
	return &Debouncer{interval: interval, fn: fn}
}

// Trigger schedules fn to run after the quiet interval, replacing any timer
// already pending.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, d.fn)
}

// Stop clears any pending timer. Used on shutdown so no callback fires into
// torn-down state.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

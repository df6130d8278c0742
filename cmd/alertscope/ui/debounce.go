package ui

import (
	"sync"
	"time"
)

// Debouncer collapses rapid successive events into one. Filter input uses it
// so a table is not re-filtered on every keystroke.
type Debouncer struct {
	mu       sync.Mutex
	timer    *time.Timer
	duration time.Duration
}

// NewDebouncer creates a debouncer with the given settle time.
func NewDebouncer(duration time.Duration) *Debouncer {
	return &Debouncer{duration: duration}
}

// Debounce schedules fn after the settle time; a new call before it fires
// replaces the pending one.
func (d *Debouncer) Debounce(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.duration, fn)
}

// Cancel drops any pending call.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Flush runs fn immediately, dropping any pending call.
func (d *Debouncer) Flush(fn func()) {
	d.Cancel()
	fn()
}

// DefaultFilterDebounce is the settle time for table filter input.
const DefaultFilterDebounce = 250 * time.Millisecond

package watch

import (
	"sync"
	"time"
)

// Debouncer coalesces bursts of triggers per key, running the callback
// once after a quiet period. Editors often emit several writes for one
// save; the CLI re-checks a file only after the burst settles.
type Debouncer struct {
	quiet  time.Duration
	mu     sync.Mutex
	timers map[string]*time.Timer
}

// NewDebouncer makes a debouncer with the given quiet period.
func NewDebouncer(quiet time.Duration) *Debouncer {
	return &Debouncer{quiet: quiet, timers: make(map[string]*time.Timer)}
}

// Trigger schedules fn for key, replacing any pending run for the same
// key. fn runs on a timer goroutine.
func (d *Debouncer) Trigger(key string, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if t, ok := d.timers[key]; ok {
		t.Stop()
	}
	d.timers[key] = time.AfterFunc(d.quiet, func() {
		d.mu.Lock()
		delete(d.timers, key)
		d.mu.Unlock()
		fn()
	})
}

// Stop cancels every pending run.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for key, t := range d.timers {
		t.Stop()
		delete(d.timers, key)
	}
}

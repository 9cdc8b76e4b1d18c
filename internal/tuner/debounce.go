// internal/tuner/debounce.go
package tuner

import (
	"sync"
	"time"
)

// Debouncer coalesces bursts of calls into one trailing execution. Each
// Trigger replaces the pending function and restarts the delay, so a
// slider drag produces a single serial command carrying the final value.
type Debouncer struct {
	delay time.Duration

	mu    sync.Mutex
	timer *time.Timer
	seq   uint64
}

// NewDebouncer creates a debouncer with the given quiesce delay
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Trigger schedules fn to run once the delay elapses with no further
// Trigger calls. A pending execution is replaced, never stacked.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.seq++
	seq := d.seq

	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		// A timer that lost the Stop race must not fire a newer trigger.
		if seq != d.seq {
			d.mu.Unlock()
			return
		}
		d.timer = nil
		d.mu.Unlock()
		fn()
	})
}

// Stop cancels any pending execution
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.seq++
}

// DebounceGroup maintains one Debouncer per key with a shared delay, so
// bursts on different parameters settle independently without cancelling
// each other.
type DebounceGroup struct {
	delay time.Duration

	mu    sync.Mutex
	byKey map[string]*Debouncer
}

// NewDebounceGroup creates an empty group with the given quiesce delay
func NewDebounceGroup(delay time.Duration) *DebounceGroup {
	return &DebounceGroup{
		delay: delay,
		byKey: make(map[string]*Debouncer),
	}
}

// Trigger debounces fn under the given key
func (g *DebounceGroup) Trigger(key string, fn func()) {
	g.mu.Lock()
	d, ok := g.byKey[key]
	if !ok {
		d = NewDebouncer(g.delay)
		g.byKey[key] = d
	}
	g.mu.Unlock()

	d.Trigger(fn)
}

// StopAll cancels every pending execution in the group
func (g *DebounceGroup) StopAll() {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, d := range g.byKey {
		d.Stop()
	}
}

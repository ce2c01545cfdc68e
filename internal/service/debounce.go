package service

import (
	"sync"
	"time"
)

// stopper is the part of *time.Timer the debouncer needs.
type stopper interface {
	Stop() bool
}

// afterFunc schedules f after d. time.AfterFunc in production.
type afterFunc func(d time.Duration, f func()) stopper

func realAfterFunc(d time.Duration, f func()) stopper {
	return time.AfterFunc(d, f)
}

// debouncer runs fn once after delay has passed since the last Trigger.
// It holds at most one pending timer: a new Trigger replaces the old one.
type debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	after afterFunc
	fn    func()
	timer stopper
	seq   uint64
}

func newDebouncer(delay time.Duration, after afterFunc, fn func()) *debouncer {
	if after == nil {
		after = realAfterFunc
	}
	return &debouncer{delay: delay, after: after, fn: fn}
}

// Trigger (re)starts the quiet period.
func (d *debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.seq++
	seq := d.seq
	d.timer = d.after(d.delay, func() { d.fire(seq) })
}

func (d *debouncer) fire(seq uint64) {
	d.mu.Lock()
	if seq != d.seq || d.timer == nil {
		// superseded or cancelled while the timer was firing
		d.mu.Unlock()
		return
	}
	d.timer = nil
	d.mu.Unlock()

	d.fn()
}

// Cancel drops the pending run, reporting whether one was pending.
func (d *debouncer) Cancel() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer == nil {
		return false
	}
	d.timer.Stop()
	d.timer = nil
	d.seq++
	return true
}

// Pending reports whether a run is scheduled.
func (d *debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

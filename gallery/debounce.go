package gallery

import "time"

// Debouncer coalesces bursts of triggers into one dispatch after a quiet
// period. It is owned by one Gallery rather than shared process-wide.
type Debouncer struct {
	sched     Scheduler
	threshold time.Duration
	fn        func()
	pending   Timer
}

// NewDebouncer returns a debouncer that calls fn threshold after the last
// Trigger.
func NewDebouncer(sched Scheduler, threshold time.Duration, fn func()) *Debouncer {
	return &Debouncer{sched: sched, threshold: threshold, fn: fn}
}

// Trigger restarts the quiet period. With asap set the pending dispatch is
// dropped and fn runs immediately.
func (d *Debouncer) Trigger(asap bool) {
	d.Cancel()
	if asap {
		d.fn()
		return
	}
	var t Timer
	t = d.sched.AfterFunc(d.threshold, func() {
		if d.pending == t {
			d.pending = nil
		}
		d.fn()
	})
	d.pending = t
}

// Cancel drops a pending dispatch, if any.
func (d *Debouncer) Cancel() {
	if d.pending != nil {
		d.pending.Stop()
		d.pending = nil
	}
}

// Pending reports whether a dispatch is scheduled.
func (d *Debouncer) Pending() bool { return d.pending != nil }

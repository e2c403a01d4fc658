package content

import "github.com/miosa/osa-gallery/gallery"

// Latch is a one-shot ready notifier. Use it from a single goroutine.
type Latch struct {
	fired bool
	fns   []func()
}

var _ gallery.ReadyNotifier = (*Latch)(nil)

// OnReady registers fn, or runs it now if the latch has fired.
func (l *Latch) OnReady(fn func()) {
	if l.fired {
		fn()
		return
	}
	l.fns = append(l.fns, fn)
}

// Fire runs the registered callbacks in order. Later calls do nothing.
func (l *Latch) Fire() {
	if l.fired {
		return
	}
	l.fired = true
	fns := l.fns
	l.fns = nil
	for _, fn := range fns {
		fn()
	}
}

// Fired reports whether Fire has run.
func (l *Latch) Fired() bool { return l.fired }

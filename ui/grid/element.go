package grid

import (
	"time"

	"go.uber.org/zap"

	"github.com/miosa/osa-gallery/ui/anim"
)

// box is the animatable height shared by cells and panels. With a transition
// set, SetHeight tweens toward the new value and transition-end listeners run
// when the tween lands; without one the height jumps.
type box struct {
	s      *Surface
	height int
	tween  *anim.Tween

	duration time.Duration
	easing   anim.EasingFunc

	listeners []*listener
}

type listener struct {
	fn   func()
	dead bool
}

// OnTransitionEnd implements gallery.TransitionTarget.
func (b *box) OnTransitionEnd(fn func()) func() {
	l := &listener{fn: fn}
	b.listeners = append(b.listeners, l)
	return func() {
		if l.dead {
			return
		}
		l.dead = true
		for i, other := range b.listeners {
			if other == l {
				b.listeners = append(b.listeners[:i], b.listeners[i+1:]...)
				break
			}
		}
	}
}

// SetTransition implements gallery.Element. Unknown easing names fall back
// to "ease".
func (b *box) SetTransition(d time.Duration, easing string) {
	fn, err := anim.EasingByName(easing)
	if err != nil {
		b.s.log.Warn("unknown easing, using ease", zap.String("easing", easing), zap.Error(err))
		fn = anim.Ease
	}
	b.duration = d
	b.easing = fn
}

// SetHeight implements gallery.Element.
func (b *box) SetHeight(h int) {
	if h < 0 {
		h = 0
	}
	if b.tween != nil && b.tween.To == h {
		return
	}
	if b.duration <= 0 || h == b.height {
		interrupted := b.tween != nil
		b.height = h
		b.tween = nil
		if interrupted {
			// The interrupted transition still ends: a zero-length tween
			// delivers transition-end on the next frame.
			b.tween = anim.NewTween(h, h, b.s.now(), 0, b.easing)
		}
		b.s.changed()
		return
	}
	b.tween = anim.NewTween(b.height, h, b.s.now(), b.duration, b.easing)
	b.s.changed()
}

// Height is the displayed height.
func (b *box) Height() int { return b.height }

// Animating reports whether a height tween is running.
func (b *box) Animating() bool { return b.tween != nil }

// advance steps the tween and reports whether it finished on this step.
func (b *box) advance(now time.Time) bool {
	if b.tween == nil {
		return false
	}
	b.height = b.tween.At(now)
	if !b.tween.Done(now) {
		return false
	}
	b.tween = nil
	return true
}

// fireEnd runs a snapshot of the listeners; a listener removed by an earlier
// one in the same snapshot is skipped.
func (b *box) fireEnd() {
	snapshot := append([]*listener(nil), b.listeners...)
	for _, l := range snapshot {
		if !l.dead {
			l.fn()
		}
	}
}

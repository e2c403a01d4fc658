package anim

import (
	"math"
	"time"
)

// Tween interpolates an integer from From to To over Duration.
type Tween struct {
	From, To int
	Start    time.Time
	Duration time.Duration
	Easing   EasingFunc
}

// NewTween starts a tween at now. A nil easing is linear.
func NewTween(from, to int, now time.Time, d time.Duration, easing EasingFunc) *Tween {
	if easing == nil {
		easing = EaseLinear
	}
	return &Tween{From: from, To: to, Start: now, Duration: d, Easing: easing}
}

// Progress returns elapsed time as a fraction of Duration, clamped to [0,1].
func (t *Tween) Progress(now time.Time) float64 {
	if t.Duration <= 0 {
		return 1
	}
	p := float64(now.Sub(t.Start)) / float64(t.Duration)
	return math.Max(0, math.Min(1, p))
}

// At returns the value at now, rounded to the nearest integer.
func (t *Tween) At(now time.Time) int {
	p := t.Progress(now)
	if p >= 1 {
		return t.To
	}
	return t.From + int(math.Round(float64(t.To-t.From)*t.Easing(p)))
}

// Done reports whether the tween has reached its end.
func (t *Tween) Done(now time.Time) bool {
	return t.Progress(now) >= 1
}

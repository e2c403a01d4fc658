package anim

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// EasingFunc maps time progress in [0,1] to value progress in [0,1].
type EasingFunc func(t float64) float64

// Named curves. The CSS keywords are their cubic-bezier definitions.
var (
	EaseLinear    EasingFunc = func(t float64) float64 { return t }
	Ease                     = CubicBezier(0.25, 0.1, 0.25, 1)
	EaseIn                   = CubicBezier(0.42, 0, 1, 1)
	EaseOut                  = CubicBezier(0, 0, 0.58, 1)
	EaseInOut                = CubicBezier(0.42, 0, 0.58, 1)
	EaseSwing     EasingFunc = func(t float64) float64 { return 0.5 - math.Cos(t*math.Pi)/2 }
	EaseOutCubic  EasingFunc = func(t float64) float64 { t--; return t*t*t + 1 }
	EaseInOutQuad EasingFunc = func(t float64) float64 {
		if t < 0.5 {
			return 2 * t * t
		}
		return -1 + (4-2*t)*t
	}
)

// EasingByName resolves a CSS timing function: "linear", "ease", "ease-in",
// "ease-out", "ease-in-out", "cubic-bezier(x1, y1, x2, y2)", plus "swing".
func EasingByName(name string) (EasingFunc, error) {
	name = strings.TrimSpace(strings.ToLower(name))
	switch name {
	case "linear":
		return EaseLinear, nil
	case "", "ease":
		return Ease, nil
	case "ease-in":
		return EaseIn, nil
	case "ease-out":
		return EaseOut, nil
	case "ease-in-out":
		return EaseInOut, nil
	case "swing":
		return EaseSwing, nil
	}
	if strings.HasPrefix(name, "cubic-bezier(") && strings.HasSuffix(name, ")") {
		args := strings.Split(name[len("cubic-bezier("):len(name)-1], ",")
		if len(args) != 4 {
			return nil, fmt.Errorf("anim: %q: want 4 control values", name)
		}
		var p [4]float64
		for i, a := range args {
			v, err := strconv.ParseFloat(strings.TrimSpace(a), 64)
			if err != nil {
				return nil, fmt.Errorf("anim: %q: %w", name, err)
			}
			p[i] = v
		}
		if p[0] < 0 || p[0] > 1 || p[2] < 0 || p[2] > 1 {
			return nil, fmt.Errorf("anim: %q: x control values must be within [0,1]", name)
		}
		return CubicBezier(p[0], p[1], p[2], p[3]), nil
	}
	return nil, fmt.Errorf("anim: unknown easing %q", name)
}

// CubicBezier returns the timing curve through (0,0), (x1,y1), (x2,y2),
// (1,1). x is solved for t with Newton's method, falling back to bisection.
func CubicBezier(x1, y1, x2, y2 float64) EasingFunc {
	cx := 3 * x1
	bx := 3*(x2-x1) - cx
	ax := 1 - cx - bx
	cy := 3 * y1
	by := 3*(y2-y1) - cy
	ay := 1 - cy - by

	sampleX := func(t float64) float64 { return ((ax*t+bx)*t + cx) * t }
	sampleY := func(t float64) float64 { return ((ay*t+by)*t + cy) * t }
	slopeX := func(t float64) float64 { return (3*ax*t+2*bx)*t + cx }

	const eps = 1e-6
	solve := func(x float64) float64 {
		t := x
		for i := 0; i < 8; i++ {
			e := sampleX(t) - x
			if math.Abs(e) < eps {
				return t
			}
			d := slopeX(t)
			if math.Abs(d) < eps {
				break
			}
			t -= e / d
		}
		lo, hi := 0.0, 1.0
		t = x
		for i := 0; i < 64 && lo < hi; i++ {
			v := sampleX(t)
			if math.Abs(v-x) < eps {
				break
			}
			if x > v {
				lo = t
			} else {
				hi = t
			}
			t = (lo + hi) / 2
		}
		return t
	}

	return func(p float64) float64 {
		if p <= 0 {
			return 0
		}
		if p >= 1 {
			return 1
		}
		return sampleY(solve(p))
	}
}

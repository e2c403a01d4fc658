package gallery

import (
	"time"

	"go.uber.org/zap"
)

// Defaults for Options fields left at their zero value.
const (
	DefaultMinHeight        = 500
	DefaultSpeed            = 350 * time.Millisecond
	DefaultEasing           = "ease"
	DefaultChildrenSelector = "div"
	DefaultMargin           = 10
	DefaultOpenDelay        = 25 * time.Millisecond
	DefaultResizeThreshold  = 250 * time.Millisecond
)

// Options configures a Gallery.
type Options struct {
	// MinHeight is the floor for the preview panel height.
	MinHeight int

	// Speed is the duration of height and scroll animations. Zero makes
	// every change instant; negative selects DefaultSpeed.
	Speed time.Duration

	// Easing names the animation curve.
	Easing string

	// AutomaticallyGetHTML clones preview content from the element each item
	// references. Start from DefaultOptions to get it enabled.
	AutomaticallyGetHTML bool

	// ChildrenSelector selects which children of the container are items.
	ChildrenSelector string

	// OnItemClick is called with the bound item whenever content is populated
	// or updated.
	OnItemClick func(*Item)

	// Margin is the gap between the item and its panel. Negative selects
	// DefaultMargin.
	Margin int

	// OpenDelay defers height application until the panel is laid out.
	OpenDelay time.Duration

	// ResizeThreshold is the debounce quiet period for resize bursts.
	ResizeThreshold time.Duration

	// Transitions is the animated-transition capability flag.
	Transitions TransitionSignal

	Logger *zap.Logger
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		MinHeight:            DefaultMinHeight,
		Speed:                DefaultSpeed,
		Easing:               DefaultEasing,
		AutomaticallyGetHTML: true,
		ChildrenSelector:     DefaultChildrenSelector,
		Margin:               DefaultMargin,
		OpenDelay:            DefaultOpenDelay,
		ResizeThreshold:      DefaultResizeThreshold,
	}
}

// withDefaults fills unset fields. Booleans are taken as given.
func (o Options) withDefaults() Options {
	if o.MinHeight <= 0 {
		o.MinHeight = DefaultMinHeight
	}
	if o.Speed < 0 {
		o.Speed = DefaultSpeed
	}
	if o.Speed == 0 {
		// Instant changes emit no transition-end.
		o.Transitions.Supported = false
	}
	if o.Easing == "" {
		o.Easing = DefaultEasing
	}
	if o.ChildrenSelector == "" {
		o.ChildrenSelector = DefaultChildrenSelector
	}
	if o.Margin < 0 {
		o.Margin = DefaultMargin
	}
	if o.OpenDelay < 0 {
		o.OpenDelay = DefaultOpenDelay
	}
	if o.ResizeThreshold <= 0 {
		o.ResizeThreshold = DefaultResizeThreshold
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

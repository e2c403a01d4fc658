package gallery

import "time"

// ---------------------------------------------------------------------------
// Host-facing interfaces
// ---------------------------------------------------------------------------
//
// The gallery never touches a rendering target directly. A host (a terminal
// grid, a browser bridge, a test fake) implements these interfaces and
// guarantees that every callback it invokes runs on its single event loop.

// TransitionTarget is anything that can report the end of a height
// transition. The returned cancel func deregisters fn; calling it more than
// once is harmless.
type TransitionTarget interface {
	OnTransitionEnd(fn func()) (cancel func())
}

// Element is the common surface of items and panels.
type Element interface {
	TransitionTarget

	// SetHeight sets the element's inline height. With a transition applied
	// the host animates toward h and fires transition-end when it arrives.
	SetHeight(h int)

	// SetTransition applies a height transition of duration d with the named
	// easing curve.
	SetTransition(d time.Duration, easing string)

	// OffsetTop is the element's current vertical position in the document.
	OffsetTop() int
}

// ItemElement is one child of the grid container.
type ItemElement interface {
	Element

	// Height is the element's current rendered height.
	Height() int

	// SetExpanded toggles the "expanded" styling.
	SetExpanded(on bool)

	// ContentRef returns the reference of the external element the item's
	// content is cloned from, or "" when it has none.
	ContentRef() string

	// Link returns the activatable link element label.
	Link() string
}

// PanelElement is the preview panel attached below an item.
type PanelElement interface {
	Element

	// SetContent replaces the panel's inner content.
	SetContent(c Content)

	// HideLargeContent hides any visible enlarged-content element. It must not
	// block; a fade is fine.
	HideLargeContent()

	// Remove detaches the panel from the document.
	Remove()
}

// Document is the page hosting the grid.
type Document interface {
	// Viewport reports the visible area size.
	Viewport() Viewport

	// CreatePanel builds a new panel and appends it to the item's element.
	CreatePanel(item ItemElement) PanelElement

	// ScrollTo animates the page scroll position to top over d.
	ScrollTo(top int, d time.Duration)
}

// Container is the root grid element.
type Container interface {
	Children(selector string) []ItemElement
}

// Content is an opaque preview payload. Clone must return an independent copy
// so the source element stays untouched when the panel mutates its copy.
type Content interface {
	Clone() Content
}

// ContentSource resolves an item's content reference.
type ContentSource interface {
	Lookup(ref string) (Content, bool)
}

// ReadyNotifier fires once when images and content are loaded and layout can
// safely be measured.
type ReadyNotifier interface {
	OnReady(fn func())
}

// Timer is a pending deferred call.
type Timer interface {
	// Stop prevents the call from running. It reports whether the call was
	// still pending.
	Stop() bool
}

// Scheduler defers work onto the host event loop.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

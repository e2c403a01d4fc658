// Package gallery implements an expanding-preview grid gallery: activating an
// item expands it in place into a preview panel, animates the height change
// and scrolls the document so the panel is visible.
//
// The package owns the single-active-preview state machine and the geometry
// engine. Rendering, timers, transition events and content loading are
// supplied by a host through the interfaces in surface.go, and every callback
// is expected to run on the host's single event loop.
package gallery

import (
	"errors"

	"go.uber.org/zap"
)

// ErrNoContainer is returned by New when the root container is missing. The
// host should leave the widget uninitialised.
var ErrNoContainer = errors.New("gallery: no container")

// Host bundles the collaborators a Gallery needs.
type Host struct {
	Container Container
	Document  Document
	Scheduler Scheduler

	// Content resolves item content references. Optional.
	Content ContentSource

	// Ready gates initialisation until content is loaded. When nil the
	// gallery measures immediately.
	Ready ReadyNotifier
}

// Gallery is the aggregate root: the ordered items, at most one active
// preview, the cached viewport and scroll bookkeeping.
type Gallery struct {
	opts   Options
	log    *zap.Logger
	doc    Document
	sched  Scheduler
	source ContentSource

	items []*Item
	geom  Geometry

	preview *Preview
	current *Item

	// previewPos is the cached offsetTop of the row owning the preview; -1
	// when unknown.
	previewPos int

	// scrollExtra compensates for a collapsing panel above the newly targeted
	// item. Consumed by the next scroll computation.
	scrollExtra int

	resize *Debouncer
	ready  bool

	// stale is set by a resize notification and cleared once the settled
	// resize has measured geometry again.
	stale bool
}

// New selects the container's items and waits for the ready notifier before
// measuring geometry.
func New(h Host, opts Options) (*Gallery, error) {
	if h.Container == nil {
		return nil, ErrNoContainer
	}
	opts = opts.withDefaults()

	g := &Gallery{
		opts:       opts,
		log:        opts.Logger.Named("gallery"),
		doc:        h.Document,
		sched:      h.Scheduler,
		source:     h.Content,
		previewPos: -1,
	}
	for i, el := range h.Container.Children(opts.ChildrenSelector) {
		g.items = append(g.items, newItem(i, el))
	}
	g.resize = NewDebouncer(h.Scheduler, opts.ResizeThreshold, g.onResize)

	if h.Ready != nil {
		h.Ready.OnReady(g.start)
	} else {
		g.start()
	}
	return g, nil
}

// start caches item geometry and the viewport and enables event handling.
func (g *Gallery) start() {
	if g.ready {
		return
	}
	g.geom.RefreshHeights(g.items)
	g.geom.RefreshViewport(g.doc)
	g.ready = true
	g.log.Debug("gallery ready",
		zap.Int("items", len(g.items)),
		zap.Int("viewport_width", g.geom.Viewport().Width),
		zap.Int("viewport_height", g.geom.Viewport().Height))
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

// Ready reports whether geometry has been measured.
func (g *Gallery) Ready() bool { return g.ready }

// Items returns the gallery's items in insertion order.
func (g *Gallery) Items() []*Item { return g.items }

// Item returns the item at idx, or nil.
func (g *Gallery) Item(idx int) *Item {
	if idx < 0 || idx >= len(g.items) {
		return nil
	}
	return g.items[idx]
}

// ItemFor returns the item backed by el, or nil.
func (g *Gallery) ItemFor(el ItemElement) *Item {
	for _, it := range g.items {
		if it.el == el {
			return it
		}
	}
	return nil
}

// Preview returns the active preview, or nil.
func (g *Gallery) Preview() *Preview { return g.preview }

// Current returns the expanded item, or nil.
func (g *Gallery) Current() *Item { return g.current }

// ScrollExtra returns the pending scroll compensation.
func (g *Gallery) ScrollExtra() int { return g.scrollExtra }

// Viewport returns the cached viewport snapshot.
func (g *Gallery) Viewport() Viewport { return g.geom.Viewport() }

// Options returns the effective options.
func (g *Gallery) Options() Options { return g.opts }

// ---------------------------------------------------------------------------
// Events
// ---------------------------------------------------------------------------

// Activate handles a click on it: toggle-close when it is already expanded,
// otherwise show its preview.
func (g *Gallery) Activate(it *Item) {
	if it == nil {
		return
	}
	if !g.ready {
		g.log.Debug("activation before ready ignored", zap.Int("item", it.Index))
		return
	}
	if g.stale {
		g.log.Debug("activation during resize ignored", zap.Int("item", it.Index))
		return
	}
	if it == g.current {
		g.hidePreview()
		g.scrollExtra = 0
		return
	}
	g.showPreview(it)
}

// ActivateIndex is Activate by item index.
func (g *Gallery) ActivateIndex(idx int) {
	g.Activate(g.Item(idx))
}

// Close closes the active preview. Without one it does nothing.
func (g *Gallery) Close() {
	if g.preview == nil {
		return
	}
	g.hidePreview()
	g.scrollExtra = 0
}

// NotifyResize reports a raw resize event. Bursts are coalesced by the
// debouncer before the gallery reacts.
func (g *Gallery) NotifyResize() {
	if !g.ready {
		return
	}
	g.stale = true
	g.resize.Trigger(false)
}

// Stale reports whether a resize is waiting to settle. Activations are
// ignored meanwhile.
func (g *Gallery) Stale() bool { return g.stale }

// Stop drops any pending debounced resize.
func (g *Gallery) Stop() {
	g.resize.Cancel()
}

func (g *Gallery) showPreview(it *Item) {
	g.scrollExtra = 0
	pos := it.OffsetTop

	if g.preview != nil {
		if g.previewPos != pos {
			// The collapsing panel sits above the new item: discount its
			// height when scrolling.
			if pos > g.previewPos {
				g.scrollExtra = g.preview.heights.Preview
			}
			g.hidePreview()
		} else {
			g.log.Debug("same row, updating preview in place",
				zap.Int("from", g.current.Index), zap.Int("to", it.Index))
			g.current.State = Collapsed
			it.State = Expanded
			g.current = it
			g.preview.update(it)
			return
		}
	}

	g.previewPos = pos
	it.State = Expanded
	g.current = it
	g.preview = newPreview(g, it)
	g.log.Debug("opening preview", zap.Int("item", it.Index), zap.Int("row_top", pos))
	g.preview.open()
}

func (g *Gallery) hidePreview() {
	if g.preview == nil {
		return
	}
	if g.current != nil {
		g.current.State = Collapsed
	}
	g.current = nil
	p := g.preview
	g.preview = nil
	p.close()
}

// onResize runs once per settled resize burst.
func (g *Gallery) onResize() {
	g.scrollExtra = 0
	g.previewPos = -1
	g.geom.RefreshOffsets(g.items)
	g.geom.RefreshViewport(g.doc)
	g.stale = false
	g.log.Debug("resize settled",
		zap.Int("viewport_width", g.geom.Viewport().Width),
		zap.Int("viewport_height", g.geom.Viewport().Height))

	if g.preview == nil {
		return
	}
	// Offsets measured while the panel is still expanded include its height;
	// measure again once it has collapsed, unless another preview opened.
	p := g.preview
	p.onClosed = func() {
		if g.preview == nil {
			g.geom.RefreshOffsets(g.items)
		}
	}
	g.hidePreview()
}

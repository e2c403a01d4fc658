package gallery

import "go.uber.org/zap"

// PreviewState is a step of the preview lifecycle.
type PreviewState int

const (
	StateCreated PreviewState = iota
	StateOpening
	StateOpen
	StateUpdating
	StateClosing
	StateClosed
)

func (s PreviewState) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateOpening:
		return "opening"
	case StateOpen:
		return "open"
	case StateUpdating:
		return "updating"
	case StateClosing:
		return "closing"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Preview is the expanded panel of one item. It is reused, not recreated,
// when the user switches between items of the same row.
//
// bound is the item whose content is shown. host is the item whose height was
// enlarged and which carries the panel; it differs from bound after a
// same-row switch.
type Preview struct {
	g       *Gallery
	bound   *Item
	host    *Item
	panel   PanelElement
	state   PreviewState
	heights Heights
	content Content

	// gen is bumped on close so late callbacks of the open sequence are
	// recognised as stale.
	gen       int
	openTimer Timer
	onClosed  func()
}

func newPreview(g *Gallery, item *Item) *Preview {
	p := &Preview{g: g, bound: item, host: item}
	p.create()
	p.populate()
	return p
}

// State returns the lifecycle state.
func (p *Preview) State() PreviewState { return p.state }

// Bound returns the item whose content the panel shows.
func (p *Preview) Bound() *Item { return p.bound }

// Host returns the item carrying the panel.
func (p *Preview) Host() *Item { return p.host }

// Heights returns the heights applied by the open sequence (zero before).
func (p *Preview) Heights() Heights { return p.heights }

// Panel returns the panel element.
func (p *Preview) Panel() PanelElement { return p.panel }

// Content returns the content last populated into the panel, if any.
func (p *Preview) Content() Content { return p.content }

func (p *Preview) log() *zap.Logger {
	return p.g.log.With(zap.Int("item", p.bound.Index), zap.Stringer("state", p.state))
}

// create builds the panel structure and attaches it to the item.
func (p *Preview) create() {
	p.panel = p.g.doc.CreatePanel(p.host.el)
	if p.g.opts.Transitions.Supported {
		p.panel.SetTransition(p.g.opts.Speed, p.g.opts.Easing)
		p.host.el.SetTransition(p.g.opts.Speed, p.g.opts.Easing)
	}
	p.state = StateCreated
}

// populate copies the bound item's content into the panel and notifies the
// OnItemClick callback. A missing source leaves the panel's prior content.
func (p *Preview) populate() {
	if p.g.opts.AutomaticallyGetHTML && p.g.source != nil {
		if ref := p.bound.el.ContentRef(); ref != "" {
			if c, ok := p.g.source.Lookup(ref); ok {
				p.content = c.Clone()
				p.panel.SetContent(p.content)
			} else {
				p.log().Debug("content source not found", zap.String("ref", ref))
			}
		}
	}
	if p.g.opts.OnItemClick != nil {
		p.g.opts.OnItemClick(p.bound)
	}
}

// open schedules height application once the panel has been laid out.
func (p *Preview) open() {
	p.state = StateOpening
	gen := p.gen
	p.openTimer = p.g.sched.AfterFunc(p.g.opts.OpenDelay, func() {
		p.openTimer = nil
		if gen != p.gen {
			return
		}
		p.setHeights(gen)
		p.position()
	})
}

func (p *Preview) setHeights(gen int) {
	vp := p.g.geom.Viewport()
	p.heights = ComputeHeights(vp.Height, p.host.NaturalHeight, p.g.opts.MinHeight, p.g.opts.Margin)
	p.log().Debug("preview heights",
		zap.Int("preview_height", p.heights.Preview),
		zap.Int("item_height", p.heights.Item),
		zap.Int("viewport_height", vp.Height))

	p.panel.SetHeight(p.heights.Preview)
	p.host.el.SetHeight(p.heights.Item)
	p.g.opts.Transitions.Await(p.host.el, func() {
		if gen != p.gen || p.state == StateClosing || p.state == StateClosed {
			return
		}
		p.bound.el.SetExpanded(true)
		if p.state == StateOpening {
			p.state = StateOpen
		}
	})
}

// position scrolls the page so the panel is visible. It consumes the
// gallery's scrollExtra.
func (p *Preview) position() {
	vp := p.g.geom.Viewport()
	top, sc := ComputeScrollTarget(ScrollInput{
		ItemOffsetTop:     p.bound.OffsetTop,
		PreviewOffsetTop:  p.panel.OffsetTop(),
		ScrollExtra:       p.g.scrollExtra,
		PreviewHeight:     p.heights.Preview,
		ItemNaturalHeight: p.bound.NaturalHeight,
		ViewportHeight:    vp.Height,
		Margin:            p.g.opts.Margin,
	})
	p.log().Debug("scroll to preview",
		zap.Int("scroll_top", top),
		zap.Stringer("case", sc),
		zap.Int("scroll_extra", p.g.scrollExtra))
	p.g.scrollExtra = 0
	p.g.doc.ScrollTo(top, p.g.opts.Speed)
}

// update rebinds the panel to another item of the same row.
func (p *Preview) update(item *Item) {
	resume := StateOpen
	if p.state == StateOpening {
		resume = StateOpening
	}
	p.state = StateUpdating

	prev := p.bound
	p.bound = item
	prev.el.SetExpanded(false)
	item.el.SetExpanded(true)
	// Before the open deferral there are no heights yet; the pending open
	// positions the panel.
	if p.heights != (Heights{}) {
		p.position()
	}
	p.populate()

	p.state = resume
}

// close collapses the panel and the host item, then removes the panel once
// the item's transition completes.
func (p *Preview) close() {
	if p.state == StateClosing || p.state == StateClosed {
		return
	}
	p.gen++
	if p.openTimer != nil {
		p.openTimer.Stop()
		p.openTimer = nil
	}
	p.state = StateClosing
	p.log().Debug("closing preview")

	p.g.sched.AfterFunc(p.g.opts.OpenDelay, func() {
		p.panel.HideLargeContent()
		p.panel.SetHeight(0)

		host := p.host
		// No height change means no transition-end will ever arrive.
		if host.el.Height() == host.NaturalHeight {
			host.el.SetHeight(host.NaturalHeight)
			p.finishClose()
			return
		}
		host.el.SetHeight(host.NaturalHeight)
		p.g.opts.Transitions.Await(host.el, p.finishClose)
	})
}

func (p *Preview) finishClose() {
	if p.state == StateClosed {
		return
	}
	p.bound.el.SetExpanded(false)
	p.panel.Remove()
	p.state = StateClosed
	p.log().Debug("preview closed")
	if p.onClosed != nil {
		p.onClosed()
	}
}

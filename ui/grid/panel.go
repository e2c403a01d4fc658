package grid

import (
	"github.com/google/uuid"

	"github.com/miosa/osa-gallery/gallery"
)

// Panel is the preview panel attached below its host cell. It implements
// gallery.PanelElement.
type Panel struct {
	box
	id      string
	host    *Cell
	content gallery.Content

	// hidden blanks the enlarged content (the image) while collapsing.
	hidden  bool
	removed bool
}

var _ gallery.PanelElement = (*Panel)(nil)

func newPanel(s *Surface, host *Cell) *Panel {
	return &Panel{box: box{s: s}, id: uuid.NewString(), host: host}
}

// ID is the panel's element id.
func (p *Panel) ID() string { return p.id }

// Host returns the cell carrying the panel.
func (p *Panel) Host() *Cell { return p.host }

// Content returns the panel's content, or nil.
func (p *Panel) Content() gallery.Content { return p.content }

// OffsetTop implements gallery.Element: just below the host's natural box
// and the margin.
func (p *Panel) OffsetTop() int {
	return p.host.top + p.s.opts.CellHeight + p.s.opts.Margin
}

// SetContent implements gallery.PanelElement.
func (p *Panel) SetContent(c gallery.Content) {
	p.content = c
	p.hidden = false
	p.s.changed()
}

// HideLargeContent implements gallery.PanelElement.
func (p *Panel) HideLargeContent() {
	p.hidden = true
	p.s.changed()
}

// Hidden reports whether the enlarged content is hidden.
func (p *Panel) Hidden() bool { return p.hidden }

// Remove implements gallery.PanelElement.
func (p *Panel) Remove() {
	if p.removed {
		return
	}
	p.removed = true
	p.s.detach(p)
}

// Removed reports whether the panel has been detached.
func (p *Panel) Removed() bool { return p.removed }

package grid

import "github.com/miosa/osa-gallery/gallery"

// CellSpec describes one grid child.
type CellSpec struct {
	Tag     string
	Class   string
	Title   string
	Caption string

	// ContentRef references the content source shown in the preview.
	ContentRef string
}

// Cell is one grid child. It implements gallery.ItemElement.
type Cell struct {
	box
	spec     CellSpec
	index    int
	top      int
	expanded bool
}

var _ gallery.ItemElement = (*Cell)(nil)

// Index is the cell's position in the container.
func (c *Cell) Index() int { return c.index }

// Spec returns the cell's description.
func (c *Cell) Spec() CellSpec { return c.spec }

// OffsetTop implements gallery.Element.
func (c *Cell) OffsetTop() int { return c.top }

// SetExpanded implements gallery.ItemElement.
func (c *Cell) SetExpanded(on bool) {
	if c.expanded != on {
		c.expanded = on
		c.s.changed()
	}
}

// Expanded reports the "expanded" styling.
func (c *Cell) Expanded() bool { return c.expanded }

// ContentRef implements gallery.ItemElement.
func (c *Cell) ContentRef() string { return c.spec.ContentRef }

// Link implements gallery.ItemElement.
func (c *Cell) Link() string { return c.spec.Title }

package gallery

// Viewport is a snapshot of the visible area.
type Viewport struct {
	Width  int
	Height int
}

// Geometry caches per-item offsets and natural heights plus the viewport.
// Values are valid only until the next structural change or resize; callers
// refresh at ready and after every settled resize.
type Geometry struct {
	viewport Viewport
	valid    bool
}

// RefreshOffsets records each item's current offsetTop.
func (g *Geometry) RefreshOffsets(items []*Item) {
	for _, it := range items {
		it.OffsetTop = it.el.OffsetTop()
	}
}

// RefreshHeights records offsets and natural heights. Only call this while
// every item is collapsed: the height is the pre-expansion baseline.
func (g *Geometry) RefreshHeights(items []*Item) {
	for _, it := range items {
		it.OffsetTop = it.el.OffsetTop()
		it.NaturalHeight = it.el.Height()
		it.measured = true
	}
}

// RefreshViewport records the document's viewport size.
func (g *Geometry) RefreshViewport(doc Document) {
	g.viewport = doc.Viewport()
	g.valid = true
}

// Viewport returns the cached viewport snapshot.
func (g *Geometry) Viewport() Viewport { return g.viewport }

// Valid reports whether a viewport snapshot has been taken.
func (g *Geometry) Valid() bool { return g.valid }

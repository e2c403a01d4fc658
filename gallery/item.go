package gallery

// DisplayState is the logical state of an item.
type DisplayState int

const (
	Collapsed DisplayState = iota
	Expanded
)

func (s DisplayState) String() string {
	switch s {
	case Collapsed:
		return "collapsed"
	case Expanded:
		return "expanded"
	default:
		return "unknown"
	}
}

// Item is one grid entry. OffsetTop and NaturalHeight are cached geometry;
// they are only meaningful after the first refresh (see Geometry).
type Item struct {
	Index         int
	OffsetTop     int
	NaturalHeight int
	State         DisplayState

	el       ItemElement
	measured bool
}

func newItem(idx int, el ItemElement) *Item {
	return &Item{Index: idx, el: el}
}

// Element returns the host element backing the item.
func (it *Item) Element() ItemElement { return it.el }

// Link returns the item's link label.
func (it *Item) Link() string { return it.el.Link() }

// Measured reports whether the item's geometry has been cached at least once.
func (it *Item) Measured() bool { return it.measured }

// sameRow reports whether two items share a cached row offset.
func (it *Item) sameRow(other *Item) bool {
	return it.OffsetTop == other.OffsetTop
}

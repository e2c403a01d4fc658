package gallery

// Heights is the result of ComputeHeights.
type Heights struct {
	Preview int // preview panel height
	Item    int // expanded item height (item + margin + panel)
}

// ComputeHeights returns the target panel and item heights for an item of
// natural height itemNaturalHeight in a viewport of viewportHeight.
//
// The panel fills what the viewport leaves below the item and margin. When that
// is below minHeight the panel is pinned to minHeight and the item is allowed
// to overflow the viewport.
func ComputeHeights(viewportHeight, itemNaturalHeight, minHeight, margin int) Heights {
	candidate := viewportHeight - itemNaturalHeight - margin
	if candidate >= minHeight {
		return Heights{Preview: candidate, Item: viewportHeight}
	}
	return Heights{
		Preview: minHeight,
		Item:    minHeight + itemNaturalHeight + margin,
	}
}

// ScrollCase identifies which branch ComputeScrollTarget took.
type ScrollCase int

const (
	// ScrollFits: item and panel fit; the item's top goes to the viewport top.
	ScrollFits ScrollCase = iota
	// ScrollPanelBottom: the panel is shorter than the viewport but the pair
	// does not fit; the panel's bottom goes to the viewport bottom.
	ScrollPanelBottom
	// ScrollPanelTop: the panel is at least as tall as the viewport; its top
	// goes to the viewport top.
	ScrollPanelTop
)

func (c ScrollCase) String() string {
	switch c {
	case ScrollFits:
		return "fits"
	case ScrollPanelBottom:
		return "panel_bottom"
	case ScrollPanelTop:
		return "panel_top"
	default:
		return "unknown"
	}
}

// ScrollInput carries the geometry ComputeScrollTarget needs.
type ScrollInput struct {
	ItemOffsetTop     int
	PreviewOffsetTop  int
	ScrollExtra       int // height of a collapsing panel above the target
	PreviewHeight     int
	ItemNaturalHeight int
	ViewportHeight    int
	Margin            int
}

// ComputeScrollTarget returns the page scroll offset that brings the preview
// into view, and which case produced it.
func ComputeScrollTarget(in ScrollInput) (int, ScrollCase) {
	if in.PreviewHeight+in.ItemNaturalHeight+in.Margin <= in.ViewportHeight {
		return in.ItemOffsetTop, ScrollFits
	}
	panelTop := in.PreviewOffsetTop - in.ScrollExtra
	if in.PreviewHeight < in.ViewportHeight {
		return panelTop - (in.ViewportHeight - in.PreviewHeight), ScrollPanelBottom
	}
	return panelTop, ScrollPanelTop
}

package gallery

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeHeights(t *testing.T) {
	tests := []struct {
		name                     string
		viewport, natural, min   int
		margin                   int
		wantPreview, wantItemTop int
	}{
		{"fits branch", 800, 200, 500, 10, 590, 800},
		{"floor branch", 600, 200, 500, 10, 500, 710},
		{"exactly at floor", 710, 200, 500, 10, 500, 710},
		{"one below floor", 709, 200, 500, 10, 500, 710},
		{"item taller than viewport", 300, 400, 50, 2, 50, 452},
		{"zero margin", 1000, 100, 200, 0, 900, 1000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeHeights(tt.viewport, tt.natural, tt.min, tt.margin)
			assert.Equal(t, tt.wantPreview, got.Preview)
			assert.Equal(t, tt.wantItemTop, got.Item)
		})
	}
}

func TestComputeHeights_NeverBelowMinHeight(t *testing.T) {
	for vh := 0; vh <= 1200; vh += 37 {
		for nh := 0; nh <= 900; nh += 41 {
			for _, min := range []int{1, 10, 250, 500, 1000} {
				for _, margin := range []int{0, 1, 10} {
					h := ComputeHeights(vh, nh, min, margin)
					if h.Preview < min {
						t.Fatalf("ComputeHeights(%d, %d, %d, %d).Preview = %d, below floor", vh, nh, min, margin, h.Preview)
					}
					if h.Preview > min && h.Item != vh {
						t.Fatalf("fits branch must fill the viewport: got item height %d, viewport %d", h.Item, vh)
					}
				}
			}
		}
	}
}

func TestComputeScrollTarget_Cases(t *testing.T) {
	base := ScrollInput{
		ItemOffsetTop:     1200,
		PreviewOffsetTop:  1410,
		ItemNaturalHeight: 200,
		ViewportHeight:    800,
		Margin:            10,
	}

	t.Run("fits at exact boundary", func(t *testing.T) {
		in := base
		in.PreviewHeight = 590 // 590 + 200 + 10 == 800
		top, sc := ComputeScrollTarget(in)
		assert.Equal(t, ScrollFits, sc)
		assert.Equal(t, 1200, top)
	})

	t.Run("one over boundary pulls panel bottom", func(t *testing.T) {
		in := base
		in.PreviewHeight = 591
		top, sc := ComputeScrollTarget(in)
		assert.Equal(t, ScrollPanelBottom, sc)
		assert.Equal(t, 1410-(800-591), top)
	})

	t.Run("scroll extra shifts panel bottom case", func(t *testing.T) {
		in := base
		in.PreviewHeight = 700
		in.ScrollExtra = 300
		top, sc := ComputeScrollTarget(in)
		assert.Equal(t, ScrollPanelBottom, sc)
		assert.Equal(t, (1410-300)-(800-700), top)
	})

	t.Run("panel as tall as viewport aligns its top", func(t *testing.T) {
		in := base
		in.PreviewHeight = 800
		in.ScrollExtra = 50
		top, sc := ComputeScrollTarget(in)
		assert.Equal(t, ScrollPanelTop, sc)
		assert.Equal(t, 1410-50, top)
	})

	t.Run("scroll extra ignored when it fits", func(t *testing.T) {
		in := base
		in.PreviewHeight = 100
		in.ScrollExtra = 999
		top, sc := ComputeScrollTarget(in)
		assert.Equal(t, ScrollFits, sc)
		assert.Equal(t, 1200, top)
	})
}

func TestScrollCase_String(t *testing.T) {
	assert.Equal(t, "fits", ScrollFits.String())
	assert.Equal(t, "panel_bottom", ScrollPanelBottom.String())
	assert.Equal(t, "panel_top", ScrollPanelTop.String())
	assert.Equal(t, "unknown", ScrollCase(42).String())
}

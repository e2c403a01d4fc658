// Package list provides a lazy-rendered scrollable document of stacked items
// addressed by absolute line offsets.
//
// Key properties:
//   - Per-item content cache, invalidated on width or content-version changes.
//   - Absolute scrolling: offset is the document line shown at the top of the
//     viewport, so callers can scroll to a computed position the way a page
//     scrolls to a pixel offset.
//   - Only the items that intersect the viewport are rendered on each View().
package list

import (
	"strings"

	tea "charm.land/bubbletea/v2"
)

// Item is anything the list can render.
type Item interface {
	// ID returns a unique, stable identifier used for cache keying.
	ID() string

	// ContentVersion changes whenever the rendered output would change.
	ContentVersion() int

	// Height returns the rendered height in lines for the given width.
	Height(width int) int

	// Render returns exactly Height(width) lines for the given width.
	Render(width int) string
}

// Option is a functional option for New.
type Option func(*Model)

// WithWidth sets the initial viewport width.
func WithWidth(w int) Option {
	return func(m *Model) { m.width = w }
}

// WithHeight sets the viewport height in lines.
func WithHeight(h int) Option {
	return func(m *Model) { m.height = h }
}

// WithWheelStep sets how many lines one wheel notch scrolls.
func WithWheelStep(n int) Option {
	return func(m *Model) {
		if n > 0 {
			m.wheelStep = n
		}
	}
}

type cachedRender struct {
	lines   []string
	width   int
	version int
}

// Model is a lazy-rendered scrollable document. The zero value is not
// usable; construct with New.
type Model struct {
	items  []Item
	width  int
	height int

	// offset is the document line at the top of the viewport.
	offset    int
	wheelStep int

	// tops[i] is the document line where item i starts; tops[len] is the
	// total height.
	tops []int

	cache map[string]cachedRender
}

// New constructs a Model with the supplied options.
func New(opts ...Option) Model {
	m := Model{
		cache:     make(map[string]cachedRender),
		wheelStep: 3,
		tops:      []int{0},
	}
	for _, o := range opts {
		o(&m)
	}
	return m
}

// SetSize updates the viewport dimensions. The cache is dropped when the
// width changes.
func (m *Model) SetSize(w, h int) {
	if w != m.width {
		m.cache = make(map[string]cachedRender)
	}
	m.width = w
	m.height = h
	m.Relayout()
}

// Size returns the viewport dimensions.
func (m Model) Size() (int, int) { return m.width, m.height }

// SetItems replaces the items. Cached renders of unchanged items survive.
func (m *Model) SetItems(items []Item) {
	m.items = items
	m.Relayout()
}

// Len returns the number of items.
func (m Model) Len() int { return len(m.items) }

// Relayout recomputes item positions after item heights changed. The
// offset is kept as is; call SetOffset to clamp it.
func (m *Model) Relayout() {
	tops := make([]int, len(m.items)+1)
	y := 0
	for i, it := range m.items {
		tops[i] = y
		y += m.itemHeight(it)
	}
	tops[len(m.items)] = y
	m.tops = tops
}

// TotalHeight is the document height in lines.
func (m Model) TotalHeight() int { return m.tops[len(m.tops)-1] }

// MaxOffset is the largest offset that still fills the viewport.
func (m Model) MaxOffset() int {
	if d := m.TotalHeight() - m.height; d > 0 {
		return d
	}
	return 0
}

// Offset returns the document line at the top of the viewport.
func (m Model) Offset() int { return m.offset }

// SetOffset scrolls to y, clamped to [0, MaxOffset].
func (m *Model) SetOffset(y int) {
	m.offset = m.Clamp(y)
}

// Clamp limits y to the scrollable range.
func (m Model) Clamp(y int) int {
	if y > m.MaxOffset() {
		y = m.MaxOffset()
	}
	if y < 0 {
		y = 0
	}
	return y
}

// ScrollDown moves the viewport down by n lines.
func (m *Model) ScrollDown(n int) { m.SetOffset(m.offset + n) }

// ScrollUp moves the viewport up by n lines.
func (m *Model) ScrollUp(n int) { m.SetOffset(m.offset - n) }

// PageDown scrolls down by one viewport height.
func (m *Model) PageDown() { m.ScrollDown(m.height) }

// PageUp scrolls up by one viewport height.
func (m *Model) PageUp() { m.ScrollUp(m.height) }

// ScrollToTop shows the first line.
func (m *Model) ScrollToTop() { m.offset = 0 }

// ScrollToBottom shows the last line.
func (m *Model) ScrollToBottom() { m.offset = m.MaxOffset() }

// AtBottom reports whether the last line is visible.
func (m Model) AtBottom() bool { return m.offset >= m.MaxOffset() }

// OffsetOf returns the document line where item idx starts, or -1.
func (m Model) OffsetOf(idx int) int {
	if idx < 0 || idx >= len(m.items) {
		return -1
	}
	return m.tops[idx]
}

// ItemAtLine resolves a document line to the item covering it and the line
// within that item. idx is -1 outside the document.
func (m Model) ItemAtLine(y int) (idx, line int) {
	if y < 0 || y >= m.TotalHeight() {
		return -1, 0
	}
	lo, hi := 0, len(m.items)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if m.tops[mid] <= y {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo, y - m.tops[lo]
}

// ItemIndexAtPosition resolves a viewport row to an item index, or -1.
func (m Model) ItemIndexAtPosition(y int) int {
	if y < 0 || y >= m.height {
		return -1
	}
	idx, _ := m.ItemAtLine(m.offset + y)
	return idx
}

// VisibleItemIndices returns the indices of items intersecting the viewport.
func (m Model) VisibleItemIndices() []int {
	if m.height <= 0 || len(m.items) == 0 {
		return nil
	}
	first, _ := m.ItemAtLine(m.offset)
	if first < 0 {
		return nil
	}
	var out []int
	for i := first; i < len(m.items) && m.tops[i] < m.offset+m.height; i++ {
		out = append(out, i)
	}
	return out
}

// InvalidateCache forces all cached renders to be discarded.
func (m *Model) InvalidateCache() {
	m.cache = make(map[string]cachedRender)
}

// InvalidateItem discards the cached render for the item with the given id.
func (m *Model) InvalidateItem(id string) {
	delete(m.cache, id)
}

// Update handles mouse wheel scrolling.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.MouseWheelMsg); ok {
		switch msg.Button {
		case tea.MouseWheelUp:
			m.ScrollUp(m.wheelStep)
		case tea.MouseWheelDown:
			m.ScrollDown(m.wheelStep)
		}
	}
	return m, nil
}

// View renders the lines [offset, offset+height), padding with blank lines
// past the end of the document.
func (m Model) View() string {
	if m.height <= 0 || m.width <= 0 || len(m.items) == 0 {
		return ""
	}
	lines := make([]string, 0, m.height)
	y := m.offset
	end := m.offset + m.height
	for y < end {
		idx, line := m.ItemAtLine(y)
		if idx < 0 {
			lines = append(lines, "")
			y++
			continue
		}
		itemLines := m.renderItem(m.items[idx])
		for ; line < len(itemLines) && y < end && y < m.tops[idx+1]; line++ {
			lines = append(lines, itemLines[line])
			y++
		}
		// A short render still occupies its declared height.
		for ; y < end && y < m.tops[idx+1]; y++ {
			lines = append(lines, "")
		}
	}
	return strings.Join(lines, "\n")
}

// itemHeight returns an item's height; heights below one count as one.
func (m Model) itemHeight(item Item) int {
	if m.width <= 0 {
		return 1
	}
	h := item.Height(m.width)
	if h <= 0 {
		h = 1
	}
	return h
}

// renderItem returns the cached or freshly rendered lines of an item.
func (m Model) renderItem(item Item) []string {
	id := item.ID()
	ver := item.ContentVersion()
	if cr, ok := m.cache[id]; ok && cr.width == m.width && cr.version == ver {
		return cr.lines
	}
	lines := splitLines(item.Render(m.width))
	m.cache[id] = cachedRender{lines: lines, width: m.width, version: ver}
	return lines
}

// splitLines splits a rendered string into individual lines.
func splitLines(s string) []string {
	if s == "" {
		return []string{""}
	}
	return strings.Split(s, "\n")
}

// countLines counts the number of rendered lines in a string (number of \n + 1).
func countLines(s string) int {
	if s == "" {
		return 1
	}
	return strings.Count(s, "\n") + 1
}

// Package grid is the terminal host for the gallery: a flow layout of cells
// with animated heights, preview panels that open below their cell, a
// scrollable document, and a scheduler that runs deferred work on the
// Bubble Tea loop.
package grid

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/miosa/osa-gallery/gallery"
	"github.com/miosa/osa-gallery/ui/anim"
	"github.com/miosa/osa-gallery/ui/list"
)

// ContentView draws panel content into a width x height area. hideLarge is
// set while the panel collapses.
type ContentView interface {
	View(c gallery.Content, width, height int, hideLarge bool) string
}

// Options configures a Surface.
type Options struct {
	CellWidth  int
	CellHeight int
	Margin     int

	// Content draws panel bodies. Nil shows nothing inside panels.
	Content ContentView

	// Now is the clock used for animation; nil means time.Now.
	Now    func() time.Time
	Logger *zap.Logger
}

// Surface is the grid document. It implements gallery.Container and
// gallery.Document.
type Surface struct {
	opts Options
	log  *zap.Logger

	cells  []*Cell
	panels []*Panel
	rows   [][]*Cell
	cols   int

	list   list.Model
	width  int
	height int

	scroll  *anim.Tween
	version int
	focus   int

	frameID      int64
	framePending bool
}

var (
	_ gallery.Container = (*Surface)(nil)
	_ gallery.Document  = (*Surface)(nil)
)

// New builds a surface holding one cell per spec.
func New(specs []CellSpec, opts Options) *Surface {
	if opts.CellWidth <= 0 {
		opts.CellWidth = 28
	}
	if opts.CellHeight <= 0 {
		opts.CellHeight = 6
	}
	if opts.Margin < 0 {
		opts.Margin = 0
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	s := &Surface{
		opts:    opts,
		log:     opts.Logger.Named("grid"),
		list:    list.New(list.WithWheelStep(2)),
		frameID: anim.NextID(),
	}
	for i, spec := range specs {
		c := &Cell{box: box{s: s, height: opts.CellHeight}, spec: spec, index: i}
		s.cells = append(s.cells, c)
	}
	s.relayout()
	return s
}

func (s *Surface) now() time.Time { return s.opts.Now() }

// ---------------------------------------------------------------------------
// gallery.Container / gallery.Document
// ---------------------------------------------------------------------------

// Children implements gallery.Container.
func (s *Surface) Children(sel string) []gallery.ItemElement {
	match := parseSelector(sel)
	var out []gallery.ItemElement
	for _, c := range s.cells {
		if match.match(c.spec.Tag, c.spec.Class) {
			out = append(out, c)
		}
	}
	return out
}

// Viewport implements gallery.Document.
func (s *Surface) Viewport() gallery.Viewport {
	return gallery.Viewport{Width: s.width, Height: s.height}
}

// CreatePanel implements gallery.Document.
func (s *Surface) CreatePanel(item gallery.ItemElement) gallery.PanelElement {
	host, ok := item.(*Cell)
	if !ok || host.s != s {
		s.log.Error("panel host is not a cell of this surface")
		return nil
	}
	p := newPanel(s, host)
	s.panels = append(s.panels, p)
	s.log.Debug("panel attached", zap.String("panel", p.id), zap.Int("host", host.index))
	s.changed()
	return p
}

// ScrollTo implements gallery.Document. The target is clamped on every frame
// since the document may still be growing.
func (s *Surface) ScrollTo(top int, d time.Duration) {
	if top < 0 {
		top = 0
	}
	from := s.list.Offset()
	if d <= 0 {
		s.scroll = nil
		s.list.SetOffset(top)
		s.changed()
		return
	}
	s.scroll = anim.NewTween(from, top, s.now(), d, anim.EaseSwing)
	s.changed()
}

func (s *Surface) detach(p *Panel) {
	for i, other := range s.panels {
		if other == p {
			s.panels = append(s.panels[:i], s.panels[i+1:]...)
			break
		}
	}
	s.log.Debug("panel removed", zap.String("panel", p.id))
	s.changed()
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

// Cells returns every cell in container order.
func (s *Surface) Cells() []*Cell { return s.cells }

// Cell returns the cell at idx, or nil.
func (s *Surface) Cell(idx int) *Cell {
	if idx < 0 || idx >= len(s.cells) {
		return nil
	}
	return s.cells[idx]
}

// Panels returns the attached panels.
func (s *Surface) Panels() []*Panel { return s.panels }

// Columns returns the current number of columns.
func (s *Surface) Columns() int { return s.cols }

// ScrollOffset returns the document line at the top of the viewport.
func (s *Surface) ScrollOffset() int { return s.list.Offset() }

// TotalHeight returns the document height.
func (s *Surface) TotalHeight() int { return s.list.TotalHeight() }

// Refresh forces every row to re-render, e.g. after a theme change.
func (s *Surface) Refresh() { s.changed() }

// SetSize sets the outer dimensions and reflows. The last column is kept for
// the scrollbar.
func (s *Surface) SetSize(w, h int) {
	s.width, s.height = max(0, w-1), max(0, h)
	s.list.SetSize(s.width, s.height)
	s.relayout()
}

// ---------------------------------------------------------------------------
// Focus
// ---------------------------------------------------------------------------

// Focus returns the focused cell index.
func (s *Surface) Focus() int { return s.focus }

// FocusedCell returns the focused cell, or nil.
func (s *Surface) FocusedCell() *Cell { return s.Cell(s.focus) }

// SetFocus focuses idx, clamped to the cells.
func (s *Surface) SetFocus(idx int) {
	if len(s.cells) == 0 {
		return
	}
	idx = max(0, min(idx, len(s.cells)-1))
	if idx != s.focus {
		s.focus = idx
		s.changed()
	}
}

// MoveFocus moves the focus dx columns and dy rows.
func (s *Surface) MoveFocus(dx, dy int) {
	next := s.focus + dx + dy*s.cols
	if next < 0 || next >= len(s.cells) {
		if dy != 0 {
			return
		}
		next = max(0, min(next, len(s.cells)-1))
	}
	s.SetFocus(next)
}

// RevealFocus scrolls the minimum amount that shows the focused cell's
// natural box, unless a scroll animation is running.
func (s *Surface) RevealFocus() {
	c := s.FocusedCell()
	if c == nil || s.scroll != nil {
		return
	}
	off := s.list.Offset()
	switch {
	case c.top < off:
		s.list.SetOffset(c.top)
	case c.top+s.opts.CellHeight > off+s.height:
		s.list.SetOffset(c.top + s.opts.CellHeight - s.height)
	default:
		return
	}
	s.changed()
}

// ---------------------------------------------------------------------------
// Animation
// ---------------------------------------------------------------------------

// Animating reports whether any height or scroll tween is running.
func (s *Surface) Animating() bool {
	if s.scroll != nil {
		return true
	}
	for _, c := range s.cells {
		if c.tween != nil {
			return true
		}
	}
	for _, p := range s.panels {
		if p.tween != nil {
			return true
		}
	}
	return false
}

// Advance steps every tween to now, reflows, then delivers transition-end
// to boxes whose tween finished.
func (s *Surface) Advance(now time.Time) {
	var ended []*box
	for _, c := range s.cells {
		if c.advance(now) {
			ended = append(ended, &c.box)
		}
	}
	for _, p := range s.panels {
		if p.advance(now) {
			ended = append(ended, &p.box)
		}
	}
	s.relayout()
	if s.scroll != nil {
		s.list.SetOffset(s.scroll.At(now))
		if s.scroll.Done(now) {
			s.scroll = nil
		}
	}
	s.version++
	for _, b := range ended {
		b.fireEnd()
	}
}

// FrameCmd schedules the next animation frame when one is needed and none
// is pending.
func (s *Surface) FrameCmd() tea.Cmd {
	if s.framePending || !s.Animating() {
		return nil
	}
	s.framePending = true
	return anim.Frame(s.frameID)
}

// HandleFrame advances the animation on the surface's own frames.
func (s *Surface) HandleFrame(msg anim.FrameMsg) tea.Cmd {
	if msg.ID != s.frameID {
		return nil
	}
	s.framePending = false
	s.Advance(s.now())
	return s.FrameCmd()
}

// Update handles mouse wheel scrolling. A wheel scroll cancels a running
// scroll animation.
func (s *Surface) Update(msg tea.Msg) tea.Cmd {
	if _, ok := msg.(tea.MouseWheelMsg); ok {
		s.scroll = nil
		s.list, _ = s.list.Update(msg)
		s.changed()
	}
	return nil
}

// ---------------------------------------------------------------------------
// Layout
// ---------------------------------------------------------------------------

func (s *Surface) changed() {
	s.version++
	s.relayout()
}

// relayout flows cells into rows and recomputes every row offset.
func (s *Surface) relayout() {
	s.cols = max(1, s.width/s.opts.CellWidth)
	s.rows = s.rows[:0]
	for i := 0; i < len(s.cells); i += s.cols {
		s.rows = append(s.rows, s.cells[i:min(i+s.cols, len(s.cells))])
	}
	items := make([]list.Item, len(s.rows))
	for r, cells := range s.rows {
		items[r] = &rowItem{s: s, row: r, cells: cells}
	}
	s.list.SetItems(items)
	for r, cells := range s.rows {
		top := s.list.OffsetOf(r)
		for _, c := range cells {
			c.top = top
		}
	}
	s.list.SetOffset(s.list.Offset())
}

// rowHeight is the tallest displayed cell in the row.
func rowHeight(cells []*Cell) int {
	h := 0
	for _, c := range cells {
		h = max(h, c.height)
	}
	return h
}

// panelFor returns the attached panel hosted by a cell of the row, or nil.
func (s *Surface) panelFor(cells []*Cell) *Panel {
	for _, p := range s.panels {
		for _, c := range cells {
			if p.host == c {
				return p
			}
		}
	}
	return nil
}

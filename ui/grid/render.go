package grid

import (
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/miosa/osa-gallery/style"
	"github.com/miosa/osa-gallery/ui/common"
)

const (
	closeGlyph  = " ✕ "
	closeWidth  = 3
	expandArrow = "▲"
)

// rowItem adapts one grid row to the list document.
type rowItem struct {
	s     *Surface
	row   int
	cells []*Cell
}

func (r *rowItem) ID() string           { return "row-" + strconv.Itoa(r.row) }
func (r *rowItem) ContentVersion() int  { return r.s.version }
func (r *rowItem) Height(width int) int { return rowHeight(r.cells) }

func (r *rowItem) Render(width int) string {
	s := r.s
	h := rowHeight(r.cells)
	natural := s.opts.CellHeight
	lines := make([]string, h)

	boxes := make([][]string, len(r.cells))
	for i, c := range r.cells {
		boxes[i] = s.renderCell(c)
	}
	for y := 0; y < min(h, natural); y++ {
		var sb strings.Builder
		for _, b := range boxes {
			sb.WriteString(b[y])
		}
		lines[y] = sb.String()
	}

	// The arrow under the expanded cell points at the panel.
	if arrowY := natural + s.opts.Margin - 1; s.opts.Margin > 0 && arrowY < h {
		var sb strings.Builder
		for _, c := range r.cells {
			seg := ""
			if c.expanded {
				seg = style.CellBorderExpanded.Render(expandArrow)
			}
			sb.WriteString(common.PadCenter(seg, s.opts.CellWidth))
		}
		lines[arrowY] = sb.String()
	}

	if p := s.panelFor(r.cells); p != nil && p.height > 0 {
		top := natural + s.opts.Margin
		for i, l := range s.renderPanel(p, width) {
			if top+i >= h {
				break
			}
			lines[top+i] = l
		}
	}
	return strings.Join(lines, "\n")
}

// renderCell draws a cell's natural box: a rounded frame holding the title
// and the wrapped caption.
func (s *Surface) renderCell(c *Cell) []string {
	w, h := s.opts.CellWidth, s.opts.CellHeight
	border := style.CellBorder
	switch {
	case c.expanded:
		border = style.CellBorderExpanded
	case c.index == s.focus:
		border = style.CellBorderFocus
	}
	inner := max(0, w-4)
	body := []string{style.CellTitle.Render(common.Truncate(c.spec.Title, inner))}
	if c.spec.Caption != "" {
		for _, l := range strings.Split(common.WrapText(c.spec.Caption, inner), "\n") {
			body = append(body, style.CellCaption.Render(common.Truncate(l, inner)))
		}
	}
	return frame(w, h, body, border, "")
}

// renderPanel draws the panel at its displayed height across the full width.
func (s *Surface) renderPanel(p *Panel, width int) []string {
	inner := max(0, width-4)
	innerH := max(0, p.height-2)
	var body []string
	if s.opts.Content != nil && p.content != nil && inner > 0 && innerH > 0 {
		body = strings.Split(s.opts.Content.View(p.content, inner, innerH, p.hidden), "\n")
	}
	return frame(width, p.height, body, style.PanelBorder, style.PanelClose.Render(closeGlyph))
}

// frame draws a rounded border of exactly w x h around body, which is
// indented by one column. A non-empty badge is set into the top-right of the
// border.
func frame(w, h int, body []string, st lipgloss.Style, badge string) []string {
	if w <= 0 || h <= 0 {
		return nil
	}
	if w < 2 || h < 2 {
		return strings.Split(common.Fit("", w, h), "\n")
	}
	b := lipgloss.RoundedBorder()
	iw := w - 2

	top := strings.Repeat(b.Top, iw)
	if badge != "" && iw >= closeWidth+1 {
		top = strings.Repeat(b.Top, iw-closeWidth-1) + badge + b.Top
	}
	out := make([]string, 0, h)
	out = append(out, st.Render(b.TopLeft)+styledRun(top, st, badge)+st.Render(b.TopRight))
	for i := 0; i < h-2; i++ {
		line := ""
		if i < len(body) {
			line = body[i]
		}
		line = common.Fit(" "+line, iw, 1)
		out = append(out, st.Render(b.Left)+line+st.Render(b.Right))
	}
	out = append(out, st.Render(b.BottomLeft+strings.Repeat(b.Bottom, iw)+b.BottomRight))
	return out
}

// styledRun styles a border run, leaving an embedded badge as rendered.
func styledRun(run string, st lipgloss.Style, badge string) string {
	if badge == "" {
		return st.Render(run)
	}
	i := strings.Index(run, badge)
	if i < 0 {
		return st.Render(run)
	}
	return st.Render(run[:i]) + badge + st.Render(run[i+len(badge):])
}

// View renders the visible part of the document with a scrollbar column.
func (s *Surface) View() string {
	if s.width <= 0 || s.height <= 0 {
		return ""
	}
	lines := strings.Split(common.Fit(s.list.View(), s.width, s.height), "\n")
	bar := strings.Split(common.Scrollbar(s.height, s.list.TotalHeight(), s.list.Offset()), "\n")
	for i := range lines {
		if i < len(bar) && bar[i] != "" {
			lines[i] += bar[i]
		} else {
			lines[i] += " "
		}
	}
	return strings.Join(lines, "\n")
}

// ---------------------------------------------------------------------------
// Hit testing
// ---------------------------------------------------------------------------

// HitKind classifies a click.
type HitKind int

const (
	HitNone HitKind = iota
	HitCell
	HitPanel
	HitClose
)

// Hit is the result of HitTest.
type Hit struct {
	Kind  HitKind
	Cell  *Cell
	Panel *Panel
}

// HitTest resolves a viewport position to a cell, a panel or the panel's
// close glyph.
func (s *Surface) HitTest(x, y int) Hit {
	if x < 0 || y < 0 || x >= s.width || y >= s.height {
		return Hit{}
	}
	r, line := s.list.ItemAtLine(s.list.Offset() + y)
	if r < 0 || r >= len(s.rows) {
		return Hit{}
	}
	cells := s.rows[r]
	if p := s.panelFor(cells); p != nil {
		top := s.opts.CellHeight + s.opts.Margin
		if line >= top && line < top+p.height {
			if line == top && x >= s.width-closeWidth-2 && x < s.width-2 {
				return Hit{Kind: HitClose, Panel: p}
			}
			return Hit{Kind: HitPanel, Panel: p}
		}
	}
	if line < s.opts.CellHeight {
		if col := x / s.opts.CellWidth; col < len(cells) {
			return Hit{Kind: HitCell, Cell: cells[col]}
		}
	}
	return Hit{}
}

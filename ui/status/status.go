// Package status provides the bottom status bar: the focused item, the
// preview lifecycle state, the scroll position and key help.
package status

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/miosa/osa-gallery/style"
	"github.com/miosa/osa-gallery/ui/common"
)

// Model is the status bar state. Drive it via setter methods; it has no Update loop.
type Model struct {
	index, total int
	title        string
	preview      string
	scroll       int
	maxScroll    int
	loading      bool
	help         string
}

// New returns a zero-value Model.
func New() Model {
	return Model{}
}

// SetItem updates the focused item.
func (m *Model) SetItem(index, total int, title string) {
	m.index, m.total, m.title = index, total, title
}

// SetPreview sets the preview state label; "" hides it.
func (m *Model) SetPreview(state string) { m.preview = state }

// SetScroll updates the scroll position.
func (m *Model) SetScroll(offset, maxOffset int) {
	m.scroll, m.maxScroll = offset, maxOffset
}

// SetLoading marks content as still preloading.
func (m *Model) SetLoading(on bool) { m.loading = on }

// SetHelp sets the right-aligned key help.
func (m *Model) SetHelp(help string) { m.help = help }

// View renders one line of exactly width columns.
func (m Model) View(width int) string {
	var parts []string
	if p := CountPill(m.index, m.total); p != "" {
		parts = append(parts, p)
	}
	if m.title != "" {
		parts = append(parts, style.StatusValue.Render(m.title))
	}
	if m.loading {
		parts = append(parts, style.Hint.Render("loading"))
	}
	if p := StatePill(m.preview); p != "" {
		parts = append(parts, p)
	}
	if m.maxScroll > 0 {
		parts = append(parts, style.StatusKey.Render(fmt.Sprintf("%d%%", m.scroll*100/m.maxScroll)))
	}
	left := style.StatusBar.Render(strings.Join(parts, style.Faint.Render(" · ")))
	if m.help != "" {
		gap := width - lipgloss.Width(left) - lipgloss.Width(m.help)
		if gap >= 2 {
			return left + strings.Repeat(" ", gap) + m.help
		}
	}
	return common.Fit(left, width, 1)
}

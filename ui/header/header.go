// Package header renders the gallery's one-line title bar and separator.
package header

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/miosa/osa-gallery/msg"
	"github.com/miosa/osa-gallery/style"
	"github.com/miosa/osa-gallery/ui/common"
)

// Model holds the header state.
type Model struct {
	title   string
	version string
	items   int
	source  string
	width   int
}

// New returns a header for the given gallery title.
func New(title, version string) Model {
	if title == "" {
		title = "Gallery"
	}
	return Model{title: title, version: version}
}

// SetItems updates the displayed item count.
func (m *Model) SetItems(n int) { m.items = n }

// SetHealth shows the content server version from a health check.
func (m *Model) SetHealth(h msg.HealthResult) {
	switch {
	case h.Err != nil:
		m.source = "server unreachable"
	case h.Version != "":
		m.source = "server " + h.Version
	default:
		m.source = h.Status
	}
}

// SetWidth updates the terminal width used for separator sizing.
func (m *Model) SetWidth(w int) { m.width = w }

// Title returns the gallery title.
func (m Model) Title() string { return m.title }

// View returns the header line plus a thin separator.
func (m Model) View() string {
	title := style.ApplyBoldForegroundGrad("◈ " + m.title)
	meta := []string{fmt.Sprintf("%d items", m.items)}
	if m.source != "" {
		meta = append(meta, m.source)
	}
	if m.version != "" {
		meta = append(meta, m.version)
	}
	line := title + style.HeaderMeta.Render("  "+strings.Join(meta, " · "))
	if m.width > 0 && lipgloss.Width(line) > m.width {
		line = common.Truncate(line, m.width)
	}
	return line + "\n" + common.Divider(m.width)
}

// Height is the number of lines View renders.
func (m Model) Height() int { return 2 }

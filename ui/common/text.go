// Package common provides shared rendering helpers used by the gallery's UI
// components.
package common

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/miosa/osa-gallery/style"
)

// ---------------------------------------------------------------------------
// Text truncation / padding
// ---------------------------------------------------------------------------

// Truncate shortens s to maxWidth display columns, appending "…" if
// truncated. ANSI styling is preserved.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= maxWidth {
		return s
	}
	return ansi.Truncate(s, maxWidth, "…")
}

// PadRight pads s on the right with spaces until the rendered display width
// equals width. Returns s unchanged if it already meets or exceeds width.
func PadRight(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// PadCenter centers s within width, padding both sides with spaces.
func PadCenter(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	total := width - w
	left := total / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", total-left)
}

// Fit forces s into an exact width x height box: long lines are cut, short
// ones padded, missing lines added and extra lines dropped.
func Fit(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	for i, l := range lines {
		if lipgloss.Width(l) > width {
			l = ansi.Truncate(l, width, "")
		}
		lines[i] = PadRight(l, width)
	}
	return strings.Join(lines, "\n")
}

// Divider returns a horizontal rule of the given width rendered in the border color.
func Divider(width int) string {
	if width <= 0 {
		return ""
	}
	return lipgloss.NewStyle().Foreground(style.Border).Render(strings.Repeat("─", width))
}

// WrapText hard-wraps text so that no rendered line exceeds width columns.
// Existing newlines are preserved; long words are not split.
func WrapText(text string, width int) string {
	if width <= 0 {
		return text
	}
	var out strings.Builder
	for i, para := range strings.Split(text, "\n") {
		if i > 0 {
			out.WriteByte('\n')
		}
		lineLen := 0
		for j, word := range strings.Fields(para) {
			wLen := lipgloss.Width(word)
			switch {
			case j == 0:
				lineLen = wLen
			case lineLen+1+wLen > width:
				out.WriteByte('\n')
				lineLen = wLen
			default:
				out.WriteByte(' ')
				lineLen += 1 + wLen
			}
			out.WriteString(word)
		}
	}
	return out.String()
}

// HumanSize formats a byte count to a compact human-readable string.
//
//	1,572,864 → "1.5MB"
//	2,048     → "2.0KB"
//	512       → "512B"
func HumanSize(bytes int64) string {
	switch {
	case bytes >= 1<<20:
		return fmt.Sprintf("%.1fMB", float64(bytes)/(1<<20))
	case bytes >= 1<<10:
		return fmt.Sprintf("%.1fKB", float64(bytes)/(1<<10))
	default:
		return fmt.Sprintf("%dB", bytes)
	}
}

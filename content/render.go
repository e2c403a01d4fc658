package content

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// Renderer renders block bodies with glamour. It keeps one term renderer
// per wrap width, since the preview width only changes on resize.
type Renderer struct {
	style string
	width int
	tr    *glamour.TermRenderer
}

// NewRenderer uses the named glamour standard style ("dark", "light",
// "notty", ...).
func NewRenderer(style string) *Renderer {
	if style == "" {
		style = "dark"
	}
	return &Renderer{style: style}
}

// Markdown renders md wrapped at width, falling back to the plain text on
// error.
func (r *Renderer) Markdown(md string, width int) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	if width < 1 {
		width = 1
	}
	if r.tr == nil || r.width != width {
		tr, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(r.style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return md
		}
		r.tr, r.width = tr, width
	}
	out, err := r.tr.Render(md)
	if err != nil {
		return md
	}
	return strings.Trim(out, "\n")
}

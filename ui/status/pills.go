package status

import (
	"fmt"

	"github.com/miosa/osa-gallery/style"
)

// CountPill renders the focused position, e.g. "3/12".
func CountPill(index, total int) string {
	if total <= 0 {
		return ""
	}
	return style.StatusValue.Render(fmt.Sprintf("%d", index+1)) + style.Faint.Render(fmt.Sprintf("/%d", total))
}

// StatePill renders a preview state label colored by phase.
func StatePill(state string) string {
	switch state {
	case "":
		return ""
	case "open":
		return style.Bold.Foreground(style.Success).Render(state)
	case "opening", "updating", "closing":
		return style.Bold.Foreground(style.Warning).Render(state)
	default:
		return style.Faint.Render(state)
	}
}

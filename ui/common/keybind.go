package common

import (
	"strings"

	"charm.land/bubbles/v2/key"

	"github.com/miosa/osa-gallery/style"
)

// KeyHelp renders a help line for the status bar. Each binding is rendered
// as its help key followed by its description; disabled bindings are omitted.
func KeyHelp(bindings ...key.Binding) string {
	var parts []string
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		k := b.Help().Key
		if k == "" {
			k = strings.Join(b.Keys(), "/")
		}
		parts = append(parts, style.HelpKey.Render(k)+style.HelpDesc.Render(" "+b.Help().Desc))
	}
	return strings.Join(parts, style.HelpSeparator.Render(" · "))
}

package grid

import (
	"slices"
	"strings"
)

// selector is a parsed children selector: a comma-separated list of simple
// compounds "tag", ".class", "tag.class.other" or "*".
type selector []compound

type compound struct {
	tag     string
	classes []string
}

func parseSelector(s string) selector {
	var sel selector
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		pieces := strings.Split(part, ".")
		c := compound{tag: strings.ToLower(pieces[0])}
		if c.tag == "*" {
			c.tag = ""
		}
		for _, cls := range pieces[1:] {
			if cls != "" {
				c.classes = append(c.classes, cls)
			}
		}
		sel = append(sel, c)
	}
	return sel
}

func (sel selector) match(tag, class string) bool {
	for _, c := range sel {
		if c.match(tag, class) {
			return true
		}
	}
	return false
}

func (c compound) match(tag, class string) bool {
	if c.tag != "" && c.tag != strings.ToLower(tag) {
		return false
	}
	have := strings.Fields(class)
	for _, want := range c.classes {
		if !slices.Contains(have, want) {
			return false
		}
	}
	return true
}

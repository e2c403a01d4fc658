// Package image draws preview images inline in the terminal. It detects the
// best available protocol (Kitty, iTerm2) and falls back to a styled text
// placeholder sized to the preview's image area.
package image

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/miosa/osa-gallery/style"
)

// Protocol identifies the terminal image rendering protocol.
type Protocol int

const (
	ProtocolNone   Protocol = iota // placeholder only
	ProtocolKitty                  // Kitty graphics protocol (APC escape)
	ProtocolITerm2                 // iTerm2 inline images (OSC 1337)
)

func (p Protocol) String() string {
	switch p {
	case ProtocolKitty:
		return "kitty"
	case ProtocolITerm2:
		return "iterm2"
	default:
		return "none"
	}
}

// kittyChunk is the largest base64 payload Kitty accepts per escape.
const kittyChunk = 4096

// DetectProtocol inspects the environment for a supported terminal.
//
// Priority: Kitty (WezTerm/Ghostty/kitty) > iTerm2 > None.
func DetectProtocol() Protocol {
	switch os.Getenv("TERM_PROGRAM") {
	case "WezTerm", "ghostty":
		return ProtocolKitty
	case "iTerm.app", "iTerm2.app":
		return ProtocolITerm2
	}
	if strings.Contains(os.Getenv("TERM"), "kitty") {
		return ProtocolKitty
	}
	return ProtocolNone
}

// Renderer renders image bytes into a fixed cell area.
type Renderer struct {
	Protocol Protocol
}

// NewRenderer returns a renderer for the detected protocol.
func NewRenderer() Renderer {
	return Renderer{Protocol: DetectProtocol()}
}

// Render returns exactly height lines. The escape sequence (when a protocol is
// available) is emitted on the first line and the remaining lines are blank so
// the terminal image can occupy them.
func (r Renderer) Render(data []byte, name string, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	if len(data) == 0 {
		return Placeholder(name, width, height)
	}
	var seq string
	switch r.Protocol {
	case ProtocolKitty:
		seq = kitty(data, width, height)
	case ProtocolITerm2:
		seq = iterm2(data, name, width, height)
	default:
		return Placeholder(name, width, height)
	}
	return seq + strings.Repeat("\n", height-1)
}

// Blank returns an empty area of the given size. The preview draws it in
// place of the image while the panel collapses.
func Blank(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	line := strings.Repeat(" ", width)
	lines := make([]string, height)
	for i := range lines {
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

// Placeholder is a bordered, centered label of the given outer size.
func Placeholder(name string, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	if name == "" {
		name = "image"
	}
	label := fmt.Sprintf("[image: %s]", filepath.Base(name))
	if width < 4 || height < 3 {
		return lipgloss.NewStyle().Width(width).MaxWidth(width).Height(height).MaxHeight(height).Render(style.Faint.Render(label))
	}
	return style.PanelBorder.
		Width(width).
		Height(height).
		MaxHeight(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(style.Faint.Render(label))
}

// kitty emits a Kitty graphics transmit-and-display sequence scaled to a
// c x r cell box, split into chunks (m=1 on all but the last).
func kitty(data []byte, cols, rows int) string {
	b64 := base64.StdEncoding.EncodeToString(data)
	var sb strings.Builder
	for first := true; len(b64) > 0; first = false {
		n := min(kittyChunk, len(b64))
		chunk := b64[:n]
		b64 = b64[n:]
		more := 0
		if len(b64) > 0 {
			more = 1
		}
		if first {
			fmt.Fprintf(&sb, "\033_Ga=T,f=100,c=%d,r=%d,m=%d;%s\033\\", cols, rows, more, chunk)
		} else {
			fmt.Fprintf(&sb, "\033_Gm=%d;%s\033\\", more, chunk)
		}
	}
	return sb.String()
}

// iterm2 emits an OSC 1337 inline image sized in cells.
func iterm2(data []byte, name string, cols, rows int) string {
	return fmt.Sprintf(
		"\033]1337;File=name=%s;size=%d;inline=1;width=%d;height=%d;preserveAspectRatio=1:%s\007",
		base64.StdEncoding.EncodeToString([]byte(filepath.Base(name))),
		len(data), cols, rows,
		base64.StdEncoding.EncodeToString(data),
	)
}

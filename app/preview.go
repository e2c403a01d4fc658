package app

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/miosa/osa-gallery/content"
	"github.com/miosa/osa-gallery/gallery"
	"github.com/miosa/osa-gallery/style"
	"github.com/miosa/osa-gallery/ui/common"
	"github.com/miosa/osa-gallery/ui/image"
)

// imageMaxWidth caps the image column of a preview.
const imageMaxWidth = 40

// previewView draws a content block inside a grid panel: title and link on
// top, then the image beside the rendered markdown body.
type previewView struct {
	md  *content.Renderer
	img image.Renderer
}

func newPreviewView(markdownStyle string, img image.Renderer) *previewView {
	return &previewView{md: content.NewRenderer(markdownStyle), img: img}
}

func (v *previewView) View(c gallery.Content, width, height int, hideLarge bool) string {
	b, ok := c.(*content.Block)
	if !ok {
		return common.Fit(fmt.Sprint(c), width, height)
	}

	var head []string
	if b.Title != "" {
		head = append(head, style.PanelTitle.Render(common.Truncate(b.Title, width)))
	}
	if b.URL != "" {
		head = append(head, style.PanelLink.Render(common.Truncate(b.URL, width)))
	}
	if b.Err != nil {
		head = append(head, style.ErrorText.Render(common.Truncate("⚠ "+b.Err.Error(), width)))
	}
	bodyH := height - len(head)
	if bodyH <= 0 {
		return common.Fit(strings.Join(head, "\n"), width, height)
	}
	if len(head) > 0 {
		head = append(head, "")
		bodyH--
	}

	textW := width
	var imgCol string
	if b.Image != "" && width >= 20 && bodyH > 0 {
		imgW := min(imageMaxWidth, width/3)
		textW = width - imgW - 1
		if hideLarge {
			imgCol = image.Blank(imgW, bodyH)
		} else {
			imgCol = common.Fit(v.img.Render(b.ImageData, b.Image, imgW, bodyH), imgW, bodyH)
		}
	}

	var body string
	if bodyH > 0 {
		body = common.Fit(strings.TrimRight(v.md.Markdown(b.Body, textW), "\n"), textW, bodyH)
		if imgCol != "" {
			body = lipgloss.JoinHorizontal(lipgloss.Top, imgCol, " ", body)
		}
	}
	return common.Fit(strings.Join(append(head, body), "\n"), width, height)
}

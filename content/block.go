// Package content loads the gallery manifest and supplies preview content.
package content

import "github.com/miosa/osa-gallery/gallery"

// Block is the preview content of one source.
type Block struct {
	ID    string
	Title string
	Body  string // markdown
	URL   string

	// Image is the image reference; ImageData its loaded bytes.
	Image     string
	ImageData []byte

	// Err records why loading failed, if it did.
	Err error
}

// Clone returns a deep copy.
func (b *Block) Clone() gallery.Content {
	cp := *b
	if b.ImageData != nil {
		cp.ImageData = append([]byte(nil), b.ImageData...)
	}
	return &cp
}

// HasImage reports whether image bytes are loaded.
func (b *Block) HasImage() bool { return len(b.ImageData) > 0 }

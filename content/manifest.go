package content

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrEmptyManifest is returned for a manifest with no items.
var ErrEmptyManifest = errors.New("content: manifest has no items")

// Manifest describes the grid and its content sources.
type Manifest struct {
	Title   string                `yaml:"title"`
	Items   []ItemSpec            `yaml:"items"`
	Sources map[string]SourceSpec `yaml:"sources"`

	// dir is the manifest's directory; relative file references resolve
	// against it.
	dir string
}

// ItemSpec is one grid item.
type ItemSpec struct {
	Tag     string `yaml:"tag"`
	Class   string `yaml:"class"`
	Title   string `yaml:"title"`
	Caption string `yaml:"caption"`
	// ContentFrom references a source as "#id".
	ContentFrom string `yaml:"content_from"`
}

// SourceSpec is the content an item can reference. Body is inline markdown;
// URL, when set, is fetched and replaces Body.
type SourceSpec struct {
	Title string `yaml:"title"`
	Body  string `yaml:"body"`
	Image string `yaml:"image"`
	URL   string `yaml:"url"`
}

// ParseManifest decodes a YAML manifest. Items default to tag "div".
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("content: parse manifest: %w", err)
	}
	if len(m.Items) == 0 {
		return nil, ErrEmptyManifest
	}
	for i := range m.Items {
		if m.Items[i].Tag == "" {
			m.Items[i].Tag = "div"
		}
	}
	return &m, nil
}

// LoadManifest reads and parses the manifest at path.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	m, err := ParseManifest(data)
	if err != nil {
		return nil, err
	}
	m.dir = filepath.Dir(path)
	return m, nil
}

// Dir returns the directory relative references resolve against.
func (m *Manifest) Dir() string { return m.dir }

// Unresolved returns the content_from references naming no source. Such
// items open with an empty preview.
func (m *Manifest) Unresolved() []string {
	var out []string
	for _, it := range m.Items {
		if it.ContentFrom == "" {
			continue
		}
		if _, ok := m.Sources[SourceID(it.ContentFrom)]; !ok {
			out = append(out, it.ContentFrom)
		}
	}
	return out
}

// SourceID strips the "#" of a reference.
func SourceID(ref string) string {
	return strings.TrimPrefix(ref, "#")
}

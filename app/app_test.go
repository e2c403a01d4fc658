package app

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miosa/osa-gallery/config"
	"github.com/miosa/osa-gallery/content"
	"github.com/miosa/osa-gallery/gallery"
	"github.com/miosa/osa-gallery/msg"
	"github.com/miosa/osa-gallery/style"
	"github.com/miosa/osa-gallery/ui/grid"
	"github.com/miosa/osa-gallery/ui/image"
)

const manifestYAML = `
title: Test wall
items:
  - {title: Harbor, caption: Boats at dusk, content_from: "#harbor"}
  - {title: Ridge, content_from: "#ridge"}
  - {title: Dunes}
  - {title: Delta, content_from: "#harbor"}
sources:
  harbor: {title: Harbor, body: "Calm **water**."}
  ridge: {title: Ridge, body: "Snow.", url: notes/ridge.md}
`

type mapFetcher map[string]string

func (f mapFetcher) Fetch(_ context.Context, ref string) ([]byte, error) {
	s, ok := f[ref]
	if !ok {
		return nil, errors.New("missing " + ref)
	}
	return []byte(s), nil
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	mf, err := content.ParseManifest([]byte(manifestYAML))
	require.NoError(t, err)

	cfg := config.Defaults()
	cfg.Gallery.Transitions = false
	cfg.Gallery.MinHeight = 4

	m, err := New(Options{
		Config:   cfg,
		Manifest: mf,
		Fetcher:  mapFetcher{"notes/ridge.md": "Fetched ridge notes."},
		Now:      func() time.Time { return time.Unix(0, 0) },
	})
	require.NoError(t, err)
	return m
}

func update(t *testing.T, m Model, in tea.Msg) Model {
	t.Helper()
	out, _ := m.Update(in)
	return out.(Model)
}

// fireTimers delivers TimerMsg for every id the scheduler can have issued.
func fireTimers(t *testing.T, m Model) Model {
	t.Helper()
	for id := uint64(1); id <= 64; id++ {
		m = update(t, m, grid.TimerMsg{ID: id})
	}
	return m
}

func press(code rune) tea.KeyPressMsg {
	if code >= 'a' && code <= 'z' || code == '?' {
		return tea.KeyPressMsg{Code: code, Text: string(code)}
	}
	return tea.KeyPressMsg{Code: code}
}

func ready(t *testing.T) Model {
	t.Helper()
	m := newTestModel(t)
	m = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 30})
	assert.Equal(t, StateLoading, m.State(), "waits for preload")
	done := m.preload()().(msg.PreloadDone)
	assert.Equal(t, 2, done.Loaded)
	assert.NoError(t, done.Err)
	m = update(t, m, done)
	require.Equal(t, StateBrowse, m.State())
	return m
}

func TestNew_RequiresManifest(t *testing.T) {
	_, err := New(Options{})
	assert.ErrorIs(t, err, ErrNoManifest)
}

func TestReadyNeedsPreloadAndSize(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m, msg.PreloadDone{Loaded: 2})
	assert.Equal(t, StateLoading, m.State())
	assert.False(t, m.Gallery().Ready())

	m = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 30})
	assert.Equal(t, StateBrowse, m.State())
	assert.True(t, m.Gallery().Ready())
	assert.Len(t, m.Gallery().Items(), 4)
	assert.Equal(t, gallery.Viewport{Width: 79, Height: 27}, m.Gallery().Viewport())
}

func TestPreloadFillsURLBody(t *testing.T) {
	m := ready(t)
	c, ok := m.store.Lookup("#ridge")
	require.True(t, ok)
	assert.Equal(t, "Fetched ridge notes.", c.(*content.Block).Body)
}

func TestOpenAndClosePreview(t *testing.T) {
	m := ready(t)

	m = update(t, m, press(tea.KeyEnter))
	require.NotNil(t, m.Gallery().Preview())
	m = fireTimers(t, m)

	p := m.Gallery().Preview()
	require.NotNil(t, p)
	assert.Equal(t, gallery.StateOpen, p.State())
	assert.Equal(t, 0, p.Bound().Index)
	assert.Equal(t, 1, m.toasts.Len(), "item click toast")
	assert.Contains(t, m.renderView(), "Harbor")

	m = update(t, m, press(tea.KeyEscape))
	m = fireTimers(t, m)
	assert.Nil(t, m.Gallery().Preview())
	assert.Empty(t, m.Surface().Panels())
}

func TestEnterTogglesFocusedItem(t *testing.T) {
	m := ready(t)
	m = update(t, m, press(tea.KeyEnter))
	m = fireTimers(t, m)
	m = update(t, m, press(tea.KeyEnter))
	assert.Nil(t, m.Gallery().Preview(), "second enter closes")
}

func TestNavigationMovesFocus(t *testing.T) {
	m := ready(t)
	m = update(t, m, press('l'))
	assert.Equal(t, 1, m.Surface().Focus())
	m = update(t, m, press(tea.KeyDown))
	assert.Equal(t, 3, m.Surface().Focus(), "two columns at width 80")
	m = update(t, m, press('h'))
	assert.Equal(t, 2, m.Surface().Focus())
}

func TestMouseClickActivates(t *testing.T) {
	m := ready(t)
	// Header is two lines tall; column 30 is the second cell.
	m = update(t, m, tea.MouseClickMsg{X: 30, Y: 3, Button: tea.MouseLeft})
	require.NotNil(t, m.Gallery().Preview())
	assert.Equal(t, 1, m.Gallery().Current().Index)
	assert.Equal(t, 1, m.Surface().Focus())
}

func TestResizeClosesPreview(t *testing.T) {
	m := ready(t)
	m = update(t, m, press(tea.KeyEnter))
	m = fireTimers(t, m)
	require.NotNil(t, m.Gallery().Preview())

	m = update(t, m, tea.WindowSizeMsg{Width: 60, Height: 30})
	m = fireTimers(t, m)
	assert.Nil(t, m.Gallery().Preview())
	assert.Equal(t, 59, m.Gallery().Viewport().Width)
}

func TestThemeKeyCycles(t *testing.T) {
	t.Cleanup(func() { style.SetTheme("dark") })
	m := ready(t)
	before := style.CurrentThemeName
	m = update(t, m, press('t'))
	assert.NotEqual(t, before, style.CurrentThemeName)

	m, cmd := m.nextTheme()
	require.NotNil(t, cmd)
	changed, ok := cmd().(msg.ThemeChanged)
	require.True(t, ok)
	assert.Equal(t, style.CurrentThemeName, changed.Name)
	m = update(t, m, changed)
	assert.Equal(t, 1, m.toasts.Len())
}

func TestHelpOverlay(t *testing.T) {
	m := ready(t)
	m = update(t, m, press('?'))
	assert.Equal(t, StateHelp, m.State())
	assert.Contains(t, m.renderView(), "open/close")
	m = update(t, m, press('x'))
	assert.Equal(t, StateBrowse, m.State())
}

func TestQuit(t *testing.T) {
	m := ready(t)
	_, cmd := m.handleKey(press('q'))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestViewFillsTerminal(t *testing.T) {
	m := ready(t)
	lines := strings.Split(m.renderView(), "\n")
	assert.Len(t, lines, 30)
}

func TestComputeLayout(t *testing.T) {
	l := ComputeLayout(100, 40, 2, 1)
	assert.Equal(t, 37, l.GridHeight)
	assert.Equal(t, 100, l.GridWidth)
	assert.Equal(t, minGridHeight, ComputeLayout(100, 4, 2, 1).GridHeight)
}

func TestPreviewView(t *testing.T) {
	v := newPreviewView("notty", image.Renderer{})
	b := &content.Block{Title: "Harbor", Body: "Calm water.", Image: "harbor.png", URL: "https://example.com/h"}

	out := v.View(b, 60, 8, false)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 8)
	for _, l := range lines {
		assert.Equal(t, 60, lipgloss.Width(l))
	}
	assert.Contains(t, out, "Harbor")
	assert.Contains(t, out, "example.com")
	assert.Contains(t, out, "harbor.png")

	hidden := v.View(b, 60, 8, true)
	assert.NotContains(t, hidden, "harbor.png", "image area blanked while collapsing")

	failed := &content.Block{Title: "x", Err: errors.New("boom")}
	assert.Contains(t, v.View(failed, 40, 4, false), "boom")
}

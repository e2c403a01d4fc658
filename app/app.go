// Package app is the root Bubble Tea model: it loads the manifest content,
// hosts the gallery on a terminal grid and routes keys, mouse and resizes to
// it.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/miosa/osa-gallery/client"
	"github.com/miosa/osa-gallery/config"
	"github.com/miosa/osa-gallery/content"
	"github.com/miosa/osa-gallery/gallery"
	"github.com/miosa/osa-gallery/msg"
	"github.com/miosa/osa-gallery/style"
	"github.com/miosa/osa-gallery/ui/anim"
	"github.com/miosa/osa-gallery/ui/common"
	"github.com/miosa/osa-gallery/ui/grid"
	"github.com/miosa/osa-gallery/ui/header"
	"github.com/miosa/osa-gallery/ui/image"
	"github.com/miosa/osa-gallery/ui/status"
	"github.com/miosa/osa-gallery/ui/toast"
)

// ErrNoManifest is returned by New without a manifest.
var ErrNoManifest = errors.New("app: no manifest")

// Options wires the app's collaborators.
type Options struct {
	Config   config.Config
	Manifest *content.Manifest

	// Client fetches remote references and answers health checks. Optional.
	Client *client.Client

	// Fetcher overrides the default file/HTTP loader.
	Fetcher content.Fetcher

	// Context bounds content preloading.
	Context context.Context

	Version string
	Logger  *zap.Logger
	Now     func() time.Time
}

// clickQueue collects OnItemClick notifications raised while the gallery
// handles an event; Update drains it.
type clickQueue struct {
	items []*gallery.Item
}

func (q *clickQueue) push(it *gallery.Item) { q.items = append(q.items, it) }

func (q *clickQueue) drain() []*gallery.Item {
	out := q.items
	q.items = nil
	return out
}

// Model is the root Bubble Tea model.
type Model struct {
	cfg  config.Config
	log  *zap.Logger
	keys KeyMap
	ctx  context.Context

	state  State
	layout Layout
	width  int
	height int

	store   *content.Store
	fetcher content.Fetcher
	client  *client.Client
	ready   *content.Latch

	preloaded bool
	sized     bool

	sched   *grid.Scheduler
	surface *grid.Surface
	gallery *gallery.Gallery
	preview *previewView
	clicks  *clickQueue

	header  header.Model
	status  status.Model
	toasts  toast.Model
	spinner anim.Spinner

	initCmds []tea.Cmd
}

// New builds the gallery over the manifest's items. Geometry is measured once
// content has preloaded and the terminal size is known.
func New(opts Options) (Model, error) {
	if opts.Manifest == nil {
		return Model{}, ErrNoManifest
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	cfg := opts.Config
	log := opts.Logger.Named("app")

	fetcher := opts.Fetcher
	if fetcher == nil {
		fetcher = &content.Loader{Dir: opts.Manifest.Dir(), Client: opts.Client}
	}
	for _, ref := range opts.Manifest.Unresolved() {
		log.Warn("item references a missing source", zap.String("ref", ref))
	}

	specs := make([]grid.CellSpec, len(opts.Manifest.Items))
	for i, it := range opts.Manifest.Items {
		specs[i] = grid.CellSpec{
			Tag:        it.Tag,
			Class:      it.Class,
			Title:      it.Title,
			Caption:    it.Caption,
			ContentRef: it.ContentFrom,
		}
	}

	preview := newPreviewView(style.MarkdownStyle(), image.NewRenderer())
	surface := grid.New(specs, grid.Options{
		CellWidth:  cfg.Grid.CellWidth,
		CellHeight: cfg.Grid.CellHeight,
		Margin:     cfg.Gallery.Margin,
		Content:    preview,
		Now:        opts.Now,
		Logger:     opts.Logger,
	})

	m := Model{
		cfg:     cfg,
		log:     log,
		keys:    DefaultKeyMap(),
		ctx:     opts.Context,
		state:   StateLoading,
		store:   content.NewStore(opts.Manifest),
		fetcher: fetcher,
		client:  opts.Client,
		ready:   &content.Latch{},
		sched:   grid.NewScheduler(),
		surface: surface,
		preview: preview,
		clicks:  &clickQueue{},
		header:  header.New(opts.Manifest.Title, opts.Version),
		status:  status.New(),
		toasts:  toast.New(opts.Now),
		spinner: anim.NewSpinner("Loading content", style.GradColorA, style.GradColorB),
		width:   80,
		height:  24,
	}

	g, err := gallery.New(gallery.Host{
		Container: surface,
		Document:  surface,
		Scheduler: m.sched,
		Content:   m.store,
		Ready:     m.ready,
	}, m.galleryOptions(opts.Logger))
	if err != nil {
		return Model{}, fmt.Errorf("app: %w", err)
	}
	m.gallery = g
	m.header.SetItems(len(g.Items()))
	if len(g.Items()) == 0 {
		log.Warn("children selector matched no items", zap.String("selector", cfg.Gallery.ChildrenSelector))
	}
	m.initCmds = append(m.initCmds, m.spinner.Start())
	m.status.SetLoading(true)
	m.status.SetHelp(m.helpLine())
	return m, nil
}

func (m Model) galleryOptions(logger *zap.Logger) gallery.Options {
	g := m.cfg.Gallery
	opts := gallery.DefaultOptions()
	opts.MinHeight = g.MinHeight
	opts.Speed = g.Speed()
	opts.Easing = g.Easing
	opts.Margin = g.Margin
	opts.ChildrenSelector = g.ChildrenSelector
	opts.AutomaticallyGetHTML = g.AutomaticallyGetHTML
	opts.Transitions = gallery.TransitionSignal{Supported: g.Transitions}
	opts.OnItemClick = m.clicks.push
	opts.Logger = logger
	return opts
}

// Gallery returns the hosted gallery.
func (m Model) Gallery() *gallery.Gallery { return m.gallery }

// Surface returns the grid host.
func (m Model) Surface() *grid.Surface { return m.surface }

// State returns the app state.
func (m Model) State() State { return m.state }

// -- Init ---------------------------------------------------------------------

func (m Model) Init() tea.Cmd {
	cmds := append([]tea.Cmd{m.preload(), func() tea.Msg { return tea.RequestWindowSize() }}, m.initCmds...)
	if m.client != nil {
		cmds = append(cmds, m.checkHealth())
	}
	return tea.Batch(cmds...)
}

// preload loads every source's URL body and image off the event loop.
func (m Model) preload() tea.Cmd {
	ctx, store, fetcher, log := m.ctx, m.store, m.fetcher, m.log
	return func() tea.Msg {
		err := content.Preload(ctx, store, fetcher, content.DefaultConcurrency, log)
		done := msg.PreloadDone{Loaded: store.Len(), Err: err}
		for _, id := range store.IDs() {
			if store.Block(id).Err != nil {
				done.Failed++
			}
		}
		done.Loaded -= done.Failed
		return done
	}
}

func (m Model) checkHealth() tea.Cmd {
	c, ctx := m.client, m.ctx
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		h, err := c.Health(ctx)
		if err != nil {
			return msg.HealthResult{Err: err}
		}
		return msg.HealthResult{Status: h.Status, Version: h.Version}
	}
}

// -- Update -------------------------------------------------------------------

func (m Model) Update(rawMsg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch v := rawMsg.(type) {

	case tea.WindowSizeMsg:
		m.width, m.height = v.Width, v.Height
		m.layout = ComputeLayout(v.Width, v.Height, m.header.Height(), 1)
		m.header.SetWidth(v.Width)
		m.surface.SetSize(m.layout.GridWidth, m.layout.GridHeight)
		m.sized = true
		if m.gallery.Ready() {
			m.gallery.NotifyResize()
		} else {
			m = m.maybeReady()
		}

	case msg.PreloadDone:
		m.preloaded = true
		if v.Err != nil {
			m.log.Warn("some content failed to load", zap.Int("failed", v.Failed), zap.Error(v.Err))
			cmds = append(cmds, m.toasts.Add(fmt.Sprintf("%d source(s) failed to load", v.Failed), toast.Warning))
		}
		m = m.maybeReady()

	case msg.HealthResult:
		m.header.SetHealth(v)
		if v.Err != nil {
			m.log.Warn("content server health check failed", zap.Error(v.Err))
		}

	case grid.TimerMsg:
		m.sched.HandleTimer(v)

	case anim.FrameMsg:
		cmds = append(cmds, m.surface.HandleFrame(v))

	case anim.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(v)
		cmds = append(cmds, cmd)

	case msg.ThemeChanged:
		cmds = append(cmds, m.toasts.Add("Theme: "+v.Name, toast.Info))

	case toast.ExpireMsg:
		m.toasts = m.toasts.Update(v)

	case tea.KeyPressMsg:
		var cmd tea.Cmd
		m, cmd = m.handleKey(v)
		cmds = append(cmds, cmd)

	case tea.MouseClickMsg:
		m = m.handleClick(v)

	case tea.MouseWheelMsg:
		m.surface.Update(v)
	}

	for _, it := range m.clicks.drain() {
		cmds = append(cmds, m.onItemClick(it))
	}
	cmds = append(cmds, m.sched.Cmds(), m.surface.FrameCmd())
	m.syncStatus()
	return m, tea.Batch(cmds...)
}

// maybeReady fires the ready latch once content is loaded and the grid has
// a real size, so the first measurement sees final geometry.
func (m Model) maybeReady() Model {
	if !m.preloaded || !m.sized || m.ready.Fired() {
		return m
	}
	m.ready.Fire()
	m.state = StateBrowse
	m.spinner.Stop()
	m.status.SetLoading(false)
	m.log.Info("gallery ready", zap.Int("items", len(m.gallery.Items())))
	return m
}

func (m *Model) onItemClick(it *gallery.Item) tea.Cmd {
	title := it.Link()
	m.log.Debug("item preview populated", zap.Int("item", it.Index), zap.String("title", title))
	if title == "" {
		return nil
	}
	return m.toasts.Add(title, toast.Info)
}

// -- Input --------------------------------------------------------------------

func (m Model) handleKey(k tea.KeyPressMsg) (Model, tea.Cmd) {
	if key.Matches(k, m.keys.Quit) {
		m.gallery.Stop()
		return m, tea.Quit
	}
	if m.state == StateHelp {
		m.state = StateBrowse
		return m, nil
	}
	if m.state == StateLoading {
		return m, nil
	}

	switch {
	case key.Matches(k, m.keys.Up):
		m.surface.MoveFocus(0, -1)
		m.surface.RevealFocus()
	case key.Matches(k, m.keys.Down):
		m.surface.MoveFocus(0, 1)
		m.surface.RevealFocus()
	case key.Matches(k, m.keys.Left):
		m.surface.MoveFocus(-1, 0)
		m.surface.RevealFocus()
	case key.Matches(k, m.keys.Right):
		m.surface.MoveFocus(1, 0)
		m.surface.RevealFocus()
	case key.Matches(k, m.keys.PageUp):
		m.surface.ScrollTo(m.surface.ScrollOffset()-m.layout.GridHeight, 0)
	case key.Matches(k, m.keys.PageDown):
		m.surface.ScrollTo(m.surface.ScrollOffset()+m.layout.GridHeight, 0)
	case key.Matches(k, m.keys.ScrollTop):
		m.surface.SetFocus(0)
		m.surface.ScrollTo(0, 0)
	case key.Matches(k, m.keys.ScrollEnd):
		m.surface.SetFocus(len(m.surface.Cells()) - 1)
		m.surface.ScrollTo(m.surface.TotalHeight(), 0)
	case key.Matches(k, m.keys.Open):
		if c := m.surface.FocusedCell(); c != nil {
			m.gallery.Activate(m.gallery.ItemFor(c))
		}
	case key.Matches(k, m.keys.Close):
		m.gallery.Close()
	case key.Matches(k, m.keys.Theme):
		return m.nextTheme()
	case key.Matches(k, m.keys.Help):
		m.state = StateHelp
	}
	return m, nil
}

func (m Model) handleClick(c tea.MouseClickMsg) Model {
	if m.state != StateBrowse || c.Button != tea.MouseLeft {
		return m
	}
	hit := m.surface.HitTest(c.X, c.Y-m.layout.HeaderHeight)
	switch hit.Kind {
	case grid.HitCell:
		m.surface.SetFocus(hit.Cell.Index())
		m.gallery.Activate(m.gallery.ItemFor(hit.Cell))
	case grid.HitClose:
		m.gallery.Close()
	}
	return m
}

func (m Model) nextTheme() (Model, tea.Cmd) {
	names := style.ThemeNames
	next := names[0]
	for i, n := range names {
		if n == style.CurrentThemeName {
			next = names[(i+1)%len(names)]
			break
		}
	}
	style.SetTheme(next)
	m.preview.md = content.NewRenderer(style.MarkdownStyle())
	m.surface.Refresh()
	m.log.Debug("theme changed", zap.String("theme", next))
	return m, func() tea.Msg { return msg.ThemeChanged{Name: next} }
}

// -- View ---------------------------------------------------------------------

// View returns the tea.View for the current frame.
func (m Model) View() tea.View {
	v := tea.NewView(m.renderView())
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	return v
}

func (m Model) renderView() string {
	var body string
	switch m.state {
	case StateLoading:
		body = common.Fit("\n"+common.PadCenter(m.spinner.View(), m.width), m.width, m.layout.GridHeight)
	case StateHelp:
		body = common.Fit(m.helpView(), m.width, m.layout.GridHeight)
	default:
		body = m.overlayToasts(m.surface.View())
	}
	return strings.Join([]string{m.header.View(), body, m.status.View(m.width)}, "\n")
}

// overlayToasts replaces the bottom grid lines with the visible toasts so
// the grid never changes size.
func (m Model) overlayToasts(view string) string {
	t := m.toasts.View(m.width)
	if t == "" {
		return view
	}
	lines := strings.Split(view, "\n")
	toastLines := strings.Split(t, "\n")
	start := max(0, len(lines)-len(toastLines))
	for i, l := range toastLines {
		if start+i < len(lines) {
			lines[start+i] = l
		}
	}
	return strings.Join(lines, "\n")
}

func (m *Model) syncStatus() {
	if c := m.surface.FocusedCell(); c != nil {
		m.status.SetItem(c.Index(), len(m.surface.Cells()), c.Spec().Title)
	}
	state := ""
	if p := m.gallery.Preview(); p != nil {
		state = p.State().String()
	}
	m.status.SetPreview(state)
	m.status.SetScroll(m.surface.ScrollOffset(), max(0, m.surface.TotalHeight()-m.layout.GridHeight))
}

func (m Model) helpLine() string {
	return common.KeyHelp(m.keys.Open, m.keys.Close, m.keys.Help, m.keys.Quit)
}

func (m Model) helpView() string {
	bindings := []key.Binding{
		m.keys.Up, m.keys.Down, m.keys.Left, m.keys.Right,
		m.keys.PageUp, m.keys.PageDown, m.keys.ScrollTop, m.keys.ScrollEnd,
		m.keys.Open, m.keys.Close, m.keys.Theme, m.keys.Help, m.keys.Quit,
	}
	lines := []string{style.Bold.Render("Keys"), ""}
	for _, b := range bindings {
		lines = append(lines, "  "+common.PadRight(style.HelpKey.Render(b.Help().Key), 10)+style.HelpDesc.Render(b.Help().Desc))
	}
	lines = append(lines, "", style.Hint.Render("press any key to return"))
	return lipgloss.NewStyle().Padding(1, 2).Render(strings.Join(lines, "\n"))
}

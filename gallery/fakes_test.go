package gallery

import (
	"fmt"
	"sort"
	"time"
)

// ---------------------------------------------------------------------------
// Manual scheduler
// ---------------------------------------------------------------------------

type fakeTimer struct {
	at      time.Duration
	seq     int
	fn      func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// fakeScheduler runs deferred calls only when the test advances its clock.
type fakeScheduler struct {
	now    time.Duration
	seq    int
	timers []*fakeTimer
}

func (s *fakeScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	s.seq++
	t := &fakeTimer{at: s.now + d, seq: s.seq, fn: fn}
	s.timers = append(s.timers, t)
	return t
}

// Advance fires every timer due within d, in due order.
func (s *fakeScheduler) Advance(d time.Duration) {
	target := s.now + d
	for {
		next := s.nextDue(target)
		if next == nil {
			break
		}
		s.now = next.at
		next.fired = true
		next.fn()
	}
	s.now = target
}

func (s *fakeScheduler) nextDue(limit time.Duration) *fakeTimer {
	var best *fakeTimer
	for _, t := range s.timers {
		if t.fired || t.stopped || t.at > limit {
			continue
		}
		if best == nil || t.at < best.at || (t.at == best.at && t.seq < best.seq) {
			best = t
		}
	}
	return best
}

func (s *fakeScheduler) pending() int {
	n := 0
	for _, t := range s.timers {
		if !t.fired && !t.stopped {
			n++
		}
	}
	return n
}

// ---------------------------------------------------------------------------
// Elements
// ---------------------------------------------------------------------------

type fakeEl struct {
	offsetTop  int
	height     int
	transition bool
	easing     string

	listeners map[int]func()
	nextID    int

	heightsSet []int
	// inFlight is set when a height change started a transition that has
	// not ended yet.
	inFlight bool
}

func (e *fakeEl) OnTransitionEnd(fn func()) func() {
	if e.listeners == nil {
		e.listeners = make(map[int]func())
	}
	e.nextID++
	id := e.nextID
	e.listeners[id] = fn
	return func() { delete(e.listeners, id) }
}

func (e *fakeEl) SetHeight(h int) {
	if e.transition && h != e.height {
		e.inFlight = true
	}
	e.height = h
	e.heightsSet = append(e.heightsSet, h)
}

func (e *fakeEl) SetTransition(_ time.Duration, easing string) {
	e.transition = true
	e.easing = easing
}

func (e *fakeEl) OffsetTop() int { return e.offsetTop }

// endTransition emits transition-end to every listener registered now.
func (e *fakeEl) endTransition() {
	e.inFlight = false
	ids := make([]int, 0, len(e.listeners))
	for id := range e.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		if fn, ok := e.listeners[id]; ok {
			fn()
		}
	}
}

type fakeItem struct {
	fakeEl
	natural  int
	expanded bool
	ref      string
	link     string
}

func newFakeItem(offsetTop, natural int, ref string) *fakeItem {
	it := &fakeItem{natural: natural, ref: ref, link: ref}
	it.offsetTop = offsetTop
	it.height = natural
	return it
}

func (i *fakeItem) Height() int         { return i.height }
func (i *fakeItem) SetExpanded(on bool) { i.expanded = on }
func (i *fakeItem) ContentRef() string  { return i.ref }
func (i *fakeItem) Link() string        { return i.link }

type fakePanel struct {
	fakeEl
	host        *fakeItem
	margin      int
	content     Content
	contentSets int
	hidden      bool
	removed     bool
}

func (p *fakePanel) OffsetTop() int {
	return p.host.offsetTop + p.host.natural + p.margin
}
func (p *fakePanel) SetContent(c Content) { p.content = c; p.contentSets++ }
func (p *fakePanel) HideLargeContent()    { p.hidden = true }
func (p *fakePanel) Remove()              { p.removed = true }

type fakeDoc struct {
	vp            Viewport
	margin        int
	panels        []*fakePanel
	scrolls       []int
	viewportReads int
}

func (d *fakeDoc) Viewport() Viewport {
	d.viewportReads++
	return d.vp
}

func (d *fakeDoc) CreatePanel(item ItemElement) PanelElement {
	p := &fakePanel{host: item.(*fakeItem), margin: d.margin}
	d.panels = append(d.panels, p)
	return p
}

func (d *fakeDoc) ScrollTo(top int, _ time.Duration) {
	d.scrolls = append(d.scrolls, top)
}

func (d *fakeDoc) lastScroll() int {
	if len(d.scrolls) == 0 {
		return -1
	}
	return d.scrolls[len(d.scrolls)-1]
}

type fakeContainer struct {
	items    []*fakeItem
	selector string
}

func (c *fakeContainer) Children(selector string) []ItemElement {
	c.selector = selector
	out := make([]ItemElement, len(c.items))
	for i, it := range c.items {
		out[i] = it
	}
	return out
}

// ---------------------------------------------------------------------------
// Content
// ---------------------------------------------------------------------------

type testContent struct {
	title string
}

func (c *testContent) Clone() Content {
	cp := *c
	return &cp
}

type fakeSource map[string]*testContent

func (s fakeSource) Lookup(ref string) (Content, bool) {
	c, ok := s[ref]
	if !ok {
		return nil, false
	}
	return c, true
}

type manualReady struct {
	fns []func()
}

func (r *manualReady) OnReady(fn func()) { r.fns = append(r.fns, fn) }

func (r *manualReady) fire() {
	for _, fn := range r.fns {
		fn()
	}
}

// ---------------------------------------------------------------------------
// Fixture
// ---------------------------------------------------------------------------

type fixture struct {
	sched *fakeScheduler
	doc   *fakeDoc
	root  *fakeContainer
	src   fakeSource
	g     *Gallery
}

func (f *fixture) item(i int) *fakeItem { return f.root.items[i] }

func (f *fixture) panel(i int) *fakePanel { return f.doc.panels[i] }

// settle runs the fixed open/close deferral.
func (f *fixture) settle() { f.sched.Advance(DefaultOpenDelay) }

func testOptions() Options {
	o := DefaultOptions()
	o.Transitions = TransitionSignal{Supported: false}
	return o
}

// newFixture builds a ready gallery with items at the given offsets, each of
// natural height 200, in a viewport of vh.
func newFixture(vh int, offsets []int, opts Options) *fixture {
	f := &fixture{
		sched: &fakeScheduler{},
		doc:   &fakeDoc{vp: Viewport{Width: 1024, Height: vh}, margin: opts.Margin},
		root:  &fakeContainer{},
		src:   fakeSource{},
	}
	for i, off := range offsets {
		ref := fmt.Sprintf("#c%d", i)
		f.root.items = append(f.root.items, newFakeItem(off, 200, ref))
		f.src[ref] = &testContent{title: ref}
	}
	g, err := New(Host{
		Container: f.root,
		Document:  f.doc,
		Scheduler: f.sched,
		Content:   f.src,
	}, opts)
	if err != nil {
		panic(err)
	}
	f.g = g
	return f
}

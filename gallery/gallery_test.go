package gallery

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_NoContainer(t *testing.T) {
	g, err := New(Host{Document: &fakeDoc{}, Scheduler: &fakeScheduler{}}, DefaultOptions())
	assert.Nil(t, g)
	assert.ErrorIs(t, err, ErrNoContainer)
}

func TestNew_EmptyContainer(t *testing.T) {
	g, err := New(Host{
		Container: &fakeContainer{},
		Document:  &fakeDoc{vp: Viewport{Height: 600}},
		Scheduler: &fakeScheduler{},
	}, DefaultOptions())
	require.NoError(t, err)
	assert.True(t, g.Ready())
	assert.Empty(t, g.Items())

	g.ActivateIndex(0) // out of range, no preview
	assert.Nil(t, g.Preview())
}

func TestNew_UsesChildrenSelector(t *testing.T) {
	root := &fakeContainer{items: []*fakeItem{newFakeItem(0, 100, "")}}
	opts := DefaultOptions()
	opts.ChildrenSelector = "li.card"
	_, err := New(Host{Container: root, Document: &fakeDoc{}, Scheduler: &fakeScheduler{}}, opts)
	require.NoError(t, err)
	assert.Equal(t, "li.card", root.selector)
}

func TestNew_WaitsForReady(t *testing.T) {
	ready := &manualReady{}
	it := newFakeItem(40, 120, "#a")
	doc := &fakeDoc{vp: Viewport{Width: 800, Height: 700}}
	g, err := New(Host{
		Container: &fakeContainer{items: []*fakeItem{it}},
		Document:  doc,
		Scheduler: &fakeScheduler{},
		Ready:     ready,
	}, testOptions())
	require.NoError(t, err)

	assert.False(t, g.Ready())
	assert.False(t, g.Item(0).Measured())
	assert.Equal(t, 0, doc.viewportReads)

	g.ActivateIndex(0)
	assert.Nil(t, g.Preview(), "activation before ready must be ignored")
	assert.Empty(t, doc.panels)

	ready.fire()
	assert.True(t, g.Ready())
	assert.True(t, g.Item(0).Measured())
	assert.Equal(t, 40, g.Item(0).OffsetTop)
	assert.Equal(t, 120, g.Item(0).NaturalHeight)
	assert.Equal(t, Viewport{Width: 800, Height: 700}, g.Viewport())
}

func TestGallery_OpenSequence(t *testing.T) {
	f := newFixture(800, []int{0, 0, 400}, testOptions())
	g := f.g

	g.ActivateIndex(0)
	p := g.Preview()
	require.NotNil(t, p)
	assert.Equal(t, StateOpening, p.State())
	assert.Equal(t, g.Item(0), g.Current())
	assert.Equal(t, Expanded, g.Item(0).State)
	require.Len(t, f.doc.panels, 1)
	assert.Empty(t, f.panel(0).heightsSet, "heights wait for the open deferral")
	assert.Empty(t, f.doc.scrolls)

	f.settle()
	assert.Equal(t, StateOpen, p.State())
	assert.Equal(t, Heights{Preview: 590, Item: 800}, p.Heights())
	assert.Equal(t, []int{590}, f.panel(0).heightsSet)
	assert.Equal(t, 800, f.item(0).height)
	assert.True(t, f.item(0).expanded)
	assert.Equal(t, []int{0}, f.doc.scrolls)

	c, ok := p.Content().(*testContent)
	require.True(t, ok)
	assert.Equal(t, "#c0", c.title)
	assert.NotSame(t, f.src["#c0"], c, "panel content must be a copy")
}

func TestGallery_OpenWithTransitions(t *testing.T) {
	opts := DefaultOptions()
	opts.Transitions = TransitionSignal{Supported: true}
	f := newFixture(800, []int{0, 300}, opts)

	f.g.ActivateIndex(0)
	assert.True(t, f.item(0).transition)
	assert.Equal(t, DefaultEasing, f.item(0).easing)
	assert.True(t, f.panel(0).transition)

	f.settle()
	p := f.g.Preview()
	assert.Equal(t, StateOpening, p.State(), "open completes on transition end")
	assert.False(t, f.item(0).expanded)

	f.item(0).endTransition()
	assert.Equal(t, StateOpen, p.State())
	assert.True(t, f.item(0).expanded)

	f.g.ActivateIndex(0)
	assert.Equal(t, StateClosing, p.State())
	f.settle()
	assert.Equal(t, 200, f.item(0).height)
	assert.False(t, f.panel(0).removed, "removal waits for the collapse to finish")

	f.item(0).endTransition()
	assert.Equal(t, StateClosed, p.State())
	assert.True(t, f.panel(0).removed)
	assert.False(t, f.item(0).expanded)
}

func TestGallery_ZeroSpeedIsInstant(t *testing.T) {
	opts := DefaultOptions()
	opts.Speed = 0
	opts.Transitions = TransitionSignal{Supported: true}
	f := newFixture(800, []int{0, 300}, opts)
	assert.Equal(t, time.Duration(0), f.g.Options().Speed)
	assert.False(t, f.g.Options().Transitions.Supported)

	f.g.ActivateIndex(0)
	assert.False(t, f.item(0).transition)
	f.settle()
	assert.Equal(t, StateOpen, f.g.Preview().State(), "no transition-end to wait for")

	opts.Speed = -1
	f = newFixture(800, []int{0}, opts)
	assert.Equal(t, DefaultSpeed, f.g.Options().Speed)
}

func TestGallery_ToggleClosesCurrent(t *testing.T) {
	f := newFixture(800, []int{0, 0, 400}, testOptions())
	g := f.g

	g.ActivateIndex(1)
	f.settle()
	p := g.Preview()

	g.ActivateIndex(1)
	assert.Nil(t, g.Preview())
	assert.Nil(t, g.Current())
	assert.Equal(t, Collapsed, g.Item(1).State)
	assert.Equal(t, 0, g.ScrollExtra())
	assert.Equal(t, StateClosing, p.State())

	f.settle()
	assert.Equal(t, StateClosed, p.State())
	assert.True(t, f.panel(0).hidden)
	assert.True(t, f.panel(0).removed)
	assert.Equal(t, 0, f.panel(0).height)
	assert.Equal(t, 200, f.item(1).height)
	assert.False(t, f.item(1).expanded)
}

func TestGallery_CloseWithoutPreview(t *testing.T) {
	f := newFixture(800, []int{0, 400}, testOptions())
	f.g.Close()
	assert.Nil(t, f.g.Preview())
	assert.Equal(t, 0, f.sched.pending())
	assert.Empty(t, f.doc.panels)
}

func TestGallery_CloseBeforeOpenDeferral(t *testing.T) {
	f := newFixture(800, []int{0, 400}, testOptions())
	f.g.ActivateIndex(0)
	p := f.g.Preview()
	f.g.Close()

	f.settle()
	f.settle()
	assert.Equal(t, StateClosed, p.State())
	assert.Equal(t, []int{0}, f.panel(0).heightsSet, "panel must never grow")
	assert.Empty(t, f.doc.scrolls)
	assert.True(t, f.panel(0).removed)
	assert.Equal(t, 0, f.sched.pending())
}

func TestGallery_SameRowUpdateReusesPanel(t *testing.T) {
	var clicked []int
	opts := testOptions()
	opts.OnItemClick = func(it *Item) { clicked = append(clicked, it.Index) }
	f := newFixture(800, []int{0, 0, 400}, opts)
	g := f.g

	g.ActivateIndex(0)
	f.settle()
	p := g.Preview()

	g.ActivateIndex(1)
	assert.Same(t, p, g.Preview())
	assert.Len(t, f.doc.panels, 1)
	assert.Equal(t, StateOpen, p.State())
	assert.Equal(t, g.Item(1), p.Bound())
	assert.Equal(t, g.Item(0), p.Host())
	assert.Equal(t, Collapsed, g.Item(0).State)
	assert.Equal(t, Expanded, g.Item(1).State)
	assert.False(t, f.item(0).expanded)
	assert.True(t, f.item(1).expanded)
	assert.Equal(t, "#c1", f.panel(0).content.(*testContent).title)
	assert.Equal(t, 2, f.panel(0).contentSets)
	assert.Equal(t, []int{0, 1}, clicked)

	// Closing restores the host, which is the item that was enlarged.
	g.Close()
	f.settle()
	assert.Equal(t, 200, f.item(0).height)
	assert.False(t, f.item(1).expanded)
	assert.True(t, f.panel(0).removed)
}

func TestGallery_SameRowUpdateBeforeOpenDeferral(t *testing.T) {
	f := newFixture(800, []int{0, 0, 400}, testOptions())
	g := f.g

	g.ActivateIndex(0)
	g.ActivateIndex(1)
	p := g.Preview()
	assert.Equal(t, StateOpening, p.State())
	assert.Equal(t, g.Item(1), p.Bound())
	assert.Empty(t, f.doc.scrolls, "nothing to position before heights exist")

	f.settle()
	assert.Equal(t, StateOpen, p.State())
	assert.Equal(t, []int{0}, f.doc.scrolls, "the open scrolls once")
}

func TestGallery_NextRowCarriesScrollExtra(t *testing.T) {
	f := newFixture(600, []int{0, 0, 400}, testOptions())
	g := f.g

	g.ActivateIndex(0)
	f.settle()
	first := g.Preview()
	assert.Equal(t, Heights{Preview: 500, Item: 710}, first.Heights())
	// Panel at 210 does not fit: its bottom goes to the viewport bottom.
	assert.Equal(t, 110, f.doc.lastScroll())

	g.ActivateIndex(2)
	assert.Equal(t, 500, g.ScrollExtra(), "collapsing panel above the target")
	require.Len(t, f.doc.panels, 2)
	second := g.Preview()
	assert.NotSame(t, first, second)
	assert.Equal(t, StateClosing, first.State())

	f.settle()
	assert.Equal(t, StateClosed, first.State())
	assert.Equal(t, StateOpen, second.State())
	// 610 - 500 - (600 - 500)
	assert.Equal(t, 10, f.doc.lastScroll())
	assert.Equal(t, 0, g.ScrollExtra(), "scroll extra is consumed")
}

func TestGallery_PreviousRowNoScrollExtra(t *testing.T) {
	f := newFixture(600, []int{0, 400}, testOptions())
	g := f.g

	g.ActivateIndex(1)
	f.settle()
	g.ActivateIndex(0)
	assert.Equal(t, 0, g.ScrollExtra())
	f.settle()
	assert.Equal(t, 110, f.doc.lastScroll())
}

func TestGallery_MissingContentKeepsPrior(t *testing.T) {
	f := newFixture(800, []int{0, 0}, testOptions())
	delete(f.src, "#c1")

	f.g.ActivateIndex(0)
	f.settle()
	f.g.ActivateIndex(1)

	assert.Equal(t, "#c0", f.panel(0).content.(*testContent).title)
	assert.Equal(t, 1, f.panel(0).contentSets)
}

func TestGallery_ManualContent(t *testing.T) {
	opts := testOptions()
	opts.AutomaticallyGetHTML = false
	calls := 0
	opts.OnItemClick = func(*Item) { calls++ }
	f := newFixture(800, []int{0}, opts)

	f.g.ActivateIndex(0)
	assert.Equal(t, 0, f.panel(0).contentSets)
	assert.Nil(t, f.g.Preview().Content())
	assert.Equal(t, 1, calls, "callback still fires so the host can fill the panel")
}

func TestGallery_ItemFor(t *testing.T) {
	f := newFixture(800, []int{0, 0}, testOptions())
	assert.Equal(t, f.g.Item(1), f.g.ItemFor(f.item(1)))
	assert.Nil(t, f.g.ItemFor(newFakeItem(0, 0, "")))
	assert.Nil(t, f.g.Item(-1))
	assert.Equal(t, "#c1", f.g.Item(1).Link())
}

func TestGallery_ResizeClosesAndRemeasures(t *testing.T) {
	f := newFixture(800, []int{0, 0, 400}, testOptions())
	g := f.g
	g.ActivateIndex(0)
	f.settle()
	p := g.Preview()

	// Burst of resize events; the layout while the panel is open pushes the
	// next row down.
	f.doc.vp = Viewport{Width: 640, Height: 700}
	f.item(2).offsetTop = 1000
	for i := 0; i < 4; i++ {
		g.NotifyResize()
		f.sched.Advance(DefaultResizeThreshold / 2)
	}
	assert.Equal(t, 1, f.doc.viewportReads, "no settle during the burst")

	// Land exactly on the dispatch so the deferred close has not run yet.
	f.sched.Advance(DefaultResizeThreshold / 2)
	assert.Equal(t, 2, f.doc.viewportReads, "one settle per burst")
	assert.Equal(t, Viewport{Width: 640, Height: 700}, g.Viewport())
	assert.Nil(t, g.Preview())
	assert.Equal(t, StateClosing, p.State())
	assert.Equal(t, 1000, g.Item(2).OffsetTop)

	// Collapse moves the row back; offsets are measured again after close.
	f.item(2).offsetTop = 380
	f.settle()
	assert.Equal(t, StateClosed, p.State())
	assert.Equal(t, 380, g.Item(2).OffsetTop)
}

func TestGallery_ActivationWhileResizePendingIgnored(t *testing.T) {
	f := newFixture(800, []int{0, 0, 400}, testOptions())
	g := f.g
	g.ActivateIndex(0)
	f.settle()
	p := g.Preview()

	// The host reflowed into one column: item 1 is now on its own row but
	// the cached offset still says row 0.
	f.item(1).offsetTop = 200
	g.NotifyResize()
	assert.True(t, g.Stale())

	g.ActivateIndex(1)
	assert.Same(t, p, g.Preview(), "no update in place on stale offsets")
	assert.Equal(t, g.Item(0), p.Bound())
	assert.Equal(t, 0, g.Item(1).OffsetTop)

	f.sched.Advance(DefaultResizeThreshold)
	assert.False(t, g.Stale())
	assert.Equal(t, 200, g.Item(1).OffsetTop)
	f.settle()
	assert.Nil(t, g.Preview())

	g.ActivateIndex(1)
	require.NotNil(t, g.Preview())
	assert.NotSame(t, p, g.Preview())
	assert.Equal(t, g.Item(1), g.Preview().Host())
}

func TestGallery_ResizeBeforeReadyIgnored(t *testing.T) {
	ready := &manualReady{}
	sched := &fakeScheduler{}
	doc := &fakeDoc{}
	g, err := New(Host{
		Container: &fakeContainer{items: []*fakeItem{newFakeItem(0, 10, "")}},
		Document:  doc,
		Scheduler: sched,
		Ready:     ready,
	}, testOptions())
	require.NoError(t, err)

	g.NotifyResize()
	assert.Equal(t, 0, sched.pending())
}

func TestGallery_StopCancelsResize(t *testing.T) {
	f := newFixture(800, []int{0}, testOptions())
	f.g.NotifyResize()
	f.g.Stop()
	f.sched.Advance(DefaultResizeThreshold * 2)
	assert.Equal(t, 1, f.doc.viewportReads)
}

// At every observation point at most one item is logically expanded, and it
// is the current item.
func TestGallery_SingleExpandedUnderRandomSequences(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		opts := testOptions()
		opts.Transitions = TransitionSignal{Supported: seed%2 == 0}
		f := newFixture(700, []int{0, 0, 0, 300, 300, 600, 900}, opts)
		rng := rand.New(rand.NewSource(seed))

		for step := 0; step < 200; step++ {
			switch rng.Intn(6) {
			case 0, 1, 2:
				f.g.ActivateIndex(rng.Intn(len(f.root.items)))
			case 3:
				f.g.Close()
			case 4:
				f.sched.Advance(DefaultOpenDelay)
			case 5:
				for _, it := range f.root.items {
					if it.inFlight {
						it.endTransition()
					}
				}
			}

			expanded := 0
			for _, it := range f.g.Items() {
				if it.State == Expanded {
					expanded++
					if it != f.g.Current() {
						t.Fatalf("seed %d step %d: item %d expanded but not current", seed, step, it.Index)
					}
				}
			}
			if expanded > 1 {
				t.Fatalf("seed %d step %d: %d items expanded", seed, step, expanded)
			}
			if (f.g.Current() == nil) != (f.g.Preview() == nil) {
				t.Fatalf("seed %d step %d: current and preview disagree", seed, step)
			}
		}
	}
}

func TestStates_String(t *testing.T) {
	assert.Equal(t, "opening", StateOpening.String())
	assert.Equal(t, "closed", StateClosed.String())
	assert.Equal(t, "unknown", PreviewState(99).String())
	assert.Equal(t, "expanded", Expanded.String())
	assert.Equal(t, "collapsed", Collapsed.String())
}

package gallery

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransitionSignal_UnsupportedCompletesSynchronously(t *testing.T) {
	el := &fakeEl{}
	calls := 0
	TransitionSignal{Supported: false}.Await(el, func() { calls++ })
	assert.Equal(t, 1, calls)
	assert.Empty(t, el.listeners, "no handler should be registered without transition support")
}

func TestTransitionSignal_SupportedWaitsForEvent(t *testing.T) {
	el := &fakeEl{}
	calls := 0
	TransitionSignal{Supported: true}.Await(el, func() { calls++ })
	assert.Equal(t, 0, calls)
	assert.Len(t, el.listeners, 1)

	el.endTransition()
	assert.Equal(t, 1, calls)
	assert.Empty(t, el.listeners, "handler must deregister itself")

	// A later, unrelated transition must not re-trigger the callback.
	el.endTransition()
	assert.Equal(t, 1, calls)
}

func TestTransitionSignal_IndependentWaiters(t *testing.T) {
	el := &fakeEl{}
	var order []string
	sig := TransitionSignal{Supported: true}
	sig.Await(el, func() { order = append(order, "first") })
	sig.Await(el, func() { order = append(order, "second") })

	el.endTransition()
	assert.Equal(t, []string{"first", "second"}, order)
	assert.Empty(t, el.listeners)
}

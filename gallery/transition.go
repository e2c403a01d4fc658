package gallery

// TransitionSignal turns "animation finished" into a single callback. When
// Supported is false every wait completes synchronously, so callers write one
// code path regardless of platform support.
type TransitionSignal struct {
	Supported bool
}

// Await calls onDone once target finishes its next transition. The handler
// deregisters itself before running onDone so a later, unrelated transition
// on the same element cannot re-trigger it.
func (s TransitionSignal) Await(target TransitionTarget, onDone func()) {
	if !s.Supported {
		onDone()
		return
	}
	var (
		cancel func()
		fired  bool
	)
	cancel = target.OnTransitionEnd(func() {
		if fired {
			return
		}
		fired = true
		if cancel != nil {
			cancel()
		}
		onDone()
	})
}

package grid

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/miosa/osa-gallery/gallery"
)

// TimerMsg fires a callback registered with Scheduler.AfterFunc.
type TimerMsg struct {
	ID uint64
}

// Scheduler runs deferred gallery work on the Bubble Tea event loop. Each
// AfterFunc queues a tea.Tick; the resulting TimerMsg must be handed back to
// HandleTimer from Update, so callbacks never run off the loop.
type Scheduler struct {
	nextID  uint64
	pending map[uint64]func()
	cmds    []tea.Cmd
}

// NewScheduler returns an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{pending: make(map[uint64]func())}
}

type timer struct {
	s  *Scheduler
	id uint64
}

func (t timer) Stop() bool {
	if _, ok := t.s.pending[t.id]; !ok {
		return false
	}
	delete(t.s.pending, t.id)
	return true
}

// AfterFunc implements gallery.Scheduler.
func (s *Scheduler) AfterFunc(d time.Duration, fn func()) gallery.Timer {
	s.nextID++
	id := s.nextID
	s.pending[id] = fn
	s.cmds = append(s.cmds, tea.Tick(d, func(time.Time) tea.Msg {
		return TimerMsg{ID: id}
	}))
	return timer{s: s, id: id}
}

// HandleTimer runs the callback for msg unless it was stopped.
func (s *Scheduler) HandleTimer(msg TimerMsg) {
	fn, ok := s.pending[msg.ID]
	if !ok {
		return
	}
	delete(s.pending, msg.ID)
	fn()
}

// Cmds drains the ticks queued since the last call.
func (s *Scheduler) Cmds() tea.Cmd {
	if len(s.cmds) == 0 {
		return nil
	}
	cmds := s.cmds
	s.cmds = nil
	return tea.Batch(cmds...)
}

// Pending returns the number of callbacks still waiting.
func (s *Scheduler) Pending() int { return len(s.pending) }

// Package anim drives time-based animation for the gallery: easing curves,
// integer tweens for heights and scroll offsets, the frame clock, and a
// small loading spinner.
package anim

import (
	"sync/atomic"
	"time"

	tea "charm.land/bubbletea/v2"
)

const (
	fps = 30
	// FrameDuration is the interval between animation frames.
	FrameDuration = time.Second / fps
)

// idCounter gives each frame source a unique ID so FrameMsg and TickMsg
// events don't cross-talk.
var idCounter atomic.Int64

// NextID returns a fresh animation source id.
func NextID() int64 { return idCounter.Add(1) }

// FrameMsg is delivered once per frame to the source with the same ID.
type FrameMsg struct {
	ID   int64
	Time time.Time
}

// Frame schedules the next FrameMsg for id.
func Frame(id int64) tea.Cmd {
	return tea.Tick(FrameDuration, func(t time.Time) tea.Msg {
		return FrameMsg{ID: id, Time: t}
	})
}

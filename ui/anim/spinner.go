package anim

import (
	"image/color"
	"math"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

const (
	spinnerInterval = 80 * time.Millisecond
	// ellipsisFrames is how many spinner frames elapse per ellipsis state.
	ellipsisFrames = 5
)

// spinnerFrames is the Braille-dot spinner sequence.
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

var ellipsisStates = []string{"", ".", "..", "..."}

// TickMsg advances the spinner with the same ID.
type TickMsg struct {
	ID int64
}

// Spinner is a gradient Braille spinner shown while content preloads.
type Spinner struct {
	id          int64
	label       string
	spinning    bool
	frame       int
	ellipsisIdx int
	rendered    []string
}

// NewSpinner builds a spinner whose glyph oscillates between colors a and b.
func NewSpinner(label string, a, b color.Color) Spinner {
	s := Spinner{id: NextID(), label: label}
	n := len(spinnerFrames)
	s.rendered = make([]string, n)
	for i, glyph := range spinnerFrames {
		t := (math.Sin(math.Pi*float64(i)/float64(n-1)) + 1) / 2
		s.rendered[i] = lipgloss.NewStyle().Foreground(lerpColor(a, b, t)).Render(glyph)
	}
	return s
}

// Start begins spinning and returns the first tick.
func (s *Spinner) Start() tea.Cmd {
	s.spinning = true
	return s.tick()
}

// Stop halts the spinner; View returns "" afterwards.
func (s *Spinner) Stop() { s.spinning = false }

// Spinning reports whether the spinner is running.
func (s Spinner) Spinning() bool { return s.spinning }

// Update advances the frame on this spinner's TickMsg.
func (s Spinner) Update(msg tea.Msg) (Spinner, tea.Cmd) {
	tick, ok := msg.(TickMsg)
	if !ok || tick.ID != s.id || !s.spinning {
		return s, nil
	}
	s.frame = (s.frame + 1) % len(spinnerFrames)
	if s.frame%ellipsisFrames == 0 {
		s.ellipsisIdx = (s.ellipsisIdx + 1) % len(ellipsisStates)
	}
	return s, s.tick()
}

func (s Spinner) View() string {
	if !s.spinning {
		return ""
	}
	glyph := s.rendered[s.frame%len(s.rendered)]
	if s.label == "" {
		return glyph
	}
	return glyph + " " + s.label + ellipsisStates[s.ellipsisIdx]
}

func (s Spinner) tick() tea.Cmd {
	id := s.id
	return tea.Tick(spinnerInterval, func(time.Time) tea.Msg {
		return TickMsg{ID: id}
	})
}

func lerpColor(a, b color.Color, t float64) color.Color {
	ra, ga, ba, _ := a.RGBA()
	rb, gb, bb, _ := b.RGBA()
	return color.RGBA{
		R: uint8(float64(ra>>8)*(1-t) + float64(rb>>8)*t),
		G: uint8(float64(ga>>8)*(1-t) + float64(gb>>8)*t),
		B: uint8(float64(ba>>8)*(1-t) + float64(bb>>8)*t),
		A: 255,
	}
}

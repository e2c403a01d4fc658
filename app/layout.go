package app

// minGridHeight is the smallest grid area; below it the frame overflows.
const minGridHeight = 3

// Layout holds computed dimensions for the current frame.
type Layout struct {
	TermWidth    int
	TermHeight   int
	HeaderHeight int // header line + separator
	StatusHeight int
	GridWidth    int
	GridHeight   int
}

// ComputeLayout splits the terminal into header, grid and status bar. The
// grid gets whatever the fixed rows leave.
func ComputeLayout(termW, termH, headerLines, statusLines int) Layout {
	l := Layout{
		TermWidth:    termW,
		TermHeight:   termH,
		HeaderHeight: headerLines,
		StatusHeight: max(1, statusLines),
		GridWidth:    termW,
	}
	l.GridHeight = max(minGridHeight, termH-l.HeaderHeight-l.StatusHeight)
	return l
}

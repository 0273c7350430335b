// Package tui provides a Bubble Tea terminal UI for Zuul's Dungeon.
package tui

// History remembers submitted lines for Up/Down recall. It holds at most
// max lines and drops the oldest once full.
type History struct {
	lines  []string
	max    int
	cursor int // index into lines while browsing, len(lines) when not
}

// NewHistory creates a history holding up to max lines.
func NewHistory(max int) *History {
	return &History{lines: make([]string, 0, max), max: max}
}

// Push records a line. Blank lines and repeats of the newest line are
// ignored. Pushing ends browsing.
func (h *History) Push(line string) {
	defer h.ResetCursor()
	if line == "" || (len(h.lines) > 0 && h.lines[len(h.lines)-1] == line) {
		return
	}
	if len(h.lines) == h.max {
		copy(h.lines, h.lines[1:])
		h.lines = h.lines[:len(h.lines)-1]
	}
	h.lines = append(h.lines, line)
}

// Prev steps to an older line, stopping at the oldest.
func (h *History) Prev() (string, bool) {
	if len(h.lines) == 0 {
		return "", false
	}
	if h.cursor > 0 {
		h.cursor--
	}
	return h.lines[h.cursor], true
}

// Next steps to a newer line. Stepping past the newest ends browsing and
// returns false so the caller can clear the input.
func (h *History) Next() (string, bool) {
	if h.cursor >= len(h.lines) {
		return "", false
	}
	h.cursor++
	if h.cursor == len(h.lines) {
		return "", false
	}
	return h.lines[h.cursor], true
}

// ResetCursor ends browsing; the next Prev returns the newest line.
func (h *History) ResetCursor() {
	h.cursor = len(h.lines)
}

// Len returns the number of remembered lines.
func (h *History) Len() int {
	return len(h.lines)
}

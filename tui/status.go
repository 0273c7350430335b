package tui

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nathoo/zuul/engine/world"
)

var titleCaser = cases.Title(language.English, cases.NoLower)

// roomDisplayName derives a human-readable name from a room ID.
// "hallwayA1" -> "Hallway A1", "cell3" -> "Cell 3", "great_hall" -> "Great Hall".
func roomDisplayName(id string) string {
	var b strings.Builder
	var prev rune
	for i, r := range id {
		switch {
		case r == '_':
			r = ' '
		case i > 0 && unicode.IsLower(prev) && (unicode.IsUpper(r) || unicode.IsDigit(r)):
			b.WriteRune(' ')
		}
		b.WriteRune(r)
		prev = r
	}
	return titleCaser.String(b.String())
}

// renderStatusBar produces a full-width inverted status line showing
// current room, exits, health, inventory and turn count.
func (m Model) renderStatusBar() string {
	if m.engine == nil {
		return styleStatusBar.Width(m.width).Render(" " + m.title)
	}
	s := m.engine.State
	p := s.Player

	roomName := ""
	exitStr := ""
	if room := p.Room(); room != nil {
		roomName = roomDisplayName(room.ID)
		exitStr = strings.Join(exitDirections(room), ",")
	}

	left := fmt.Sprintf(" %s | Exits: %s | HP:%d", roomName, exitStr, p.Health)
	right := fmt.Sprintf("T:%d ", s.Turn)

	// Show inventory items if they fit, otherwise just count.
	items := p.Items()
	if len(items) > 0 {
		names := make([]string, len(items))
		for i, item := range items {
			names[i] = item.Name
		}
		candidate := fmt.Sprintf("Inv: %s | T:%d ", strings.Join(names, ", "), s.Turn)
		if lipgloss.Width(left)+lipgloss.Width(candidate)+2 < m.width {
			right = candidate
		} else {
			right = fmt.Sprintf("Inv: %d | T:%d ", len(items), s.Turn)
		}
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return styleStatusBar.Width(m.width).Render(bar)
}

func exitDirections(room *world.Room) []string {
	exits := room.Exits()
	dirs := make([]string, len(exits))
	for i, e := range exits {
		dirs[i] = e.Direction
	}
	return dirs
}

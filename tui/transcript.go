package tui

import (
	"strings"

	"github.com/muesli/reflow/wordwrap"
)

const minWrapWidth = 10

// entry is one unstyled transcript line. Styling happens at render time so
// the whole transcript can be re-wrapped after a resize.
type entry struct {
	text string
	kind lineKind
}

// transcript accumulates everything shown in the viewport.
type transcript struct {
	entries  []entry
	speakers []string // NPC names, for dialogue styling
}

// echo records a line the player typed.
func (tr *transcript) echo(input string) {
	if input != "" {
		tr.entries = append(tr.entries, entry{text: "> " + input, kind: kindInput})
	}
}

// narrate records game output, classifying each line, and closes the turn.
func (tr *transcript) narrate(lines ...string) {
	for _, line := range lines {
		tr.entries = append(tr.entries, entry{text: line, kind: classifyLine(line, tr.speakers)})
	}
	tr.separate()
}

// notice records front-end messages and closes the turn.
func (tr *transcript) notice(lines ...string) {
	for _, line := range lines {
		tr.entries = append(tr.entries, entry{text: line, kind: kindNotice})
	}
	tr.separate()
}

func (tr *transcript) separate() {
	tr.entries = append(tr.entries, entry{kind: kindBlank})
}

// render wraps and styles every entry for the given width.
func (tr *transcript) render(width int) string {
	width = max(width, minWrapWidth)
	out := make([]string, 0, len(tr.entries))
	for _, e := range tr.entries {
		if e.text == "" {
			out = append(out, "")
			continue
		}
		out = append(out, styleLine(wordwrap.String(e.text, width), e.kind))
	}
	return strings.Join(out, "\n")
}

// plain returns the unstyled transcript.
func (tr *transcript) plain() string {
	var b strings.Builder
	for _, e := range tr.entries {
		b.WriteString(e.text)
		b.WriteByte('\n')
	}
	return b.String()
}

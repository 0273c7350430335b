package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nathoo/zuul/engine"
	"github.com/nathoo/zuul/types"
)

// HelpLines lists the front-end commands available next to the game's own.
var HelpLines = []string{
	"System:",
	"  /quit         Exit game",
	"  /help         Show this help",
	"  /state        Debug: dump current state",
	"  /trace        Toggle debug trace output",
	"  again (g)     Repeat your last command",
	"",
	"Type 'help' for the game's own commands.",
}

// IsMeta reports whether input is a front-end command rather than a game one.
func IsMeta(input string) bool {
	return strings.HasPrefix(input, "/")
}

// MetaName returns the lower-cased command word of a meta command.
func MetaName(input string) string {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(fields[0])
}

// Repeater remembers the last game command for "again".
type Repeater struct {
	last string
}

// Resolve returns the command to send to the engine. "again" and "g" stand
// for the previous command; ok is false when there is none yet.
func (r *Repeater) Resolve(input string) (cmd string, ok bool) {
	switch strings.ToLower(input) {
	case "again", "g":
		return r.last, r.last != ""
	}
	r.last = input
	return input, true
}

// StateLines dumps the session for debugging.
func StateLines(e *engine.Engine) []string {
	s := e.State
	p := s.Player
	out := []string{
		"Session: " + e.SessionID,
		fmt.Sprintf("Turn: %d", s.Turn),
	}
	if room := p.Room(); room != nil {
		out = append(out, fmt.Sprintf("Location: %s (history %d)", room.ID, p.HistoryLen()))
	}
	out = append(out, fmt.Sprintf("Health: %d", p.Health))

	names := []string{}
	for _, item := range p.Items() {
		names = append(names, item.Name)
	}
	out = append(out, fmt.Sprintf("Inventory: %v", names))

	quests := make([]string, 0, len(s.Quests))
	for name := range s.Quests {
		quests = append(quests, name)
	}
	sort.Strings(quests)
	for _, name := range quests {
		q := s.Quests[name]
		parts := make([]string, q.Parts())
		for i := range parts {
			parts[i] = fmt.Sprintf("%d:%t", i, q.Done(i))
		}
		out = append(out, fmt.Sprintf("Quest %s: %s", name, strings.Join(parts, " ")))
	}
	for _, cd := range s.Countdowns {
		out = append(out, fmt.Sprintf("Countdown %s: %d/%d started=%t", cd.Quest, cd.Remaining, cd.Turns, cd.Started))
	}
	for _, npc := range s.NPCs() {
		where := ""
		if r := npc.Room(); r != nil {
			where = r.ID
		}
		out = append(out, fmt.Sprintf("NPC %s: %s health=%d hostile=%t", npc.Name, where, npc.Health, npc.Hostile()))
	}
	return out
}

// TraceLines describes what a step rejected, applied and raised.
func TraceLines(r types.Result) []string {
	var out []string
	if r.Err != nil {
		out = append(out, fmt.Sprintf("[trace] Rejected: %v", r.Err))
	}
	if len(r.Effects) > 0 {
		out = append(out, fmt.Sprintf("[trace] Effects: %d", len(r.Effects)))
		for _, e := range r.Effects {
			out = append(out, strings.TrimRight(fmt.Sprintf("[trace]   %s %s", e.Kind, effectTarget(e)), " "))
		}
	}
	if len(r.Events) > 0 {
		out = append(out, fmt.Sprintf("[trace] Events: %d", len(r.Events)))
		for _, e := range r.Events {
			out = append(out, fmt.Sprintf("[trace]   %s %s", e.Kind, e.Subject))
		}
	}
	return out
}

// effectTarget names what an effect acts on.
func effectTarget(e types.Effect) string {
	var parts []string
	for _, s := range []string{e.NPC, e.Item, e.Room, e.Direction, e.Quest} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

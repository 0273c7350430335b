// Package dialogue implements phrase recognition for the say command and
// NPC response selection.
package dialogue

import (
	"sort"
	"strings"

	"github.com/nathoo/zuul/engine/entity"
)

// Word groups every speaking NPC is expected to answer.
const (
	GroupPardon        = "pardon"
	GroupGreetingsNear = "greetingsNear"
	GroupGreetingsSame = "greetingsSame"
)

// Dictionary maps trigger phrases to word groups.
type Dictionary struct {
	phrases map[string]string
}

// NewDictionary creates an empty dictionary.
func NewDictionary() *Dictionary {
	return &Dictionary{phrases: map[string]string{}}
}

// Add maps each phrase to group. A phrase already mapped is moved.
func (d *Dictionary) Add(group string, phrases ...string) {
	for _, p := range phrases {
		d.phrases[normalize(p)] = group
	}
}

// Group returns the word group of phrase.
func (d *Dictionary) Group(phrase string) (string, bool) {
	g, ok := d.phrases[normalize(phrase)]
	return g, ok
}

// Phrases returns every phrase of group, sorted.
func (d *Dictionary) Phrases(group string) []string {
	var out []string
	for p, g := range d.phrases {
		if g == group {
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out
}

// Len returns the number of known phrases.
func (d *Dictionary) Len() int {
	return len(d.phrases)
}

func normalize(phrase string) string {
	return strings.ToLower(strings.TrimSpace(phrase))
}

// Respond returns what npc answers to phrase, prefixed with its name.
// Phrases outside the dictionary, or groups the NPC has no line for, get
// the pardon line.
func Respond(npc *entity.Entity, d *Dictionary, phrase string) string {
	if group, ok := d.Group(phrase); ok {
		if line, ok := npc.Response(group); ok {
			return npc.Name + ": " + line
		}
	}
	line, _ := npc.Response(GroupPardon)
	return npc.Name + ": " + line
}

// Greeting returns the line npc greets the player with, or "" if it has none.
func Greeting(npc *entity.Entity, sameRoom bool) string {
	group := GroupGreetingsNear
	if sameRoom {
		group = GroupGreetingsSame
	}
	line, _ := npc.Response(group)
	return line
}

// Package parser converts input lines into typed Commands.
// Intentionally dumb: one command word, and the rest of the line verbatim.
package parser

import (
	"sort"
	"strings"
	"unicode"

	"github.com/nathoo/zuul/types"
)

var words = map[string]types.Word{
	"go":   types.WordGo,
	"look": types.WordLook,
	"use":  types.WordUse,
	"take": types.WordTake,
	"drop": types.WordDrop,
	"say":  types.WordSay,
	"give": types.WordGive,
	"help": types.WordHelp,
	"quit": types.WordQuit,
}

// Argument hints shown by help.
var usage = map[types.Word]string{
	types.WordGo:   "[direction]; back",
	types.WordLook: "(None); [item name]; inventory",
	types.WordUse:  "[item name] - to fight, enter: 'use [weapon name]'",
	types.WordTake: "[item name]",
	types.WordDrop: "[item name]",
	types.WordSay:  "[phrase] - e.g.: 'hi'; 'how's it going'. (Only salutations have been implemented.)",
	types.WordGive: "[character name] [item name]",
	types.WordHelp: "(None)",
	types.WordQuit: "(None)",
}

// Parse converts a raw line into a Command. An unknown or missing command
// word yields WordUnknown; the argument is carried either way.
func Parse(input string) types.Command {
	input = strings.TrimSpace(input)
	if input == "" {
		return types.Command{}
	}

	first, rest := input, ""
	if i := strings.IndexFunc(input, unicode.IsSpace); i >= 0 {
		first, rest = input[:i], strings.TrimSpace(input[i:])
	}

	return types.Command{
		Word: words[strings.ToLower(first)],
		Arg:  rest,
	}
}

// IsCommand reports whether s is a command word.
func IsCommand(s string) bool {
	_, ok := words[strings.ToLower(s)]
	return ok
}

// Usage is one vocabulary entry for help.
type Usage struct {
	Word types.Word
	Args string
}

// Vocabulary returns every command word with its argument hint, sorted by word.
func Vocabulary() []Usage {
	out := make([]Usage, 0, len(usage))
	for w, args := range usage {
		out = append(out, Usage{Word: w, Args: args})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Word.String() < out[j].Word.String()
	})
	return out
}

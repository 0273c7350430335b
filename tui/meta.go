package tui

import (
	"fmt"
	"slices"

	"github.com/nathoo/zuul/cli"
)

// metaFunc runs a slash command. It returns the lines to show and whether
// the program should exit.
type metaFunc func(m *Model) ([]string, bool)

var metaCommands = map[string]metaFunc{
	"/quit":  metaQuit,
	"/exit":  metaQuit,
	"/help":  metaHelp,
	"/state": metaState,
	"/trace": metaTrace,
}

var metaHelpLines = slices.Concat(cli.HelpLines, []string{
	"Scroll with PgUp/PgDn. Up/Down recall earlier commands.",
})

// handleMeta dispatches a slash command.
func (m *Model) handleMeta(input string) ([]string, bool) {
	name := cli.MetaName(input)
	if fn, ok := metaCommands[name]; ok {
		return fn(m)
	}
	return []string{fmt.Sprintf("Unknown command: %s. Type /help for available commands.", name)}, false
}

func metaQuit(*Model) ([]string, bool) {
	return []string{"Goodbye."}, true
}

func metaHelp(*Model) ([]string, bool) {
	return metaHelpLines, false
}

func metaState(m *Model) ([]string, bool) {
	return cli.StateLines(m.engine), false
}

func metaTrace(m *Model) ([]string, bool) {
	m.trace = !m.trace
	if m.trace {
		return []string{"Trace output enabled."}, false
	}
	return []string{"Trace output disabled."}, false
}

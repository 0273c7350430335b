// Package events implements the script-hook table: handlers indexed by
// event kind and subject, dispatched in a single pass.
package events

import (
	"strings"

	"github.com/nathoo/zuul/engine/rules"
	"github.com/nathoo/zuul/engine/state"
	"github.com/nathoo/zuul/types"
)

type hookKey struct {
	kind    types.EventKind
	subject string // lower-cased; "" matches any subject
}

// Table maps (event kind, subject) to handlers. Built once at load time.
type Table struct {
	hooks map[hookKey][]types.EventHandler
}

// NewTable indexes handlers, keeping declaration order within a key.
func NewTable(handlers []types.EventHandler) *Table {
	t := &Table{hooks: map[hookKey][]types.EventHandler{}}
	for _, h := range handlers {
		k := hookKey{kind: h.Kind, subject: strings.ToLower(h.Subject)}
		t.hooks[k] = append(t.hooks[k], h)
	}
	return t
}

// Handlers returns the handlers for an event: subject-specific ones first,
// then the ones registered for any subject.
func (t *Table) Handlers(kind types.EventKind, subject string) []types.EventHandler {
	out := append([]types.EventHandler(nil), t.hooks[hookKey{kind, strings.ToLower(subject)}]...)
	if subject != "" {
		out = append(out, t.hooks[hookKey{kind, ""}]...)
	}
	return out
}

// Has reports whether any handler listens for the event.
func (t *Table) Has(kind types.EventKind, subject string) bool {
	return len(t.hooks[hookKey{kind, strings.ToLower(subject)}]) > 0 ||
		len(t.hooks[hookKey{kind, ""}]) > 0
}

// Fired is a handler that matched an event.
type Fired struct {
	Event   types.Event
	Effects []types.Effect
}

// Dispatch runs handlers against the emitted events. Single pass, no
// recursion: effects are returned for the caller to apply.
func Dispatch(events []types.Event, t *Table, s *state.GameState) []Fired {
	var result []Fired

	for _, event := range events {
		for _, handler := range t.Handlers(event.Kind, event.Subject) {
			if !rules.EvalAllConditions(handler.Conditions, s) {
				continue
			}
			result = append(result, Fired{Event: event, Effects: handler.Effects})
		}
	}

	return result
}

package rules

import (
	"github.com/nathoo/zuul/engine/state"
	"github.com/nathoo/zuul/types"
)

// EvalCondition evaluates a single condition against the current state.
func EvalCondition(c types.Condition, s *state.GameState) bool {
	switch c.Kind {
	case types.CondQuestPart:
		q := s.Quest(c.Quest)
		return q != nil && q.Done(c.Part)

	case types.CondHasItem:
		return s.Player.Has(s.Item(c.Item))

	case types.CondInRoom:
		room := s.Player.Room()
		return room != nil && room.ID == c.Room

	case types.CondNPCPresent:
		npc := s.NPC(c.NPC)
		return npc != nil && npc.Room() != nil && npc.Room() == s.Player.Room()

	case types.CondNot:
		if c.Inner == nil {
			return true
		}
		return !EvalCondition(*c.Inner, s)

	default:
		return false
	}
}

// EvalAllConditions returns true if all conditions pass (AND logic).
// An empty condition list is vacuously true.
func EvalAllConditions(conditions []types.Condition, s *state.GameState) bool {
	for _, c := range conditions {
		if !EvalCondition(c, s) {
			return false
		}
	}
	return true
}

package rules

import (
	"strings"

	"github.com/nathoo/zuul/types"
)

// Matches checks whether a player action satisfies a milestone trigger.
// Names and directions compare case-insensitively.
func Matches(when, action types.Trigger) bool {
	if when.Kind != action.Kind {
		return false
	}
	switch when.Kind {
	case types.TriggerGive:
		return strings.EqualFold(when.NPC, action.NPC) &&
			strings.EqualFold(when.Item, action.Item)
	case types.TriggerUnlock:
		return when.Room == action.Room &&
			strings.EqualFold(when.Direction, action.Direction)
	default:
		return false
	}
}

// GiveAction describes handing item to npc.
func GiveAction(npc, item string) types.Trigger {
	return types.Trigger{Kind: types.TriggerGive, NPC: npc, Item: item}
}

// UnlockAction describes unlocking the exit in direction from room.
func UnlockAction(room, direction string) types.Trigger {
	return types.Trigger{Kind: types.TriggerUnlock, Room: room, Direction: direction}
}

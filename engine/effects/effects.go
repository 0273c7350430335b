// Package effects implements centralized state mutation via the Apply function.
// Every effect kind is one atomic operation. No logic in effects.
package effects

import (
	"strings"

	"github.com/nathoo/zuul/engine/state"
	"github.com/nathoo/zuul/engine/world"
	"github.com/nathoo/zuul/types"
)

// Context carries the values available to text interpolation.
type Context struct {
	Subject string // entity, quest or transition the triggering event is about
}

// Apply applies a list of effects to the game state, mutating it.
// Returns events emitted and output text collected. Effects naming things
// that no longer exist (a removed NPC, an unknown room) are skipped.
func Apply(s *state.GameState, effects []types.Effect, ctx Context) ([]types.Event, []string) {
	var events []types.Event
	var output []string

	for _, eff := range effects {
		switch eff.Kind {
		case types.EffectSay:
			output = append(output, Interpolate(eff.Text, s, ctx))

		case types.EffectGiveItem:
			item := s.Item(eff.Item)
			if item == nil {
				continue
			}
			s.Detach(item)
			s.Player.AddItem(item)
			events = append(events, types.Event{
				Kind:    types.EventItemMoved,
				Subject: item.Name,
				Data:    map[string]any{"to": types.PlayerSubject},
			})

		case types.EffectPlaceItem:
			item := s.Item(eff.Item)
			room := roomOrHere(s, eff.Room)
			if item == nil || room == nil {
				continue
			}
			s.Detach(item)
			room.AddItem(item)
			events = append(events, types.Event{
				Kind:    types.EventItemMoved,
				Subject: item.Name,
				Data:    map[string]any{"to": room.ID},
			})

		case types.EffectSetDialogue:
			if npc := s.NPC(eff.NPC); npc != nil {
				npc.SetDialogue(eff.Group, Interpolate(eff.Text, s, ctx))
			}

		case types.EffectRemoveDialogue:
			if npc := s.NPC(eff.NPC); npc != nil {
				npc.RemoveDialogue(eff.Group)
			}

		case types.EffectMoveNPC:
			npc := s.NPC(eff.NPC)
			room := s.World.Room(eff.Room)
			if npc == nil || room == nil {
				continue
			}
			npc.MoveTo(room)
			events = append(events, types.Event{
				Kind:    types.EventNPCMoved,
				Subject: npc.Name,
				Data:    map[string]any{"room": room.ID},
			})

		case types.EffectSetMoveable:
			if npc := s.NPC(eff.NPC); npc != nil {
				npc.Moveable = eff.Flag
			}

		case types.EffectSetHostile:
			if npc := s.NPC(eff.NPC); npc != nil {
				npc.SetHostile(eff.Flag)
			}

		case types.EffectRemoveNPC:
			npc := s.NPC(eff.NPC)
			if npc == nil {
				continue
			}
			s.RemoveNPC(npc.Name)
			events = append(events, types.Event{
				Kind:    types.EventNPCRemoved,
				Subject: npc.Name,
			})

		case types.EffectUnlockExit, types.EffectLockExit:
			exit := findExit(s, eff.Room, eff.Direction)
			if exit == nil {
				continue
			}
			if eff.Kind == types.EffectUnlockExit {
				world.Unlock(exit)
			} else {
				world.Lock(exit)
			}
			events = append(events, exitChanged(eff.Room, exit))

		case types.EffectSetExit:
			room := s.World.Room(eff.Room)
			if room == nil {
				continue
			}
			var to *world.Room
			if eff.Target != "" {
				if to = s.World.Room(eff.Target); to == nil {
					continue
				}
			}
			var key *types.Item
			if eff.Item != "" {
				key = s.Item(eff.Item)
			}
			exit := room.SetExit(eff.Direction, to, eff.Flag, key, eff.Transition)
			events = append(events, exitChanged(room.ID, exit))

		case types.EffectClearInventory:
			s.Player.ClearInventory()

		case types.EffectRelocatePlayer:
			if room := s.World.Room(eff.Room); room != nil {
				s.Player.Relocate(room)
			}

		case types.EffectCompletePart:
			if q := s.Quest(eff.Quest); q != nil {
				_ = q.CompletePart(eff.Part)
			}

		case types.EffectEndGame:
			s.Over = true
			events = append(events, types.Event{
				Kind:    types.EventGameEnded,
				Subject: types.PlayerSubject,
				Data:    map[string]any{"victory": eff.Flag},
			})

		default:
			// Unknown effect kind: ignore.
		}
	}

	return events, output
}

// Interpolate replaces {player}, {subject} and {room} in text.
func Interpolate(text string, s *state.GameState, ctx Context) string {
	if !strings.Contains(text, "{") {
		return text
	}
	room := ""
	if r := s.Player.Room(); r != nil {
		room = r.ID
	}
	return strings.NewReplacer(
		"{player}", s.Player.Name,
		"{subject}", ctx.Subject,
		"{room}", room,
	).Replace(text)
}

// roomOrHere resolves id, falling back to the player's room when id is empty.
func roomOrHere(s *state.GameState, id string) *world.Room {
	if id == "" {
		return s.Player.Room()
	}
	return s.World.Room(id)
}

func findExit(s *state.GameState, roomID, direction string) *world.Exit {
	room := s.World.Room(roomID)
	if room == nil {
		return nil
	}
	return world.GetExit(room, direction)
}

func exitChanged(roomID string, exit *world.Exit) types.Event {
	return types.Event{
		Kind:    types.EventExitChanged,
		Subject: roomID,
		Data: map[string]any{
			"direction": exit.Direction,
			"locked":    exit.Locked(),
		},
	}
}

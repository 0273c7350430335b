package engine

import (
	"github.com/sirupsen/logrus"

	"github.com/nathoo/zuul/engine/entity"
	"github.com/nathoo/zuul/engine/world"
	"github.com/nathoo/zuul/types"
)

// npcPass lets the NPCs act after the player. Hostile NPCs in the player's
// room attack; if none did, every NPC gets a chance to move.
func (e *Engine) npcPass(t *turn) {
	here := e.State.Player.Room()
	attacked := false
	for _, npc := range e.State.NPCsIn(here) {
		if !npc.Hostile() {
			continue
		}
		attacked = true
		e.fight(t, npc, e.State.Player)
		if e.State.Over {
			return
		}
	}
	if attacked {
		return
	}

	for _, npc := range e.State.NPCs() {
		e.moveNPC(t, npc, here)
	}
}

// moveNPC moves one NPC. Hostile NPCs stay with the player or step into the
// player's room from next door. Otherwise a moveable NPC wanders to a random
// neighbour half of the time; picking a void exit means staying put.
func (e *Engine) moveNPC(t *turn, npc *entity.Entity, here *world.Room) {
	loc := npc.Room()
	if loc == nil {
		return
	}

	if npc.Hostile() {
		if loc == here {
			return
		}
		if world.IsNeighbor(loc, here) {
			e.relocateNPC(t, npc, here, "pursue")
			return
		}
	}

	if !npc.Moveable || !e.Dice.Coin() {
		return
	}
	neighbors := world.Neighbors(loc)
	if len(neighbors) == 0 {
		return
	}
	if next := neighbors[e.Dice.Intn(len(neighbors))]; next != nil {
		e.relocateNPC(t, npc, next, "wander")
	}
}

func (e *Engine) relocateNPC(t *turn, npc *entity.Entity, to *world.Room, reason string) {
	npc.MoveTo(to)
	t.events = append(t.events, types.Event{
		Kind:    types.EventNPCMoved,
		Subject: npc.Name,
		Data:    map[string]any{"room": to.ID},
	})
	e.log.WithFields(logrus.Fields{"npc": npc.Name, "room": to.ID, "reason": reason}).Debug("npc moved")
}

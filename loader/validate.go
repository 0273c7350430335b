package loader

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/nathoo/zuul/engine/state"
	"github.com/nathoo/zuul/types"
)

// ValidationError collects all validation errors and warnings.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

func (e *ValidationError) errorf(format string, args ...any) {
	e.Errors = append(e.Errors, fmt.Sprintf(format, args...))
}

func (e *ValidationError) warnf(format string, args ...any) {
	e.Warnings = append(e.Warnings, fmt.Sprintf(format, args...))
}

// index holds the lower-cased names of everything content can refer to.
type index struct {
	rooms  map[string]types.RoomDef
	items  map[string]bool
	npcs   map[string]bool
	quests map[string]int // name → number of sub-parts
}

func buildIndex(defs *state.Defs, ve *ValidationError) index {
	idx := index{
		rooms:  map[string]types.RoomDef{},
		items:  map[string]bool{},
		npcs:   map[string]bool{},
		quests: map[string]int{},
	}
	for _, r := range defs.Rooms {
		if _, dup := idx.rooms[r.ID]; dup {
			ve.errorf("duplicate room %q", r.ID)
		}
		idx.rooms[r.ID] = r
	}
	for _, it := range defs.Items {
		key := strings.ToLower(it.Item.Name)
		if idx.items[key] {
			ve.errorf("duplicate item %q", it.Item.Name)
		}
		idx.items[key] = true
	}
	for _, n := range defs.NPCs {
		key := strings.ToLower(n.Name)
		if idx.npcs[key] {
			ve.errorf("duplicate NPC %q", n.Name)
		}
		idx.npcs[key] = true
	}
	for _, q := range defs.Quests {
		if _, dup := idx.quests[q.Name]; dup {
			ve.errorf("duplicate quest %q", q.Name)
		}
		idx.quests[q.Name] = q.Parts
	}
	return idx
}

func (idx index) room(id string) bool {
	_, ok := idx.rooms[id]
	return ok
}

func (idx index) item(name string) bool {
	return idx.items[strings.ToLower(name)]
}

func (idx index) npc(name string) bool {
	return idx.npcs[strings.ToLower(name)]
}

// validate checks the compiled defs for referential integrity and consistency.
func validate(defs *state.Defs) error {
	ve := &ValidationError{}
	idx := buildIndex(defs, ve)

	if defs.Game.Title == "" {
		ve.errorf("Game.Title is required")
	}
	if defs.Game.Start == "" {
		ve.errorf("Game.Start is required")
	} else if !idx.room(defs.Game.Start) {
		ve.errorf("start room %q not found in defined rooms", defs.Game.Start)
	}
	if defs.Game.Player.Capacity < 0 {
		ve.errorf("player capacity must not be negative")
	}
	for _, name := range defs.Game.Player.Items {
		if !idx.item(name) {
			ve.errorf("player starts with undefined item %q", name)
		}
	}

	transitions := map[string]bool{}
	for _, room := range defs.Rooms {
		seen := map[string]bool{}
		for _, exit := range room.Exits {
			dir := strings.ToLower(exit.Direction)
			if dir == "" {
				ve.errorf("room %q has an exit without a direction", room.ID)
			}
			if seen[dir] {
				ve.errorf("room %q declares exit %q twice", room.ID, exit.Direction)
			}
			seen[dir] = true
			if exit.To != "" && !idx.room(exit.To) {
				ve.errorf("room %q exit %q points to undefined room %q", room.ID, exit.Direction, exit.To)
			}
			if exit.Key != "" && !idx.item(exit.Key) {
				ve.errorf("room %q exit %q uses undefined key %q", room.ID, exit.Direction, exit.Key)
			}
			if exit.Transition != "" {
				transitions[exit.Transition] = true
			}
		}
	}

	for _, it := range defs.Items {
		if it.Item.Weight < 0 {
			ve.errorf("item %q has negative weight", it.Item.Name)
		}
		if it.Location != "" && !idx.room(it.Location) && !idx.npc(it.Location) {
			ve.errorf("item %q location %q is neither a room nor an NPC", it.Item.Name, it.Location)
		}
	}

	for _, n := range defs.NPCs {
		if !idx.room(n.Location) {
			ve.errorf("NPC %q location %q not found in defined rooms", n.Name, n.Location)
		}
		if n.Health <= 0 {
			ve.errorf("NPC %q must start alive", n.Name)
		}
		if _, ok := n.Dialogue["pardon"]; !ok {
			ve.warnf("NPC %q has no pardon line", n.Name)
		}
	}

	for _, q := range defs.Quests {
		if q.Parts < 1 {
			ve.errorf("quest %q needs at least one part", q.Name)
		}
		if c := q.Countdown; c != nil {
			if c.Turns <= 0 {
				ve.errorf("quest %q countdown needs a positive number of turns", q.Name)
			}
			if !idx.npc(c.NPC) {
				ve.errorf("quest %q countdown references undefined NPC %q", q.Name, c.NPC)
			}
		}
	}

	ids := map[string]bool{}
	for _, m := range defs.Milestones {
		if ids[m.ID] {
			ve.errorf("duplicate milestone ID %q", m.ID)
		}
		ids[m.ID] = true
		validateMilestone(m, idx, ve)
		validateEffects(m.Pending, idx, ve)
	}

	for group, phrases := range defs.Dictionary {
		if len(phrases) == 0 {
			ve.warnf("word group %q has no phrases", group)
		}
	}

	handled := map[string]bool{}
	for _, h := range defs.Handlers {
		switch h.Kind {
		case types.EventDeath, types.EventHostile:
			if h.Subject != "" && h.Subject != types.PlayerSubject && !idx.npc(h.Subject) {
				ve.errorf("%s handler references undefined NPC %q", h.Kind, h.Subject)
			}
		case types.EventQuestComplete:
			if _, ok := idx.quests[h.Subject]; h.Subject != "" && !ok {
				ve.errorf("quest_complete handler references undefined quest %q", h.Subject)
			}
		case types.EventTransition:
			handled[h.Subject] = true
		}
		validateConditions(h.Conditions, idx, ve)
		validateEffects(h.Effects, idx, ve)
	}
	for _, name := range sortedKeys(transitions) {
		if !handled[name] && !handled[""] {
			ve.warnf("transition %q has no handler", name)
		}
	}

	for _, w := range ve.Warnings {
		logrus.WithField("component", "loader").Warn(w)
	}

	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}

func validateMilestone(m types.MilestoneDef, idx index, ve *ValidationError) {
	parts, ok := idx.quests[m.Quest]
	if !ok {
		ve.errorf("milestone %q references undefined quest %q", m.ID, m.Quest)
	} else if m.Part < 1 || m.Part > parts {
		ve.errorf("milestone %q part %d out of range for quest %q", m.ID, m.Part, m.Quest)
	}

	switch m.When.Kind {
	case types.TriggerGive:
		if !idx.npc(m.When.NPC) {
			ve.errorf("milestone %q gives to undefined NPC %q", m.ID, m.When.NPC)
		}
		if !idx.item(m.When.Item) {
			ve.errorf("milestone %q gives undefined item %q", m.ID, m.When.Item)
		}
	case types.TriggerUnlock:
		room, ok := idx.rooms[m.When.Room]
		if !ok {
			ve.errorf("milestone %q unlocks in undefined room %q", m.ID, m.When.Room)
			return
		}
		for _, e := range room.Exits {
			if strings.EqualFold(e.Direction, m.When.Direction) {
				return
			}
		}
		ve.errorf("milestone %q unlocks missing exit %q of room %q", m.ID, m.When.Direction, m.When.Room)
	}
}

func validateConditions(conditions []types.Condition, idx index, ve *ValidationError) {
	for _, cond := range conditions {
		switch cond.Kind {
		case types.CondQuestPart:
			if _, ok := idx.quests[cond.Quest]; !ok {
				ve.errorf("condition quest_part references undefined quest %q", cond.Quest)
			}
		case types.CondHasItem:
			if !idx.item(cond.Item) {
				ve.errorf("condition has_item references undefined item %q", cond.Item)
			}
		case types.CondInRoom:
			if !idx.room(cond.Room) {
				ve.errorf("condition in_room references undefined room %q", cond.Room)
			}
		case types.CondNPCPresent:
			if !idx.npc(cond.NPC) {
				ve.errorf("condition npc_present references undefined NPC %q", cond.NPC)
			}
		case types.CondNot:
			if cond.Inner != nil {
				validateConditions([]types.Condition{*cond.Inner}, idx, ve)
			}
		}
	}
}

func validateEffects(effects []types.Effect, idx index, ve *ValidationError) {
	for _, eff := range effects {
		name := eff.Kind.String()
		switch eff.Kind {
		case types.EffectGiveItem, types.EffectPlaceItem:
			if !idx.item(eff.Item) {
				ve.errorf("effect %s references undefined item %q", name, eff.Item)
			}
			if eff.Room != "" && !idx.room(eff.Room) {
				ve.errorf("effect %s references undefined room %q", name, eff.Room)
			}
		case types.EffectSetDialogue, types.EffectRemoveDialogue,
			types.EffectSetMoveable, types.EffectSetHostile, types.EffectRemoveNPC:
			if !idx.npc(eff.NPC) {
				ve.errorf("effect %s references undefined NPC %q", name, eff.NPC)
			}
		case types.EffectMoveNPC:
			if !idx.npc(eff.NPC) {
				ve.errorf("effect %s references undefined NPC %q", name, eff.NPC)
			}
			if !idx.room(eff.Room) {
				ve.errorf("effect %s references undefined room %q", name, eff.Room)
			}
		case types.EffectUnlockExit, types.EffectLockExit, types.EffectRelocatePlayer:
			if !idx.room(eff.Room) {
				ve.errorf("effect %s references undefined room %q", name, eff.Room)
			}
		case types.EffectSetExit:
			if !idx.room(eff.Room) {
				ve.errorf("effect %s references undefined room %q", name, eff.Room)
			}
			if eff.Target != "" && !idx.room(eff.Target) {
				ve.errorf("effect %s target references undefined room %q", name, eff.Target)
			}
			if eff.Item != "" && !idx.item(eff.Item) {
				ve.errorf("effect %s uses undefined key %q", name, eff.Item)
			}
		case types.EffectCompletePart:
			if parts, ok := idx.quests[eff.Quest]; !ok {
				ve.errorf("effect %s references undefined quest %q", name, eff.Quest)
			} else if eff.Part < 0 || eff.Part > parts {
				ve.errorf("effect %s part %d out of range for quest %q", name, eff.Part, eff.Quest)
			}
		}
	}
}

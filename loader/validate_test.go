package loader

import (
	"testing"

	"github.com/nathoo/zuul/engine/state"
	"github.com/nathoo/zuul/types"
)

// validDefs returns a small valid Defs for testing.
func validDefs() *state.Defs {
	return &state.Defs{
		Game: types.GameDef{
			Title:  "Test",
			Start:  "hall",
			Player: types.PlayerDef{Capacity: 10, Damage: 10, Health: 100, Items: []string{"Fists"}},
		},
		Rooms: []types.RoomDef{
			{ID: "hall", Description: "in a hall.", Exits: []types.ExitDef{
				{Direction: "north", To: "cell", Key: "Brass key"},
				{Direction: "west", Transition: "pit"},
			}},
			{ID: "cell", Description: "in a cell.", Exits: []types.ExitDef{
				{Direction: "south", To: "hall"},
			}},
		},
		Items: []types.ItemDef{
			{Item: types.Item{Name: "Fists", Kind: types.ItemWeapon}},
			{Item: types.Item{Name: "Brass key", Kind: types.ItemKey, Weight: 0.1}, Location: "Warden"},
		},
		NPCs: []types.NPCDef{
			{Name: "Warden", Health: 50, Location: "cell", Dialogue: map[string]string{"pardon": "Eh?"}},
		},
		Quests: []types.QuestDef{
			{Name: "escape", Parts: 2, Countdown: &types.CountdownDef{Turns: 5, NPC: "Warden"}},
		},
		Milestones: []types.MilestoneDef{
			{ID: "bribe", Quest: "escape", Part: 1, When: types.Trigger{Kind: types.TriggerGive, NPC: "Warden", Item: "Fists"}},
			{ID: "door", Quest: "escape", Part: 2, When: types.Trigger{Kind: types.TriggerUnlock, Room: "hall", Direction: "north"}},
		},
		Handlers: []types.EventHandler{
			{Kind: types.EventTransition, Subject: "pit", Effects: []types.Effect{
				{Kind: types.EffectRelocatePlayer, Room: "cell"},
			}},
			{Kind: types.EventDeath, Subject: "Warden", Conditions: []types.Condition{
				{Kind: types.CondNot, Inner: &types.Condition{Kind: types.CondQuestPart, Quest: "escape", Part: 0}},
			}, Effects: []types.Effect{
				{Kind: types.EffectPlaceItem, Item: "Brass key"},
				{Kind: types.EffectSetExit, Room: "hall", Direction: "east", Transition: "pit"},
			}},
		},
		Dictionary: map[string][]string{"salutations": {"hi"}},
	}
}

func TestValidate_ValidDefs(t *testing.T) {
	if err := validate(validDefs()); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(d *state.Defs)
		want   string
	}{
		{"empty title", func(d *state.Defs) { d.Game.Title = "" }, "Title"},
		{"missing start", func(d *state.Defs) { d.Game.Start = "" }, "Game.Start"},
		{"unknown start", func(d *state.Defs) { d.Game.Start = "attic" }, "start room"},
		{"player item", func(d *state.Defs) { d.Game.Player.Items = []string{"Cape"} }, `undefined item "Cape"`},
		{"exit target", func(d *state.Defs) { d.Rooms[1].Exits[0].To = "attic" }, `undefined room "attic"`},
		{"exit key", func(d *state.Defs) { d.Rooms[0].Exits[0].Key = "Gold key" }, `undefined key "Gold key"`},
		{"duplicate exit", func(d *state.Defs) {
			d.Rooms[1].Exits = append(d.Rooms[1].Exits, types.ExitDef{Direction: "South", To: "hall"})
		}, "twice"},
		{"duplicate room", func(d *state.Defs) { d.Rooms = append(d.Rooms, d.Rooms[0]) }, "duplicate room"},
		{"duplicate item", func(d *state.Defs) {
			d.Items = append(d.Items, types.ItemDef{Item: types.Item{Name: "FISTS"}})
		}, "duplicate item"},
		{"negative weight", func(d *state.Defs) { d.Items[1].Item.Weight = -1 }, "negative weight"},
		{"item location", func(d *state.Defs) { d.Items[1].Location = "attic" }, "neither a room nor an NPC"},
		{"npc location", func(d *state.Defs) { d.NPCs[0].Location = "attic" }, `NPC "Warden" location`},
		{"dead npc", func(d *state.Defs) { d.NPCs[0].Health = 0 }, "must start alive"},
		{"no parts", func(d *state.Defs) { d.Quests[0].Parts = 0 }, "at least one part"},
		{"countdown turns", func(d *state.Defs) { d.Quests[0].Countdown.Turns = 0 }, "positive number of turns"},
		{"countdown npc", func(d *state.Defs) { d.Quests[0].Countdown.NPC = "Ghost" }, `undefined NPC "Ghost"`},
		{"milestone quest", func(d *state.Defs) { d.Milestones[0].Quest = "heist" }, `undefined quest "heist"`},
		{"milestone part", func(d *state.Defs) { d.Milestones[0].Part = 3 }, "out of range"},
		{"duplicate milestone", func(d *state.Defs) { d.Milestones[1].ID = "bribe" }, "duplicate milestone"},
		{"give npc", func(d *state.Defs) { d.Milestones[0].When.NPC = "Ghost" }, "gives to undefined NPC"},
		{"unlock exit", func(d *state.Defs) { d.Milestones[1].When.Direction = "up" }, "missing exit"},
		{"handler subject", func(d *state.Defs) { d.Handlers[1].Subject = "Ghost" }, "death handler"},
		{"condition quest", func(d *state.Defs) { d.Handlers[1].Conditions[0].Inner.Quest = "heist" }, "quest_part"},
		{"effect item", func(d *state.Defs) { d.Handlers[1].Effects[0].Item = "Cake" }, "place_item references undefined item"},
		{"effect room", func(d *state.Defs) { d.Handlers[0].Effects[0].Room = "attic" }, "relocate_player references undefined room"},
		{"set_exit target", func(d *state.Defs) { d.Handlers[1].Effects[1].Target = "attic" }, "target references"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defs := validDefs()
			tt.mutate(defs)

			err := validate(defs)
			if err == nil {
				t.Fatal("expected validation error")
			}
			ve, ok := err.(*ValidationError)
			if !ok {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
			assertContains(t, ve.Errors, tt.want)
		})
	}
}

func TestValidate_WarningsDoNotFail(t *testing.T) {
	defs := validDefs()
	defs.NPCs[0].Dialogue = nil
	defs.Handlers = defs.Handlers[1:] // nothing handles the pit any more

	if err := validate(defs); err != nil {
		t.Fatalf("warnings should not fail validation: %v", err)
	}
}

package effects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nathoo/zuul/engine/entity"
	"github.com/nathoo/zuul/engine/state"
	"github.com/nathoo/zuul/engine/world"
	"github.com/nathoo/zuul/types"
)

func testSetup(t *testing.T) *state.GameState {
	t.Helper()
	defs := &state.Defs{
		Game: types.GameDef{
			Start:  "hall",
			Player: types.PlayerDef{Capacity: 10, Damage: 10, Health: 100, Items: []string{"Fists"}},
		},
		Rooms: []types.RoomDef{
			{ID: "hall", Description: "in a hall.", Exits: []types.ExitDef{
				{Direction: "south", To: "cell"},
				{Direction: "east", To: "cell", Locked: true},
			}},
			{ID: "cell", Description: "in a cell.", Exits: []types.ExitDef{
				{Direction: "north", To: "hall"},
			}},
		},
		Items: []types.ItemDef{
			{Item: types.Item{Name: "Fists", Kind: types.ItemWeapon, Param: 5}},
			{Item: types.Item{Name: "Sturdy key", Kind: types.ItemKey, Takeable: true}, Location: "Old Man"},
		},
		NPCs: []types.NPCDef{
			{Name: "Old Man", Health: 100, Location: "cell", Dialogue: map[string]string{
				"salutations": "Please...",
			}},
		},
		Quests: []types.QuestDef{{Name: "quest1", Parts: 2}},
	}
	s, err := state.New(defs, "Tester", state.Options{})
	require.NoError(t, err)
	return s
}

func TestApply_Say(t *testing.T) {
	s := testSetup(t)
	_, out := Apply(s, []types.Effect{
		{Kind: types.EffectSay, Text: "Bye, {player}. {subject} is gone from {room}."},
	}, Context{Subject: "Old Man"})
	assert.Equal(t, []string{"Bye, Tester. Old Man is gone from hall."}, out)
}

func TestApply_GiveItemFromNPC(t *testing.T) {
	s := testSetup(t)
	key := s.Item("Sturdy key")

	events, _ := Apply(s, []types.Effect{{Kind: types.EffectGiveItem, Item: "sturdy key"}}, Context{})

	assert.True(t, s.Player.Has(key))
	assert.False(t, s.NPC("Old Man").Has(key))
	require.Len(t, events, 1)
	assert.Equal(t, types.EventItemMoved, events[0].Kind)
	assert.Equal(t, types.PlayerSubject, events[0].Data["to"])
}

func TestApply_PlaceItemInPlayersRoom(t *testing.T) {
	s := testSetup(t)
	key := s.Item("Sturdy key")

	Apply(s, []types.Effect{{Kind: types.EffectPlaceItem, Item: "Sturdy key"}}, Context{})

	assert.Same(t, key, s.World.Room("hall").Item("sturdy key"))
	assert.False(t, s.NPC("Old Man").Has(key))
}

func TestApply_Dialogue(t *testing.T) {
	s := testSetup(t)
	Apply(s, []types.Effect{
		{Kind: types.EffectRemoveDialogue, NPC: "Old Man", Group: "salutations"},
		{Kind: types.EffectSetDialogue, NPC: "Old Man", Group: "greetingsSame", Text: "Hello, {player}."},
	}, Context{})

	npc := s.NPC("Old Man")
	_, ok := npc.Response("salutations")
	assert.False(t, ok)
	line, ok := npc.Response("greetingsSame")
	require.True(t, ok)
	assert.Equal(t, "Hello, Tester.", line)
}

func TestApply_NPCState(t *testing.T) {
	s := testSetup(t)
	npc := s.NPC("Old Man")
	hostileCalls := 0
	npc.OnHostile = func(*entity.Entity) { hostileCalls++ }

	Apply(s, []types.Effect{
		{Kind: types.EffectMoveNPC, NPC: "Old Man", Room: "hall"},
		{Kind: types.EffectSetMoveable, NPC: "Old Man", Flag: true},
		{Kind: types.EffectSetHostile, NPC: "Old Man", Flag: true},
	}, Context{})

	assert.Equal(t, "hall", npc.Room().ID)
	assert.True(t, npc.Moveable)
	assert.True(t, npc.Hostile())
	assert.Equal(t, 1, hostileCalls)

	events, _ := Apply(s, []types.Effect{
		{Kind: types.EffectRemoveNPC, NPC: "Old Man"},
		{Kind: types.EffectSetHostile, NPC: "Old Man", Flag: false},
	}, Context{})
	assert.Nil(t, s.NPC("Old Man"))
	require.Len(t, events, 1)
	assert.Equal(t, types.EventNPCRemoved, events[0].Kind)
}

func TestApply_Exits(t *testing.T) {
	s := testSetup(t)
	hall := s.World.Room("hall")

	Apply(s, []types.Effect{
		{Kind: types.EffectUnlockExit, Room: "hall", Direction: "east"},
		{Kind: types.EffectLockExit, Room: "hall", Direction: "south"},
		{Kind: types.EffectSetExit, Room: "hall", Direction: "north", Transition: "escape"},
	}, Context{})

	assert.False(t, world.GetExit(hall, "east").Locked())
	assert.True(t, world.GetExit(hall, "south").Locked())
	north := world.GetExit(hall, "north")
	require.NotNil(t, north)
	assert.Nil(t, north.To)
	assert.Equal(t, "escape", north.Transition)
	assert.Equal(t, "Exits: south east north", world.ExitsLine(hall))
}

func TestApply_RelocateAndClear(t *testing.T) {
	s := testSetup(t)
	s.Player.MoveTo(s.World.Room("cell"))

	Apply(s, []types.Effect{
		{Kind: types.EffectClearInventory},
		{Kind: types.EffectRelocatePlayer, Room: "cell"},
	}, Context{})

	assert.Empty(t, s.Player.Items())
	assert.Equal(t, 1, s.Player.HistoryLen())
	assert.Equal(t, "cell", s.Player.Room().ID)
}

func TestApply_QuestAndEnd(t *testing.T) {
	s := testSetup(t)

	events, _ := Apply(s, []types.Effect{
		{Kind: types.EffectCompletePart, Quest: "quest1", Part: 2},
		{Kind: types.EffectEndGame, Flag: true},
	}, Context{})

	assert.True(t, s.Quest("quest1").Done(2))
	assert.False(t, s.Quest("quest1").Done(0))
	assert.True(t, s.Over)
	require.Len(t, events, 1)
	assert.Equal(t, true, events[0].Data["victory"])
}

func TestApply_UnknownReferencesSkipped(t *testing.T) {
	s := testSetup(t)
	events, out := Apply(s, []types.Effect{
		{Kind: types.EffectGiveItem, Item: "Cake"},
		{Kind: types.EffectMoveNPC, NPC: "Ghost", Room: "hall"},
		{Kind: types.EffectUnlockExit, Room: "attic", Direction: "up"},
		{Kind: types.EffectSetExit, Room: "hall", Direction: "up", Target: "attic"},
		{Kind: types.EffectKind(99)},
	}, Context{})
	assert.Empty(t, events)
	assert.Empty(t, out)
	assert.Nil(t, world.GetExit(s.World.Room("hall"), "up"))
}

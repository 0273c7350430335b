package loader

import (
	"slices"
	"testing"
	"testing/fstest"

	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/zuul/types"
)

// newTestVM creates a sandboxed Lua VM with the API registered and a fresh collector.
func newTestVM() (*lua.LState, *collector) {
	L := newSandbox()
	coll := &collector{}
	registerAPI(L, coll)
	return L, coll
}

func run(t *testing.T, src string) *collector {
	t.Helper()
	L, coll := newTestVM()
	t.Cleanup(L.Close)
	if err := L.DoString(src); err != nil {
		t.Fatal(err)
	}
	return coll
}

func TestCompileGame(t *testing.T) {
	coll := run(t, `
		Game {
			title = "Test Game",
			author = "Author",
			version = "1.0",
			start = "hall",
			welcome = "Hi!",
			intro = "Once upon a time.",
			help = "Good luck.",
			player = { capacity = 12.5, damage = 10, health = 100, items = { "Fists", "Map" } },
		}
	`)

	game := compileGame(coll.game)

	if game.Title != "Test Game" || game.Author != "Author" || game.Version != "1.0" {
		t.Errorf("metadata = %+v", game)
	}
	if game.Start != "hall" {
		t.Errorf("Start = %q, want %q", game.Start, "hall")
	}
	if game.Welcome != "Hi!" || game.Intro != "Once upon a time." || game.Help != "Good luck." {
		t.Errorf("texts = %q %q %q", game.Welcome, game.Intro, game.Help)
	}
	if game.Player.Capacity != 12.5 || game.Player.Damage != 10 || game.Player.Health != 100 {
		t.Errorf("player = %+v", game.Player)
	}
	if len(game.Player.Items) != 2 || game.Player.Items[1] != "Map" {
		t.Errorf("player items = %v", game.Player.Items)
	}
}

func TestCompileRoom_ExitOrder(t *testing.T) {
	coll := run(t, `
		Room "hall" {
			description = "in a hall.",
			exits = {
				Exit("south", "cell"),
				Exit("east", "vault", { key = "Brass key" }),
				Exit("west", nil, { transition = "pit" }),
				Exit("up", "attic", { locked = true }),
			},
		}
	`)

	room := compileRoom(coll.rooms[0])

	if room.ID != "hall" || room.Description != "in a hall." {
		t.Errorf("room = %+v", room)
	}
	want := []types.ExitDef{
		{Direction: "south", To: "cell"},
		{Direction: "east", To: "vault", Key: "Brass key"},
		{Direction: "west", Transition: "pit"},
		{Direction: "up", To: "attic", Locked: true},
	}
	if len(room.Exits) != len(want) {
		t.Fatalf("got %d exits, want %d", len(room.Exits), len(want))
	}
	for i, w := range want {
		if room.Exits[i] != w {
			t.Errorf("exit %d = %+v, want %+v", i, room.Exits[i], w)
		}
	}
}

func TestCompileItem(t *testing.T) {
	coll := run(t, `
		Item "Rusty sword" {
			description = "A rusty old sword.",
			weight = 5,
			kind = "weapon",
			param = 50,
			param_label = "Damage",
			use = "You swing the sword.",
			location = "hallwayB1",
		}
		Item "Note" { takeable = false, quest_item = true }
	`)

	sword, err := compileItem(coll.items[0])
	if err != nil {
		t.Fatal(err)
	}
	if sword.Item.Kind != types.ItemWeapon || sword.Item.Param != 50 || sword.Item.ParamLabel != "Damage" {
		t.Errorf("sword = %+v", sword.Item)
	}
	if !sword.Item.Takeable {
		t.Error("items should be takeable by default")
	}
	if sword.Item.Weight != 5 || sword.Location != "hallwayB1" || sword.Item.UseText != "You swing the sword." {
		t.Errorf("sword = %+v", sword)
	}

	note, err := compileItem(coll.items[1])
	if err != nil {
		t.Fatal(err)
	}
	if note.Item.Kind != types.ItemMiscellaneous || note.Item.Takeable || !note.Item.QuestItem {
		t.Errorf("note = %+v", note.Item)
	}
}

func TestCompileQuestAndMilestone(t *testing.T) {
	coll := run(t, `
		Quest "rescue" { parts = 2, countdown = { turns = 15, npc = "Old Man" } }
		Quest "plain" { parts = 1 }
		Milestone "feed" {
			quest = "rescue",
			part = 1,
			when = Give("Old Man", "Bread loaf"),
			pending = Then {
				Say("Thanks."),
				SetDialogue("Old Man", "salutations", "Hello, friend."),
			},
		}
		Milestone "free" { quest = "rescue", part = 2, when = UseKey("hall", "north") }
	`)

	q := compileQuest(coll.quests[0])
	if q.Parts != 2 || q.Countdown == nil || q.Countdown.Turns != 15 || q.Countdown.NPC != "Old Man" {
		t.Errorf("quest = %+v", q)
	}
	if compileQuest(coll.quests[1]).Countdown != nil {
		t.Error("expected no countdown")
	}

	feed, err := compileMilestone(coll.milestones[0])
	if err != nil {
		t.Fatal(err)
	}
	if feed.When != (types.Trigger{Kind: types.TriggerGive, NPC: "Old Man", Item: "Bread loaf"}) {
		t.Errorf("feed trigger = %+v", feed.When)
	}
	if len(feed.Pending) != 2 || feed.Pending[1].Kind != types.EffectSetDialogue || feed.Pending[1].Group != "salutations" {
		t.Errorf("feed pending = %+v", feed.Pending)
	}

	free, err := compileMilestone(coll.milestones[1])
	if err != nil {
		t.Fatal(err)
	}
	if free.When != (types.Trigger{Kind: types.TriggerUnlock, Room: "hall", Direction: "north"}) {
		t.Errorf("free trigger = %+v", free.When)
	}
}

func TestCompileMilestone_MissingTrigger(t *testing.T) {
	coll := run(t, `Milestone "broken" { quest = "rescue", part = 1 }`)
	if _, err := compileMilestone(coll.milestones[0]); err == nil {
		t.Fatal("expected error for missing trigger")
	}
}

func TestCompileHandler(t *testing.T) {
	coll := run(t, `
		On("death", {
			subject = "Old Man",
			conditions = { Not(QuestPart("rescue", 0)), InRoom("cell") },
			effects = {
				PlaceItem("Sturdy key"),
				SetExit("hall", "north", nil, { transition = "escape" }),
				SetExit("hall", "east", "vault", { key = "Brass key" }),
				EndGame(true),
			},
		})
		On("teleport", { effects = {} })
	`)

	h, err := compileHandler(coll.handlers[0])
	if err != nil {
		t.Fatal(err)
	}
	if h.Kind != types.EventDeath || h.Subject != "Old Man" {
		t.Errorf("handler = %+v", h)
	}
	if len(h.Conditions) != 2 || h.Conditions[0].Kind != types.CondNot || h.Conditions[0].Inner == nil ||
		h.Conditions[0].Inner.Quest != "rescue" || h.Conditions[0].Inner.Part != 0 {
		t.Errorf("conditions = %+v", h.Conditions)
	}

	want := []types.Effect{
		{Kind: types.EffectPlaceItem, Item: "Sturdy key"},
		{Kind: types.EffectSetExit, Room: "hall", Direction: "north", Transition: "escape"},
		{Kind: types.EffectSetExit, Room: "hall", Direction: "east", Target: "vault", Item: "Brass key", Flag: true},
		{Kind: types.EffectEndGame, Flag: true},
	}
	if len(h.Effects) != len(want) {
		t.Fatalf("got %d effects, want %d", len(h.Effects), len(want))
	}
	for i, w := range want {
		if h.Effects[i] != w {
			t.Errorf("effect %d = %+v, want %+v", i, h.Effects[i], w)
		}
	}

	if _, err := compileHandler(coll.handlers[1]); err == nil {
		t.Error("expected error for unknown event type")
	}
}

func TestCompileEffect_AllHelpers(t *testing.T) {
	coll := run(t, `
		On("hostile", { effects = {
			Say("x"), GiveItem("a"), PlaceItem("a", "r"), SetDialogue("n", "g", "t"),
			RemoveDialogue("n", "g"), MoveNPC("n", "r"), SetMoveable("n", true),
			SetHostile("n", false), RemoveNPC("n"), UnlockExit("r", "d"), LockExit("r", "d"),
			SetExit("r", "d"), ClearInventory(), RelocatePlayer("r"), CompletePart("q", 1),
			EndGame(),
		}})
	`)

	h, err := compileHandler(coll.handlers[0])
	if err != nil {
		t.Fatal(err)
	}
	if len(h.Effects) != len(effectKinds) {
		t.Fatalf("got %d effects, want one per kind (%d)", len(h.Effects), len(effectKinds))
	}
	for i, eff := range h.Effects {
		if eff.Kind != types.EffectKind(i) {
			t.Errorf("effect %d kind = %s, want %s", i, eff.Kind, types.EffectKind(i))
		}
	}
	if !h.Effects[6].Flag || h.Effects[7].Flag || h.Effects[15].Flag {
		t.Error("unexpected flag values")
	}
}

func TestLuaSources(t *testing.T) {
	fsys := fstest.MapFS{
		"rooms.lua":      {Data: []byte("")},
		"game.lua":       {Data: []byte("")},
		"events.lua":     {Data: []byte("")},
		"notes.txt":      {Data: []byte("")},
		"sub/nested.lua": {Data: []byte("")},
	}
	got, err := luaSources(fsys)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"game.lua", "events.lua", "rooms.lua"}
	if !slices.Equal(got, want) {
		t.Fatalf("luaSources() = %v, want %v", got, want)
	}
}

package loader

import (
	lua "github.com/yuin/gopher-lua"
)

// rawDef holds a named definition table before compilation.
type rawDef struct {
	id    string
	table *lua.LTable
}

// rawHandler holds an event handler before compilation.
type rawHandler struct {
	eventType string
	table     *lua.LTable
}

// registerAPI registers all Lua constructors and helpers as globals.
func registerAPI(L *lua.LState, coll *collector) {
	registerConstructors(L, coll)
	registerTriggerHelpers(L)
	registerConditionHelpers(L)
	registerEffectHelpers(L)
}

// curried registers a constructor used as Name "id" { ... }.
func curried(L *lua.LState, name string, into *[]rawDef) {
	L.SetGlobal(name, L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			*into = append(*into, rawDef{id: id, table: tbl})
			return 0
		}))
		return 1
	}))
}

// node builds a helper result table tagged with its type.
func node(L *lua.LState, typ string) *lua.LTable {
	tbl := L.NewTable()
	tbl.RawSetString("type", lua.LString(typ))
	return tbl
}

func registerConstructors(L *lua.LState, coll *collector) {
	// Game { title = "...", start = "...", player = { ... } }
	L.SetGlobal("Game", L.NewFunction(func(L *lua.LState) int {
		coll.game = L.CheckTable(1)
		return 0
	}))

	// Room "id" { description = "...", exits = { Exit(...), ... } }
	curried(L, "Room", &coll.rooms)
	// Item "Name" { description = "...", kind = "key", ... }
	curried(L, "Item", &coll.items)
	// NPC "Name" { health = 100, location = "room", dialogue = { ... } }
	curried(L, "NPC", &coll.npcs)
	// Quest "name" { parts = 2, countdown = { turns = 15, npc = "Name" } }
	curried(L, "Quest", &coll.quests)
	// Milestone "id" { quest = "name", part = 1, when = Give(...), pending = Then { ... } }
	curried(L, "Milestone", &coll.milestones)
	// Dictionary "group" { "phrase", ... }
	curried(L, "Dictionary", &coll.dictionary)

	// Exit("direction", "room" or nil, { key = "...", locked = true, transition = "..." })
	L.SetGlobal("Exit", L.NewFunction(func(L *lua.LState) int {
		tbl := node(L, "exit")
		tbl.RawSetString("direction", lua.LString(L.CheckString(1)))
		tbl.RawSetString("to", lua.LString(L.OptString(2, "")))
		if opts, ok := L.Get(3).(*lua.LTable); ok {
			opts.ForEach(func(k, v lua.LValue) {
				if ks, ok := k.(lua.LString); ok {
					tbl.RawSetString(string(ks), v)
				}
			})
		}
		L.Push(tbl)
		return 1
	}))

	// On("event_type", { subject = "...", conditions = {...}, effects = {...} })
	L.SetGlobal("On", L.NewFunction(func(L *lua.LState) int {
		eventType := L.CheckString(1)
		tbl := L.CheckTable(2)
		coll.handlers = append(coll.handlers, rawHandler{eventType: eventType, table: tbl})
		return 0
	}))

	// Then { effect1, effect2, ... } returns the table unchanged.
	L.SetGlobal("Then", L.NewFunction(func(L *lua.LState) int {
		L.Push(L.CheckTable(1))
		return 1
	}))
}

func registerTriggerHelpers(L *lua.LState) {
	// Give("npc", "item")
	L.SetGlobal("Give", L.NewFunction(func(L *lua.LState) int {
		tbl := node(L, "give")
		tbl.RawSetString("npc", lua.LString(L.CheckString(1)))
		tbl.RawSetString("item", lua.LString(L.CheckString(2)))
		L.Push(tbl)
		return 1
	}))

	// UseKey("room", "direction")
	L.SetGlobal("UseKey", L.NewFunction(func(L *lua.LState) int {
		tbl := node(L, "unlock")
		tbl.RawSetString("room", lua.LString(L.CheckString(1)))
		tbl.RawSetString("direction", lua.LString(L.CheckString(2)))
		L.Push(tbl)
		return 1
	}))
}

func registerConditionHelpers(L *lua.LState) {
	// QuestPart("quest", part)
	L.SetGlobal("QuestPart", L.NewFunction(func(L *lua.LState) int {
		tbl := node(L, "quest_part")
		tbl.RawSetString("quest", lua.LString(L.CheckString(1)))
		tbl.RawSetString("part", L.CheckNumber(2))
		L.Push(tbl)
		return 1
	}))

	// HasItem("item")
	L.SetGlobal("HasItem", L.NewFunction(func(L *lua.LState) int {
		tbl := node(L, "has_item")
		tbl.RawSetString("item", lua.LString(L.CheckString(1)))
		L.Push(tbl)
		return 1
	}))

	// InRoom("room")
	L.SetGlobal("InRoom", L.NewFunction(func(L *lua.LState) int {
		tbl := node(L, "in_room")
		tbl.RawSetString("room", lua.LString(L.CheckString(1)))
		L.Push(tbl)
		return 1
	}))

	// NPCPresent("npc")
	L.SetGlobal("NPCPresent", L.NewFunction(func(L *lua.LState) int {
		tbl := node(L, "npc_present")
		tbl.RawSetString("npc", lua.LString(L.CheckString(1)))
		L.Push(tbl)
		return 1
	}))

	// Not(condition)
	L.SetGlobal("Not", L.NewFunction(func(L *lua.LState) int {
		tbl := node(L, "not")
		tbl.RawSetString("inner", L.CheckTable(1))
		L.Push(tbl)
		return 1
	}))
}

func registerEffectHelpers(L *lua.LState) {
	// Say("text")
	L.SetGlobal("Say", L.NewFunction(func(L *lua.LState) int {
		tbl := node(L, "say")
		tbl.RawSetString("text", lua.LString(L.CheckString(1)))
		L.Push(tbl)
		return 1
	}))

	// GiveItem("item")
	L.SetGlobal("GiveItem", L.NewFunction(func(L *lua.LState) int {
		tbl := node(L, "give_item")
		tbl.RawSetString("item", lua.LString(L.CheckString(1)))
		L.Push(tbl)
		return 1
	}))

	// PlaceItem("item", "room"), the player's room when room is omitted.
	L.SetGlobal("PlaceItem", L.NewFunction(func(L *lua.LState) int {
		tbl := node(L, "place_item")
		tbl.RawSetString("item", lua.LString(L.CheckString(1)))
		tbl.RawSetString("room", lua.LString(L.OptString(2, "")))
		L.Push(tbl)
		return 1
	}))

	// SetDialogue("npc", "group", "text")
	L.SetGlobal("SetDialogue", L.NewFunction(func(L *lua.LState) int {
		tbl := node(L, "set_dialogue")
		tbl.RawSetString("npc", lua.LString(L.CheckString(1)))
		tbl.RawSetString("group", lua.LString(L.CheckString(2)))
		tbl.RawSetString("text", lua.LString(L.CheckString(3)))
		L.Push(tbl)
		return 1
	}))

	// RemoveDialogue("npc", "group")
	L.SetGlobal("RemoveDialogue", L.NewFunction(func(L *lua.LState) int {
		tbl := node(L, "remove_dialogue")
		tbl.RawSetString("npc", lua.LString(L.CheckString(1)))
		tbl.RawSetString("group", lua.LString(L.CheckString(2)))
		L.Push(tbl)
		return 1
	}))

	// MoveNPC("npc", "room")
	L.SetGlobal("MoveNPC", L.NewFunction(func(L *lua.LState) int {
		tbl := node(L, "move_npc")
		tbl.RawSetString("npc", lua.LString(L.CheckString(1)))
		tbl.RawSetString("room", lua.LString(L.CheckString(2)))
		L.Push(tbl)
		return 1
	}))

	// SetMoveable("npc", bool)
	L.SetGlobal("SetMoveable", L.NewFunction(func(L *lua.LState) int {
		tbl := node(L, "set_moveable")
		tbl.RawSetString("npc", lua.LString(L.CheckString(1)))
		tbl.RawSetString("value", lua.LBool(L.CheckBool(2)))
		L.Push(tbl)
		return 1
	}))

	// SetHostile("npc", bool)
	L.SetGlobal("SetHostile", L.NewFunction(func(L *lua.LState) int {
		tbl := node(L, "set_hostile")
		tbl.RawSetString("npc", lua.LString(L.CheckString(1)))
		tbl.RawSetString("value", lua.LBool(L.CheckBool(2)))
		L.Push(tbl)
		return 1
	}))

	// RemoveNPC("npc")
	L.SetGlobal("RemoveNPC", L.NewFunction(func(L *lua.LState) int {
		tbl := node(L, "remove_npc")
		tbl.RawSetString("npc", lua.LString(L.CheckString(1)))
		L.Push(tbl)
		return 1
	}))

	// UnlockExit("room", "direction")
	L.SetGlobal("UnlockExit", L.NewFunction(func(L *lua.LState) int {
		tbl := node(L, "unlock_exit")
		tbl.RawSetString("room", lua.LString(L.CheckString(1)))
		tbl.RawSetString("direction", lua.LString(L.CheckString(2)))
		L.Push(tbl)
		return 1
	}))

	// LockExit("room", "direction")
	L.SetGlobal("LockExit", L.NewFunction(func(L *lua.LState) int {
		tbl := node(L, "lock_exit")
		tbl.RawSetString("room", lua.LString(L.CheckString(1)))
		tbl.RawSetString("direction", lua.LString(L.CheckString(2)))
		L.Push(tbl)
		return 1
	}))

	// SetExit("room", "direction", "target" or nil, { key = "...", locked = true, transition = "..." })
	L.SetGlobal("SetExit", L.NewFunction(func(L *lua.LState) int {
		tbl := node(L, "set_exit")
		tbl.RawSetString("room", lua.LString(L.CheckString(1)))
		tbl.RawSetString("direction", lua.LString(L.CheckString(2)))
		tbl.RawSetString("target", lua.LString(L.OptString(3, "")))
		if opts, ok := L.Get(4).(*lua.LTable); ok {
			tbl.RawSetString("key", opts.RawGetString("key"))
			tbl.RawSetString("locked", opts.RawGetString("locked"))
			tbl.RawSetString("transition", opts.RawGetString("transition"))
		}
		L.Push(tbl)
		return 1
	}))

	// ClearInventory()
	L.SetGlobal("ClearInventory", L.NewFunction(func(L *lua.LState) int {
		L.Push(node(L, "clear_inventory"))
		return 1
	}))

	// RelocatePlayer("room")
	L.SetGlobal("RelocatePlayer", L.NewFunction(func(L *lua.LState) int {
		tbl := node(L, "relocate_player")
		tbl.RawSetString("room", lua.LString(L.CheckString(1)))
		L.Push(tbl)
		return 1
	}))

	// CompletePart("quest", part)
	L.SetGlobal("CompletePart", L.NewFunction(func(L *lua.LState) int {
		tbl := node(L, "complete_part")
		tbl.RawSetString("quest", lua.LString(L.CheckString(1)))
		tbl.RawSetString("part", L.CheckNumber(2))
		L.Push(tbl)
		return 1
	}))

	// EndGame(victory)
	L.SetGlobal("EndGame", L.NewFunction(func(L *lua.LState) int {
		tbl := node(L, "end_game")
		tbl.RawSetString("value", lua.LBool(L.OptBool(1, false)))
		L.Push(tbl)
		return 1
	}))
}

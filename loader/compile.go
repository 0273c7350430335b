// Package loader loads Lua game content into Go structs at compile time.
// The Lua VM is discarded after loading, so no Lua runs during play.
package loader

import (
	"fmt"
	"sort"

	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/zuul/engine/state"
	"github.com/nathoo/zuul/types"
)

var itemKinds = map[string]types.ItemKind{
	"":              types.ItemMiscellaneous,
	"miscellaneous": types.ItemMiscellaneous,
	"weapon":        types.ItemWeapon,
	"key":           types.ItemKey,
	"advantage":     types.ItemAdvantage,
	"quest":         types.ItemQuest,
}

var eventKinds = map[string]types.EventKind{
	"death":          types.EventDeath,
	"hostile":        types.EventHostile,
	"quest_complete": types.EventQuestComplete,
	"transition":     types.EventTransition,
	"item_moved":     types.EventItemMoved,
	"exit_changed":   types.EventExitChanged,
	"npc_moved":      types.EventNPCMoved,
	"npc_removed":    types.EventNPCRemoved,
	"game_ended":     types.EventGameEnded,
}

var conditionKinds = map[string]types.ConditionKind{
	"quest_part":  types.CondQuestPart,
	"has_item":    types.CondHasItem,
	"in_room":     types.CondInRoom,
	"npc_present": types.CondNPCPresent,
	"not":         types.CondNot,
}

var effectKinds = map[string]types.EffectKind{
	"say":             types.EffectSay,
	"give_item":       types.EffectGiveItem,
	"place_item":      types.EffectPlaceItem,
	"set_dialogue":    types.EffectSetDialogue,
	"remove_dialogue": types.EffectRemoveDialogue,
	"move_npc":        types.EffectMoveNPC,
	"set_moveable":    types.EffectSetMoveable,
	"set_hostile":     types.EffectSetHostile,
	"remove_npc":      types.EffectRemoveNPC,
	"unlock_exit":     types.EffectUnlockExit,
	"lock_exit":       types.EffectLockExit,
	"set_exit":        types.EffectSetExit,
	"clear_inventory": types.EffectClearInventory,
	"relocate_player": types.EffectRelocatePlayer,
	"complete_part":   types.EffectCompletePart,
	"end_game":        types.EffectEndGame,
}

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) string {
	v := tbl.RawGetString(key)
	if s, ok := v.(lua.LString); ok {
		return string(s)
	}
	return ""
}

// getBool returns a bool field from a Lua table, or the default if missing.
func getBool(tbl *lua.LTable, key string, def bool) bool {
	v := tbl.RawGetString(key)
	if b, ok := v.(lua.LBool); ok {
		return bool(b)
	}
	return def
}

// getNumber returns a numeric field from a Lua table, or 0 if missing.
func getNumber(tbl *lua.LTable, key string) float64 {
	v := tbl.RawGetString(key)
	if n, ok := v.(lua.LNumber); ok {
		return float64(n)
	}
	return 0
}

// getInt returns an int field from a Lua table, or 0 if missing.
func getInt(tbl *lua.LTable, key string) int {
	return int(getNumber(tbl, key))
}

// getTable returns a table field from a Lua table, or nil if missing.
func getTable(tbl *lua.LTable, key string) *lua.LTable {
	v := tbl.RawGetString(key)
	if t, ok := v.(*lua.LTable); ok {
		return t
	}
	return nil
}

// tableToStrings converts the array part of a Lua table to strings.
func tableToStrings(tbl *lua.LTable) []string {
	if tbl == nil {
		return nil
	}
	var out []string
	for i := 1; i <= tbl.MaxN(); i++ {
		if s, ok := tbl.RawGetInt(i).(lua.LString); ok {
			out = append(out, string(s))
		}
	}
	return out
}

// tableToStringMap converts a Lua table to a map[string]string.
func tableToStringMap(tbl *lua.LTable) map[string]string {
	if tbl == nil {
		return nil
	}
	m := map[string]string{}
	tbl.ForEach(func(k, v lua.LValue) {
		if ks, ok := k.(lua.LString); ok {
			if vs, ok := v.(lua.LString); ok {
				m[string(ks)] = string(vs)
			}
		}
	})
	return m
}

// tables returns the table elements of a Lua array in order.
func tables(tbl *lua.LTable) []*lua.LTable {
	if tbl == nil {
		return nil
	}
	var out []*lua.LTable
	for i := 1; i <= tbl.MaxN(); i++ {
		if t, ok := tbl.RawGetInt(i).(*lua.LTable); ok {
			out = append(out, t)
		}
	}
	return out
}

// compile converts all collected Lua data into a Defs struct.
func compile(coll *collector) (*state.Defs, error) {
	if coll.game == nil {
		return nil, fmt.Errorf("no Game{} definition found")
	}
	defs := &state.Defs{
		Game:       compileGame(coll.game),
		Dictionary: map[string][]string{},
	}

	for _, raw := range coll.rooms {
		defs.Rooms = append(defs.Rooms, compileRoom(raw))
	}

	for _, raw := range coll.items {
		item, err := compileItem(raw)
		if err != nil {
			return nil, fmt.Errorf("compiling item %s: %w", raw.id, err)
		}
		defs.Items = append(defs.Items, item)
	}

	for _, raw := range coll.npcs {
		defs.NPCs = append(defs.NPCs, compileNPC(raw))
	}

	for _, raw := range coll.quests {
		defs.Quests = append(defs.Quests, compileQuest(raw))
	}

	for _, raw := range coll.milestones {
		m, err := compileMilestone(raw)
		if err != nil {
			return nil, fmt.Errorf("compiling milestone %s: %w", raw.id, err)
		}
		defs.Milestones = append(defs.Milestones, m)
	}

	for _, raw := range coll.dictionary {
		defs.Dictionary[raw.id] = append(defs.Dictionary[raw.id], tableToStrings(raw.table)...)
	}

	for i, raw := range coll.handlers {
		h, err := compileHandler(raw)
		if err != nil {
			return nil, fmt.Errorf("compiling handler %d (%s): %w", i+1, raw.eventType, err)
		}
		defs.Handlers = append(defs.Handlers, h)
	}

	return defs, nil
}

// compileGame converts a Game{} table into a GameDef.
func compileGame(tbl *lua.LTable) types.GameDef {
	g := types.GameDef{
		Title:   getString(tbl, "title"),
		Author:  getString(tbl, "author"),
		Version: getString(tbl, "version"),
		Start:   getString(tbl, "start"),
		Welcome: getString(tbl, "welcome"),
		Intro:   getString(tbl, "intro"),
		Help:    getString(tbl, "help"),
	}
	if p := getTable(tbl, "player"); p != nil {
		g.Player = types.PlayerDef{
			Capacity: getNumber(p, "capacity"),
			Damage:   getInt(p, "damage"),
			Health:   getInt(p, "health"),
			Items:    tableToStrings(getTable(p, "items")),
		}
	}
	return g
}

// compileRoom converts a Room table into a RoomDef. Exits keep their order.
func compileRoom(raw rawDef) types.RoomDef {
	room := types.RoomDef{
		ID:          raw.id,
		Description: getString(raw.table, "description"),
	}
	for _, e := range tables(getTable(raw.table, "exits")) {
		room.Exits = append(room.Exits, types.ExitDef{
			Direction:  getString(e, "direction"),
			To:         getString(e, "to"),
			Locked:     getBool(e, "locked", false),
			Key:        getString(e, "key"),
			Transition: getString(e, "transition"),
		})
	}
	return room
}

// compileItem converts an Item table into an ItemDef.
func compileItem(raw rawDef) (types.ItemDef, error) {
	tbl := raw.table
	kind, ok := itemKinds[getString(tbl, "kind")]
	if !ok {
		return types.ItemDef{}, fmt.Errorf("unknown item kind %q", getString(tbl, "kind"))
	}
	return types.ItemDef{
		Item: types.Item{
			Name:        raw.id,
			Description: getString(tbl, "description"),
			Weight:      getNumber(tbl, "weight"),
			Param:       getInt(tbl, "param"),
			ParamLabel:  getString(tbl, "param_label"),
			Takeable:    getBool(tbl, "takeable", true),
			Kind:        kind,
			UseText:     getString(tbl, "use"),
			QuestItem:   getBool(tbl, "quest_item", false),
		},
		Location: getString(tbl, "location"),
	}, nil
}

// compileNPC converts an NPC table into an NPCDef.
func compileNPC(raw rawDef) types.NPCDef {
	tbl := raw.table
	return types.NPCDef{
		Name:     raw.id,
		Capacity: getNumber(tbl, "capacity"),
		Damage:   getInt(tbl, "damage"),
		Health:   getInt(tbl, "health"),
		Moveable: getBool(tbl, "moveable", false),
		Hostile:  getBool(tbl, "hostile", false),
		Location: getString(tbl, "location"),
		Dialogue: tableToStringMap(getTable(tbl, "dialogue")),
	}
}

// compileQuest converts a Quest table into a QuestDef.
func compileQuest(raw rawDef) types.QuestDef {
	q := types.QuestDef{
		Name:  raw.id,
		Parts: getInt(raw.table, "parts"),
	}
	if c := getTable(raw.table, "countdown"); c != nil {
		q.Countdown = &types.CountdownDef{
			Turns: getInt(c, "turns"),
			NPC:   getString(c, "npc"),
		}
	}
	return q
}

// compileMilestone converts a Milestone table into a MilestoneDef.
func compileMilestone(raw rawDef) (types.MilestoneDef, error) {
	tbl := raw.table
	when := getTable(tbl, "when")
	if when == nil {
		return types.MilestoneDef{}, fmt.Errorf("missing when trigger")
	}
	trigger, err := compileTrigger(when)
	if err != nil {
		return types.MilestoneDef{}, err
	}
	pending, err := compileEffects(getTable(tbl, "pending"))
	if err != nil {
		return types.MilestoneDef{}, fmt.Errorf("pending: %w", err)
	}
	return types.MilestoneDef{
		ID:      raw.id,
		Quest:   getString(tbl, "quest"),
		Part:    getInt(tbl, "part"),
		When:    trigger,
		Pending: pending,
	}, nil
}

func compileTrigger(tbl *lua.LTable) (types.Trigger, error) {
	switch typ := getString(tbl, "type"); typ {
	case "give":
		return types.Trigger{
			Kind: types.TriggerGive,
			NPC:  getString(tbl, "npc"),
			Item: getString(tbl, "item"),
		}, nil
	case "unlock":
		return types.Trigger{
			Kind:      types.TriggerUnlock,
			Room:      getString(tbl, "room"),
			Direction: getString(tbl, "direction"),
		}, nil
	default:
		return types.Trigger{}, fmt.Errorf("unknown trigger type %q", typ)
	}
}

// compileHandler converts an On() call into an EventHandler.
func compileHandler(raw rawHandler) (types.EventHandler, error) {
	kind, ok := eventKinds[raw.eventType]
	if !ok {
		return types.EventHandler{}, fmt.Errorf("unknown event type %q", raw.eventType)
	}
	conds, err := compileConditions(getTable(raw.table, "conditions"))
	if err != nil {
		return types.EventHandler{}, err
	}
	effs, err := compileEffects(getTable(raw.table, "effects"))
	if err != nil {
		return types.EventHandler{}, err
	}
	return types.EventHandler{
		Kind:       kind,
		Subject:    getString(raw.table, "subject"),
		Conditions: conds,
		Effects:    effs,
	}, nil
}

func compileConditions(tbl *lua.LTable) ([]types.Condition, error) {
	var out []types.Condition
	for _, t := range tables(tbl) {
		c, err := compileCondition(t)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func compileCondition(tbl *lua.LTable) (types.Condition, error) {
	typ := getString(tbl, "type")
	kind, ok := conditionKinds[typ]
	if !ok {
		return types.Condition{}, fmt.Errorf("unknown condition type %q", typ)
	}
	c := types.Condition{
		Kind:  kind,
		Quest: getString(tbl, "quest"),
		Part:  getInt(tbl, "part"),
		Item:  getString(tbl, "item"),
		Room:  getString(tbl, "room"),
		NPC:   getString(tbl, "npc"),
	}
	if inner := getTable(tbl, "inner"); inner != nil {
		ic, err := compileCondition(inner)
		if err != nil {
			return types.Condition{}, err
		}
		c.Inner = &ic
	}
	return c, nil
}

func compileEffects(tbl *lua.LTable) ([]types.Effect, error) {
	var out []types.Effect
	for _, t := range tables(tbl) {
		e, err := compileEffect(t)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func compileEffect(tbl *lua.LTable) (types.Effect, error) {
	typ := getString(tbl, "type")
	kind, ok := effectKinds[typ]
	if !ok {
		return types.Effect{}, fmt.Errorf("unknown effect type %q", typ)
	}
	e := types.Effect{
		Kind:       kind,
		Text:       getString(tbl, "text"),
		Item:       getString(tbl, "item"),
		NPC:        getString(tbl, "npc"),
		Room:       getString(tbl, "room"),
		Direction:  getString(tbl, "direction"),
		Target:     getString(tbl, "target"),
		Transition: getString(tbl, "transition"),
		Group:      getString(tbl, "group"),
		Quest:      getString(tbl, "quest"),
		Part:       getInt(tbl, "part"),
		Flag:       getBool(tbl, "value", false),
	}
	if kind == types.EffectSetExit {
		// set_exit reuses Item for the key and Flag for the lock.
		e.Item = getString(tbl, "key")
		e.Flag = getBool(tbl, "locked", false) || e.Item != ""
	}
	return e, nil
}

// sortedKeys returns the keys of a map in sorted order.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

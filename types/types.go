// Package types defines the shared data structures for the Zuul's Dungeon engine.
// This package contains only type definitions and their display names, no logic.
package types

// PlayerSubject is the event subject used for hooks that target the player.
const PlayerSubject = "player"

// ItemKind determines what happens when an item is used or looked at.
type ItemKind int

const (
	ItemMiscellaneous ItemKind = iota
	ItemWeapon
	ItemKey
	ItemAdvantage
	ItemQuest
)

// Item is an immutable item definition. Only its location changes at runtime,
// and the same pointer is shared by the registry, rooms, inventories and exits.
type Item struct {
	Name        string
	Description string
	Weight      float64 // kilograms, never negative
	Param       int     // meaning depends on Kind, e.g. damage for weapons
	ParamLabel  string  // shown as "<label>: <param>." when looking at the item
	Takeable    bool
	Kind        ItemKind
	UseText     string
	QuestItem   bool // quest items can't be dropped or given away
}

// Word is a command word from the fixed vocabulary.
type Word int

const (
	WordUnknown Word = iota
	WordGo
	WordLook
	WordUse
	WordTake
	WordDrop
	WordSay
	WordGive
	WordHelp
	WordQuit
)

// Command is the parsed representation of one input line.
type Command struct {
	Word Word
	Arg  string // verbatim remainder of the line, empty if absent
}

// ExitDef is the base definition of an exit.
type ExitDef struct {
	Direction  string
	To         string // destination room ID; empty for a void exit
	Locked     bool
	Key        string // item name of the key, empty if the exit has no lock
	Transition string // scripted transition fired when walking through
}

// RoomDef is the base definition of a room. Exits keep their declaration order.
type RoomDef struct {
	ID          string
	Description string
	Exits       []ExitDef
}

// ItemDef places an item definition in the world.
type ItemDef struct {
	Item     Item
	Location string // room ID, NPC name, or empty for unplaced items
}

// NPCDef is the base definition of a non-player character.
type NPCDef struct {
	Name     string
	Capacity float64
	Damage   int
	Health   int
	Moveable bool
	Hostile  bool
	Location string
	Dialogue map[string]string // word group → response
}

// PlayerDef holds the player's starting stats.
type PlayerDef struct {
	Capacity float64
	Damage   int
	Health   int
	Items    []string
}

// CountdownDef turns an NPC hostile a number of turns after a quest completes.
type CountdownDef struct {
	Turns int
	NPC   string
}

// QuestDef is the base definition of a quest with Parts sub-parts.
type QuestDef struct {
	Name      string
	Parts     int
	Countdown *CountdownDef // nil when the quest has no countdown
}

// TriggerKind identifies which player action reaches a milestone.
type TriggerKind int

const (
	TriggerGive TriggerKind = iota
	TriggerUnlock
)

// Trigger describes the action that completes a milestone.
type Trigger struct {
	Kind      TriggerKind
	NPC       string // give: receiving NPC
	Item      string // give: item handed over
	Room      string // unlock: room holding the exit
	Direction string // unlock: direction of the exit
}

// MilestoneDef binds a quest part to the action that completes it.
type MilestoneDef struct {
	ID      string
	Quest   string
	Part    int
	When    Trigger
	Pending []Effect // applied when the part completes but the quest does not
}

// ConditionKind identifies a predicate over the game state.
type ConditionKind int

const (
	CondQuestPart ConditionKind = iota
	CondHasItem
	CondInRoom
	CondNPCPresent
	CondNot
)

// Condition is a predicate that must be true for a hook to fire.
type Condition struct {
	Kind  ConditionKind
	Quest string
	Part  int
	Item  string
	Room  string
	NPC   string
	Inner *Condition // for CondNot
}

// EffectKind identifies a single atomic state mutation.
type EffectKind int

const (
	EffectSay EffectKind = iota
	EffectGiveItem
	EffectPlaceItem
	EffectSetDialogue
	EffectRemoveDialogue
	EffectMoveNPC
	EffectSetMoveable
	EffectSetHostile
	EffectRemoveNPC
	EffectUnlockExit
	EffectLockExit
	EffectSetExit
	EffectClearInventory
	EffectRelocatePlayer
	EffectCompletePart
	EffectEndGame
)

// Effect is a single atomic state mutation instruction. Only the fields
// relevant to Kind are set.
type Effect struct {
	Kind       EffectKind
	Text       string
	Item       string
	NPC        string
	Room       string
	Direction  string
	Target     string // set_exit destination room, empty for void
	Transition string
	Group      string // dialogue word group
	Quest      string
	Part       int
	Flag       bool
}

// EventKind identifies something that happened during a turn.
type EventKind int

const (
	EventDeath EventKind = iota
	EventHostile
	EventQuestComplete
	EventTransition
	EventItemMoved
	EventExitChanged
	EventNPCMoved
	EventNPCRemoved
	EventGameEnded
)

// Event is emitted after state changes. Subject names the entity, quest or
// transition the event is about.
type Event struct {
	Kind    EventKind
	Subject string
	Data    map[string]any
}

// EventHandler is a script hook triggered by an event rather than a command.
type EventHandler struct {
	Kind       EventKind
	Subject    string
	Conditions []Condition
	Effects    []Effect
}

// GameDef holds game metadata and the player's template.
type GameDef struct {
	Title   string
	Author  string
	Version string
	Start   string // starting room ID
	Welcome string
	Intro   string
	Help    string
	Player  PlayerDef
}

// Result is the output of a single game step.
type Result struct {
	Effects []Effect
	Events  []Event
	Output  []string
	Quit    bool  // the player asked to quit
	Over    bool  // the story ended (death or victory)
	Err     error // why the command was rejected, nil if it wasn't
}

// Package state builds and queries the game state. Defs hold the immutable
// content loaded from Lua; GameState is the single owner of everything that
// changes during play.
package state

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/nathoo/zuul/engine/dialogue"
	"github.com/nathoo/zuul/engine/entity"
	"github.com/nathoo/zuul/engine/quest"
	"github.com/nathoo/zuul/engine/world"
	"github.com/nathoo/zuul/types"
)

// ErrUnknownReference is returned when content names a room, item, NPC or
// quest that doesn't exist.
var ErrUnknownReference = errors.New("unknown reference")

// Defs holds the immutable game definitions loaded from Lua.
type Defs struct {
	Game       types.GameDef
	Rooms      []types.RoomDef // declaration order
	Items      []types.ItemDef
	NPCs       []types.NPCDef
	Quests     []types.QuestDef
	Milestones []types.MilestoneDef
	Handlers   []types.EventHandler
	Dictionary map[string][]string // word group → phrases
}

// Options tune a new game.
type Options struct {
	// HistoryLimit caps every entity's location history. 0 = unbounded.
	HistoryLimit int
	// CountdownTurns overrides the content's countdown length when > 0.
	CountdownTurns int
	// DisableCountdown drops every quest countdown.
	DisableCountdown bool
}

// Countdown turns an NPC hostile a number of valid turns after its quest completes.
type Countdown struct {
	Quest     string
	NPC       string
	Turns     int
	Remaining int
	Started   bool
}

// GameState is the runtime state of one game.
type GameState struct {
	World      *world.World
	Player     *entity.Entity
	Items      map[string]*types.Item // lower-cased name → item
	Quests     map[string]*quest.Quest
	Dictionary *dialogue.Dictionary
	Milestones []types.MilestoneDef
	Countdowns []*Countdown
	Turn       int
	Over       bool

	npcs map[string]*entity.Entity // lower-cased name → NPC
}

// New creates a fresh game state from definitions.
func New(defs *Defs, playerName string, opts Options) (*GameState, error) {
	s := &GameState{
		World:      world.New(),
		Items:      map[string]*types.Item{},
		Quests:     map[string]*quest.Quest{},
		Dictionary: dialogue.NewDictionary(),
		Milestones: defs.Milestones,
		npcs:       map[string]*entity.Entity{},
	}

	for _, rd := range defs.Rooms {
		s.World.Add(world.NewRoom(rd.ID, rd.Description))
	}

	for _, id := range defs.Items {
		item := id.Item
		s.Items[strings.ToLower(item.Name)] = &item
	}

	for _, rd := range defs.Rooms {
		room := s.World.Room(rd.ID)
		for _, ed := range rd.Exits {
			var to *world.Room
			if ed.To != "" {
				if to = s.World.Room(ed.To); to == nil {
					return nil, fmt.Errorf("room %s exit %s: room %q: %w", rd.ID, ed.Direction, ed.To, ErrUnknownReference)
				}
			}
			var key *types.Item
			if ed.Key != "" {
				if key = s.Item(ed.Key); key == nil {
					return nil, fmt.Errorf("room %s exit %s: key %q: %w", rd.ID, ed.Direction, ed.Key, ErrUnknownReference)
				}
			}
			room.SetExit(ed.Direction, to, ed.Locked || key != nil, key, ed.Transition)
		}
	}

	for _, nd := range defs.NPCs {
		room := s.World.Room(nd.Location)
		if room == nil {
			return nil, fmt.Errorf("npc %s: room %q: %w", nd.Name, nd.Location, ErrUnknownReference)
		}
		npc := entity.New(nd.Name, nd.Capacity, nd.Damage, nd.Health, nd.Moveable, nd.Hostile)
		npc.SetHistoryLimit(opts.HistoryLimit)
		npc.MoveTo(room)
		for group, line := range nd.Dialogue {
			npc.SetDialogue(group, line)
		}
		s.npcs[strings.ToLower(nd.Name)] = npc
	}

	for _, id := range defs.Items {
		if id.Location == "" {
			continue
		}
		item := s.Item(id.Item.Name)
		if room := s.World.Room(id.Location); room != nil {
			room.AddItem(item)
		} else if npc := s.NPC(id.Location); npc != nil {
			npc.AddItem(item)
		} else {
			return nil, fmt.Errorf("item %s: location %q: %w", item.Name, id.Location, ErrUnknownReference)
		}
	}

	start := s.World.Room(defs.Game.Start)
	if start == nil {
		return nil, fmt.Errorf("start room %q: %w", defs.Game.Start, ErrUnknownReference)
	}
	p := defs.Game.Player
	s.Player = entity.New(playerName, p.Capacity, p.Damage, p.Health, true, false)
	s.Player.SetHistoryLimit(opts.HistoryLimit)
	s.Player.MoveTo(start)
	for _, name := range p.Items {
		item := s.Item(name)
		if item == nil {
			return nil, fmt.Errorf("player item %q: %w", name, ErrUnknownReference)
		}
		s.Player.AddItem(item)
	}

	for _, qd := range defs.Quests {
		s.Quests[qd.Name] = quest.New(qd.Name, qd.Parts)
		if qd.Countdown == nil || opts.DisableCountdown {
			continue
		}
		if s.NPC(qd.Countdown.NPC) == nil {
			return nil, fmt.Errorf("quest %s countdown: npc %q: %w", qd.Name, qd.Countdown.NPC, ErrUnknownReference)
		}
		turns := qd.Countdown.Turns
		if opts.CountdownTurns > 0 {
			turns = opts.CountdownTurns
		}
		s.Countdowns = append(s.Countdowns, &Countdown{
			Quest:     qd.Name,
			NPC:       qd.Countdown.NPC,
			Turns:     turns,
			Remaining: turns,
		})
	}

	for group, phrases := range defs.Dictionary {
		s.Dictionary.Add(group, phrases...)
	}

	return s, nil
}

// Item returns the registered item with the given name (case-insensitive), or nil.
func (s *GameState) Item(name string) *types.Item {
	return s.Items[strings.ToLower(strings.TrimSpace(name))]
}

// Quest returns the named quest, or nil.
func (s *GameState) Quest(name string) *quest.Quest {
	return s.Quests[name]
}

// NPC returns the named active NPC (case-insensitive), or nil.
func (s *GameState) NPC(name string) *entity.Entity {
	return s.npcs[strings.ToLower(strings.TrimSpace(name))]
}

// NPCs returns the active NPCs ordered by name.
func (s *GameState) NPCs() []*entity.Entity {
	out := make([]*entity.Entity, 0, len(s.npcs))
	for _, npc := range s.npcs {
		out = append(out, npc)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}

// RemoveNPC drops an NPC from the active set. Its inventory goes with it.
func (s *GameState) RemoveNPC(name string) bool {
	key := strings.ToLower(name)
	if _, ok := s.npcs[key]; !ok {
		return false
	}
	delete(s.npcs, key)
	return true
}

// NPCsIn returns the NPCs currently in room, ordered by name.
func (s *GameState) NPCsIn(room *world.Room) []*entity.Entity {
	var out []*entity.Entity
	for _, npc := range s.NPCs() {
		if npc.Room() == room {
			out = append(out, npc)
		}
	}
	return out
}

// NearbyNPC returns the first NPC, by name, that is in the player's room or
// in a room one exit away. Returns nil if nobody is near.
func (s *GameState) NearbyNPC() *entity.Entity {
	here := s.Player.Room()
	if here == nil {
		return nil
	}
	for _, npc := range s.NPCs() {
		loc := npc.Room()
		if loc == here || world.IsNeighbor(here, loc) {
			return npc
		}
	}
	return nil
}

// Detach removes item from whoever holds it: the player, an NPC or a room.
func (s *GameState) Detach(item *types.Item) {
	if s.Player.Has(item) {
		_ = s.Player.RemoveItem(item)
	}
	for _, npc := range s.npcs {
		if npc.Has(item) {
			_ = npc.RemoveItem(item)
		}
	}
	for _, room := range s.World.Rooms() {
		if room.Item(item.Name) == item {
			room.RemoveItem(item.Name)
		}
	}
}

// Countdown returns the countdown attached to a quest, or nil.
func (s *GameState) Countdown(questName string) *Countdown {
	for _, c := range s.Countdowns {
		if c.Quest == questName {
			return c
		}
	}
	return nil
}

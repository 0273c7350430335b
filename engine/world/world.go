// Package world implements the room/exit graph and item placement.
package world

import (
	"errors"
	"sort"
	"strings"

	"github.com/nathoo/zuul/types"
)

var (
	// ErrExitNotFound is returned when a room has no exit in a direction.
	ErrExitNotFound = errors.New("no exit in that direction")
	// ErrNoMatchingExit is returned when a key fits none of a room's exits.
	ErrNoMatchingExit = errors.New("key fits no exit in this room")
	// ErrAlreadyUnlocked is returned when a key fits an exit that is already open.
	ErrAlreadyUnlocked = errors.New("exit already unlocked")
)

// Exit is a one-way edge from a room. A nil To is a void exit: it is listed
// like any other exit but leads nowhere on its own.
type Exit struct {
	Direction  string
	To         *Room
	Key        *types.Item
	Transition string
	locked     bool
}

// Locked reports whether the exit is locked.
func (e *Exit) Locked() bool {
	return e.locked
}

// Room is a node in the world graph.
type Room struct {
	ID          string
	Description string
	exits       []*Exit // declaration order
	items       map[string]*types.Item
}

// NewRoom creates an empty room.
func NewRoom(id, description string) *Room {
	return &Room{
		ID:          id,
		Description: description,
		items:       map[string]*types.Item{},
	}
}

// SetExit defines or replaces the exit in direction. A replaced exit keeps
// its position in the exit order.
func (r *Room) SetExit(direction string, to *Room, locked bool, key *types.Item, transition string) *Exit {
	exit := &Exit{
		Direction:  direction,
		To:         to,
		Key:        key,
		Transition: transition,
		locked:     locked,
	}
	for i, e := range r.exits {
		if strings.EqualFold(e.Direction, direction) {
			r.exits[i] = exit
			return exit
		}
	}
	r.exits = append(r.exits, exit)
	return exit
}

// Exits returns the room's exits in declaration order.
func (r *Room) Exits() []*Exit {
	out := make([]*Exit, len(r.exits))
	copy(out, r.exits)
	return out
}

// GetExit returns the exit in direction, or nil. Directions are case-insensitive.
func GetExit(r *Room, direction string) *Exit {
	for _, e := range r.exits {
		if strings.EqualFold(e.Direction, direction) {
			return e
		}
	}
	return nil
}

// Neighbors returns one room per exit in exit order, including nil
// destinations of void exits.
func Neighbors(r *Room) []*Room {
	out := make([]*Room, 0, len(r.exits))
	for _, e := range r.exits {
		out = append(out, e.To)
	}
	return out
}

// IsNeighbor reports whether other is reachable from r in one hop.
func IsNeighbor(r, other *Room) bool {
	if r == nil || other == nil {
		return false
	}
	for _, e := range r.exits {
		if e.To == other {
			return true
		}
	}
	return false
}

// FindExitByKey returns the first exit whose key is exactly item.
func FindExitByKey(r *Room, item *types.Item) *Exit {
	if item == nil {
		return nil
	}
	for _, e := range r.exits {
		if e.Key == item {
			return e
		}
	}
	return nil
}

// Unlock opens the exit. Unlocking an open exit does nothing.
func Unlock(e *Exit) {
	e.locked = false
}

// Lock closes the exit.
func Lock(e *Exit) {
	e.locked = true
}

// UseKey tries item against the room's exits and unlocks the match.
func UseKey(r *Room, item *types.Item) (*Exit, error) {
	exit := FindExitByKey(r, item)
	if exit == nil {
		return nil, ErrNoMatchingExit
	}
	if !exit.locked {
		return exit, ErrAlreadyUnlocked
	}
	Unlock(exit)
	return exit, nil
}

// AddItem places an item in the room.
func (r *Room) AddItem(item *types.Item) {
	r.items[strings.ToLower(item.Name)] = item
}

// RemoveItem takes the named item out of the room. Returns the item, or nil.
func (r *Room) RemoveItem(name string) *types.Item {
	key := strings.ToLower(name)
	item, ok := r.items[key]
	if !ok {
		return nil
	}
	delete(r.items, key)
	return item
}

// Item returns the named item if it is in the room.
func (r *Room) Item(name string) *types.Item {
	return r.items[strings.ToLower(name)]
}

// Items returns the room's items sorted by name.
func (r *Room) Items() []*types.Item {
	out := make([]*types.Item, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}

// ItemsLine renders the items present in the room.
func ItemsLine(r *Room) string {
	items := r.Items()
	if len(items) == 0 {
		return "The room doesn't seem to contain anything of interest."
	}
	names := make([]string, len(items))
	for i, item := range items {
		names[i] = item.Name
	}
	return "Items of interest: " + strings.Join(names, "; ") + "."
}

// ExitsLine renders the room's exits in declaration order.
func ExitsLine(r *Room) string {
	dirs := make([]string, len(r.exits))
	for i, e := range r.exits {
		dirs[i] = e.Direction
	}
	return "Exits: " + strings.Join(dirs, " ")
}

// World is the set of rooms, keyed by ID.
type World struct {
	rooms map[string]*Room
	order []string
}

// New creates an empty world.
func New() *World {
	return &World{rooms: map[string]*Room{}}
}

// Add registers a room. A room with the same ID is replaced.
func (w *World) Add(r *Room) {
	if _, ok := w.rooms[r.ID]; !ok {
		w.order = append(w.order, r.ID)
	}
	w.rooms[r.ID] = r
}

// Room returns the room with the given ID, or nil.
func (w *World) Room(id string) *Room {
	return w.rooms[id]
}

// Rooms returns all rooms in registration order.
func (w *World) Rooms() []*Room {
	out := make([]*Room, 0, len(w.order))
	for _, id := range w.order {
		out = append(out, w.rooms[id])
	}
	return out
}

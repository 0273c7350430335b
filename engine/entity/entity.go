// Package entity implements the shared player/NPC model: location history,
// inventory, combat stats and dialogue.
package entity

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/nathoo/zuul/engine/world"
	"github.com/nathoo/zuul/types"
)

var (
	// ErrEmptyHistory is returned when the location history can't supply a room.
	ErrEmptyHistory = errors.New("location history is empty")
	// ErrItemNotFound is returned when an item is not in the inventory.
	ErrItemNotFound = errors.New("item not in inventory")
)

// CapacityError reports how many kilograms must be freed to carry an item.
type CapacityError struct {
	Item   string
	Needed float64
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("%s is too heavy: %g kg over capacity", e.Item, e.Needed)
}

// Entity is a player or non-player character.
type Entity struct {
	Name     string
	Capacity float64
	Damage   int
	Health   int
	Moveable bool

	// OnHostile runs when the entity turns hostile.
	OnHostile func(e *Entity)

	hostile      bool
	history      []*world.Room // top is the current location
	historyLimit int           // 0 = unbounded
	inventory    map[string]*types.Item
	dialogue     map[string]string
}

// New creates an entity with empty history, inventory and dialogue.
func New(name string, capacity float64, damage, health int, moveable, hostile bool) *Entity {
	return &Entity{
		Name:      name,
		Capacity:  capacity,
		Damage:    damage,
		Health:    health,
		Moveable:  moveable,
		hostile:   hostile,
		inventory: map[string]*types.Item{},
		dialogue:  map[string]string{},
	}
}

// SetHistoryLimit caps the location history. Once the cap is exceeded the
// oldest rooms are discarded. Zero removes the cap.
func (e *Entity) SetHistoryLimit(n int) {
	if n < 0 {
		n = 0
	}
	e.historyLimit = n
	e.trimHistory()
}

// Location returns the current room.
func (e *Entity) Location() (*world.Room, error) {
	if len(e.history) == 0 {
		return nil, ErrEmptyHistory
	}
	return e.history[len(e.history)-1], nil
}

// Room returns the current room, or nil when the history is empty.
func (e *Entity) Room() *world.Room {
	r, _ := e.Location()
	return r
}

// MoveTo pushes room onto the location history.
func (e *Entity) MoveTo(room *world.Room) {
	e.history = append(e.history, room)
	e.trimHistory()
}

func (e *Entity) trimHistory() {
	if e.historyLimit > 0 && len(e.history) > e.historyLimit {
		e.history = append(e.history[:0:0], e.history[len(e.history)-e.historyLimit:]...)
	}
}

// GoBack pops the current room and returns the one below it. The history is
// left untouched when only one room remains.
func (e *Entity) GoBack() (*world.Room, error) {
	if len(e.history) < 2 {
		return nil, ErrEmptyHistory
	}
	e.history = e.history[:len(e.history)-1]
	return e.history[len(e.history)-1], nil
}

// Relocate replaces the whole history with room.
func (e *Entity) Relocate(room *world.Room) {
	e.history = []*world.Room{room}
}

// HistoryLen returns the number of rooms in the location history.
func (e *Entity) HistoryLen() int {
	return len(e.history)
}

// AddItem puts an item in the inventory.
func (e *Entity) AddItem(item *types.Item) {
	e.inventory[strings.ToLower(item.Name)] = item
}

// RemoveItem takes the item out of the inventory.
func (e *Entity) RemoveItem(item *types.Item) error {
	key := strings.ToLower(item.Name)
	if _, ok := e.inventory[key]; !ok {
		return ErrItemNotFound
	}
	delete(e.inventory, key)
	return nil
}

// Item returns the named item if carried, or nil.
func (e *Entity) Item(name string) *types.Item {
	return e.inventory[strings.ToLower(name)]
}

// Has reports whether the entity carries exactly this item.
func (e *Entity) Has(item *types.Item) bool {
	return item != nil && e.inventory[strings.ToLower(item.Name)] == item
}

// Items returns the inventory sorted by name.
func (e *Entity) Items() []*types.Item {
	out := make([]*types.Item, 0, len(e.inventory))
	for _, item := range e.inventory {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}

// ClearInventory empties the inventory.
func (e *Entity) ClearInventory() {
	e.inventory = map[string]*types.Item{}
}

// TotalWeight is the summed weight of the inventory.
func (e *Entity) TotalWeight() float64 {
	var w float64
	for _, item := range e.inventory {
		w += item.Weight
	}
	return w
}

// FreeCapacity is the weight the entity can still carry.
func (e *Entity) FreeCapacity() float64 {
	return e.Capacity - e.TotalWeight()
}

// CanCarry checks the item against the remaining capacity.
func (e *Entity) CanCarry(item *types.Item) error {
	free := e.FreeCapacity()
	if free >= item.Weight {
		return nil
	}
	return &CapacityError{Item: item.Name, Needed: item.Weight - free}
}

// Hostile reports whether the entity attacks the player.
func (e *Entity) Hostile() bool {
	return e.hostile
}

// SetHostile changes hostility. OnHostile runs only on a peaceful→hostile change.
func (e *Entity) SetHostile(hostile bool) {
	was := e.hostile
	e.hostile = hostile
	if hostile && !was && e.OnHostile != nil {
		e.OnHostile(e)
	}
}

// Dead reports whether health has dropped to zero or below.
func (e *Entity) Dead() bool {
	return e.Health <= 0
}

// SetDialogue sets the response for a word group.
func (e *Entity) SetDialogue(group, response string) {
	e.dialogue[strings.ToLower(group)] = response
}

// RemoveDialogue drops the response for a word group.
func (e *Entity) RemoveDialogue(group string) {
	delete(e.dialogue, strings.ToLower(group))
}

// Response returns the response for a word group.
func (e *Entity) Response(group string) (string, bool) {
	r, ok := e.dialogue[strings.ToLower(group)]
	return r, ok
}

package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nathoo/zuul/engine/dialogue"
	"github.com/nathoo/zuul/engine/effects"
	"github.com/nathoo/zuul/engine/entity"
	"github.com/nathoo/zuul/engine/parser"
	"github.com/nathoo/zuul/engine/rules"
	"github.com/nathoo/zuul/engine/world"
	"github.com/nathoo/zuul/types"
)

const holdOn = "You figure you might want to hold on to this."

func (e *Engine) handleGo(t *turn, arg string) error {
	if arg == "" {
		return reject(ErrMissingArgument, "Go where?")
	}
	p := e.State.Player

	if strings.EqualFold(arg, "back") {
		if _, err := p.GoBack(); err != nil {
			return reject(err, "You can't go back any further.")
		}
		e.describeLocation(t)
		e.greet(t)
		return nil
	}

	here := p.Room()
	exit := world.GetExit(here, arg)
	if exit == nil {
		return reject(world.ErrExitNotFound, "There's no room in that direction.")
	}
	if exit.Locked() {
		return reject(ErrRefused, "The door is locked.")
	}

	if exit.Transition != "" && e.Hooks.Has(types.EventTransition, exit.Transition) {
		e.emit(types.Event{
			Kind:    types.EventTransition,
			Subject: exit.Transition,
			Data:    map[string]any{"room": here.ID, "direction": exit.Direction},
		})
		e.flush(t)
		if e.State.Over {
			return nil
		}
		if p.Room() == here && exit.To != nil {
			p.MoveTo(exit.To)
		}
		if p.Room() != here {
			e.describeLocation(t)
			e.greet(t)
		}
		return nil
	}

	if exit.To == nil {
		return reject(world.ErrExitNotFound, "There's nothing but darkness that way.")
	}
	p.MoveTo(exit.To)
	e.describeLocation(t)
	e.greet(t)
	return nil
}

func (e *Engine) handleLook(t *turn, arg string) error {
	if arg == "" {
		e.describeLocation(t)
		return nil
	}
	if strings.EqualFold(arg, "inventory") {
		e.describeInventory(t)
		return nil
	}
	item := e.State.Player.Room().Item(arg)
	if item == nil {
		item = e.State.Player.Item(arg)
	}
	if item == nil {
		return reject(ErrItemNotFound, "There is no such item here.")
	}
	describeItem(t, item)
	return nil
}

func (e *Engine) handleUse(t *turn, arg string) error {
	if arg == "" {
		return reject(ErrMissingArgument, "Use what?")
	}
	p := e.State.Player
	item := e.State.Item(arg)
	if item == nil {
		return reject(ErrItemNotFound, "Use what?")
	}
	if item.Takeable && !p.Has(item) {
		return reject(ErrItemNotFound, "There is no such item in your inventory.")
	}
	if !item.Takeable && p.Room().Item(item.Name) != item {
		return reject(ErrItemNotFound, "There is no such item here.")
	}

	t.say(effects.Interpolate(item.UseText, e.State, effects.Context{Subject: item.Name}))

	switch item.Kind {
	case types.ItemWeapon:
		return e.useWeapon(t, item)
	case types.ItemKey:
		return e.useKey(t, item)
	case types.ItemQuest:
		t.say(holdOn)
	case types.ItemAdvantage, types.ItemMiscellaneous:
	}
	return nil
}

// useWeapon attacks the first NPC in the player's room with the weapon's
// damage added to the player's own for one exchange.
func (e *Engine) useWeapon(t *turn, weapon *types.Item) error {
	p := e.State.Player
	targets := e.State.NPCsIn(p.Room())
	if len(targets) == 0 {
		return reject(ErrEntityNotFound, "It's a shame there's nobody here to taste your fury!")
	}
	target := targets[0]
	target.SetHostile(true)
	e.flush(t)

	p.Damage += weapon.Param
	e.fight(t, p, target)
	p.Damage -= weapon.Param
	return nil
}

func (e *Engine) useKey(t *turn, key *types.Item) error {
	here := e.State.Player.Room()
	exit, err := world.UseKey(here, key)
	switch {
	case errors.Is(err, world.ErrNoMatchingExit):
		return reject(err, fmt.Sprintf("After checking every door in this room, you realize, with disappointment, that %s won't fit in any of them.", key.Name))
	case errors.Is(err, world.ErrAlreadyUnlocked):
		return reject(err, fmt.Sprintf("%s seems to work in the door leading %s from here, but it's already open.", key.Name, exit.Direction))
	}

	t.say(fmt.Sprintf("%s seems to work in the door leading %s from here! You unlocked the door.", key.Name, exit.Direction))
	e.log.WithField("room", here.ID).WithField("direction", exit.Direction).Info("exit unlocked")
	e.reachMilestones(t, rules.UnlockAction(here.ID, exit.Direction))
	return nil
}

func (e *Engine) handleTake(t *turn, arg string) error {
	if arg == "" {
		return reject(ErrMissingArgument, "Take what?")
	}
	p := e.State.Player
	here := p.Room()
	item := here.Item(arg)
	if item == nil {
		return reject(ErrItemNotFound, "There is no such item in this room.")
	}
	if !item.Takeable {
		return reject(ErrRefused, "You can't take that.")
	}
	var capErr *entity.CapacityError
	if err := p.CanCarry(item); errors.As(err, &capErr) {
		return reject(err, fmt.Sprintf("The %s is too heavy! You would need to get rid of %s kilograms.", item.Name, kg(capErr.Needed)))
	}

	here.RemoveItem(item.Name)
	p.AddItem(item)
	t.say("You picked up the " + item.Name + ".")
	return nil
}

func (e *Engine) handleDrop(t *turn, arg string) error {
	if arg == "" {
		return reject(ErrMissingArgument, "Drop what?")
	}
	p := e.State.Player
	item := p.Item(arg)
	if item == nil {
		return reject(ErrItemNotFound, "There is no such item in your inventory.")
	}
	if item.QuestItem {
		return reject(ErrRefused, holdOn)
	}
	if err := p.RemoveItem(item); err != nil {
		return reject(err, "There is no such item in your inventory.")
	}
	p.Room().AddItem(item)
	t.say("You have dropped the " + item.Name + ".")
	return nil
}

func (e *Engine) handleSay(t *turn, arg string) error {
	if arg == "" {
		return reject(ErrMissingArgument, "Say what?")
	}
	npc := e.State.NearbyNPC()
	if npc == nil {
		return reject(ErrEntityNotFound, "This place seems devoid of the slightest spirit. Though it is of a mind haunting nature, one must remain sane and not attempt conversation with the void.")
	}
	t.say(dialogue.Respond(npc, e.State.Dictionary, arg))
	return nil
}

func (e *Engine) handleGive(t *turn, arg string) error {
	if arg == "" {
		return reject(ErrMissingArgument, "Give whom?")
	}
	npc := e.State.NearbyNPC()
	if npc == nil || len(arg) < len(npc.Name) || !strings.EqualFold(arg[:len(npc.Name)], npc.Name) {
		return reject(ErrEntityNotFound, "There doesn't seem to be any such person in here.")
	}

	p := e.State.Player
	item := e.State.Item(arg[len(npc.Name):])
	if item == nil {
		return reject(ErrItemNotFound, "Give what?")
	}
	if !p.Has(item) {
		return reject(ErrItemNotFound, "There is no such item in your inventory.")
	}

	action := rules.GiveAction(npc.Name, item.Name)
	if item.QuestItem && len(rules.FindMilestones(e.State, action)) == 0 {
		return reject(ErrRefused, holdOn)
	}

	if err := p.RemoveItem(item); err != nil {
		return reject(err, "There is no such item in your inventory.")
	}
	npc.AddItem(item)
	if !e.reachMilestones(t, action) {
		t.say(fmt.Sprintf("You hand the %s to %s.", item.Name, npc.Name))
	}
	return nil
}

func (e *Engine) handleHelp(t *turn, _ string) error {
	t.say(e.Defs.Game.Help, "Your command words, with their arguments, are:")
	for _, u := range parser.Vocabulary() {
		t.say(u.Word.String() + ": " + u.Args)
	}
	return nil
}

func (e *Engine) handleQuit(t *turn, arg string) error {
	if arg != "" {
		return reject(ErrRefused, "Quit what?")
	}
	t.say("Thank you for playing '" + e.Defs.Game.Title + "'!")
	t.quit = true
	e.log.WithField("turn", e.State.Turn).Info("player quit")
	return nil
}

package engine

import (
	"math"
	"strconv"
	"strings"

	"github.com/nathoo/zuul/engine/dialogue"
	"github.com/nathoo/zuul/engine/world"
	"github.com/nathoo/zuul/types"
)

// describeLocation prints the room text, items, characters and exits.
func (e *Engine) describeLocation(t *turn) {
	here := e.State.Player.Room()
	if here == nil {
		return
	}
	t.say(
		"You are "+here.Description,
		world.ItemsLine(here),
		e.presentLine(here),
		world.ExitsLine(here),
	)
}

func (e *Engine) presentLine(here *world.Room) string {
	npcs := e.State.NPCsIn(here)
	if len(npcs) == 0 {
		return "There doesn't seem to be anybody else here."
	}
	names := make([]string, len(npcs))
	for i, npc := range npcs {
		names[i] = npc.Name
	}
	return "Present characters: " + strings.Join(names, "; ") + "."
}

// greet prints the nearby NPC's greeting for the same or an adjoining room.
func (e *Engine) greet(t *turn) {
	npc := e.State.NearbyNPC()
	if npc == nil {
		return
	}
	t.say(dialogue.Greeting(npc, npc.Room() == e.State.Player.Room()))
}

func (e *Engine) describeInventory(t *turn) {
	p := e.State.Player
	t.say("Your inventory consists of: ")
	for _, item := range p.Items() {
		t.say("- " + item.Name)
	}
	t.say("It currently weighs " + kg(p.TotalWeight()) + " kg. You can carry " + kg(p.FreeCapacity()) + " more kilograms.")
}

func describeItem(t *turn, item *types.Item) {
	t.say(
		"Taking a look at "+item.Name+":",
		item.Description,
		"Weight: "+kg(item.Weight)+" kg.",
	)
	if item.Kind == types.ItemWeapon || item.Kind == types.ItemAdvantage {
		t.say(item.ParamLabel + ": " + strconv.Itoa(item.Param) + ".")
	}
}

// kg formats a weight to at most three decimals, without trailing zeros.
func kg(w float64) string {
	return strconv.FormatFloat(math.Round(w*1000)/1000, 'f', -1, 64)
}

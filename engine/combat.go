package engine

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/nathoo/zuul/engine/entity"
	"github.com/nathoo/zuul/types"
)

// Damage computes a hit's damage: round(attack/2 + f*attack/2) for f in
// [0, 1), which always lands in [ceil(attack/2), attack].
func Damage(attack int, f float64) int {
	half := float64(attack) / 2
	return int(math.Round(half + f*half))
}

// displayName is "You" for the player.
func (e *Engine) displayName(c *entity.Entity) string {
	if c == e.State.Player {
		return "You"
	}
	return c.Name
}

// fight runs one attack exchange. A hit lands on a fair coin flip.
func (e *Engine) fight(t *turn, attacker, defender *entity.Entity) {
	attackerName := e.displayName(attacker)
	defenderName := e.displayName(defender)

	t.say(attackerName + " unleashed an attack!")
	log := e.log.WithFields(logrus.Fields{"attacker": attacker.Name, "defender": defender.Name})

	if !e.Dice.Coin() {
		t.say(attackerName + " missed!")
		log.Debug("attack missed")
		return
	}

	damage := Damage(attacker.Damage, e.Dice.Fraction())
	defender.Health -= damage
	t.say(
		fmt.Sprintf("%s hit! The hit causes a loss of %d hit points!", attackerName, damage),
		fmt.Sprintf("%s: %d hit points left!", defenderName, defender.Health),
	)
	log.WithFields(logrus.Fields{"damage": damage, "health": defender.Health}).Debug("attack hit")

	if defender.Dead() {
		t.say(defenderName + " fell to the ground!")
		e.die(t, defender)
	}
}

// die runs the death hooks for c. The player dying ends the game; an NPC
// leaves the active set once its hooks ran.
func (e *Engine) die(t *turn, c *entity.Entity) {
	subject := c.Name
	if c == e.State.Player {
		subject = types.PlayerSubject
	}
	e.log.WithField("subject", subject).Info("death")
	e.emit(types.Event{Kind: types.EventDeath, Subject: subject})
	e.flush(t)

	if c == e.State.Player {
		e.State.Over = true
		t.say("GAME OVER")
		return
	}
	if e.State.RemoveNPC(c.Name) {
		t.events = append(t.events, types.Event{Kind: types.EventNPCRemoved, Subject: c.Name})
	}
}

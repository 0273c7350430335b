// Package engine provides the Step() orchestrator that wires together
// parsing, command handlers, effects, script hooks and the NPC pass into a
// single turn.
package engine

import (
	"errors"
	"io"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/nathoo/zuul/engine/effects"
	"github.com/nathoo/zuul/engine/entity"
	"github.com/nathoo/zuul/engine/events"
	"github.com/nathoo/zuul/engine/parser"
	"github.com/nathoo/zuul/engine/state"
	"github.com/nathoo/zuul/types"
)

// maxHookDepth bounds how many rounds of hook-emitted events one turn dispatches.
const maxHookDepth = 4

// Options configure a new engine.
type Options struct {
	Logger *logrus.Logger
	Seed   int64
	Dice   Dice // overrides the seeded RNG when set

	HistoryLimit        int
	CountdownTurns      int
	DisableCountdown    bool
	UnknownCountsAsTurn bool
}

// Engine holds the game definitions and mutable state.
type Engine struct {
	Defs      *state.Defs
	State     *state.GameState
	Hooks     *events.Table
	Dice      Dice
	SessionID string

	log                 *logrus.Entry
	unknownCountsAsTurn bool
	pending             []types.Event
}

// New creates a new engine for a player from definitions.
func New(defs *state.Defs, playerName string, opts Options) (*Engine, error) {
	s, err := state.New(defs, playerName, state.Options{
		HistoryLimit:     opts.HistoryLimit,
		CountdownTurns:   opts.CountdownTurns,
		DisableCountdown: opts.DisableCountdown,
	})
	if err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	dice := opts.Dice
	if dice == nil {
		dice = NewRNG(opts.Seed)
	}

	e := &Engine{
		Defs:                defs,
		State:               s,
		Hooks:               events.NewTable(defs.Handlers),
		Dice:                dice,
		SessionID:           uuid.NewString(),
		unknownCountsAsTurn: opts.UnknownCountsAsTurn,
	}
	e.log = logger.WithFields(logrus.Fields{
		"session": e.SessionID,
		"player":  playerName,
	})

	for _, npc := range s.NPCs() {
		npc.OnHostile = func(n *entity.Entity) {
			e.log.WithField("npc", n.Name).Info("npc turned hostile")
			e.emit(types.Event{Kind: types.EventHostile, Subject: n.Name})
		}
	}

	e.log.WithFields(logrus.Fields{
		"rooms": len(defs.Rooms),
		"npcs":  len(defs.NPCs),
		"items": len(defs.Items),
	}).Info("game started")
	return e, nil
}

// Intro returns the welcome text and the first location description.
func (e *Engine) Intro() []string {
	t := &turn{}
	t.say(e.Defs.Game.Welcome, e.Defs.Game.Intro)
	e.describeLocation(t)
	e.greet(t)
	return t.out
}

// Step processes one input line and returns the result.
func (e *Engine) Step(input string) types.Result {
	if e.State.Over {
		return types.Result{
			Output: []string{"The story is over. Thank you for playing '" + e.Defs.Game.Title + "'!"},
			Over:   true,
			Err:    ErrGameOver,
		}
	}

	t := &turn{}
	cmd := parser.Parse(input)
	log := e.log.WithFields(logrus.Fields{"turn": e.State.Turn, "word": cmd.Word.String()})

	if cmd.Word == types.WordUnknown {
		const msg = "This command is not valid. Type 'help' for a list of valid commands."
		t.err = reject(ErrUnknownCommand, msg)
		t.say(msg)
		log.WithField("input", input).Debug("unknown command")
		if e.unknownCountsAsTurn {
			e.State.Turn++
			e.npcPass(t)
			e.flush(t)
		}
		return e.finish(t)
	}

	e.State.Turn++
	e.tickCountdowns()
	e.flush(t)

	var err error
	switch cmd.Word {
	case types.WordGo:
		err = e.handleGo(t, cmd.Arg)
	case types.WordLook:
		err = e.handleLook(t, cmd.Arg)
	case types.WordUse:
		err = e.handleUse(t, cmd.Arg)
	case types.WordTake:
		err = e.handleTake(t, cmd.Arg)
	case types.WordDrop:
		err = e.handleDrop(t, cmd.Arg)
	case types.WordSay:
		err = e.handleSay(t, cmd.Arg)
	case types.WordGive:
		err = e.handleGive(t, cmd.Arg)
	case types.WordHelp:
		err = e.handleHelp(t, cmd.Arg)
	case types.WordQuit:
		err = e.handleQuit(t, cmd.Arg)
	}

	var ce *CommandError
	if errors.As(err, &ce) {
		t.say(ce.Msg)
		t.err = err
		log.WithError(ce.Err).Debug("command rejected")
	}
	e.flush(t)

	if !t.quit && !e.State.Over {
		e.npcPass(t)
		e.flush(t)
	}
	return e.finish(t)
}

func (e *Engine) finish(t *turn) types.Result {
	if e.State.Over && !t.quit {
		t.say("Thank you for playing '" + e.Defs.Game.Title + "'!")
		e.log.WithField("turn", e.State.Turn).Info("game over")
	}
	return types.Result{
		Effects: t.effects,
		Events:  t.events,
		Output:  t.out,
		Quit:    t.quit,
		Over:    e.State.Over,
		Err:     t.err,
	}
}

// turn collects everything one step produces.
type turn struct {
	out     []string
	effects []types.Effect
	events  []types.Event
	quit    bool
	err     error
}

func (t *turn) say(lines ...string) {
	for _, l := range lines {
		if l != "" {
			t.out = append(t.out, l)
		}
	}
}

// emit queues an event for hook dispatch.
func (e *Engine) emit(evts ...types.Event) {
	e.pending = append(e.pending, evts...)
}

// apply runs effects and queues the events they produce.
func (e *Engine) apply(t *turn, effs []types.Effect, ctx effects.Context) {
	if len(effs) == 0 {
		return
	}
	evts, out := effects.Apply(e.State, effs, ctx)
	t.effects = append(t.effects, effs...)
	t.say(out...)
	e.emit(evts...)
}

// flush dispatches queued events to script hooks until none are left.
// Events raised by hook effects are dispatched in the next round.
func (e *Engine) flush(t *turn) {
	for depth := 0; len(e.pending) > 0; depth++ {
		batch := e.pending
		e.pending = nil
		t.events = append(t.events, batch...)
		if depth >= maxHookDepth {
			e.log.WithField("events", len(batch)).Warn("hook chain too deep, dropping events")
			continue
		}
		for _, f := range events.Dispatch(batch, e.Hooks, e.State) {
			e.log.WithFields(logrus.Fields{
				"event":   f.Event.Kind.String(),
				"subject": f.Event.Subject,
				"effects": len(f.Effects),
			}).Debug("hook fired")
			e.apply(t, f.Effects, effects.Context{Subject: f.Event.Subject})
		}
	}
}

// tickCountdowns advances every started countdown by one turn. An NPC turns
// hostile when its countdown reaches zero.
func (e *Engine) tickCountdowns() {
	for _, c := range e.State.Countdowns {
		if !c.Started || c.Remaining == 0 {
			continue
		}
		c.Remaining--
		if c.Remaining > 0 {
			continue
		}
		if npc := e.State.NPC(c.NPC); npc != nil {
			npc.SetHostile(true)
		}
	}
}

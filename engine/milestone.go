package engine

import (
	"github.com/sirupsen/logrus"

	"github.com/nathoo/zuul/engine/effects"
	"github.com/nathoo/zuul/engine/rules"
	"github.com/nathoo/zuul/types"
)

// reachMilestones completes every open milestone the action reaches.
func (e *Engine) reachMilestones(t *turn, action types.Trigger) bool {
	ms := rules.FindMilestones(e.State, action)
	for _, m := range ms {
		e.reachMilestone(t, m)
	}
	return len(ms) > 0
}

// reachMilestone completes the milestone's quest part. When that was the
// last open sub-part the quest itself completes, its countdown starts and
// quest_complete hooks fire; otherwise the milestone's pending effects run.
func (e *Engine) reachMilestone(t *turn, m types.MilestoneDef) {
	q := e.State.Quest(m.Quest)
	if q == nil || q.Done(m.Part) {
		return
	}
	if err := q.CompletePart(m.Part); err != nil {
		e.log.WithError(err).WithField("milestone", m.ID).Warn("milestone part out of range")
		return
	}
	log := e.log.WithFields(logrus.Fields{"milestone": m.ID, "quest": q.Name, "part": m.Part})

	if !q.SubpartsComplete() {
		log.Info("milestone reached")
		e.apply(t, m.Pending, effects.Context{Subject: q.Name})
		return
	}

	_ = q.CompletePart(0)
	if c := e.State.Countdown(q.Name); c != nil {
		c.Started = true
	}
	log.Info("quest complete")
	e.emit(types.Event{Kind: types.EventQuestComplete, Subject: q.Name})
	e.flush(t)
}

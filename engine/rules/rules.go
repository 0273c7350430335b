// Package rules evaluates hook conditions and matches player actions
// against quest milestones.
package rules

import (
	"github.com/nathoo/zuul/engine/state"
	"github.com/nathoo/zuul/types"
)

// FindMilestones returns the milestones that action reaches and whose part
// is still open, in declaration order.
func FindMilestones(s *state.GameState, action types.Trigger) []types.MilestoneDef {
	var out []types.MilestoneDef
	for _, m := range s.Milestones {
		if !Matches(m.When, action) {
			continue
		}
		if q := s.Quest(m.Quest); q == nil || q.Done(m.Part) {
			continue
		}
		out = append(out, m)
	}
	return out
}

package events

import (
	"testing"

	"github.com/nathoo/zuul/engine/state"
	"github.com/nathoo/zuul/types"
)

func testState(t *testing.T) *state.GameState {
	t.Helper()
	defs := &state.Defs{
		Game:   types.GameDef{Start: "cell", Player: types.PlayerDef{Capacity: 10, Health: 100}},
		Rooms:  []types.RoomDef{{ID: "cell", Description: "in a cell."}},
		Quests: []types.QuestDef{{Name: "quest1", Parts: 2}},
	}
	s, err := state.New(defs, "Tester", state.Options{})
	if err != nil {
		t.Fatalf("state.New: %v", err)
	}
	return s
}

func testTable() *Table {
	return NewTable([]types.EventHandler{
		{
			Kind:    types.EventDeath,
			Subject: "Hrangst Jaltibrond",
			Effects: []types.Effect{{Kind: types.EffectSay, Text: "He lies on his back."}},
		},
		{
			Kind:    types.EventDeath,
			Subject: "Hrangst Jaltibrond",
			Conditions: []types.Condition{
				{Kind: types.CondNot, Inner: &types.Condition{Kind: types.CondQuestPart, Quest: "quest1", Part: 0}},
			},
			Effects: []types.Effect{{Kind: types.EffectPlaceItem, Item: "Sturdy key"}},
		},
		{
			Kind:    types.EventDeath,
			Effects: []types.Effect{{Kind: types.EffectSay, Text: "{subject} fell."}},
		},
		{
			Kind:    types.EventTransition,
			Subject: "escape",
			Effects: []types.Effect{{Kind: types.EffectEndGame, Flag: true}},
		},
	})
}

func TestDispatch_MatchesKindAndSubject(t *testing.T) {
	s := testState(t)
	fired := Dispatch([]types.Event{
		{Kind: types.EventDeath, Subject: "hrangst jaltibrond"},
	}, testTable(), s)

	if len(fired) != 3 {
		t.Fatalf("expected 3 handlers, got %d", len(fired))
	}
	if fired[0].Effects[0].Text != "He lies on his back." {
		t.Errorf("expected subject handler first, got %+v", fired[0].Effects)
	}
	if fired[2].Effects[0].Text != "{subject} fell." {
		t.Errorf("expected wildcard handler last, got %+v", fired[2].Effects)
	}
	if fired[2].Event.Subject != "hrangst jaltibrond" {
		t.Errorf("expected fired event to carry its subject, got %q", fired[2].Event.Subject)
	}
}

func TestDispatch_OtherSubjectGetsWildcardOnly(t *testing.T) {
	s := testState(t)
	fired := Dispatch([]types.Event{{Kind: types.EventDeath, Subject: "Rat"}}, testTable(), s)
	if len(fired) != 1 {
		t.Fatalf("expected only the wildcard handler, got %d", len(fired))
	}
}

func TestDispatch_ConditionFails_Skipped(t *testing.T) {
	s := testState(t)
	if err := s.Quest("quest1").CompletePart(0); err != nil {
		t.Fatal(err)
	}
	fired := Dispatch([]types.Event{
		{Kind: types.EventDeath, Subject: "Hrangst Jaltibrond"},
	}, testTable(), s)
	if len(fired) != 2 {
		t.Fatalf("expected the key drop to be skipped, got %d handlers", len(fired))
	}
	for _, f := range fired {
		if f.Effects[0].Kind == types.EffectPlaceItem {
			t.Error("key drop fired although the quest was complete")
		}
	}
}

func TestDispatch_NoEvents(t *testing.T) {
	s := testState(t)
	if fired := Dispatch(nil, testTable(), s); len(fired) != 0 {
		t.Errorf("expected nothing, got %d", len(fired))
	}
}

func TestTable_Has(t *testing.T) {
	table := testTable()
	if !table.Has(types.EventTransition, "Escape") {
		t.Error("expected escape transition hook")
	}
	if table.Has(types.EventTransition, "abduction") {
		t.Error("unexpected abduction hook")
	}
	if !table.Has(types.EventDeath, "anyone") {
		t.Error("expected wildcard death hook")
	}
}

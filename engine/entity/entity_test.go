package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nathoo/zuul/engine/world"
	"github.com/nathoo/zuul/types"
)

func rooms(n int) []*world.Room {
	out := make([]*world.Room, n)
	for i := range out {
		out[i] = world.NewRoom(string(rune('a'+i)), "")
	}
	return out
}

func TestLocation_Empty(t *testing.T) {
	e := New("Tester", 50, 10, 100, true, false)
	_, err := e.Location()
	assert.ErrorIs(t, err, ErrEmptyHistory)
	assert.Nil(t, e.Room())
}

func TestGoBack_IsAStack(t *testing.T) {
	rs := rooms(5)
	e := New("Tester", 50, 10, 100, true, false)
	e.MoveTo(rs[0])
	for _, r := range rs[1:] {
		e.MoveTo(r)
	}

	for i := len(rs) - 2; i >= 0; i-- {
		r, err := e.GoBack()
		require.NoError(t, err)
		assert.Same(t, rs[i], r)
	}

	_, err := e.GoBack()
	assert.ErrorIs(t, err, ErrEmptyHistory)
	cur, err := e.Location()
	require.NoError(t, err)
	assert.Same(t, rs[0], cur, "a failed go back leaves the origin in place")
}

func TestHistoryLimit_DropsOldest(t *testing.T) {
	rs := rooms(5)
	e := New("Tester", 50, 10, 100, true, false)
	e.SetHistoryLimit(3)
	for _, r := range rs {
		e.MoveTo(r)
	}
	assert.Equal(t, 3, e.HistoryLen())

	r, err := e.GoBack()
	require.NoError(t, err)
	assert.Same(t, rs[3], r)
	r, err = e.GoBack()
	require.NoError(t, err)
	assert.Same(t, rs[2], r)
	_, err = e.GoBack()
	assert.ErrorIs(t, err, ErrEmptyHistory)
}

func TestRelocate(t *testing.T) {
	rs := rooms(3)
	e := New("Tester", 50, 10, 100, true, false)
	e.MoveTo(rs[0])
	e.MoveTo(rs[1])
	e.Relocate(rs[2])
	assert.Equal(t, 1, e.HistoryLen())
	assert.Same(t, rs[2], e.Room())
}

func TestInventory(t *testing.T) {
	e := New("Tester", 10, 10, 100, true, false)
	sword := &types.Item{Name: "Rusty sword", Weight: 5}
	bread := &types.Item{Name: "Bread loaf", Weight: 0.5}

	e.AddItem(sword)
	e.AddItem(bread)
	e.AddItem(bread)
	assert.Len(t, e.Items(), 2)
	assert.InDelta(t, 5.5, e.TotalWeight(), 1e-9)
	assert.InDelta(t, 4.5, e.FreeCapacity(), 1e-9)
	assert.Same(t, sword, e.Item("RUSTY SWORD"))
	assert.True(t, e.Has(bread))

	require.NoError(t, e.RemoveItem(bread))
	assert.ErrorIs(t, e.RemoveItem(bread), ErrItemNotFound)
	assert.False(t, e.Has(bread))

	e.ClearInventory()
	assert.Empty(t, e.Items())
}

func TestCanCarry(t *testing.T) {
	e := New("Tester", 10, 10, 100, true, false)
	e.AddItem(&types.Item{Name: "Anvil", Weight: 8})

	assert.NoError(t, e.CanCarry(&types.Item{Name: "Feather", Weight: 2}))

	err := e.CanCarry(&types.Item{Name: "Boulder", Weight: 5})
	var capErr *CapacityError
	require.ErrorAs(t, err, &capErr)
	assert.InDelta(t, 3, capErr.Needed, 1e-9)
}

func TestSetHostile_HookRunsOnce(t *testing.T) {
	e := New("Guard", 50, 30, 100, false, false)
	e.SetDialogue("salutations", "Hello.")
	calls := 0
	e.OnHostile = func(e *Entity) {
		calls++
		e.SetDialogue("salutations", "Die!")
	}

	e.SetHostile(true)
	e.SetHostile(true)
	assert.Equal(t, 1, calls)
	r, ok := e.Response("Salutations")
	require.True(t, ok)
	assert.Equal(t, "Die!", r)

	e.SetHostile(false)
	assert.False(t, e.Hostile())
}

func TestHealthMayGoNegative(t *testing.T) {
	e := New("Guard", 50, 30, 10, false, false)
	e.Health -= 25
	assert.Equal(t, -15, e.Health)
	assert.True(t, e.Dead())
}

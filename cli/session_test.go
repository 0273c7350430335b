package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nathoo/zuul/types"
)

func TestRepeater(t *testing.T) {
	var r Repeater

	_, ok := r.Resolve("again")
	assert.False(t, ok, "nothing to repeat yet")

	cmd, ok := r.Resolve("look")
	assert.True(t, ok)
	assert.Equal(t, "look", cmd)

	for _, again := range []string{"again", "G", "Again"} {
		cmd, ok = r.Resolve(again)
		assert.True(t, ok)
		assert.Equal(t, "look", cmd, again)
	}

	cmd, _ = r.Resolve("go north")
	assert.Equal(t, "go north", cmd)
	cmd, _ = r.Resolve("g")
	assert.Equal(t, "go north", cmd)
}

func TestMetaName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"/quit", "/quit"},
		{"/STATE now", "/state"},
		{"  /trace  ", "/trace"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MetaName(tt.input), tt.input)
	}
	assert.True(t, IsMeta("/help"))
	assert.False(t, IsMeta("help"))
}

func TestTraceLines(t *testing.T) {
	result := types.Result{
		Err: errors.New("door locked"),
		Effects: []types.Effect{
			{Kind: types.EffectUnlockExit, Room: "hallwayB1", Direction: "north"},
			{Kind: types.EffectClearInventory},
		},
		Events: []types.Event{{Kind: types.EventDeath, Subject: "Hrangst"}},
	}

	want := []string{
		"[trace] Rejected: door locked",
		"[trace] Effects: 2",
		"[trace]   unlock_exit hallwayB1 north",
		"[trace]   clear_inventory",
		"[trace] Events: 1",
		"[trace]   death Hrangst",
	}
	assert.Equal(t, want, TraceLines(result))
	assert.Empty(t, TraceLines(types.Result{}))
}

package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nathoo/zuul/types"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  types.Command
	}{
		// Empty / whitespace
		{
			name:  "empty string",
			input: "",
			want:  types.Command{},
		},
		{
			name:  "whitespace only",
			input: "  \t ",
			want:  types.Command{},
		},

		// Bare words
		{
			name:  "look",
			input: "look",
			want:  types.Command{Word: types.WordLook},
		},
		{
			name:  "case-insensitive word",
			input: "HELP",
			want:  types.Command{Word: types.WordHelp},
		},

		// Arguments are kept verbatim
		{
			name:  "go south",
			input: "go south",
			want:  types.Command{Word: types.WordGo, Arg: "south"},
		},
		{
			name:  "multi-word phrase",
			input: "say how's it going",
			want:  types.Command{Word: types.WordSay, Arg: "how's it going"},
		},
		{
			name:  "argument case preserved",
			input: "give Hrangst Jaltibrond Bread loaf",
			want:  types.Command{Word: types.WordGive, Arg: "Hrangst Jaltibrond Bread loaf"},
		},
		{
			name:  "inner spacing preserved",
			input: "  take   Rusty  sword  ",
			want:  types.Command{Word: types.WordTake, Arg: "Rusty  sword"},
		},
		{
			name:  "tab separator",
			input: "drop\tFists",
			want:  types.Command{Word: types.WordDrop, Arg: "Fists"},
		},

		// Unknown words
		{
			name:  "unknown word",
			input: "dance",
			want:  types.Command{Word: types.WordUnknown},
		},
		{
			name:  "unknown word keeps argument",
			input: "eat Bread loaf",
			want:  types.Command{Word: types.WordUnknown, Arg: "Bread loaf"},
		},
		{
			name:  "vocabulary word in second position",
			input: "please go north",
			want:  types.Command{Word: types.WordUnknown, Arg: "go north"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.input))
		})
	}
}

func TestVocabulary(t *testing.T) {
	vocab := Vocabulary()
	got := make([]string, len(vocab))
	for i, u := range vocab {
		got[i] = u.Word.String()
		assert.NotEmpty(t, u.Args, u.Word.String())
		assert.True(t, IsCommand(got[i]))
	}
	assert.Equal(t, []string{"drop", "give", "go", "help", "look", "quit", "say", "take", "use"}, got)
	assert.False(t, IsCommand("unknown"))
}

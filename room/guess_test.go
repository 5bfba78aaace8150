package room

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name    string
		prompt  string
		guesser string
		message string
		want    bool
	}{
		{name: "exact", prompt: "giraffe", guesser: "c2", message: "giraffe", want: true},
		{name: "case insensitive", prompt: "Giraffe", guesser: "c2", message: "is it a GIRAFFE?", want: true},
		{name: "trimmed", prompt: " dog ", guesser: "c2", message: "  hotdog  ", want: true},
		{name: "wrong word", prompt: "cat", guesser: "c2", message: "dog", want: false},
		{name: "no prompt", prompt: "", guesser: "c2", message: "anything", want: false},
		{name: "drawer cannot score", prompt: "cat", guesser: "c1", message: "cat", want: false},
		{name: "non member", prompt: "cat", guesser: "c9", message: "cat", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			room := newTestRoom(t, "c1", "c2")
			room.SetPrompt(tt.prompt)
			assert.Equal(t, tt.want, room.Evaluate(tt.guesser, tt.message))
		})
	}
}

func TestEvaluate_StalePromptCannotBeGuessedTwice(t *testing.T) {
	room := newTestRoom(t, "c1", "c2", "c3")
	room.SetPrompt("cat")

	assert.True(t, room.Evaluate("c2", "cat"))
	room.AdvanceAfterCorrectGuess()
	assert.False(t, room.Evaluate("c3", "cat"))
}

package cards

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"server/internal/domain"
)

func TestClampCount(t *testing.T) {
	cases := []struct {
		in   int
		want int
	}{
		{-10, 3},
		{0, 3},
		{2, 3},
		{3, 3},
		{12, 12},
		{50, 50},
		{51, 50},
		{1000, 50},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ClampCount(tc.in), "ClampCount(%d)", tc.in)
	}
}

func TestBuildPromptModeInstructions(t *testing.T) {
	notes := "The mitochondria is the powerhouse of the cell."

	questions := BuildPrompt(notes, 10, "balanced", domain.ModeQuestions)
	assert.Contains(t, questions, questionsInstruction)
	assert.NotContains(t, questions, shortNotesInstruction)

	shortNotes := BuildPrompt(notes, 10, "balanced", domain.ModeShortNotes)
	assert.Contains(t, shortNotes, shortNotesInstruction)

	auto := BuildPrompt(notes, 10, "balanced", domain.ModeAuto)
	assert.Contains(t, auto, autoInstruction)
}

func TestBuildPromptEmbedsSchemaStyleAndNotes(t *testing.T) {
	notes := "Q: What is Go?\nA systems programming language."
	prompt := BuildPrompt(notes, 7, "exam", domain.ModeAuto)

	assert.Contains(t, prompt, "Create exactly 7 flashcards")
	assert.Contains(t, prompt, deckSchema)
	assert.Contains(t, prompt, "Style: exam.")
	assert.True(t, strings.HasSuffix(prompt, notes), "raw notes must be appended at the end")
}

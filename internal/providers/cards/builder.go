package cards

import (
	"fmt"
	"strings"

	"server/internal/domain"
)

const (
	// MinCards and MaxCards bound the number of flashcards per request.
	MinCards = 3
	MaxCards = 50
)

const deckSchema = `{"title":string,"flashcards":[{"question":string,"answer":string,"tags":string[]}]}`

const (
	questionsInstruction  = "Treat the input as a question bank: make each card's front the question and the back the answer or explanation."
	shortNotesInstruction = "Treat the input as study notes: make each card's front a short prompt or term and the back the explanation."
	autoInstruction       = `Infer whether the input is a question bank or study notes from cues such as "?", "Q:", or "MCQ", then apply the matching card format.`
)

// ClampCount bounds a requested card count to the inclusive [MinCards, MaxCards] range.
func ClampCount(n int) int {
	if n < MinCards {
		return MinCards
	}
	if n > MaxCards {
		return MaxCards
	}
	return n
}

// BuildPrompt renders the generation instruction for the completion model.
// All quality control lives in these natural-language constraints; the
// downstream model only has best-effort structured-output support.
func BuildPrompt(notes string, count int, style string, mode domain.GenerationMode) string {
	sb := &strings.Builder{}
	fmt.Fprintf(sb, "Create exactly %d flashcards from the input text. ", count)
	sb.WriteString(modeInstruction(mode))
	sb.WriteString(" Respond strictly with JSON matching this schema: ")
	sb.WriteString(deckSchema)
	fmt.Fprintf(sb, ". Keep each question under 140 characters where feasible, put no markdown or code fences inside values, attach 0-4 short tags per card, and never repeat a card. Style: %s. Write the cards in the same language as the input text.", style)
	sb.WriteString("\n\nInput text:\n")
	sb.WriteString(notes)
	return sb.String()
}

func modeInstruction(mode domain.GenerationMode) string {
	switch mode {
	case domain.ModeQuestions:
		return questionsInstruction
	case domain.ModeShortNotes:
		return shortNotesInstruction
	default:
		return autoInstruction
	}
}

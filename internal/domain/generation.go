package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

// GenerationMode selects how the model should interpret the pasted input.
type GenerationMode string

const (
	ModeAuto       GenerationMode = "auto"
	ModeQuestions  GenerationMode = "questions"
	ModeShortNotes GenerationMode = "short_notes"
)

// ParseMode normalizes a requested mode, defaulting to auto-detection.
func ParseMode(value string) GenerationMode {
	switch GenerationMode(strings.TrimSpace(value)) {
	case ModeQuestions:
		return ModeQuestions
	case ModeShortNotes:
		return ModeShortNotes
	default:
		return ModeAuto
	}
}

// Flashcard is a single question/answer pair. Cards with an empty question or
// answer after trimming are never stored.
type Flashcard struct {
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Tags     []string `json:"tags"`
}

// Deck is the cleaned model output returned to the client and persisted on
// the generation row.
type Deck struct {
	Title      string      `json:"title"`
	Flashcards []Flashcard `json:"flashcards"`
}

// Generation is one successful generation request. Rows are immutable.
type Generation struct {
	ID             string
	UserID         string
	Notes          string
	Mode           GenerationMode
	Style          string
	RequestedCount int
	Title          string
	Output         Deck
	Locale         string
	Country        string
	CreatedAt      time.Time
}

// HistoryLimit caps how many generations the history endpoint returns.
const HistoryLimit = 50

// DeriveTitle picks a title for the generation row: the deck title when the
// model produced one, otherwise a snippet of the input notes.
func DeriveTitle(deckTitle, notes string) string {
	title := strings.TrimSpace(deckTitle)
	if title != "" && title != "Flashcards" {
		return title
	}
	snippet := strings.Join(strings.Fields(notes), " ")
	if len(snippet) > 60 {
		// Cut on a rune boundary; a split multi-byte rune would make the
		// title invalid UTF-8 and Postgres rejects that on insert.
		cut := 60
		for cut > 0 && !utf8.RuneStart(snippet[cut]) {
			cut--
		}
		snippet = strings.TrimSpace(snippet[:cut])
	}
	if snippet == "" {
		return "Flashcards"
	}
	return snippet
}

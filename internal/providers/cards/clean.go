package cards

import (
	"strconv"
	"strings"

	"server/internal/domain"
)

const maxCardTags = 6

// CleanDeck coerces a loosely-typed model payload into a valid deck. Cards
// with an empty question or answer are dropped silently and the result is
// truncated to limit entries.
func CleanDeck(value any, limit int) domain.Deck {
	deck := domain.Deck{Title: "Flashcards", Flashcards: []domain.Flashcard{}}
	obj, ok := value.(map[string]any)
	if !ok {
		return deck
	}
	if title := strings.TrimSpace(asString(obj["title"])); title != "" {
		deck.Title = title
	}
	items, _ := obj["flashcards"].([]any)
	for _, item := range items {
		if len(deck.Flashcards) >= limit {
			break
		}
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		question := strings.TrimSpace(asString(entry["question"]))
		answer := strings.TrimSpace(asString(entry["answer"]))
		if question == "" || answer == "" {
			continue
		}
		deck.Flashcards = append(deck.Flashcards, domain.Flashcard{
			Question: question,
			Answer:   answer,
			Tags:     asTags(entry["tags"]),
		})
	}
	return deck
}

func asString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

func asTags(value any) []string {
	tags := []string{}
	items, _ := value.([]any)
	for _, item := range items {
		if len(tags) >= maxCardTags {
			break
		}
		tag := strings.TrimSpace(asString(item))
		if tag == "" {
			continue
		}
		tags = append(tags, tag)
	}
	return tags
}

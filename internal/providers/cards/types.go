package cards

import (
	"context"
	"fmt"

	"server/internal/domain"
)

// Request carries the normalized inputs for one generation.
type Request struct {
	Notes string
	Count int
	Style string
	Mode  domain.GenerationMode
}

// Generator produces a cleaned flashcard deck from pasted notes.
type Generator interface {
	Generate(ctx context.Context, req Request) (*domain.Deck, error)
}

// UpstreamError mirrors a non-2xx reply from the completion service so the
// handler can propagate the provider's status code and body.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("groq status %d", e.Status)
}

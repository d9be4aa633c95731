package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5"

	"server/internal/domain"
	"server/internal/middleware"
	"server/internal/persist"
	"server/internal/providers/cards"
	"server/internal/sqlinline"
)

type generateRequest struct {
	Notes string  `json:"notes"`
	Count float64 `json:"count"`
	Style string  `json:"style"`
	Mode  string  `json:"mode"`
}

type quotaBody struct {
	Error string `json:"error"`
	Used  int    `json:"used"`
	Limit int    `json:"limit"`
}

// Generate runs the full generation flow. Authentication happens here rather
// than in middleware so body validation failures outrank missing credentials.
func (a *App) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "Notes are required", "")
		return
	}
	notes := strings.TrimSpace(req.Notes)
	if notes == "" {
		a.error(w, http.StatusBadRequest, "Notes are required", "")
		return
	}

	count := cards.ClampCount(int(req.Count))
	style := strings.TrimSpace(req.Style)
	if style == "" {
		style = "balanced"
	}
	mode := domain.ParseMode(req.Mode)

	if strings.TrimSpace(a.Config.GroqAPIKey) == "" || a.Cards == nil {
		a.Logger.Error().Msg("completion credential missing")
		a.error(w, http.StatusInternalServerError, "Server misconfigured", "")
		return
	}
	if a.SQL == nil {
		a.Logger.Error().Msg("storage executor missing")
		a.error(w, http.StatusInternalServerError, "Server misconfigured", "")
		return
	}

	token, ok := middleware.BearerToken(r.Header.Get("Authorization"))
	if !ok {
		a.error(w, http.StatusUnauthorized, "Unauthorized", "")
		return
	}
	userID, err := middleware.VerifyToken(a.Config.JWTSecret, token)
	if err != nil {
		a.error(w, http.StatusUnauthorized, "Unauthorized", "")
		return
	}

	plan := a.loadPlan(r.Context(), userID)
	if plan.IsFree() {
		used := a.loadCardsUsed(r.Context(), userID)
		if used+count > a.Config.FreeCardLimit {
			a.json(w, http.StatusPaymentRequired, quotaBody{
				Error: "Free plan limit reached",
				Used:  used,
				Limit: a.Config.FreeCardLimit,
			})
			return
		}
	}

	deck, err := a.Cards.Generate(r.Context(), cards.Request{
		Notes: notes,
		Count: count,
		Style: style,
		Mode:  mode,
	})
	if err != nil {
		a.writeGenerateError(w, err)
		return
	}

	a.Recorder.Enqueue(persist.Record{
		UserID:         userID,
		Notes:          notes,
		Mode:           mode,
		Style:          style,
		RequestedCount: count,
		Deck:           *deck,
		Locale:         middleware.LocaleFromContext(r.Context()),
		Country:        middleware.CountryFromContext(r.Context()),
		FreePlan:       plan.IsFree(),
		CardLimit:      a.Config.FreeCardLimit,
	})

	a.json(w, http.StatusOK, deck)
}

func (a *App) writeGenerateError(w http.ResponseWriter, err error) {
	var upstream *cards.UpstreamError
	switch {
	case errors.As(err, &upstream):
		a.error(w, upstream.Status, "Groq request failed", upstream.Body)
	case errors.Is(err, domain.ErrEmptyCompletion):
		a.error(w, http.StatusBadGateway, "No response from Groq", "")
	default:
		a.Logger.Error().Err(err).Msg("generation failed")
		a.error(w, http.StatusInternalServerError, err.Error(), "")
	}
}

// loadPlan reads the caller's plan; a missing or errored profile lookup
// degrades to the free plan.
func (a *App) loadPlan(ctx context.Context, userID string) domain.Plan {
	var plan, front, back string
	row := a.SQL.QueryRow(ctx, sqlinline.QSelectProfile, userID)
	if err := row.Scan(&plan, &front, &back); err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			a.Logger.Warn().Err(err).Str("user_id", userID).Msg("profile lookup failed, assuming free plan")
		}
		return domain.PlanFree
	}
	return domain.ParsePlan(plan)
}

func (a *App) loadCardsUsed(ctx context.Context, userID string) int {
	var used int
	row := a.SQL.QueryRow(ctx, sqlinline.QSelectCardsUsed, userID)
	if err := row.Scan(&used); err != nil {
		return 0
	}
	return used
}

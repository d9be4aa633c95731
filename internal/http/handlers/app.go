package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"server/internal/infra"
	"server/internal/middleware"
	"server/internal/persist"
	"server/internal/providers/cards"
)

// App bundles the dependencies shared by all handlers.
type App struct {
	SQL      infra.SQLExecutor
	Logger   zerolog.Logger
	Config   *infra.Config
	Cards    cards.Generator
	Recorder *persist.Recorder
}

type errorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, message, details string) {
	a.json(w, code, errorBody{Error: message, Details: details})
}

func (a *App) currentUserID(r *http.Request) string {
	return middleware.UserIDFromContext(r.Context())
}

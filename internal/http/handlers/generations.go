package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"server/internal/domain"
	"server/internal/sqlinline"
)

type generationDTO struct {
	ID             string          `json:"id"`
	Title          string          `json:"title"`
	Mode           string          `json:"mode"`
	Style          string          `json:"style"`
	RequestedCount int             `json:"requested_count"`
	Output         json.RawMessage `json:"output"`
	CreatedAt      time.Time       `json:"created_at"`
}

// GenerationsHistory returns the caller's most recent generations, newest
// first, capped at domain.HistoryLimit.
func (a *App) GenerationsHistory(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "Unauthorized", "")
		return
	}
	rows, err := a.SQL.Query(r.Context(), sqlinline.QSelectRecentGenerations, userID, domain.HistoryLimit)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "Failed to load history", "")
		return
	}
	defer rows.Close()

	items := []generationDTO{}
	for rows.Next() {
		var item generationDTO
		var output []byte
		if err := rows.Scan(&item.ID, &item.Title, &item.Mode, &item.Style, &item.RequestedCount, &output, &item.CreatedAt); err != nil {
			continue
		}
		item.Output = json.RawMessage(output)
		items = append(items, item)
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

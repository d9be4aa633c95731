package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5"

	"server/internal/domain"
	"server/internal/sqlinline"
)

type profileDTO struct {
	Plan       string `json:"plan"`
	FrontBgURL string `json:"front_bg_url"`
	BackBgURL  string `json:"back_bg_url"`
}

type profileUpdateRequest struct {
	FrontBgURL string `json:"front_bg_url"`
	BackBgURL  string `json:"back_bg_url"`
}

// ProfileGet returns the caller's settings row; a user without one sees the
// free-plan defaults.
func (a *App) ProfileGet(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "Unauthorized", "")
		return
	}
	var dto profileDTO
	row := a.SQL.QueryRow(r.Context(), sqlinline.QSelectProfile, userID)
	if err := row.Scan(&dto.Plan, &dto.FrontBgURL, &dto.BackBgURL); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			a.json(w, http.StatusOK, profileDTO{Plan: string(domain.PlanFree)})
			return
		}
		a.error(w, http.StatusInternalServerError, "Failed to load profile", "")
		return
	}
	dto.Plan = string(domain.ParsePlan(dto.Plan))
	a.json(w, http.StatusOK, dto)
}

// ProfileUpsert stores the caller's card background URLs, creating the
// profile row on first write. The plan is never writable from here.
func (a *App) ProfileUpsert(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "Unauthorized", "")
		return
	}
	var req profileUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "Invalid payload", "")
		return
	}
	var dto profileDTO
	row := a.SQL.QueryRow(r.Context(), sqlinline.QUpsertProfileBackgrounds,
		userID, strings.TrimSpace(req.FrontBgURL), strings.TrimSpace(req.BackBgURL))
	if err := row.Scan(&dto.Plan, &dto.FrontBgURL, &dto.BackBgURL); err != nil {
		a.error(w, http.StatusInternalServerError, "Failed to save profile", "")
		return
	}
	dto.Plan = string(domain.ParsePlan(dto.Plan))
	a.json(w, http.StatusOK, dto)
}

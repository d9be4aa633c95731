package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"

	"server/internal/infra"
	"server/internal/middleware"
)

type profileStubSQL struct {
	plan  string // empty means no row
	front string
	back  string
}

func (s *profileStubSQL) Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, fmt.Errorf("unsupported exec: %s", query)
}

func (s *profileStubSQL) Query(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
	return nil, fmt.Errorf("unsupported query: %s", query)
}

func (s *profileStubSQL) QueryRow(ctx context.Context, query string, args ...any) pgx.Row {
	switch {
	case strings.Contains(query, "on conflict (user_id) do update"):
		if s.plan == "" {
			s.plan = "free"
		}
		s.front = args[1].(string)
		s.back = args[2].(string)
		fallthrough
	case strings.Contains(query, "from profiles"):
		if s.plan == "" {
			return SimpleRow{}
		}
		return NewSimpleRow(func(dest ...any) error {
			*(dest[0].(*string)) = s.plan
			*(dest[1].(*string)) = s.front
			*(dest[2].(*string)) = s.back
			return nil
		})
	}
	return SimpleRow{}
}

func newProfileApp(sql infra.SQLExecutor) *App {
	return &App{
		SQL:    sql,
		Logger: zerolog.Nop(),
		Config: &infra.Config{JWTSecret: testJWTSecret},
	}
}

func authedRequest(method, target string, body []byte) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	return req.WithContext(middleware.ContextWithUserID(req.Context(), "u1"))
}

func TestProfileGetDefaultsWhenMissing(t *testing.T) {
	app := newProfileApp(&profileStubSQL{})

	rec := httptest.NewRecorder()
	app.ProfileGet(rec, authedRequest(http.MethodGet, "/v1/profile", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var dto profileDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &dto); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if dto.Plan != "free" || dto.FrontBgURL != "" || dto.BackBgURL != "" {
		t.Fatalf("dto = %+v", dto)
	}
}

func TestProfileGetNormalizesUnknownPlan(t *testing.T) {
	app := newProfileApp(&profileStubSQL{plan: "legacy-gold"})

	rec := httptest.NewRecorder()
	app.ProfileGet(rec, authedRequest(http.MethodGet, "/v1/profile", nil))
	var dto profileDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &dto); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if dto.Plan != "free" {
		t.Fatalf("plan = %q, want free", dto.Plan)
	}
}

func TestProfileUpsertCreatesRow(t *testing.T) {
	sql := &profileStubSQL{}
	app := newProfileApp(sql)

	body := []byte(`{"front_bg_url":"https://cdn.example.com/f.png","back_bg_url":"https://cdn.example.com/b.png"}`)
	rec := httptest.NewRecorder()
	app.ProfileUpsert(rec, authedRequest(http.MethodPut, "/v1/profile", body))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var dto profileDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &dto); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if dto.Plan != "free" || dto.FrontBgURL != "https://cdn.example.com/f.png" {
		t.Fatalf("dto = %+v", dto)
	}
}

func TestProfileRequiresUserContext(t *testing.T) {
	app := newProfileApp(&profileStubSQL{})

	rec := httptest.NewRecorder()
	app.ProfileGet(rec, httptest.NewRequest(http.MethodGet, "/v1/profile", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

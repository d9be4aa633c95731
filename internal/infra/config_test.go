package infra

import (
	"testing"
	"time"
)

func TestLoadConfigRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "test-secret")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error when DATABASE_URL is missing")
	}
}

func TestLoadConfigRequiresJWTSecret(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("JWT_SECRET", "")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error when JWT_SECRET is missing")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("GROQ_API_KEY", "")
	t.Setenv("GROQ_MODEL", "")
	t.Setenv("FREE_CARD_LIMIT", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.GroqAPIKey != "" {
		t.Fatalf("GroqAPIKey = %q, want empty (checked per request, not at startup)", cfg.GroqAPIKey)
	}
	if cfg.GroqModel != "llama-3.1-8b-instant" {
		t.Fatalf("GroqModel = %q", cfg.GroqModel)
	}
	if cfg.GroqBaseURL != "https://api.groq.com/openai/v1" {
		t.Fatalf("GroqBaseURL = %q", cfg.GroqBaseURL)
	}
	if cfg.FreeCardLimit != 100 {
		t.Fatalf("FreeCardLimit = %d, want 100", cfg.FreeCardLimit)
	}
	if cfg.HTTPReadTimeout != 15*time.Second {
		t.Fatalf("HTTPReadTimeout = %s", cfg.HTTPReadTimeout)
	}
}

func TestLoadConfigClampsFreeCardLimit(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("FREE_CARD_LIMIT", "-5")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.FreeCardLimit != 100 {
		t.Fatalf("FreeCardLimit = %d, want 100", cfg.FreeCardLimit)
	}
}

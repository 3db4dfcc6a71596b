package config

import (
	"testing"
	"time"
)

func setValidEnv(t *testing.T) {
	t.Helper()
	t.Setenv("NOTION_API_KEY", "secret_abc123")
	t.Setenv("NOTION_DATABASE_ID", "db123")
	t.Setenv("COHERE_API_KEY", "co_abc123")
	t.Setenv("RSS_FEEDS", "https://a.example/feed, https://b.example/feed,")
	t.Setenv("OPML_FILE", "")
	t.Setenv("MAX_AGE_HOURS", "")
	t.Setenv("MIN_RATING", "")
	t.Setenv("MAX_ARTICLES", "")
	t.Setenv("LEDGER_BACKEND", "")
	t.Setenv("LEDGER_FILE", "")
	t.Setenv("S3_BUCKET", "")
}

func TestFromEnvDefaults(t *testing.T) {
	setValidEnv(t)

	cfg := FromEnv()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("valid env rejected: %v", err)
	}

	if cfg.MaxAgeHours != DefaultMaxAgeHours {
		t.Fatalf("MaxAgeHours = %d, want %d", cfg.MaxAgeHours, DefaultMaxAgeHours)
	}
	if cfg.MinRating != DefaultMinRating {
		t.Fatalf("MinRating = %d, want %d", cfg.MinRating, DefaultMinRating)
	}
	if cfg.MaxArticles != DefaultMaxArticles {
		t.Fatalf("MaxArticles = %d, want %d", cfg.MaxArticles, DefaultMaxArticles)
	}
	if cfg.LedgerBackend != LedgerBackendFile || cfg.LedgerFile != DefaultLedgerFile {
		t.Fatalf("ledger defaults = %q/%q", cfg.LedgerBackend, cfg.LedgerFile)
	}
	if len(cfg.FeedURLs) != 2 {
		t.Fatalf("FeedURLs = %v, want 2 trimmed entries", cfg.FeedURLs)
	}
}

func TestValidateMissingCredentials(t *testing.T) {
	setValidEnv(t)
	t.Setenv("NOTION_API_KEY", "")

	if err := FromEnv().Validate(); err == nil {
		t.Fatalf("expected error for missing store credentials")
	}
}

func TestValidateNoFeedSource(t *testing.T) {
	setValidEnv(t)
	t.Setenv("RSS_FEEDS", "")
	t.Setenv("OPML_FILE", "")

	if err := FromEnv().Validate(); err == nil {
		t.Fatalf("expected error when no feed source is configured")
	}
}

func TestValidatePlaceholderCredentials(t *testing.T) {
	setValidEnv(t)
	t.Setenv("COHERE_API_KEY", "YOUR_COHERE_KEY_HERE")

	if err := FromEnv().Validate(); err == nil {
		t.Fatalf("expected error for placeholder credential")
	}
}

func TestValidateS3BackendRequiresBucket(t *testing.T) {
	setValidEnv(t)
	t.Setenv("LEDGER_BACKEND", "s3")

	if err := FromEnv().Validate(); err == nil {
		t.Fatalf("expected error for s3 backend without bucket")
	}

	t.Setenv("S3_BUCKET", "curation-ledger")
	if err := FromEnv().Validate(); err != nil {
		t.Fatalf("s3 backend with bucket rejected: %v", err)
	}
}

func TestValidateUnknownBackend(t *testing.T) {
	setValidEnv(t)
	t.Setenv("LEDGER_BACKEND", "dynamo")

	if err := FromEnv().Validate(); err == nil {
		t.Fatalf("expected error for unknown ledger backend")
	}
}

func TestGetEnvIntFallbacks(t *testing.T) {
	t.Setenv("MAX_AGE_HOURS", "not-a-number")
	if got := getEnvInt("MAX_AGE_HOURS", 24); got != 24 {
		t.Fatalf("getEnvInt = %d, want fallback 24", got)
	}

	t.Setenv("MAX_AGE_HOURS", "48")
	if got := getEnvInt("MAX_AGE_HOURS", 24); got != 48 {
		t.Fatalf("getEnvInt = %d, want 48", got)
	}
}

func TestConstantsSanity(t *testing.T) {
	if PublishInterval < 500*time.Millisecond {
		t.Fatalf("publish pacing below the store's rate floor: %s", PublishInterval)
	}
	if ScoringInterval < time.Second {
		t.Fatalf("scoring pacing below the backend's rate floor: %s", ScoringInterval)
	}
}

package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Env != "development" {
		t.Errorf("Env = %q, want development", cfg.Env)
	}
	if cfg.OpenAI.Model != "gpt-4o-mini" {
		t.Errorf("OpenAI.Model = %q", cfg.OpenAI.Model)
	}
	if cfg.Screening.WatchlistSize != 10 || cfg.Screening.HeadlinesPerTicker != 3 {
		t.Errorf("screening defaults = %+v", cfg.Screening)
	}
	if cfg.Screening.OutputFile != "screening_results.csv" {
		t.Errorf("OutputFile = %q", cfg.Screening.OutputFile)
	}
	if cfg.S3.Region != "us-east-1" {
		t.Errorf("S3.Region = %q", cfg.S3.Region)
	}
	if cfg.Slack.Timeout != 30*time.Second {
		t.Errorf("Slack.Timeout = %v", cfg.Slack.Timeout)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("WATCHLIST_SIZE", "25")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_TIMEOUT", "90s")
	t.Setenv("AWS_BUCKET", "screening-artifacts")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Env != "production" {
		t.Errorf("Env = %q", cfg.Env)
	}
	if cfg.Screening.WatchlistSize != 25 {
		t.Errorf("WatchlistSize = %d", cfg.Screening.WatchlistSize)
	}
	if !cfg.OpenAI.Enabled() || cfg.OpenAI.Timeout != 90*time.Second {
		t.Errorf("OpenAI = %+v", cfg.OpenAI)
	}
	if !cfg.S3.Enabled() {
		t.Error("S3 should be enabled with a bucket")
	}
}

func TestLoad_ValidationFailures(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad env", "ENV", "sandbox"},
		{"zero watchlist size", "WATCHLIST_SIZE", "0"},
		{"negative headlines", "HEADLINES_PER_TICKER", "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Errorf("Load() with %s=%s should fail validation", tt.key, tt.value)
			}
		})
	}
}

func TestLoad_EnabledFlags(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}

	if cfg.OpenAI.Enabled() || cfg.S3.Enabled() || cfg.Slack.Enabled() || cfg.Database.Enabled() {
		t.Error("optional integrations should be disabled without their env vars")
	}
}

func TestGetEnvAsInt_BadValueKeepsDefault(t *testing.T) {
	t.Setenv("WATCHLIST_SIZE", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Screening.WatchlistSize != 10 {
		t.Errorf("WatchlistSize = %d, want default 10", cfg.Screening.WatchlistSize)
	}
}

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func setValidEnv(t *testing.T) {
	t.Helper()
	t.Setenv("GEMINI_API_KEY", "AIzaSy-test-key")
	t.Setenv("EMAIL_USERNAME", "sender@example.com")
	t.Setenv("EMAIL_PASSWORD", "app-password")
	t.Setenv("EMAIL_RECIPIENT", "boss@example.com")
}

func TestLoadDefaults(t *testing.T) {
	setValidEnv(t)
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.News.SourceURL != "https://www.espn.com/nba/" {
		t.Errorf("SourceURL = %q", cfg.News.SourceURL)
	}
	if cfg.News.HeadlineLimit != 5 {
		t.Errorf("HeadlineLimit = %d, want 5", cfg.News.HeadlineLimit)
	}
	if cfg.News.ArticleMaxLen != 2000 {
		t.Errorf("ArticleMaxLen = %d, want 2000", cfg.News.ArticleMaxLen)
	}
	if !strings.Contains(cfg.Scoreboard.URL, "todaysScoreboard_00.json") {
		t.Errorf("Scoreboard.URL = %q", cfg.Scoreboard.URL)
	}
	if cfg.AI.Model != "gemini-2.5-flash" {
		t.Errorf("Model = %q", cfg.AI.Model)
	}
	if len(cfg.AI.FallbackModels) != 3 {
		t.Errorf("FallbackModels = %v", cfg.AI.FallbackModels)
	}
	if cfg.Email.SMTPServer != "smtp.gmail.com" || cfg.Email.SMTPPort != 587 {
		t.Errorf("SMTP = %s:%d", cfg.Email.SMTPServer, cfg.Email.SMTPPort)
	}
	if cfg.Email.FromEmail != "sender@example.com" {
		t.Errorf("FromEmail should default to the username, got %q", cfg.Email.FromEmail)
	}
}

func TestLoadYAMLFileOverridesDefaults(t *testing.T) {
	setValidEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
news:
  headline_limit: 8
  article_max_chars: 1500
ai:
  model: gemini-1.5-pro
email:
  smtp_server: mail.example.com
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFIG_FILE", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.News.HeadlineLimit != 8 {
		t.Errorf("HeadlineLimit = %d, want 8", cfg.News.HeadlineLimit)
	}
	if cfg.News.ArticleMaxLen != 1500 {
		t.Errorf("ArticleMaxLen = %d, want 1500", cfg.News.ArticleMaxLen)
	}
	if cfg.AI.Model != "gemini-1.5-pro" {
		t.Errorf("Model = %q", cfg.AI.Model)
	}
	if cfg.Email.SMTPServer != "mail.example.com" {
		t.Errorf("SMTPServer = %q", cfg.Email.SMTPServer)
	}
	// Unset fields still get defaults.
	if cfg.News.TimeoutSeconds != 10 {
		t.Errorf("TimeoutSeconds = %d, want 10", cfg.News.TimeoutSeconds)
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	setValidEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("news: [not: valid"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFIG_FILE", path)

	if _, err := Load(); err == nil {
		t.Fatal("Load should fail on malformed YAML")
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(t *testing.T)
		wantErr string
	}{
		{
			name:    "Missing API key",
			mutate:  func(t *testing.T) { t.Setenv("GEMINI_API_KEY", "") },
			wantErr: "Gemini API key is required",
		},
		{
			name:    "Placeholder API key",
			mutate:  func(t *testing.T) { t.Setenv("GEMINI_API_KEY", "your_api_key_here") },
			wantErr: "placeholder",
		},
		{
			name:    "Missing email username",
			mutate:  func(t *testing.T) { t.Setenv("EMAIL_USERNAME", "") },
			wantErr: "email username is required",
		},
		{
			name:    "Username without at sign",
			mutate:  func(t *testing.T) { t.Setenv("EMAIL_USERNAME", "not-an-address") },
			wantErr: "does not look like a valid address",
		},
		{
			name:    "Placeholder username",
			mutate:  func(t *testing.T) { t.Setenv("EMAIL_USERNAME", "your_email@gmail.com") },
			wantErr: "does not look like a valid address",
		},
		{
			name:    "Missing password",
			mutate:  func(t *testing.T) { t.Setenv("EMAIL_PASSWORD", "") },
			wantErr: "email password is required",
		},
		{
			name:    "Missing recipient",
			mutate:  func(t *testing.T) { t.Setenv("EMAIL_RECIPIENT", "") },
			wantErr: "recipient address is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setValidEnv(t)
			t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
			tt.mutate(t)

			_, err := Load()
			if err == nil {
				t.Fatal("Load should fail validation")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

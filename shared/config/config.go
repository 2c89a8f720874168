package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	News       NewsConfig       `yaml:"news"`
	Scoreboard ScoreboardConfig `yaml:"scoreboard"`
	AI         AIConfig         `yaml:"ai"`
	Email      EmailConfig      `yaml:"email"`
}

type NewsConfig struct {
	SourceURL      string `yaml:"source_url"`
	SectionPath    string `yaml:"section_path"`
	HeadlineLimit  int    `yaml:"headline_limit"`
	ArticleMaxLen  int    `yaml:"article_max_chars"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	UserAgent      string `yaml:"user_agent"`
}

type ScoreboardConfig struct {
	URL            string `yaml:"url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type AIConfig struct {
	GeminiAPIKey   string   `yaml:"gemini_api_key" env:"GEMINI_API_KEY"`
	Model          string   `yaml:"model"`
	FallbackModels []string `yaml:"fallback_models"`
}

type EmailConfig struct {
	SMTPServer string `yaml:"smtp_server"`
	SMTPPort   int    `yaml:"smtp_port"`
	Username   string `yaml:"username" env:"EMAIL_USERNAME"`
	Password   string `yaml:"password" env:"EMAIL_PASSWORD"`
	FromEmail  string `yaml:"from_email"`
	ToEmail    string `yaml:"to_email" env:"EMAIL_RECIPIENT"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	configFile := os.Getenv("CONFIG_FILE")
	if configFile == "" {
		configFile = "config.yaml"
	}

	var cfg Config
	data, err := os.ReadFile(configFile)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", configFile, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
	}

	if cfg.AI.GeminiAPIKey == "" {
		cfg.AI.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.Email.Username == "" {
		cfg.Email.Username = os.Getenv("EMAIL_USERNAME")
	}
	if cfg.Email.Password == "" {
		cfg.Email.Password = os.Getenv("EMAIL_PASSWORD")
	}
	if cfg.Email.ToEmail == "" {
		cfg.Email.ToEmail = os.Getenv("EMAIL_RECIPIENT")
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.News.SourceURL == "" {
		c.News.SourceURL = "https://www.espn.com/nba/"
	}
	if c.News.SectionPath == "" {
		c.News.SectionPath = "/nba/"
	}
	if c.News.HeadlineLimit == 0 {
		// Keeps per-run generation calls within the free-tier rate ceiling.
		c.News.HeadlineLimit = 5
	}
	if c.News.ArticleMaxLen == 0 {
		c.News.ArticleMaxLen = 2000
	}
	if c.News.TimeoutSeconds == 0 {
		c.News.TimeoutSeconds = 10
	}
	if c.News.UserAgent == "" {
		c.News.UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	}
	if c.Scoreboard.URL == "" {
		c.Scoreboard.URL = "https://cdn.nba.com/static/json/liveData/scoreboard/todaysScoreboard_00.json"
	}
	if c.Scoreboard.TimeoutSeconds == 0 {
		c.Scoreboard.TimeoutSeconds = 10
	}
	if c.AI.Model == "" {
		c.AI.Model = "gemini-2.5-flash"
	}
	if len(c.AI.FallbackModels) == 0 {
		c.AI.FallbackModels = []string{"gemini-2.0-flash-exp", "gemini-2.0-flash", "gemini-1.5-flash"}
	}
	if c.Email.SMTPServer == "" {
		c.Email.SMTPServer = "smtp.gmail.com"
	}
	if c.Email.SMTPPort == 0 {
		c.Email.SMTPPort = 587
	}
	if c.Email.FromEmail == "" {
		c.Email.FromEmail = c.Email.Username
	}
}

// validate runs before any network activity so that credential problems
// abort the whole run up front.
func (c *Config) validate() error {
	if c.AI.GeminiAPIKey == "" {
		return fmt.Errorf("Gemini API key is required (set GEMINI_API_KEY or ai.gemini_api_key)")
	}
	if strings.Contains(strings.ToLower(c.AI.GeminiAPIKey), "your_") {
		return fmt.Errorf("GEMINI_API_KEY looks like a placeholder, set your actual API key")
	}
	if c.Email.Username == "" {
		return fmt.Errorf("email username is required (set EMAIL_USERNAME or email.username)")
	}
	if strings.Contains(strings.ToLower(c.Email.Username), "your_") || !strings.Contains(c.Email.Username, "@") {
		return fmt.Errorf("EMAIL_USERNAME %q does not look like a valid address", c.Email.Username)
	}
	if c.Email.Password == "" {
		return fmt.Errorf("email password is required (set EMAIL_PASSWORD or email.password)")
	}
	if c.Email.ToEmail == "" {
		return fmt.Errorf("recipient address is required (set EMAIL_RECIPIENT or email.to_email)")
	}
	return nil
}

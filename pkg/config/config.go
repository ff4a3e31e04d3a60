package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
// ⭐ SSOT: 모든 환경변수는 여기서만 읽음
type Config struct {
	Env string // development, staging, production

	// OpenAI (enables LLM scorer and LLM watchlist curation)
	OpenAI OpenAIConfig

	// Screening pipeline
	Screening ScreeningConfig

	// Object storage
	S3 S3Config

	// Slack desk report
	Slack SlackConfig

	// Optional run-history database
	Database DatabaseConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// OpenAIConfig holds OpenAI API configuration
type OpenAIConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Enabled reports whether LLM features can be used
func (c OpenAIConfig) Enabled() bool {
	return c.APIKey != ""
}

// ScreeningConfig holds screening pipeline configuration
type ScreeningConfig struct {
	OutputFile         string // results CSV path
	WatchlistFile      string // derived watchlist CSV path
	TickersFile        string // newline-delimited input universe
	WatchlistSize      int    // N tickers requested from the LLM curator
	HeadlinesPerTicker int
	PricesOutputDir    string // `desk prices` output directory
	Cron               string // scheduler cron expression
}

// S3Config holds object storage configuration
type S3Config struct {
	Bucket string
	Region string
	Prefix string
}

// Enabled reports whether uploads should be attempted
func (c S3Config) Enabled() bool {
	return c.Bucket != ""
}

// SlackConfig holds chat webhook configuration
type SlackConfig struct {
	WebhookURL string
	Timeout    time.Duration
}

// Enabled reports whether the desk report should be posted
func (c SlackConfig) Enabled() bool {
	return c.WebhookURL != ""
}

// DatabaseConfig holds optional PostgreSQL configuration
type DatabaseConfig struct {
	URL             string
	MaxConns        int
	MaxConnLifetime time.Duration
}

// Enabled reports whether run history should be persisted
func (c DatabaseConfig) Enabled() bool {
	return c.URL != ""
}

// Load reads configuration from environment variables
// ⭐ SSOT: 이 함수만 os.Getenv()를 호출함
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Env: getEnv("ENV", "development"),

		OpenAI: OpenAIConfig{
			APIKey:  getEnv("OPENAI_API_KEY", ""),
			Model:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			Timeout: getEnvAsDuration("OPENAI_TIMEOUT", "60s"),
		},

		Screening: ScreeningConfig{
			OutputFile:         getEnv("SCREENING_OUTPUT_FILE", "screening_results.csv"),
			WatchlistFile:      getEnv("WATCHLIST_FILE", "watchlist.csv"),
			TickersFile:        getEnv("TICKERS_FILE", "tickers.txt"),
			WatchlistSize:      getEnvAsInt("WATCHLIST_SIZE", 10),
			HeadlinesPerTicker: getEnvAsInt("HEADLINES_PER_TICKER", 3),
			PricesOutputDir:    getEnv("PRICES_OUTPUT_DIR", "data/prices"),
			// Weekdays after the US close (with seconds field)
			Cron: getEnv("SCREEN_CRON", "0 30 21 * * 1-5"),
		},

		S3: S3Config{
			Bucket: getEnv("AWS_BUCKET", ""),
			Region: getEnv("AWS_REGION", "us-east-1"),
			Prefix: getEnv("S3_PREFIX", ""),
		},

		Slack: SlackConfig{
			WebhookURL: getEnv("SLACK_WEBHOOK_URL", ""),
			Timeout:    getEnvAsDuration("SLACK_TIMEOUT", "30s"),
		},

		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 5),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", "1h"),
		},

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.Screening.WatchlistSize <= 0 {
		return fmt.Errorf("WATCHLIST_SIZE must be positive")
	}

	if c.Screening.HeadlinesPerTicker < 0 {
		return fmt.Errorf("HEADLINES_PER_TICKER must not be negative")
	}

	return nil
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{
		".env",
	}

	// Also try relative to executable
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}

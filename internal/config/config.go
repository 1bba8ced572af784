package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/geosight/geosight/internal/models"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Port  string
	Debug bool

	// Platform credentials and models
	OpenAIAPIKey     string
	OpenAIModel      string
	GoogleAIAPIKey   string
	GeminiModel      string
	PerplexityAPIKey string
	PerplexityModel  string
	AnthropicAPIKey  string
	ClaudeModel      string

	// Audit configuration
	Platforms              []string
	QueryTimeout           time.Duration
	MaxQueryTemplates      int
	MockMentionProbability float64
	RandomSeed             int64

	// Storage configuration
	StorageBackend   string // "memory" or "azure"
	StorageAccount   string
	StorageContainer string

	// Schedule configuration
	AuditSchedule string // "daily", "weekly" or "off"
	WatchlistFile string

	// Notification configuration
	TeamsWebhookURL   string
	NotificationEmail string
	SMTPHost          string
	SMTPPort          int
	SMTPUsername      string
	SMTPPassword      string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:  getEnv("PORT", "8080"),
		Debug: getBoolEnv("DEBUG", false),

		OpenAIAPIKey:     getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:      getEnv("OPENAI_MODEL", "gpt-4o"),
		GoogleAIAPIKey:   getEnv("GOOGLE_AI_API_KEY", ""),
		GeminiModel:      getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		PerplexityAPIKey: getEnv("PERPLEXITY_API_KEY", ""),
		PerplexityModel:  getEnv("PERPLEXITY_MODEL", "sonar"),
		AnthropicAPIKey:  getEnv("ANTHROPIC_API_KEY", ""),
		ClaudeModel:      getEnv("CLAUDE_MODEL", "claude-3-5-haiku-latest"),

		Platforms:              getSliceEnv("PLATFORMS", []string{"chatgpt", "gemini", "perplexity", "claude"}),
		QueryTimeout:           getDurationEnv("QUERY_TIMEOUT", 30*time.Second),
		MaxQueryTemplates:      getIntEnv("MAX_QUERY_TEMPLATES", 8),
		MockMentionProbability: getFloatEnv("MOCK_MENTION_PROBABILITY", 0.6),
		RandomSeed:             int64(getIntEnv("RANDOM_SEED", 0)),

		StorageBackend:   getEnv("STORAGE_BACKEND", "memory"),
		StorageAccount:   getEnv("AZURE_STORAGE_ACCOUNT", ""),
		StorageContainer: getEnv("AZURE_STORAGE_CONTAINER", "audits"),

		AuditSchedule: getEnv("AUDIT_SCHEDULE", "off"),
		WatchlistFile: getEnv("WATCHLIST_FILE", ""),

		TeamsWebhookURL:   getEnv("TEAMS_WEBHOOK_URL", ""),
		NotificationEmail: getEnv("NOTIFICATION_EMAIL", ""),
		SMTPHost:          getEnv("SMTP_HOST", ""),
		SMTPPort:          getIntEnv("SMTP_PORT", 587),
		SMTPUsername:      getEnv("SMTP_USERNAME", ""),
		SMTPPassword:      getEnv("SMTP_PASSWORD", ""),
	}

	// Validate required configuration
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	for _, name := range c.Platforms {
		if !models.Platform(name).Valid() {
			return fmt.Errorf("PLATFORMS contains unknown platform %q", name)
		}
	}

	if c.QueryTimeout <= 0 {
		return fmt.Errorf("QUERY_TIMEOUT must be positive")
	}

	if c.MaxQueryTemplates < 1 || c.MaxQueryTemplates > 15 {
		return fmt.Errorf("MAX_QUERY_TEMPLATES must be between 1 and 15")
	}

	if c.MockMentionProbability < 0 || c.MockMentionProbability > 1 {
		return fmt.Errorf("MOCK_MENTION_PROBABILITY must be between 0 and 1")
	}

	switch c.StorageBackend {
	case "memory":
	case "azure":
		if c.StorageAccount == "" {
			return fmt.Errorf("AZURE_STORAGE_ACCOUNT is required when STORAGE_BACKEND is 'azure'")
		}
	default:
		return fmt.Errorf("STORAGE_BACKEND must be 'memory' or 'azure'")
	}

	switch c.AuditSchedule {
	case "daily", "weekly":
		if c.WatchlistFile == "" {
			return fmt.Errorf("WATCHLIST_FILE is required when AUDIT_SCHEDULE is '%s'", c.AuditSchedule)
		}
	case "off":
	default:
		return fmt.Errorf("AUDIT_SCHEDULE must be 'daily', 'weekly' or 'off'")
	}

	if c.NotificationEmail != "" {
		if c.SMTPHost == "" || c.SMTPUsername == "" || c.SMTPPassword == "" {
			return fmt.Errorf("SMTP configuration is required when NOTIFICATION_EMAIL is set")
		}
	}

	return nil
}

// AuditPlatforms returns the configured platforms as typed values
func (c *Config) AuditPlatforms() []models.Platform {
	platforms := make([]models.Platform, 0, len(c.Platforms))
	for _, name := range c.Platforms {
		platforms = append(platforms, models.Platform(name))
	}
	return platforms
}

// NotificationsEnabled reports whether any notification channel is configured
func (c *Config) NotificationsEnabled() bool {
	return c.TeamsWebhookURL != "" || c.NotificationEmail != ""
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getSliceEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		var items []string
		for _, item := range strings.Split(value, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, strings.ToLower(item))
			}
		}
		return items
	}
	return defaultValue
}

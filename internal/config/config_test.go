package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/geosight/geosight/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 30*time.Second, cfg.QueryTimeout)
	assert.Equal(t, 8, cfg.MaxQueryTemplates)
	assert.Equal(t, 0.6, cfg.MockMentionProbability)
	assert.Equal(t, "memory", cfg.StorageBackend)
	assert.Equal(t, "off", cfg.AuditSchedule)
	assert.Equal(t, models.AllPlatforms, cfg.AuditPlatforms())
	assert.False(t, cfg.NotificationsEnabled())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("QUERY_TIMEOUT", "5s")
	t.Setenv("MAX_QUERY_TEMPLATES", "15")
	t.Setenv("PLATFORMS", " ChatGPT, perplexity ,")
	t.Setenv("RANDOM_SEED", "42")
	t.Setenv("TEAMS_WEBHOOK_URL", "https://example.com/hook")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5*time.Second, cfg.QueryTimeout)
	assert.Equal(t, 15, cfg.MaxQueryTemplates)
	assert.Equal(t, []models.Platform{models.PlatformChatGPT, models.PlatformPerplexity}, cfg.AuditPlatforms())
	assert.Equal(t, int64(42), cfg.RandomSeed)
	assert.True(t, cfg.NotificationsEnabled())
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"Unknown platform", map[string]string{"PLATFORMS": "chatgpt,bing"}},
		{"Too many templates", map[string]string{"MAX_QUERY_TEMPLATES": "16"}},
		{"Zero templates", map[string]string{"MAX_QUERY_TEMPLATES": "0"}},
		{"Probability above one", map[string]string{"MOCK_MENTION_PROBABILITY": "1.5"}},
		{"Negative timeout", map[string]string{"QUERY_TIMEOUT": "-1s"}},
		{"Unknown storage backend", map[string]string{"STORAGE_BACKEND": "s3"}},
		{"Azure without account", map[string]string{"STORAGE_BACKEND": "azure"}},
		{"Unknown schedule", map[string]string{"AUDIT_SCHEDULE": "hourly"}},
		{"Schedule without watchlist", map[string]string{"AUDIT_SCHEDULE": "daily"}},
		{"Email without SMTP", map[string]string{"NOTIFICATION_EMAIL": "team@example.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for key, value := range tt.env {
				t.Setenv(key, value)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestGetEnvHelpers_IgnoreMalformedValues(t *testing.T) {
	t.Setenv("TEST_BOOL", "maybe")
	t.Setenv("TEST_INT", "ten")
	t.Setenv("TEST_FLOAT", "half")
	t.Setenv("TEST_DURATION", "soon")

	assert.True(t, getBoolEnv("TEST_BOOL", true))
	assert.Equal(t, 10, getIntEnv("TEST_INT", 10))
	assert.Equal(t, 0.5, getFloatEnv("TEST_FLOAT", 0.5))
	assert.Equal(t, time.Minute, getDurationEnv("TEST_DURATION", time.Minute))
}

func TestParseWatchlist(t *testing.T) {
	data := []byte(`
brands:
  - brand_name: Acme
    industry: crm
    url: https://acme.com
    competitors: [Salesforce, HubSpot]
    mode: quick
  - brand_name: "  Globex  "
`)

	watchlist, err := ParseWatchlist(data)
	require.NoError(t, err)
	require.Len(t, watchlist.Brands, 2)

	acme := watchlist.Brands[0]
	assert.Equal(t, "Acme", acme.BrandName)
	assert.Equal(t, "crm", acme.Industry)
	assert.Equal(t, "https://acme.com", acme.URL)
	assert.Equal(t, []string{"Salesforce", "HubSpot"}, acme.Competitors)
	assert.Equal(t, models.ModeQuick, acme.Mode)

	globex := watchlist.Brands[1]
	assert.Equal(t, "Globex", globex.BrandName)
	assert.Equal(t, "software", globex.Industry)
	assert.Equal(t, models.ModeComprehensive, globex.Mode)
}

func TestParseWatchlist_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"Malformed YAML", "brands: [unterminated"},
		{"Missing brand name", "brands:\n  - industry: crm\n"},
		{"Unknown mode", "brands:\n  - brand_name: Acme\n    mode: deep\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseWatchlist([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestLoadWatchlist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watchlist.yaml")
	require.NoError(t, os.WriteFile(path, []byte("brands:\n  - brand_name: Acme\n"), 0o600))

	watchlist, err := LoadWatchlist(path)
	require.NoError(t, err)
	assert.Len(t, watchlist.Brands, 1)

	_, err = LoadWatchlist(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

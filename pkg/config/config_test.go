package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("LLM_PROVIDER", "")
	t.Setenv("LLM_TIMEOUT_SECONDS", "")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "")

	cfg := Load()
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, ProviderOpenRouter, cfg.LLM.Provider)
	assert.Equal(t, 60*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 30, cfg.RateLimitPerMinute)
	assert.Equal(t, 15<<20, cfg.UploadMaxBytes)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("SQLITE_PATH", "/tmp/x.db")
	t.Setenv("LLM_PROVIDER", "gemini")
	t.Setenv("BREAKER_OPEN_SECONDS", "5")
	t.Setenv("LOG_JSON", "true")
	t.Setenv("JWT_TTL_MINUTES", "not-a-number")

	cfg := Load()
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "/tmp/x.db", cfg.SQLitePath)
	assert.Equal(t, ProviderGemini, cfg.LLM.Provider)
	assert.Equal(t, 5*time.Second, cfg.Breaker.OpenTimeout)
	assert.True(t, cfg.LogJSON)
	assert.Equal(t, 60, cfg.JWTTTLMinutes)
}

func TestLoadPrompts(t *testing.T) {
	p, err := LoadPrompts("")
	require.NoError(t, err)
	assert.Empty(t, p.Interview.Coach)

	path := filepath.Join(t.TempDir(), "prompts.yaml")
	require.NoError(t, os.WriteFile(path, []byte("coach: Be strict.\nresume: You review resumes.\n"), 0o600))

	p, err = LoadPrompts(path)
	require.NoError(t, err)
	assert.Equal(t, "Be strict.", p.Interview.Coach)
	assert.Empty(t, p.Interview.Interviewer)
	assert.Equal(t, "You review resumes.", p.Resume)

	require.NoError(t, os.WriteFile(path, []byte("coach: [unterminated"), 0o600))
	_, err = LoadPrompts(path)
	assert.Error(t, err)

	_, err = LoadPrompts(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

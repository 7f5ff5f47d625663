package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "LOG_JSON", "DB_ENABLED", "GEMINI_API_KEY", "GEMINI_TIMEOUT",
		"MAX_FILE_SIZE", "KEEP_UPLOADS", "DEFAULT_TARGET_ROLE", "REFERENCE_TABLES_PATH",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "5000", cfg.Server.Port)
	assert.False(t, cfg.Log.JSON)
	assert.False(t, cfg.Database.Enabled)
	assert.False(t, cfg.Gemini.Enabled())
	assert.Equal(t, 20*time.Second, cfg.Gemini.Timeout)
	assert.Equal(t, int64(10485760), cfg.Storage.MaxFileSize)
	assert.False(t, cfg.Storage.KeepUploads)
	assert.Equal(t, "software_engineering", cfg.Scoring.DefaultTargetRole)
	assert.Empty(t, cfg.Scoring.ReferenceTablesPath)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("LOG_JSON", "true")
	t.Setenv("DB_ENABLED", "1")
	t.Setenv("GEMINI_API_KEY", "key")
	t.Setenv("GEMINI_TIMEOUT", "5s")
	t.Setenv("MAX_FILE_SIZE", "2048")
	t.Setenv("KEEP_UPLOADS", "yes-please")

	cfg := Load()

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.True(t, cfg.Log.JSON)
	assert.True(t, cfg.Database.Enabled)
	assert.True(t, cfg.Gemini.Enabled())
	assert.Equal(t, 5*time.Second, cfg.Gemini.Timeout)
	assert.Equal(t, int64(2048), cfg.Storage.MaxFileSize)
	assert.False(t, cfg.Storage.KeepUploads, "unparseable booleans fall back to the default")
}

func TestLoad_InvalidDurationFallsBack(t *testing.T) {
	t.Setenv("GEMINI_TIMEOUT", "soon")

	assert.Equal(t, 20*time.Second, Load().Gemini.Timeout)
}

func TestGetDatabaseDSN(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{
		Host: "db", Port: "5433", User: "u", Password: "p", DBName: "n",
	}}

	assert.Equal(t, "host=db port=5433 user=u password=p dbname=n sslmode=disable", cfg.GetDatabaseDSN())
}

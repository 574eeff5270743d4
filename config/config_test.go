package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("NEXUS_API_KEY", "sekrit")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "sekrit", cfg.APIKey)
	assert.Equal(t, "./db/nexus_cache.db", cfg.DBPath)
	assert.Equal(t, 50*time.Second, cfg.RequestTimeout.Std())
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("NEXUS_API_KEY", "sekrit")
	t.Setenv("MODCACHE_DB_PATH", "/tmp/cache.db")
	t.Setenv("MODCACHE_REQUEST_TIMEOUT", "2m")
	t.Setenv("MODCACHE_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/cache.db", cfg.DBPath)
	assert.Equal(t, 2*time.Minute, cfg.RequestTimeout.Std())
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestDurationDayUnits(t *testing.T) {
	t.Setenv("NEXUS_API_KEY", "sekrit")
	t.Setenv("MODCACHE_REQUEST_TIMEOUT", "1d")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, cfg.RequestTimeout.Std())
}

func TestDurationRejectsGarbage(t *testing.T) {
	t.Setenv("NEXUS_API_KEY", "sekrit")
	t.Setenv("MODCACHE_REQUEST_TIMEOUT", "soonish")

	_, err := Load()
	assert.Error(t, err)
}

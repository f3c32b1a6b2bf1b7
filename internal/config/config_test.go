package config

import (
	"flag"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(nil, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "inventory.sqlite3", cfg.DBPath)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "http://127.0.0.1:8080", cfg.APIURL)
	assert.Equal(t, "/api/inventory", cfg.APIPrefix)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestLoadFlagsAndAliases(t *testing.T) {
	cfg, err := Load([]string{"-d", "x.db", "-a", "localhost:9000", "-l", "out.log", "-log-level", "debug", "-timeout", "2s"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "x.db", cfg.DBPath)
	assert.Equal(t, "localhost:9000", cfg.Addr)
	assert.Equal(t, "out.log", cfg.LogPath)
	assert.Equal(t, "http://localhost:9000", cfg.APIURL)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, 2*time.Second, cfg.Timeout)
}

func TestLoadEnvironment(t *testing.T) {
	t.Setenv("INVENTORY_DB", "env.db")
	t.Setenv("INVENTORY_API_URL", "http://api.example:8000")
	t.Setenv("INVENTORY_API_PREFIX", "/inventory")
	t.Setenv("INVENTORY_SESSION_TTL", "5m")

	cfg, err := Load(nil, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "env.db", cfg.DBPath)
	assert.Equal(t, "http://api.example:8000", cfg.APIURL)
	assert.Equal(t, "/inventory", cfg.APIPrefix)
	assert.Equal(t, 5*time.Minute, cfg.SessionTTL)

	// Flags win over the environment.
	cfg, err = Load([]string{"-db", "flag.db"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "flag.db", cfg.DBPath)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load([]string{"-h"}, io.Discard)
	assert.ErrorIs(t, err, flag.ErrHelp)

	_, err = Load([]string{"extra"}, io.Discard)
	assert.Error(t, err)

	_, err = Load([]string{"-log-level", "loud"}, io.Discard)
	assert.Error(t, err)

	t.Setenv("INVENTORY_TIMEOUT", "soon")
	_, err = Load(nil, io.Discard)
	assert.Error(t, err)
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaultsAndEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("SERVER_PORT", "9090")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "from-env", cfg.JWT.Secret)
	assert.Equal(t, 24*time.Hour, cfg.JWT.Expiration)
	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.Equal(t, 6, cfg.Pages.InspectionQueue)
	assert.Equal(t, 7, cfg.Pages.StockMovements)
	assert.False(t, cfg.QA.RequireOverrideRemarks)
}

func TestLoadConfigFile(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	dir := t.TempDir()
	yaml := []byte("jwt:\n  secret: file-secret\nqa:\n  requireOverrideRemarks: true\npages:\n  capa: 10\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o600))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "file-secret", cfg.JWT.Secret)
	assert.True(t, cfg.QA.RequireOverrideRemarks)
	assert.Equal(t, 10, cfg.Pages.CAPA)
	assert.Equal(t, 6, cfg.Pages.Approvals)
}

func TestLoadConfigRejectsBadDriver(t *testing.T) {
	t.Setenv("JWT_SECRET", "x")
	t.Setenv("STORE_DRIVER", "mongo")
	_, err := LoadConfig(t.TempDir())
	assert.ErrorContains(t, err, "mongo.uri")

	t.Setenv("STORE_DRIVER", "sqlite")
	_, err = LoadConfig(t.TempDir())
	assert.ErrorContains(t, err, "store.driver")
}

func TestLoadConfigRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := LoadConfig(t.TempDir())
	assert.ErrorContains(t, err, "jwt.secret")
}

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
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, 50051, cfg.GRPCPort)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, DefaultJwtSecret, cfg.JwtSecret)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "favorites.db", cfg.Database.URL)
	assert.False(t, cfg.Database.Seed)
	assert.Empty(t, cfg.Consul.Address)
	assert.Equal(t, "localhost", cfg.Consul.AdvertiseHost)
	assert.Equal(t, "10s", cfg.Consul.CheckInterval)
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	body := []byte(`
http_port: 9090
log_level: debug
database:
  driver: postgres
  url: "host=localhost user=app dbname=favorites"
  seed: true
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), body, 0o600))

	t.Setenv("FAVORITES_HTTP_PORT", "7070")
	t.Setenv("FAVORITES_DATABASE_DRIVER", "mysql")
	t.Setenv("FAVORITES_CONSUL_ADDRESS", "consul:8500")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.HTTPPort)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, "host=localhost user=app dbname=favorites", cfg.Database.URL)
	assert.True(t, cfg.Database.Seed)
	assert.Equal(t, "consul:8500", cfg.Consul.Address)
}

func TestLoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("http_port: [unclosed"), 0o600))

	_, err := Load(dir)
	assert.Error(t, err)
}

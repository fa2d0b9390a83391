package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/storefront/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.LoadWithEnv("", nil)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storefront.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
log_level: debug
addr: ":9090"
store:
  kind: redis
  redis_addr: cache:6379
  ttl: 24h
catalog:
  file: plants.yaml
`), 0o644))

	cfg, err := config.LoadWithEnv(path, []string{
		"STOREFRONT_ADDR=:7070",
		"STOREFRONT_STORE_REDIS_DB=2",
		"STOREFRONT_STORE_LOCK_TTL=5s",
		"STOREFRONT_METRICS_ENABLED=false",
		"HOME=/root",
	})
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, ":7070", cfg.Addr, "env overrides file")
	assert.False(t, cfg.MetricsEnabled)
	assert.Equal(t, config.StoreRedis, cfg.Store.Kind)
	assert.Equal(t, "cache:6379", cfg.Store.RedisAddr)
	assert.Equal(t, 2, cfg.Store.RedisDB)
	assert.Equal(t, 24*time.Hour, cfg.Store.TTL)
	assert.Equal(t, 5*time.Second, cfg.Store.LockTTL)
	assert.Equal(t, "plants.yaml", cfg.Catalog.File)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		file string
		env  []string
	}{
		{"unknown store", "", []string{"STOREFRONT_STORE_KIND=postgres"}},
		{"bad level", "", []string{"STOREFRONT_LOG_LEVEL=loud"}},
		{"bad duration", "", []string{"STOREFRONT_STORE_TTL=forever"}},
		{"unknown key", "colour: green\n", nil},
		{"both catalogs", "catalog:\n  file: a.yaml\n  dir: plants\n", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := ""
			if tt.file != "" {
				path = filepath.Join(t.TempDir(), "c.yaml")
				require.NoError(t, os.WriteFile(path, []byte(tt.file), 0o644))
			}
			_, err := config.LoadWithEnv(path, tt.env)
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.LoadWithEnv(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	assert.Error(t, err)
}

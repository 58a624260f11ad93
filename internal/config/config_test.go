package config_test

import (
	"testing"
	"time"

	"wallcraft/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PEXELS_API_KEY", "key")
	t.Setenv("HOME", "/home/wall")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "https://api.pexels.com/v1", cfg.PexelsBaseURL)
	assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, config.DriverSQLite, cfg.StorageDriver)
	assert.Equal(t, "/home/wall/.wallcraft/wallcraft.db", cfg.SQLitePath)
	assert.Equal(t, "/home/wall/Pictures/Wallcraft", cfg.GalleryDir)
	assert.Equal(t, []string{"http://localhost:8081"}, cfg.AllowedOrigins)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PEXELS_API_KEY", "key")
	t.Setenv("STORAGE_DRIVER", "redis")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("SQLITE_PATH", "/tmp/x.db")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.DriverRedis, cfg.StorageDriver)
	assert.Equal(t, "/tmp/x.db", cfg.SQLitePath)
	assert.Len(t, cfg.AllowedOrigins, 2)
}

func TestLoad_MissingAPIKey(t *testing.T) {
	t.Setenv("PEXELS_API_KEY", "")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_UnknownDriver(t *testing.T) {
	t.Setenv("PEXELS_API_KEY", "key")
	t.Setenv("STORAGE_DRIVER", "floppy")

	_, err := config.Load()
	assert.ErrorContains(t, err, "floppy")
}

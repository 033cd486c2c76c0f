package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_PORT", "")
	t.Setenv("STORAGE_STRATEGY", "")
	t.Setenv("MAX_UPLOAD_SIZE", "")
	t.Setenv("CACHE_ENABLED", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3004", cfg.App.Port)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, StrategyInlineBase64, cfg.Storage.Strategy)
	assert.Equal(t, "./uploads", cfg.Storage.UploadDir)
	assert.Equal(t, int64(5*1024*1024), cfg.Storage.MaxUploadSize)
	assert.False(t, cfg.Redis.Enabled)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "8080")
	t.Setenv("STORAGE_STRATEGY", StrategyDisk)
	t.Setenv("UPLOAD_DIR", "/srv/uploads")
	t.Setenv("MAX_UPLOAD_SIZE", "1048576")
	t.Setenv("CACHE_ENABLED", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, StrategyDisk, cfg.Storage.Strategy)
	assert.Equal(t, "/srv/uploads", cfg.Storage.UploadDir)
	assert.Equal(t, int64(1048576), cfg.Storage.MaxUploadSize)
	assert.True(t, cfg.Redis.Enabled)
}

func TestLoadRejectsUnknownStrategy(t *testing.T) {
	t.Setenv("STORAGE_STRATEGY", "carrier-pigeon")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Storage: StorageConfig{
				Strategy:      StrategyInlineBase64,
				UploadDir:     "./uploads",
				MaxUploadSize: 1024,
			},
		}
	}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, base().Validate())
	})

	t.Run("non-positive upload size", func(t *testing.T) {
		cfg := base()
		cfg.Storage.MaxUploadSize = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("disk strategy needs a directory", func(t *testing.T) {
		cfg := base()
		cfg.Storage.Strategy = StrategyDisk
		cfg.Storage.UploadDir = ""
		assert.Error(t, cfg.Validate())
	})
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("SOME_INT", "not a number")
	assert.Equal(t, 7, getEnvInt("SOME_INT", 7), "unparseable values fall back to the default")

	t.Setenv("SOME_INT", "42")
	assert.Equal(t, 42, getEnvInt("SOME_INT", 7))
}

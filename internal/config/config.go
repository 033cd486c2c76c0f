package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the whole application configuration.
// Populated once from environment variables at startup; no hot reload.
type Config struct {
	App     AppConfig
	Redis   RedisConfig
	Storage StorageConfig
	MinIO   MinIOConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Password string
	DB       int
}

// StorageConfig selects how uploaded subject images are persisted.
// Exactly one strategy is active per deployment.
type StorageConfig struct {
	Strategy      string // inline_base64, inline_binary, disk, minio
	UploadDir     string // disk strategy only
	MaxUploadSize int64  // bytes
}

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// Storage strategy names.
const (
	StrategyInlineBase64 = "inline_base64"
	StrategyInlineBinary = "inline_binary"
	StrategyDisk         = "disk"
	StrategyMinIO        = "minio"
)

// Load reads config from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Subjectstore API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "3004"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Redis: RedisConfig{
			Enabled:  getEnvBool("CACHE_ENABLED", false),
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Storage: StorageConfig{
			Strategy:      getEnv("STORAGE_STRATEGY", StrategyInlineBase64),
			UploadDir:     getEnv("UPLOAD_DIR", "./uploads"),
			MaxUploadSize: int64(getEnvInt("MAX_UPLOAD_SIZE", 5*1024*1024)),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
			Bucket:    getEnv("MINIO_BUCKET", "subjectstore"),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks the config is usable before the container comes up.
func (c *Config) Validate() error {
	switch c.Storage.Strategy {
	case StrategyInlineBase64, StrategyInlineBinary, StrategyDisk, StrategyMinIO:
	default:
		return fmt.Errorf("unknown STORAGE_STRATEGY %q", c.Storage.Strategy)
	}

	if c.Storage.MaxUploadSize <= 0 {
		return fmt.Errorf("MAX_UPLOAD_SIZE must be positive (got %d)", c.Storage.MaxUploadSize)
	}

	if c.Storage.Strategy == StrategyDisk && c.Storage.UploadDir == "" {
		return fmt.Errorf("UPLOAD_DIR must be set for the disk strategy")
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

type Config struct {
	Linear LinearConfig
	Media  MediaConfig
	OTel   OTelConfig
	Env    string
}

type LinearConfig struct {
	// APIKey is the bearer token used for every tracker call. Required.
	APIKey string
	// BaseURL overrides the GraphQL endpoint. Empty means the public API.
	BaseURL string
}

type MediaConfig struct {
	// CacheDir holds downloaded attachment images for the life of the
	// process. Defaults to a fixed directory under the OS temp dir.
	CacheDir string
}

type OTelConfig struct {
	Endpoint       string
	Headers        string
	ServiceName    string
	ServiceVersion string
}

// Load loads configuration from environment variables. In development it
// also reads a .env file when one is present.
func Load() (Config, error) {
	if getEnv("LINEAR_MCP_ENV", "development") == "development" {
		_ = godotenv.Load(".env")
	}

	cfg := Config{
		Env: getEnv("LINEAR_MCP_ENV", "development"),
		Linear: LinearConfig{
			APIKey:  getEnv("LINEAR_API_KEY", ""),
			BaseURL: getEnv("LINEAR_API_URL", ""),
		},
		Media: MediaConfig{
			CacheDir: getEnv("MEDIA_CACHE_DIR", filepath.Join(os.TempDir(), "linear-mcp-images")),
		},
		OTel: OTelConfig{
			Endpoint:       getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			Headers:        getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""),
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "linear-mcp"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "dev"),
		},
	}

	if cfg.Linear.APIKey == "" {
		return Config{}, fmt.Errorf("LINEAR_API_KEY is required")
	}

	return cfg, nil
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c OTelConfig) Enabled() bool {
	return c.Endpoint != ""
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

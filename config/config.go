package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config is the process-wide configuration surface, generalizing the
// teacher's Config/Load/Validate pattern (config/config.go) to this
// service's own collaborators (draft store, relational store, asset
// lookup, commit auth, CORS).
type Config struct {
	Server   ServerConfig
	Redis    RedisConfig
	Postgres PostgresConfig
	Assets   AssetsConfig
	Draft    DraftConfig
	Commit   CommitConfig
	App      AppConfig
}

type ServerConfig struct {
	Host string
	Port string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type PostgresConfig struct {
	DSN      string
	MaxConns int32
}

// AssetsConfig points at the external asset-metadata service used to
// resolve a draft's logo asset ID to a URL and checksum.
type AssetsConfig struct {
	BaseURL string
}

type DraftConfig struct {
	DefaultTTLSeconds int
}

// CommitConfig carries the shared secret that gates POST .../commit, plus
// the set of origins the CORS middleware allows.
type CommitConfig struct {
	InternalToken  string
	AllowedOrigins []string
}

type AppConfig struct {
	Environment string
	LogLevel    string
	Version     string
	ServiceName string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("HOST", "0.0.0.0"),
			Port: getEnv("PORT", "8080"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Postgres: PostgresConfig{
			DSN:      getEnv("DATABASE_DSN", ""),
			MaxConns: int32(getEnvAsInt("DATABASE_MAX_CONNS", 10)),
		},
		Assets: AssetsConfig{
			BaseURL: getEnv("ASSET_STORE_BASE_URL", ""),
		},
		Draft: DraftConfig{
			DefaultTTLSeconds: getEnvAsInt("DRAFT_DEFAULT_TTL_SECONDS", 86400),
		},
		Commit: CommitConfig{
			InternalToken:  getEnv("COMMIT_INTERNAL_TOKEN", ""),
			AllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", nil),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			Version:     getEnv("APP_VERSION", "dev"),
			ServiceName: getEnv("SERVICE_NAME", "draftsvc"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if c.Redis.Addr == "" {
		return fmt.Errorf("REDIS_ADDR is required")
	}
	if c.Postgres.DSN == "" {
		return fmt.Errorf("DATABASE_DSN is required")
	}
	if c.Commit.InternalToken == "" {
		return fmt.Errorf("COMMIT_INTERNAL_TOKEN is required")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}
	return value
}

// getEnvAsList parses a comma-separated env var into a trimmed, non-empty
// slice. An unset or empty var yields defaultValue (typically nil, which
// BuildRouter treats as "CORS disabled").
func getEnvAsList(key string, defaultValue []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

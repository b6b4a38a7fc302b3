package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Store kinds accepted by PICKLIST_STORE.
const (
	StoreJSON   = "json"
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

// Config keeps runtime settings.
type Config struct {
	Store       string
	DataDir     string
	SQLiteDSN   string
	RedisURL    string
	RedisPrefix string
	AuthDelay   time.Duration
	Theme       string
	LogFile     string
	Debug       bool
}

// Load reads configuration from environment variables with sane defaults.
func Load() (Config, error) {
	cfg := Config{
		Store:       strings.ToLower(strings.TrimSpace(os.Getenv("PICKLIST_STORE"))),
		DataDir:     strings.TrimSpace(os.Getenv("PICKLIST_DATA_DIR")),
		SQLiteDSN:   strings.TrimSpace(os.Getenv("PICKLIST_SQLITE_DSN")),
		RedisURL:    strings.TrimSpace(os.Getenv("PICKLIST_REDIS_URL")),
		RedisPrefix: os.Getenv("PICKLIST_REDIS_PREFIX"),
		Theme:       strings.TrimSpace(os.Getenv("PICKLIST_THEME")),
		LogFile:     strings.TrimSpace(os.Getenv("PICKLIST_LOG_FILE")),
		AuthDelay:   time.Second,
	}

	if raw := strings.TrimSpace(os.Getenv("DEBUG")); raw != "" {
		dbg, err := strconv.ParseBool(raw)
		if err != nil {
			return cfg, fmt.Errorf("invalid DEBUG: %w", err)
		}
		cfg.Debug = dbg
	}

	if raw := strings.TrimSpace(os.Getenv("PICKLIST_AUTH_DELAY")); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d < 0 {
			return cfg, fmt.Errorf("invalid PICKLIST_AUTH_DELAY %q", raw)
		}
		cfg.AuthDelay = d
	}

	if cfg.Store == "" {
		cfg.Store = StoreJSON
	}
	if cfg.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, fmt.Errorf("home: %w", err)
		}
		cfg.DataDir = filepath.Join(home, ".picklist")
	}
	if cfg.RedisURL == "" {
		cfg.RedisURL = "redis://localhost:6379/0"
	}
	if _, ok := os.LookupEnv("PICKLIST_REDIS_PREFIX"); !ok {
		cfg.RedisPrefix = "picklist:"
	}

	return cfg, cfg.Validate()
}

// Validate checks settings that flags may have overridden after Load.
func (c *Config) Validate() error {
	switch c.Store {
	case StoreJSON, StoreSQLite, StoreRedis, StoreMemory:
	default:
		return fmt.Errorf("unknown store %q (want json, sqlite, redis or memory)", c.Store)
	}
	if c.Store == StoreJSON && c.DataDir == "" {
		return fmt.Errorf("json store needs a data dir")
	}
	return nil
}

// DSN is the SQLite location, defaulting into the data dir.
func (c Config) DSN() string {
	if c.SQLiteDSN != "" {
		return c.SQLiteDSN
	}
	return filepath.Join(c.DataDir, "picklist.db")
}

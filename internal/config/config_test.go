package config

import (
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{
		"PICKLIST_STORE", "PICKLIST_DATA_DIR", "PICKLIST_SQLITE_DSN", "PICKLIST_REDIS_URL",
		"PICKLIST_AUTH_DELAY", "PICKLIST_THEME", "PICKLIST_LOG_FILE", "DEBUG",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Store != StoreJSON {
		t.Errorf("store = %q", cfg.Store)
	}
	if cfg.DataDir != filepath.Join(home, ".picklist") {
		t.Errorf("data dir = %q", cfg.DataDir)
	}
	if cfg.AuthDelay != time.Second {
		t.Errorf("delay = %v", cfg.AuthDelay)
	}
	if cfg.RedisURL != "redis://localhost:6379/0" {
		t.Errorf("redis url = %q", cfg.RedisURL)
	}
	if cfg.DSN() != filepath.Join(home, ".picklist", "picklist.db") {
		t.Errorf("dsn = %q", cfg.DSN())
	}
	if cfg.Debug {
		t.Error("debug should default to false")
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PICKLIST_STORE", "SQLite")
	t.Setenv("PICKLIST_DATA_DIR", "/tmp/pl")
	t.Setenv("PICKLIST_SQLITE_DSN", "file:x.db")
	t.Setenv("PICKLIST_AUTH_DELAY", "250ms")
	t.Setenv("PICKLIST_REDIS_PREFIX", "")
	t.Setenv("DEBUG", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Store != StoreSQLite || cfg.DataDir != "/tmp/pl" || cfg.DSN() != "file:x.db" {
		t.Fatalf("unexpected %#v", cfg)
	}
	if cfg.AuthDelay != 250*time.Millisecond || !cfg.Debug {
		t.Fatalf("unexpected %#v", cfg)
	}
	if cfg.RedisPrefix != "" {
		t.Fatalf("explicit empty prefix not honoured: %q", cfg.RedisPrefix)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"PICKLIST_STORE":      "postgres",
		"PICKLIST_AUTH_DELAY": "-1s",
		"DEBUG":               "sometimes",
	}
	for k, v := range cases {
		t.Run(k, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("PICKLIST_DATA_DIR", t.TempDir())
			t.Setenv(k, v)
			if _, err := Load(); err == nil {
				t.Fatalf("%s=%s accepted", k, v)
			}
		})
	}
}

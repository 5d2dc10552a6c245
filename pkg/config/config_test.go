package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const minimalYAML = `
environment: test
auth:
  secret: s3cret
  login_burst: 5
  login_interval: 2s
feed:
  tick_interval: 250ms
sqlite:
  path: test.db
redis:
  addr: localhost:6379
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadParsesDurations(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := cfg.Feed.TickInterval.D(); got != 250*time.Millisecond {
		t.Fatalf("tick_interval = %s, want 250ms", got)
	}
	if got := cfg.Auth.LoginInterval.D(); got != 2*time.Second {
		t.Fatalf("login_interval = %s, want 2s", got)
	}
}

func TestLoadRejectsBareDurationNumbers(t *testing.T) {
	body := minimalYAML + "accuracy:\n  cache_ttl: 30\n"
	if _, err := Load(writeConfig(t, body)); err == nil {
		t.Fatalf("expected error for duration without unit")
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	body := minimalYAML + "sqlitee:\n  path: oops\n"
	if _, err := Load(writeConfig(t, body)); err == nil {
		t.Fatalf("expected error for unknown key")
	}
}

func TestValidateRequiresSecret(t *testing.T) {
	var c Config
	c.Environment = "test"
	c.SQLite.Path = "test.db"
	c.Redis.Addr = "localhost:6379"
	if err := c.Validate(); err == nil {
		t.Fatalf("expected missing secret to fail validation")
	}
}

func TestTickIntervalDefault(t *testing.T) {
	var c Config
	if got := c.TickInterval(); got != 5*time.Second {
		t.Fatalf("default tick interval = %s, want 5s", got)
	}
	c.Feed.TickInterval = Duration(time.Second)
	if got := c.TickInterval(); got != time.Second {
		t.Fatalf("tick interval = %s, want 1s", got)
	}
}

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	for key := range envKeys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	t.Setenv(ConfigPathEnvVar, "")
}

func TestLoadDefaultsWithMemoryStore(t *testing.T) {
	isolate(t)
	t.Setenv("STORE_DRIVER", "memory")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.ServiceName != "beastypage" || cfg.Addr() != ":8080" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.SlugMaxAttempts != 6 || cfg.RateLimitWindow != time.Minute {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}

func TestLoadRequiresDSNForPostgres(t *testing.T) {
	isolate(t)

	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "POSTGRES_DSN") {
		t.Fatalf("expected dsn error, got %v", err)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "beastypage.yaml")
	body := "store_driver: memory\nhttp_port: \"9000\"\nlog_format: text\nrate_limit_window: 30s\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config failed: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("HTTP_PORT", ":7000")
	t.Setenv("SLUG_MAX_ATTEMPTS", "9")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Addr() != ":7000" {
		t.Fatalf("expected env port, got %q", cfg.Addr())
	}
	if cfg.LogFormat != "text" || cfg.RateLimitWindow != 30*time.Second {
		t.Fatalf("expected file values, got %+v", cfg)
	}
	if cfg.SlugMaxAttempts != 9 {
		t.Fatalf("expected env attempts, got %d", cfg.SlugMaxAttempts)
	}
}

func TestValidateRejectsUnknownValues(t *testing.T) {
	cfg := defaultConfig()
	cfg.StoreDriver = "redis"
	cfg.LogFormat = "xml"
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"STORE_DRIVER", "LOG_FORMAT"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected %s in %v", want, err)
		}
	}
}

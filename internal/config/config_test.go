package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{"PORT", "SETTINGS_FILE", "LOG_LEVEL", "METRICS_ENABLED", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST"} {
		t.Setenv(name, "")
	}
}

func writeConfigFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Port != defaultPort {
		t.Fatalf("expected default port %s, got %s", defaultPort, cfg.Port)
	}
	if cfg.SettingsFile != "" {
		t.Fatalf("expected no settings file, got %q", cfg.SettingsFile)
	}
	if !cfg.MetricsEnabled {
		t.Fatalf("expected metrics enabled by default")
	}
	if cfg.ShutdownGracePeriod != 10*time.Second {
		t.Fatalf("unexpected shutdown grace period: %s", cfg.ShutdownGracePeriod)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("SETTINGS_FILE", "/etc/studio/settings.yaml")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("METRICS_ENABLED", "false")
	t.Setenv("RATE_LIMIT_RPS", "5")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Port != "9000" {
		t.Fatalf("expected overridden port, got %s", cfg.Port)
	}
	if cfg.SettingsFile != "/etc/studio/settings.yaml" {
		t.Fatalf("unexpected settings file %q", cfg.SettingsFile)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("unexpected log level %q", cfg.LogLevel)
	}
	if cfg.MetricsEnabled {
		t.Fatalf("expected metrics disabled")
	}
	if cfg.RateLimitRPS != 5 {
		t.Fatalf("unexpected rate limit %v", cfg.RateLimitRPS)
	}
}

func TestLoadRejectsInvalidMetricsFlag(t *testing.T) {
	clearEnv(t)
	t.Setenv("METRICS_ENABLED", "sometimes")

	if _, err := Load(nil); err == nil {
		t.Fatalf("expected error for invalid METRICS_ENABLED")
	}
}

func TestLoadPrecedence(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "7000")
	t.Setenv("SETTINGS_FILE", "from-env.yaml")

	path := writeConfigFile(t, `
port: "7100"
settings_file: from-yaml.yaml
write_timeout: 3s
enable_request_logging: false
rate_limit:
  rps: 0
  burst: 0
`)

	port := "7200"
	cfg, err := Load(&CLIOverrides{ConfigFile: path, Port: &port})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Port != "7200" {
		t.Fatalf("expected CLI port to win, got %s", cfg.Port)
	}
	if cfg.SettingsFile != "from-yaml.yaml" {
		t.Fatalf("expected YAML settings file to win over env, got %s", cfg.SettingsFile)
	}
	if cfg.WriteTimeout != 3*time.Second {
		t.Fatalf("unexpected write timeout %s", cfg.WriteTimeout)
	}
	if cfg.EnableRequestLogging {
		t.Fatalf("expected request logging disabled by YAML")
	}
	if cfg.RateLimitRPS != 0 || cfg.RateLimitBurst != 0 {
		t.Fatalf("expected rate limit disabled, got %v/%d", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
	if cfg.ReadHeaderTimeout != 5*time.Second {
		t.Fatalf("expected untouched read header timeout, got %s", cfg.ReadHeaderTimeout)
	}
}

func TestLoadYAMLErrors(t *testing.T) {
	clearEnv(t)

	t.Run("missing file", func(t *testing.T) {
		if _, err := Load(&CLIOverrides{ConfigFile: filepath.Join(t.TempDir(), "nope.yaml")}); err == nil {
			t.Fatalf("expected error for missing file")
		}
	})

	t.Run("bad duration", func(t *testing.T) {
		path := writeConfigFile(t, "idle_timeout: forever\n")
		if _, err := Load(&CLIOverrides{ConfigFile: path}); err == nil {
			t.Fatalf("expected error for invalid duration")
		}
	})

	t.Run("negative rate limit", func(t *testing.T) {
		path := writeConfigFile(t, "rate_limit:\n  rps: -1\n")
		if _, err := Load(&CLIOverrides{ConfigFile: path}); err == nil {
			t.Fatalf("expected validation error")
		}
	})
}

package config

import (
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.DataBackend != BackendAuto {
		t.Errorf("DataBackend = %q, want %q", cfg.DataBackend, BackendAuto)
	}
	if cfg.AMQPExchange != "gastos" {
		t.Errorf("AMQPExchange = %q, want gastos", cfg.AMQPExchange)
	}
	if cfg.AMQPQueue != "expense_events" {
		t.Errorf("AMQPQueue = %q, want expense_events", cfg.AMQPQueue)
	}
	if cfg.AppEnv != "development" {
		t.Errorf("AppEnv = %q, want development", cfg.AppEnv)
	}
	if cfg.ShutdownTimeout != 30*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 30s", cfg.ShutdownTimeout)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATA_BACKEND", BackendPostgres)
	t.Setenv("POSTGRES_URL", "postgres://localhost/gastos")
	t.Setenv("APP_ENV", "production")

	cfg := Load()

	if cfg.Port != "9000" {
		t.Errorf("Port = %q, want 9000", cfg.Port)
	}
	if cfg.DataBackend != BackendPostgres {
		t.Errorf("DataBackend = %q, want postgres", cfg.DataBackend)
	}
	if cfg.PostgresURL != "postgres://localhost/gastos" {
		t.Errorf("PostgresURL = %q", cfg.PostgresURL)
	}
	if !cfg.Production() {
		t.Error("Production() = false, want true")
	}
}

func TestPostgresURLFallsBackToDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://fallback/gastos")

	cfg := Load()
	if cfg.PostgresURL != "postgres://fallback/gastos" {
		t.Errorf("PostgresURL = %q, want the DATABASE_URL value", cfg.PostgresURL)
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Port:            "8080",
			ShutdownTimeout: 30 * time.Second,
			DataBackend:     BackendSQLite,
			SQLiteDBPath:    filepath.Join(t.TempDir(), "gastos.db"),
			AMQPExchange:    "gastos",
			AMQPQueue:       "expense_events",
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"bad port", func(c *Config) { c.Port = "http" }, "invalid port"},
		{"port out of range", func(c *Config) { c.Port = "70000" }, "invalid port"},
		{"unknown backend", func(c *Config) { c.DataBackend = "mysql" }, "invalid data backend"},
		{"postgres without url", func(c *Config) { c.DataBackend = BackendPostgres }, "POSTGRES_URL is required"},
		{"bad amqp scheme", func(c *Config) { c.AMQPURL = "http://localhost" }, "invalid AMQP URL scheme"},
		{"amqp without queue", func(c *Config) { c.AMQPURL = "amqp://localhost"; c.AMQPQueue = "" }, "queue name cannot be empty"},
		{"tiny shutdown timeout", func(c *Config) { c.ShutdownTimeout = time.Millisecond }, "invalid shutdown timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"charity-fund-backend/internal/infrastructure/db"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"APP_ENV", "APP_PORT", "DB_DRIVER", "MYSQL_HOST", "MYSQL_PORT", "MYSQL_DB", "MYSQL_USER", "MYSQL_PASS",
		"SQLITE_PATH", "REDIS_ADDR", "REDIS_DB", "IDEMPOTENCY_TTL_SECONDS", "ALLOCATION_LOCK_TTL_SECONDS",
		"SHUTDOWN_TIMEOUT_SECONDS",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	c := Load(filepath.Join(t.TempDir(), "missing.env"))

	if c.AppPort != "8080" || c.DBDriver != db.DriverMySQL || c.AppEnv != "production" {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if c.RedisAddr != "" {
		t.Fatalf("redis must be off by default, got %q", c.RedisAddr)
	}
	if c.IdempotencyTTL() != 300*time.Second || c.LockTTL() != 30*time.Second || c.ShutdownTimeout != 10*time.Second {
		t.Fatalf("unexpected durations: %+v", c)
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestLoad_DotEnvFileDoesNotOverrideEnvironment(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	content := "DB_DRIVER=SQLite\nSQLITE_PATH=/tmp/x.db\nAPP_PORT=9000\nREDIS_DB=2\nIDEMPOTENCY_TTL_SECONDS=oops\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("APP_PORT", "7000")

	c := Load(path)
	if c.DBDriver != db.DriverSQLite || c.SQLitePath != "/tmp/x.db" || c.RedisDB != 2 {
		t.Fatalf("file values not applied: %+v", c)
	}
	if c.AppPort != "7000" {
		t.Fatalf("environment must win, got APP_PORT=%s", c.AppPort)
	}
	if c.IdempTTLSecs != 300 {
		t.Fatalf("bad int falls back to default, got %d", c.IdempTTLSecs)
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			AppPort: "8080", DBDriver: db.DriverMySQL,
			MySQLHost: "h", MySQLPort: "3306", MySQLDB: "d", MySQLUser: "u",
			SQLitePath: "f.db", IdempTTLSecs: 1, LockTTLSecs: 1,
		}
	}
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"ok mysql", func(*Config) {}, ""},
		{"ok sqlite", func(c *Config) { c.DBDriver = db.DriverSQLite; c.MySQLHost = "" }, ""},
		{"no port", func(c *Config) { c.AppPort = "" }, "APP_PORT"},
		{"unknown driver", func(c *Config) { c.DBDriver = "postgres" }, "DB_DRIVER"},
		{"mysql missing host", func(c *Config) { c.MySQLHost = "" }, "MySQL"},
		{"mysql bad port", func(c *Config) { c.MySQLPort = "not-a-port" }, "MYSQL_PORT"},
		{"sqlite no path", func(c *Config) { c.DBDriver = db.DriverSQLite; c.SQLitePath = "" }, "SQLITE_PATH"},
		{"zero idempotency ttl", func(c *Config) { c.IdempTTLSecs = 0 }, "IDEMPOTENCY_TTL_SECONDS"},
		{"zero lock ttl", func(c *Config) { c.LockTTLSecs = -1 }, "ALLOCATION_LOCK_TTL_SECONDS"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("want error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestDSN(t *testing.T) {
	c := &Config{
		DBDriver:  db.DriverMySQL,
		MySQLHost: "db", MySQLPort: "3307", MySQLDB: "fund", MySQLUser: "u", MySQLPass: "p",
		SQLitePath: "data/fund.db",
	}
	if got := c.DSN(); got != "u:p@tcp(db:3307)/fund?parseTime=true&loc=UTC&charset=utf8mb4" {
		t.Fatalf("mysql dsn = %q", got)
	}
	c.DBDriver = db.DriverSQLite
	if got := c.DSN(); !strings.HasPrefix(got, "file:data/fund.db?") {
		t.Fatalf("sqlite dsn = %q", got)
	}
}

func TestDevelopment(t *testing.T) {
	for env, want := range map[string]bool{"development": true, "production": false, "": false} {
		if got := (&Config{AppEnv: env}).Development(); got != want {
			t.Fatalf("Development(%q) = %v, want %v", env, got, want)
		}
	}
}

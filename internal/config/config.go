package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"charity-fund-backend/internal/infrastructure/db"
)

type Config struct {
	AppEnv  string
	AppPort string

	DBDriver string

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	SQLitePath string

	// Empty RedisAddr runs without Redis: in-process locks, no idempotency.
	RedisAddr string
	RedisDB   int

	IdempTTLSecs    int
	LockTTLSecs     int
	ShutdownTimeout time.Duration
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getenvInt(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

// Load reads the environment, after applying .env and .env.local when present.
// Variables already set in the environment win over the files.
func Load(files ...string) *Config {
	if len(files) == 0 {
		files = []string{".env", ".env.local"}
	}
	for _, f := range files {
		_ = godotenv.Load(f)
	}

	return &Config{
		AppEnv:   getenv("APP_ENV", "production"),
		AppPort:  getenv("APP_PORT", "8080"),
		DBDriver: strings.ToLower(getenv("DB_DRIVER", db.DriverMySQL)),

		MySQLHost: getenv("MYSQL_HOST", "mysql"),
		MySQLPort: getenv("MYSQL_PORT", "3306"),
		MySQLDB:   getenv("MYSQL_DB", "charity_fund"),
		MySQLUser: getenv("MYSQL_USER", "charity_fund"),
		MySQLPass: getenv("MYSQL_PASS", "charity_fund"),

		SQLitePath: getenv("SQLITE_PATH", "charity_fund.db"),

		RedisAddr: os.Getenv("REDIS_ADDR"),
		RedisDB:   getenvInt("REDIS_DB", 0),

		IdempTTLSecs:    getenvInt("IDEMPOTENCY_TTL_SECONDS", 300),
		LockTTLSecs:     getenvInt("ALLOCATION_LOCK_TTL_SECONDS", 30),
		ShutdownTimeout: time.Duration(getenvInt("SHUTDOWN_TIMEOUT_SECONDS", 10)) * time.Second,
	}
}

func (c *Config) Validate() error {
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	switch c.DBDriver {
	case db.DriverMySQL:
		if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
			return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
		}
		if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
			return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
		}
	case db.DriverSQLite:
		if c.SQLitePath == "" {
			return errors.New("missing SQLITE_PATH")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (want mysql or sqlite)", c.DBDriver)
	}
	if c.IdempTTLSecs <= 0 {
		return fmt.Errorf("IDEMPOTENCY_TTL_SECONDS must be positive, got %d", c.IdempTTLSecs)
	}
	if c.LockTTLSecs <= 0 {
		return fmt.Errorf("ALLOCATION_LOCK_TTL_SECONDS must be positive, got %d", c.LockTTLSecs)
	}
	return nil
}

func (c *Config) Development() bool { return c.AppEnv == "development" }

func (c *Config) IdempotencyTTL() time.Duration {
	return time.Duration(c.IdempTTLSecs) * time.Second
}

func (c *Config) LockTTL() time.Duration { return time.Duration(c.LockTTLSecs) * time.Second }

// DSN returns the connection string for the selected driver.
func (c *Config) DSN() string {
	if c.DBDriver == db.DriverSQLite {
		return c.SQLiteDSN()
	}
	return c.MySQLDSN()
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// parseTime needed for DATETIME; loc=UTC keeps create/close dates in UTC
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&loc=UTC&charset=utf8mb4",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}

func (c *Config) SQLiteDSN() string {
	// busy_timeout covers a second process on the same file
	return "file:" + c.SQLitePath + "?_busy_timeout=5000&_foreign_keys=1"
}

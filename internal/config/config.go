// Package config resolves settings from flags, the environment and an
// optional .env file, in that order of precedence.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

const (
	StoreMemory   = "memory"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
)

type Postgres struct {
	Host     string
	Port     string
	User     string
	Password string
	DB       string
}

type Config struct {
	Addr              string
	StoreDriver       string
	StoreDSN          string
	Postgres          Postgres
	RedisURL          string
	RedisPrefix       string
	VotesKey          string
	CommentsKey       string
	LogLevel          string
	LogFormat         string
	CORSOrigins       []string
	VoteRatePerMinute int
	TrustProxy        bool
}

// Bind loads .env when present and registers every setting on fs, using the
// environment as flag defaults. Call Resolve after fs.Parse.
func Bind(fs *pflag.FlagSet) *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	fs.StringVar(&cfg.Addr, "addr", getEnv("APP_ADDR", "0.0.0.0:8080"), "HTTP listen address")
	fs.StringVar(&cfg.StoreDriver, "store", getEnv("STORE_DRIVER", StoreSQLite), "storage backend: memory, sqlite, postgres or redis")
	fs.StringVar(&cfg.StoreDSN, "dsn", getEnv("STORE_DSN", ""), "database DSN (sqlite file or postgres URL)")
	fs.StringVar(&cfg.Postgres.Host, "db-host", getEnv("POSTGRES_HOST", "localhost"), "Database host")
	fs.StringVar(&cfg.Postgres.Port, "db-port", getEnv("POSTGRES_PORT", "5432"), "Database port")
	fs.StringVar(&cfg.Postgres.User, "db-user", getEnv("POSTGRES_USER", ""), "Database user")
	fs.StringVar(&cfg.Postgres.Password, "db-pass", getEnv("POSTGRES_PASSWORD", ""), "Database password")
	fs.StringVar(&cfg.Postgres.DB, "db-name", getEnv("POSTGRES_DB", ""), "Database name")
	fs.StringVar(&cfg.RedisURL, "redis-url", getEnv("REDIS_URL", "redis://localhost:6379/0"), "Redis URL")
	fs.StringVar(&cfg.RedisPrefix, "redis-prefix", getEnv("REDIS_PREFIX", "tamaire:"), "prefix for Redis keys")
	fs.StringVar(&cfg.VotesKey, "votes-key", getEnv("VOTES_KEY", "votes"), "storage key of the vote collection")
	fs.StringVar(&cfg.CommentsKey, "comments-key", getEnv("COMMENTS_KEY", "comments"), "storage key of the comment collection")
	fs.StringVar(&cfg.LogLevel, "log-level", getEnv("LOG_LEVEL", "info"), "debug, info, warn or error")
	fs.StringVar(&cfg.LogFormat, "log-format", getEnv("LOG_FORMAT", "text"), "text or json")
	fs.StringSliceVar(&cfg.CORSOrigins, "cors-origins", splitList(getEnv("CORS_ORIGINS", "*")), "allowed CORS origins")
	fs.IntVar(&cfg.VoteRatePerMinute, "vote-rate", getEnvInt("VOTE_RATE_PER_MINUTE", 30), "votes and comments allowed per client per minute")
	fs.BoolVar(&cfg.TrustProxy, "trust-proxy", getEnvBool("TRUST_PROXY", false), "take client addresses from X-Forwarded-For")
	return cfg
}

// Load parses args for the server binary.
func Load(args []string) (Config, error) {
	fs := pflag.NewFlagSet("tamaire", pflag.ContinueOnError)
	cfg := Bind(fs)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if err := cfg.Resolve(); err != nil {
		return Config{}, err
	}
	return *cfg, nil
}

// Resolve validates the parsed values and fills the DSN for SQL backends.
func (c *Config) Resolve() error {
	c.StoreDriver = strings.ToLower(strings.TrimSpace(c.StoreDriver))
	switch c.StoreDriver {
	case StoreMemory, StoreRedis:
	case StoreSQLite:
		if c.StoreDSN == "" {
			c.StoreDSN = "tamaire.db"
		}
	case StorePostgres:
		if c.StoreDSN == "" {
			if c.Postgres.User == "" || c.Postgres.DB == "" {
				return fmt.Errorf("postgres store requires STORE_DSN or POSTGRES_USER and POSTGRES_DB")
			}
			c.StoreDSN = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
				c.Postgres.User, c.Postgres.Password, c.Postgres.Host, c.Postgres.Port, c.Postgres.DB)
		}
	default:
		return fmt.Errorf("unknown store driver %q", c.StoreDriver)
	}

	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	if c.VoteRatePerMinute <= 0 {
		return fmt.Errorf("vote rate must be positive, got %d", c.VoteRatePerMinute)
	}
	return nil
}

func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// Logger builds the process logger. Call after Resolve.
func (c Config) Logger(w io.Writer) *slog.Logger {
	level, _ := c.SlogLevel()
	opts := &slog.HandlerOptions{Level: level}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

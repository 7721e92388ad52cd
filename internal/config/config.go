package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// Config stores service settings.
type Config struct {
	Port      int
	Log       Log
	Store     Store
	DB        DB
	Redis     Redis
	Kafka     Kafka
	RateLimit RateLimit
	CORS      CORS
	Pprof     PprofConfig
}

// Log configures the service logger.
type Log struct {
	Level  string
	Format string
}

// Store selects the persistence backend.
type Store struct {
	Driver     string
	Timeout    time.Duration
	SQLitePath string
	SeedFile   string
}

// DB holds Postgres connection settings, used when Store.Driver is "postgres".
type DB struct {
	Host string
	Port string
	User string
	Pass string
	Name string
}

// DSN returns the connection string.
func (d DB) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Pass),
		Host:     d.Host + ":" + d.Port,
		Path:     d.Name,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// Redis holds Redis settings, used when Store.Driver is "redis".
type Redis struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// Kafka configures the lifecycle event producer. Publishing is off unless
// both Brokers and Topic are set.
type Kafka struct {
	Brokers []string
	Topic   string
	Retry   Retry
}

// Retry describes publish retries.
type Retry struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// RateLimit configures the per-client request limiter.
type RateLimit struct {
	Enabled bool
	RPS     float64
	Burst   int
	TTL     time.Duration
}

// CORS lists the origins allowed to call the API from a browser.
type CORS struct {
	AllowedOrigins []string
}

// PprofConfig configures the debug profiling server. Non-loopback clients
// need basic auth.
type PprofConfig struct {
	Enabled bool
	Addr    string
	User    string
	Pass    string
}

// Load reads configuration in order: .env (if present) → environment → flags.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		log.Printf("warning: .env not loaded: %v", err)
	}

	cfg := &Config{
		Port:      defaultPort,
		Log:       defaultLog,
		Store:     defaultStore,
		DB:        defaultDB,
		Redis:     defaultRedis,
		Kafka:     Kafka{Retry: defaultEventRetry},
		RateLimit: defaultRateLimit,
		CORS:      CORS{AllowedOrigins: []string{"*"}},
		Pprof:     defaultPprof,
	}

	var errs []string
	fail := func(name string, err error) {
		errs = append(errs, fmt.Sprintf("%s: %v", name, err))
	}

	if v := os.Getenv("PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			fail("PORT", err)
		}
		cfg.Port = p
	}
	setString(&cfg.Log.Level, "LOG_LEVEL")
	setString(&cfg.Log.Format, "LOG_FORMAT")

	setString(&cfg.Store.Driver, "STORE_DRIVER")
	setString(&cfg.Store.SQLitePath, "SQLITE_PATH")
	setString(&cfg.Store.SeedFile, "SEED_FILE")
	if err := setDuration(&cfg.Store.Timeout, "STORE_TIMEOUT"); err != nil {
		fail("STORE_TIMEOUT", err)
	}

	setString(&cfg.DB.Host, "POSTGRES_HOST")
	setString(&cfg.DB.Port, "POSTGRES_PORT")
	setString(&cfg.DB.User, "POSTGRES_USER")
	setString(&cfg.DB.Pass, "POSTGRES_PASSWORD")
	setString(&cfg.DB.Name, "POSTGRES_DB")
	if _, err := strconv.Atoi(cfg.DB.Port); err != nil {
		fail("POSTGRES_PORT", err)
	}

	setString(&cfg.Redis.Addr, "REDIS_ADDR")
	setString(&cfg.Redis.Password, "REDIS_PASSWORD")
	setString(&cfg.Redis.Prefix, "REDIS_PREFIX")
	if v := os.Getenv("REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			fail("REDIS_DB", err)
		}
		cfg.Redis.DB = n
	}

	cfg.Kafka.Brokers = splitList(os.Getenv("KAFKA_BROKERS"))
	setString(&cfg.Kafka.Topic, "KAFKA_TOPIC")

	if v := os.Getenv("RATE_LIMIT_ENABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			fail("RATE_LIMIT_ENABLED", err)
		}
		cfg.RateLimit.Enabled = b
	}
	if v := os.Getenv("RATE_LIMIT_RPS"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			fail("RATE_LIMIT_RPS", err)
		}
		cfg.RateLimit.RPS = f
	}
	if v := os.Getenv("RATE_LIMIT_BURST"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			fail("RATE_LIMIT_BURST", err)
		}
		cfg.RateLimit.Burst = n
	}

	if origins := splitList(os.Getenv("CORS_ALLOWED_ORIGINS")); len(origins) > 0 {
		cfg.CORS.AllowedOrigins = origins
	}

	if v := os.Getenv("PPROF_ENABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			fail("PPROF_ENABLED", err)
		}
		cfg.Pprof.Enabled = b
	}
	setString(&cfg.Pprof.Addr, "PPROF_ADDR")
	setString(&cfg.Pprof.User, "PPROF_USER")
	setString(&cfg.Pprof.Pass, "PPROF_PASS")

	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid environment: %s", strings.Join(errs, "; "))
	}

	pflag.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
	pflag.StringVar(&cfg.Store.Driver, "store-driver", cfg.Store.Driver, "store backend: memory, sqlite, postgres or redis")
	pflag.StringVar(&cfg.Store.SQLitePath, "sqlite-path", cfg.Store.SQLitePath, "sqlite database file")
	pflag.StringVar(&cfg.Store.SeedFile, "seed-file", cfg.Store.SeedFile, "YAML seed used when the store is empty")
	pflag.StringVar(&cfg.Log.Level, "log-level", cfg.Log.Level, "debug, info, warn or error")
	if err := pflag.CommandLine.Parse(os.Args[1:]); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	switch c.Store.Driver {
	case "memory", "sqlite", "postgres", "redis":
	default:
		return fmt.Errorf("invalid store driver: %q", c.Store.Driver)
	}
	if c.Store.Timeout <= 0 {
		return fmt.Errorf("invalid store timeout: %s", c.Store.Timeout)
	}
	if c.Store.Driver == "sqlite" && strings.TrimSpace(c.Store.SQLitePath) == "" {
		return fmt.Errorf("sqlite path is required")
	}
	if c.RateLimit.Enabled && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("invalid rate limit: rps=%v burst=%d", c.RateLimit.RPS, c.RateLimit.Burst)
	}
	if c.Pprof.Enabled && strings.TrimSpace(c.Pprof.Addr) == "" {
		return fmt.Errorf("pprof address is required")
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return err
	}
	*dst = d
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

package config

import "time"

const defaultPort = 8080

var defaultLog = Log{
	Level:  "info",
	Format: "json",
}

var defaultStore = Store{
	Driver:     "sqlite",
	Timeout:    3 * time.Second,
	SQLitePath: "yoyo-delivery.db",
}

var defaultDB = DB{
	Host: "127.0.0.1",
	Port: "5432",
	User: "myuser",
	Pass: "mypassword",
	Name: "yoyo_delivery",
}

var defaultRedis = Redis{
	Addr:   "127.0.0.1:6379",
	Prefix: "yoyo:",
}

var defaultEventRetry = Retry{
	MaxAttempts: 4,
	BaseDelay:   150 * time.Millisecond,
	MaxDelay:    200 * time.Millisecond,
}

var defaultRateLimit = RateLimit{
	Enabled: true,
	RPS:     20,
	Burst:   40,
	TTL:     10 * time.Minute,
}

var defaultPprof = PprofConfig{
	Enabled: false,
	Addr:    "127.0.0.1:6060",
}

// DefaultPort returns the default port.
func DefaultPort() int {
	return defaultPort
}

// DefaultStore returns the default store settings.
func DefaultStore() Store {
	return defaultStore
}

// DefaultDB returns the default database settings.
func DefaultDB() DB {
	return defaultDB
}

// DefaultEventRetry returns the default publish retry settings.
func DefaultEventRetry() Retry {
	return defaultEventRetry
}

// DefaultRateLimit returns the default rate limit settings.
func DefaultRateLimit() RateLimit {
	return defaultRateLimit
}

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"yoyo-delivery/internal/logx"
)

// Supported backends.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// Options selects and configures a backend.
type Options struct {
	Driver string

	SQLitePath string

	PostgresDSN   string
	ConnRetries   int
	ConnRetryWait time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
}

// Open connects to the backend named by opts.Driver.
func Open(ctx context.Context, opts Options, logger logx.Logger) (KV, error) {
	switch opts.Driver {
	case DriverMemory:
		return NewMemoryKV(), nil
	case DriverSQLite, "":
		return OpenSQLite(ctx, opts.SQLitePath)
	case DriverPostgres:
		retries := opts.ConnRetries
		if retries <= 0 {
			retries = 5
		}
		pool, err := ConnectWithRetry(ctx, logger, opts.PostgresDSN, retries, opts.ConnRetryWait)
		if err != nil {
			return nil, err
		}
		kv, err := NewPostgresKV(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, err
		}
		return kv, nil
	case DriverRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     opts.RedisAddr,
			Password: opts.RedisPassword,
			DB:       opts.RedisDB,
		})
		kv, err := NewRedisKV(ctx, client, opts.RedisPrefix)
		if err != nil {
			_ = client.Close()
			return nil, err
		}
		return kv, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", opts.Driver)
	}
}

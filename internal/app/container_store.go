package app

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"yoyo-delivery/internal/config"
	"yoyo-delivery/internal/logx"
	"yoyo-delivery/internal/seed"
	"yoyo-delivery/internal/store"
)

type storeIn struct {
	dig.In

	KV        store.KV
	Config    *config.Config
	Logger    logx.Logger
	Fallbacks *prometheus.CounterVec `name:"store_seed_fallbacks_total"`
}

func registerStore(
	container *dig.Container,
	openKV func(context.Context, store.Options, logx.Logger) (store.KV, error),
) error {
	providerKV := func(ctx context.Context, cfg *config.Config, logger logx.Logger) (store.KV, error) {
		kv, err := openKV(ctx, storeOptions(cfg), logger)
		if err != nil {
			return nil, fmt.Errorf("open %s store: %w", cfg.Store.Driver, err)
		}
		logger.Info("store opened", logx.String("driver", cfg.Store.Driver))
		return kv, nil
	}
	return provideAll(container,
		providerKV,
		func(in storeIn) *store.Store {
			return store.New(in.KV, in.Logger, in.Fallbacks, in.Config.Store.Timeout)
		},
		loadSeed,
	)
}

func storeOptions(cfg *config.Config) store.Options {
	return store.Options{
		Driver:        cfg.Store.Driver,
		SQLitePath:    cfg.Store.SQLitePath,
		PostgresDSN:   cfg.DB.DSN(),
		ConnRetries:   10,
		ConnRetryWait: time.Second,
		RedisAddr:     cfg.Redis.Addr,
		RedisPassword: cfg.Redis.Password,
		RedisDB:       cfg.Redis.DB,
		RedisPrefix:   cfg.Redis.Prefix,
	}
}

func loadSeed(cfg *config.Config) (seed.Data, error) {
	data, err := seed.Load(cfg.Store.SeedFile)
	if err != nil {
		return seed.Data{}, fmt.Errorf("seed: %w", err)
	}
	return data, nil
}

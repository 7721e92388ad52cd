package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"go.uber.org/dig"

	"yoyo-delivery/internal/config"
	"yoyo-delivery/internal/http/handlers"
	"yoyo-delivery/internal/http/pprofserver"
	"yoyo-delivery/internal/logx"
	"yoyo-delivery/internal/store"
)

// ContainerBuilder is a dig container builder.
type ContainerBuilder struct {
	loadConfig func() (*config.Config, error)
	newLogger  func(*config.Config) (logx.Logger, error)
	openKV     func(context.Context, store.Options, logx.Logger) (store.KV, error)
	logFatalf  func(string, ...interface{})
}

// NewContainerBuilder returns a new dig container builder
func NewContainerBuilder() *ContainerBuilder {
	return &ContainerBuilder{
		loadConfig: config.Load,
		newLogger:  NewLogger,
		openKV:     store.Open,
		logFatalf:  log.Fatalf,
	}
}

// WithConfig makes the container use cfg instead of reading the environment.
func (b *ContainerBuilder) WithConfig(cfg *config.Config) *ContainerBuilder {
	if cfg != nil {
		b.loadConfig = func() (*config.Config, error) { return cfg, nil }
	}
	return b
}

// WithLogger overrides the logger factory.
func (b *ContainerBuilder) WithLogger(logger logx.Logger) *ContainerBuilder {
	if logger != nil {
		b.newLogger = func(*config.Config) (logx.Logger, error) { return logger, nil }
	}
	return b
}

// WithOpenKV sets the store backend factory
func (b *ContainerBuilder) WithOpenKV(
	fn func(context.Context, store.Options, logx.Logger) (store.KV, error),
) *ContainerBuilder {
	if fn != nil {
		b.openKV = fn
	}
	return b
}

// WithLogFatalf sets the log.Fatalf function
func (b *ContainerBuilder) WithLogFatalf(fn func(string, ...interface{})) *ContainerBuilder {
	if fn != nil {
		b.logFatalf = fn
	}
	return b
}

// MustBuild builds and returns a new dig container
func (b *ContainerBuilder) MustBuild(ctx context.Context) *dig.Container {
	container, err := b.build(ctx)
	if err != nil {
		b.logFatalf("failed to build container: %v", err)
	}
	return container
}

// build builds and returns a new dig container
func (b *ContainerBuilder) build(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx, b.loadConfig, b.newLogger); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerMetrics(container); err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}
	if err := registerStore(container, b.openKV); err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}
	if err := registerDomain(container); err != nil {
		return nil, fmt.Errorf("domain: %w", err)
	}
	if err := registerHTTP(container); err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	return container, nil
}

// MustBuildContainer builds and returns a new dig container
func MustBuildContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuild(ctx)
}

func provideAll(container *dig.Container, providers ...any) error {
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return fmt.Errorf("provide %T: %w", provider, err)
		}
	}
	return nil
}

func registerCore(
	container *dig.Container,
	ctx context.Context,
	loadConfig func() (*config.Config, error),
	newLogger func(*config.Config) (logx.Logger, error),
) error {
	return provideAll(container,
		func() context.Context { return ctx },
		loadConfig,
		newLogger,
	)
}

func registerHTTP(container *dig.Container) error {
	serverProvider := func(cfg *config.Config, mux http.Handler) *http.Server {
		return &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		}
	}
	if err := provideAll(container,
		handlers.New,
		handlers.NewSessionUsecase,
		handlers.NewAccountUsecase,
		handlers.NewOrderUsecase,
		handlers.NewViewUsecase,
		handlers.NewSessionHandler,
		handlers.NewAccountHandler,
		handlers.NewOrderHandler,
		handlers.NewGeoHandler,
		newRateLimiter,
		newRateLimitMiddleware,
		newRouter,
		serverProvider,
	); err != nil {
		return err
	}
	pprofProvider := func(cfg *config.Config, logger logx.Logger) *http.Server {
		return pprofserver.NewServer(cfg.Pprof, logger)
	}
	if err := container.Provide(pprofProvider, dig.Name("pprof_server")); err != nil {
		return fmt.Errorf("provide pprof server: %w", err)
	}
	return nil
}

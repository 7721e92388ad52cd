package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/dig"
	"golang.org/x/sync/errgroup"

	"yoyo-delivery/internal/logx"
	"yoyo-delivery/internal/store"
	"yoyo-delivery/internal/transport/kafka"
)

const shutdownTimeout = 15 * time.Second

// Runner runs the HTTP servers held by a container.
type Runner struct {
	runFn func(*dig.Container) error
}

// NewRunner returns a Runner.
func NewRunner() *Runner {
	return &Runner{runFn: run}
}

// MustRun starts the service using the provided DI container and blocks until
// its context is done.
func (r *Runner) MustRun(container *dig.Container) {
	err := r.runFn(container)
	if err == nil {
		return
	}
	_ = container.Invoke(func(logger logx.Logger) {
		switch {
		case errors.Is(err, context.Canceled):
			logger.Info("shutdown requested, exiting")
			err = nil
		case errors.Is(err, context.DeadlineExceeded):
			logger.Warn("startup aborted: startup timeout exceeded")
			err = nil
		}
	})
	if err != nil {
		panic(err)
	}
}

// MustRun runs the container with the default Runner.
func MustRun(container *dig.Container) {
	NewRunner().MustRun(container)
}

type runIn struct {
	dig.In

	Ctx      context.Context
	Logger   logx.Logger
	Server   *http.Server
	Pprof    *http.Server `name:"pprof_server" optional:"true"`
	KV       store.KV
	Producer *kafka.Producer
}

func run(container *dig.Container) error {
	return container.Invoke(appRun)
}

func appRun(in runIn) error {
	defer closeResources(in)

	servers := []*http.Server{in.Server}
	if in.Pprof != nil {
		servers = append(servers, in.Pprof)
	}

	g, ctx := errgroup.WithContext(in.Ctx)
	for _, srv := range servers {
		g.Go(func() error {
			in.Logger.Info("yoyo-delivery listening", logx.String("addr", srv.Addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("listen %s: %w", srv.Addr, err)
			}
			return nil
		})
	}
	g.Go(func() error {
		<-ctx.Done()
		in.Logger.Info("shutting down yoyo-delivery...")
		for _, srv := range servers {
			gracefulShutdown(srv, in.Logger, shutdownTimeout)
		}
		return nil
	})
	return g.Wait()
}

func gracefulShutdown(srv *http.Server, logger logx.Logger, timeout time.Duration) {
	shCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shCtx); err != nil {
		logger.Error("graceful shutdown error", logx.String("addr", srv.Addr), logx.Err(err))
	}
}

func closeResources(in runIn) {
	if in.Producer != nil {
		if err := in.Producer.Close(); err != nil {
			in.Logger.Error("kafka close error", logx.Err(err))
		}
	}
	if in.KV != nil {
		if err := in.KV.Close(); err != nil {
			in.Logger.Error("store close error", logx.Err(err))
		}
	}
	_ = in.Logger.Sync()
}

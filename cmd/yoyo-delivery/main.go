package main

import (
	"context"
	"os/signal"
	"syscall"

	"yoyo-delivery/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	container := app.NewContainerBuilder().MustBuild(ctx)
	app.MustRun(container)
}

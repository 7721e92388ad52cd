package app

import (
	"os"

	"yoyo-delivery/internal/config"
	"yoyo-delivery/internal/logx"
)

// NewLogger builds the service logger from cfg.Log, writing to stdout.
func NewLogger(cfg *config.Config) (logx.Logger, error) {
	return logx.New(os.Stdout, cfg.Log.Level, cfg.Log.Format)
}

package app

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"yoyo-delivery/internal/config"
	"yoyo-delivery/internal/dashboard"
	"yoyo-delivery/internal/directory"
	"yoyo-delivery/internal/events"
	"yoyo-delivery/internal/ledger"
	"yoyo-delivery/internal/logx"
	"yoyo-delivery/internal/seed"
	"yoyo-delivery/internal/session"
	"yoyo-delivery/internal/store"
	"yoyo-delivery/internal/transport/kafka"
)

type publisherIn struct {
	dig.In

	Config   *config.Config
	Logger   logx.Logger
	Producer *kafka.Producer
	Retries  prometheus.Counter `name:"event_publish_retries_total"`
}

type ledgerIn struct {
	dig.In

	Ctx         context.Context
	Store       *store.Store
	Seed        seed.Data
	Directory   *directory.Directory
	Publisher   events.Publisher
	Logger      logx.Logger
	Created     prometheus.Counter     `name:"orders_created_total"`
	Transitions *prometheus.CounterVec `name:"order_transitions_total"`
}

type sessionIn struct {
	dig.In

	Ctx       context.Context
	Store     *store.Store
	Directory *directory.Directory
	Logger    logx.Logger
	Attempts  *prometheus.CounterVec `name:"login_attempts_total"`
}

func registerDomain(container *dig.Container) error {
	return provideAll(container,
		func(ctx context.Context, st *store.Store, data seed.Data, logger logx.Logger) *directory.Directory {
			return directory.New(ctx, st, data.Accounts, logger)
		},
		newProducer,
		newPublisher,
		func(in ledgerIn) *ledger.Ledger {
			return ledger.New(in.Ctx, in.Store, in.Seed.Orders, in.Directory, in.Publisher, in.Logger, ledger.Metrics{
				Created:     in.Created,
				Transitions: in.Transitions,
			})
		},
		newSession,
		func(l *ledger.Ledger, d *directory.Directory) *dashboard.Dashboard {
			return dashboard.New(l, d)
		},
	)
}

func newProducer(cfg *config.Config, logger logx.Logger) (*kafka.Producer, error) {
	p, err := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger)
	if err != nil {
		return nil, err
	}
	if p == nil {
		logger.Info("kafka not configured, order events are not published")
	}
	return p, nil
}

// newPublisher wraps the producer in retries; without a producer events are dropped.
func newPublisher(in publisherIn) events.Publisher {
	if in.Producer == nil {
		return events.Nop{}
	}
	r := in.Config.Kafka.Retry
	return events.NewRetryingPublisher(in.Producer, in.Logger, in.Retries, events.RetryConfig{
		MaxAttempts: r.MaxAttempts,
		BaseDelay:   r.BaseDelay,
		MaxDelay:    r.MaxDelay,
	})
}

// newSession restores the persisted session, if any, before serving.
func newSession(in sessionIn) *session.Session {
	s := session.New(in.Store, in.Directory, in.Logger, in.Attempts)
	s.Restore(in.Ctx)
	return s
}

package app

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/dig"

	"yoyo-delivery/internal/metrics"
)

type metricsOut struct {
	dig.Out

	RateLimitExceededTotal   prometheus.Counter     `name:"rate_limit_exceeded_total"`
	EventPublishRetriesTotal prometheus.Counter     `name:"event_publish_retries_total"`
	OrdersCreatedTotal       prometheus.Counter     `name:"orders_created_total"`
	OrderTransitionsTotal    *prometheus.CounterVec `name:"order_transitions_total"`
	LoginAttemptsTotal       *prometheus.CounterVec `name:"login_attempts_total"`
	StoreSeedFallbacksTotal  *prometheus.CounterVec `name:"store_seed_fallbacks_total"`
	HTTP                     *metrics.HTTP
}

func registerMetrics(container *dig.Container) error {
	return provideAll(container,
		newRegistry,
		func(reg *prometheus.Registry) prometheus.Registerer { return reg },
		func(reg *prometheus.Registry) prometheus.Gatherer { return reg },
		provideMetrics,
	)
}

func newRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// register adds c to reg; when an equal collector is already there, that one
// is returned instead.
func register[T prometheus.Collector](reg prometheus.Registerer, name string, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		var zero T
		return zero, fmt.Errorf("register %s: %w", name, err)
	}
	return c, nil
}

func provideMetrics(reg prometheus.Registerer) (metricsOut, error) {
	var (
		out metricsOut
		err error
	)
	if out.RateLimitExceededTotal, err = register(reg, "rate_limit_exceeded_total", metrics.NewRateLimitExceededTotal()); err != nil {
		return metricsOut{}, err
	}
	if out.EventPublishRetriesTotal, err = register(reg, "event_publish_retries_total", metrics.NewEventPublishRetriesTotal()); err != nil {
		return metricsOut{}, err
	}
	if out.OrdersCreatedTotal, err = register(reg, "orders_created_total", metrics.NewOrdersCreatedTotal()); err != nil {
		return metricsOut{}, err
	}
	if out.OrderTransitionsTotal, err = register(reg, "order_transitions_total", metrics.NewOrderTransitionsTotal()); err != nil {
		return metricsOut{}, err
	}
	if out.LoginAttemptsTotal, err = register(reg, "login_attempts_total", metrics.NewLoginAttemptsTotal()); err != nil {
		return metricsOut{}, err
	}
	if out.StoreSeedFallbacksTotal, err = register(reg, "store_seed_fallbacks_total", metrics.NewStoreSeedFallbacksTotal()); err != nil {
		return metricsOut{}, err
	}

	h := metrics.NewHTTP()
	if h.Requests, err = register(reg, "http_requests_total", h.Requests); err != nil {
		return metricsOut{}, err
	}
	if h.Duration, err = register(reg, "http_request_duration_seconds", h.Duration); err != nil {
		return metricsOut{}, err
	}
	out.HTTP = h
	return out, nil
}

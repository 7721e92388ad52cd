package events

import (
	"context"
	"errors"
	"time"

	"yoyo-delivery/internal/logx"
)

type counter interface {
	Inc()
}

// RetryConfig configures RetryingPublisher.
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// RetryingPublisher retries transient publish failures with exponential backoff.
type RetryingPublisher struct {
	next    Publisher
	logger  logx.Logger
	retries counter
	cfg     RetryConfig
}

// NewRetryingPublisher returns nil when next is nil.
func NewRetryingPublisher(next Publisher, logger logx.Logger, retries counter, cfg RetryConfig) *RetryingPublisher {
	if next == nil {
		return nil
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &RetryingPublisher{next: next, logger: logger, retries: retries, cfg: cfg}
}

// Publish implements Publisher.
func (p *RetryingPublisher) Publish(ctx context.Context, ev Event) error {
	var lastErr error
	for attempt := 1; attempt <= p.cfg.MaxAttempts; attempt++ {
		err := p.next.Publish(ctx, ev)
		if err == nil {
			return nil
		}
		lastErr = err
		// permanent errors and cancellation stop the loop
		if ctx.Err() != nil || attempt == p.cfg.MaxAttempts || !isRetryable(err) {
			break
		}
		delay := backoff(p.cfg.BaseDelay, p.cfg.MaxDelay, attempt)
		if p.retries != nil {
			p.retries.Inc()
		}
		p.logger.Warn("event publish retry",
			logx.String("type", string(ev.Type)),
			logx.Int64("order_id", ev.OrderID),
			logx.Int("attempt", attempt),
			logx.Duration("delay", delay),
			logx.Err(err),
		)
		if !sleepWithContext(ctx, delay) {
			break
		}
	}
	return lastErr
}

func isRetryable(err error) bool {
	var perm PermanentError
	return !errors.As(err, &perm)
}

// backoff doubles base per attempt, capped at max.
func backoff(base, max time.Duration, attempt int) time.Duration {
	d := base << (attempt - 1)
	if d > max {
		return max
	}
	return d
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

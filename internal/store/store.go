package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"yoyo-delivery/internal/logx"
)

// Fallback reasons reported by Load.
const (
	reasonAbsent    = "absent"
	reasonCorrupt   = "corrupt"
	reasonReadError = "read_error"
)

// Store serializes typed records as JSON into a KV.
type Store struct {
	kv        KV
	logger    logx.Logger
	fallbacks *prometheus.CounterVec
	timeout   time.Duration
}

// New creates a Store. fallbacks may be nil.
func New(kv KV, logger logx.Logger, fallbacks *prometheus.CounterVec, timeout time.Duration) *Store {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Store{kv: kv, logger: logger.With(logx.String("component", "store")), fallbacks: fallbacks, timeout: timeout}
}

// Close releases the underlying medium.
func (s *Store) Close() error { return s.kv.Close() }

func (s *Store) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}

func (s *Store) countFallback(key, reason string) {
	if s.fallbacks != nil {
		s.fallbacks.WithLabelValues(key, reason).Inc()
	}
}

// Load returns the value stored under key. When the key is absent or does not
// parse, seed is written under key and returned instead. When the medium cannot
// be read, seed is returned in memory only and the stored value is left as is.
// The failure is logged and never reaches the caller.
func Load[T any](ctx context.Context, s *Store, key string, seed T) T {
	v, reason := read[T](ctx, s, key)
	if reason == "" {
		return v
	}
	s.countFallback(key, reason)
	if reason == reasonReadError {
		s.logger.Warn("store unreadable, using seed without write-back", logx.String("key", key))
		return seed
	}
	if err := Save(ctx, s, key, seed); err != nil {
		s.logger.Error("seed write failed", logx.String("key", key), logx.Err(err))
		return seed
	}
	s.logger.Info("store seeded", logx.String("key", key), logx.String("reason", reason))
	return seed
}

// Lookup returns the value stored under key without seeding. An absent or
// unparsable value yields ok=false.
func Lookup[T any](ctx context.Context, s *Store, key string) (T, bool) {
	v, reason := read[T](ctx, s, key)
	return v, reason == ""
}

func read[T any](ctx context.Context, s *Store, key string) (T, string) {
	var zero T
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		s.logger.Warn("store read failed", logx.String("key", key), logx.Err(err))
		return zero, reasonReadError
	}
	if !ok {
		return zero, reasonAbsent
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		s.logger.Warn("stored value does not parse", logx.String("key", key), logx.Err(err))
		return zero, reasonCorrupt
	}
	return v, ""
}

// Save durably overwrites the value under key.
func Save[T any](ctx context.Context, s *Store, key string, value T) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("store: encode %q: %w", key, err)
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	if err := s.kv.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("store: save %q: %w", key, err)
	}
	return nil
}

// Remove deletes key. Removing an absent key is not an error.
func Remove(ctx context.Context, s *Store, key string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	if err := s.kv.Delete(ctx, key); err != nil {
		return fmt.Errorf("store: delete %q: %w", key, err)
	}
	return nil
}

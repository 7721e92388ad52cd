package ratelimit

import "time"

// Decision is the outcome of a limiter check.
type Decision struct {
	Allowed bool
	// RetryAfter is how long the client should wait before the next request
	// would be admitted. Zero when Allowed.
	RetryAfter time.Duration
}

// Limiter decides whether a request keyed by client may proceed.
type Limiter interface {
	Reserve(key string) Decision
}

// NopLimiter lets every request through.
type NopLimiter struct{}

func (NopLimiter) Reserve(string) Decision { return Decision{Allowed: true} }

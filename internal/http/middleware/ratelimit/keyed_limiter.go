package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Config stores KeyedLimiter settings.
type Config struct {
	RPS     float64       // sustained requests per second per key
	Burst   int           // bucket capacity
	TTL     time.Duration // forget idle keys (0 disables)
	MaxKeys int           // 0 means unbounded

	// Now overrides the time source, mainly for tests.
	Now func() time.Time
}

// KeyedLimiter keeps one rate.Limiter per key.
type KeyedLimiter struct {
	cfg         Config
	now         func() time.Time
	mu          sync.Mutex
	entries     map[string]*entry
	lastCleanup time.Time
}

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewKeyedLimiter creates a limiter from cfg, filling in defaults.
func NewKeyedLimiter(cfg Config) *KeyedLimiter {
	if cfg.RPS <= 0 {
		cfg.RPS = 1
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}
	if cfg.MaxKeys < 0 {
		cfg.MaxKeys = 0
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &KeyedLimiter{
		cfg:     cfg,
		now:     now,
		entries: make(map[string]*entry),
	}
}

// Reserve takes one token for key if one is available now. Otherwise the
// reservation is cancelled and the returned Decision carries the delay until
// the bucket would have admitted it. A new key is refused while MaxKeys keys
// are tracked; such a client is told to retry after one token interval.
func (l *KeyedLimiter) Reserve(key string) Decision {
	now := l.now()

	l.mu.Lock()
	l.cleanupLocked(now)
	e := l.entries[key]
	if e == nil {
		if l.cfg.MaxKeys > 0 && len(l.entries) >= l.cfg.MaxKeys {
			l.mu.Unlock()
			return Decision{RetryAfter: l.interval()}
		}
		e = &entry{limiter: rate.NewLimiter(rate.Limit(l.cfg.RPS), l.cfg.Burst)}
		l.entries[key] = e
	}
	e.lastSeen = now
	lim := e.limiter
	l.mu.Unlock()

	r := lim.ReserveN(now, 1)
	if !r.OK() {
		return Decision{RetryAfter: l.interval()}
	}
	delay := r.DelayFrom(now)
	if delay == 0 {
		return Decision{Allowed: true}
	}
	// the token stays in the bucket for the next attempt
	r.CancelAt(now)
	return Decision{RetryAfter: delay}
}

// Len returns the number of tracked keys.
func (l *KeyedLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

func (l *KeyedLimiter) interval() time.Duration {
	return time.Duration(float64(time.Second) / l.cfg.RPS)
}

func (l *KeyedLimiter) cleanupLocked(now time.Time) {
	if l.cfg.TTL <= 0 {
		return
	}

	every := time.Minute
	if half := l.cfg.TTL / 2; half > every {
		every = half
	}
	if !l.lastCleanup.IsZero() && now.Sub(l.lastCleanup) < every {
		return
	}
	l.lastCleanup = now

	for k, e := range l.entries {
		if now.Sub(e.lastSeen) > l.cfg.TTL {
			delete(l.entries, k)
		}
	}
}

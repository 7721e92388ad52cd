package ratelimit

import (
	"encoding/json"
	"math"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"yoyo-delivery/internal/logx"
)

type rejection struct {
	Error             string `json:"error"`
	RetryAfterSeconds int    `json:"retryAfterSeconds"`
}

// Middleware admits requests per client host and answers 429 with the wait
// reported by the limiter.
type Middleware struct {
	logger   logx.Logger
	rejected prometheus.Counter
	limiter  Limiter
}

// New creates a Middleware. A nil limiter lets everything through and a nil
// counter is skipped.
func New(logger logx.Logger, rejected prometheus.Counter, limiter Limiter) *Middleware {
	if limiter == nil {
		limiter = NopLimiter{}
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Middleware{
		logger:   logger.With(logx.String("component", "ratelimit")),
		rejected: rejected,
		limiter:  limiter,
	}
}

// Handler returns chi-style middleware.
func (m *Middleware) Handler() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			client := clientKey(r)
			d := m.limiter.Reserve(client)
			if d.Allowed {
				next.ServeHTTP(w, r)
				return
			}
			m.reject(w, r, client, d.RetryAfter)
		})
	}
}

func (m *Middleware) reject(w http.ResponseWriter, r *http.Request, client string, wait time.Duration) {
	if m.rejected != nil {
		m.rejected.Inc()
	}
	secs := retryAfterSeconds(wait)
	m.logger.Warn("rate limit exceeded",
		logx.String("client", client),
		logx.String("method", r.Method),
		logx.String("path", r.URL.Path),
		logx.Int("retry_after_s", secs),
	)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Retry-After", strconv.Itoa(secs))
	w.WriteHeader(http.StatusTooManyRequests)
	body := rejection{Error: "too many requests", RetryAfterSeconds: secs}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		m.logger.Debug("rate limit response write failed", logx.String("client", client), logx.Err(err))
	}
}

// retryAfterSeconds rounds wait up to whole seconds, at least one.
func retryAfterSeconds(wait time.Duration) int {
	secs := int(math.Ceil(wait.Seconds()))
	if secs < 1 {
		return 1
	}
	return secs
}

// clientKey is the request's host. RemoteAddr is already rewritten by RealIP
// when the service sits behind a proxy.
func clientKey(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && host != "" {
		return host
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}
	return "unknown"
}

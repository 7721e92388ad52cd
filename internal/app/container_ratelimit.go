package app

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"yoyo-delivery/internal/config"
	"yoyo-delivery/internal/http/handlers"
	"yoyo-delivery/internal/http/middleware/ratelimit"
	"yoyo-delivery/internal/http/router"
	"yoyo-delivery/internal/logx"
	"yoyo-delivery/internal/metrics"
)

func newRateLimiter(cfg *config.Config) ratelimit.Limiter {
	rl := cfg.RateLimit
	if !rl.Enabled {
		return ratelimit.NopLimiter{}
	}
	return ratelimit.NewKeyedLimiter(ratelimit.Config{
		RPS:   rl.RPS,
		Burst: rl.Burst,
		TTL:   rl.TTL,
	})
}

type rateLimitIn struct {
	dig.In
	Logger  logx.Logger
	Counter prometheus.Counter `name:"rate_limit_exceeded_total"`
	Limiter ratelimit.Limiter
}

func newRateLimitMiddleware(in rateLimitIn) *ratelimit.Middleware {
	return ratelimit.New(in.Logger, in.Counter, in.Limiter)
}

type routerIn struct {
	dig.In

	Config    *config.Config
	Logger    logx.Logger
	Base      *handlers.Handlers
	Session   *handlers.SessionHandler
	Accounts  *handlers.AccountHandler
	Orders    *handlers.OrderHandler
	Geo       *handlers.GeoHandler
	HTTP      *metrics.HTTP
	RateLimit *ratelimit.Middleware
	Gatherer  prometheus.Gatherer
}

func newRouter(in routerIn) http.Handler {
	return router.New(router.Params{
		Base:           in.Base,
		Session:        in.Session,
		Accounts:       in.Accounts,
		Orders:         in.Orders,
		Geo:            in.Geo,
		Logger:         in.Logger,
		HTTPMetrics:    in.HTTP,
		RateLimit:      in.RateLimit,
		Gatherer:       in.Gatherer,
		AllowedOrigins: in.Config.CORS.AllowedOrigins,
	})
}

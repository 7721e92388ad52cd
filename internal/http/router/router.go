package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"yoyo-delivery/internal/http/handlers"
	obs "yoyo-delivery/internal/http/middleware"
	"yoyo-delivery/internal/http/middleware/ratelimit"
	"yoyo-delivery/internal/logx"
	"yoyo-delivery/internal/metrics"
)

// Params collects everything the router mounts.
type Params struct {
	Base     *handlers.Handlers
	Session  *handlers.SessionHandler
	Accounts *handlers.AccountHandler
	Orders   *handlers.OrderHandler
	Geo      *handlers.GeoHandler

	Logger         logx.Logger
	HTTPMetrics    *metrics.HTTP
	RateLimit      *ratelimit.Middleware
	Gatherer       prometheus.Gatherer
	AllowedOrigins []string
}

// New constructs a chi-based http.Handler with base middleware and routes.
func New(p Params) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(obs.Observability(p.Logger, p.HTTPMetrics))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(5 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: p.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"Location", "Content-Disposition"},
		MaxAge:         300,
	}))

	r.Get("/ping", p.Base.Ping)
	r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(p.Base.HealthcheckHead))
	if p.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(p.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(api chi.Router) {
		if p.RateLimit != nil {
			api.Use(p.RateLimit.Handler())
		}

		api.Route("/session", func(s chi.Router) {
			s.Get("/", p.Session.Current)
			s.Post("/login", p.Session.Login)
			s.Post("/logout", p.Session.Logout)
		})
		api.Get("/view", p.Session.View)

		api.Get("/accounts", p.Accounts.List)
		api.Post("/accounts", p.Accounts.Create)
		api.Get("/accounts/{id}", p.Accounts.Get)

		api.Route("/orders", func(o chi.Router) {
			o.Get("/", p.Orders.List)
			o.Post("/", p.Orders.Create)
			o.Get("/export.xlsx", p.Orders.Export)
			o.Route("/{id}", func(one chi.Router) {
				one.Get("/", p.Orders.Get)
				one.Put("/", p.Orders.Update)
				one.Post("/assign", p.Orders.Assign)
				one.Post("/status", p.Orders.AdvanceStatus)
				one.Post("/proof", p.Orders.RecordProof)
				one.Get("/navigate.png", p.Orders.NavigateQR)
			})
		})

		api.Get("/geocode", p.Geo.Geocode)
		api.Get("/route", p.Geo.Route)
		api.Get("/timeslots", p.Geo.TimeSlots)
	})

	r.NotFound(http.HandlerFunc(p.Base.NotFound))
	r.MethodNotAllowed(http.HandlerFunc(p.Base.MethodNotAllowed))

	return r
}

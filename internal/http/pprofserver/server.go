package pprofserver

import (
	"crypto/subtle"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"yoyo-delivery/internal/config"
	"yoyo-delivery/internal/logx"
)

// NewServer returns the debug server for cfg, or nil when profiling is off.
func NewServer(cfg config.PprofConfig, logger logx.Logger) *http.Server {
	if !cfg.Enabled {
		return nil
	}
	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           Handler(cfg, logger),
		ReadHeaderTimeout: 5 * time.Second,
		// profile and trace stream for longer than a normal response
		WriteTimeout: 2 * time.Minute,
	}
}

// Handler serves /debug/pprof/* and /debug/vars.
func Handler(cfg config.PprofConfig, logger logx.Logger) http.Handler {
	if logger == nil {
		logger = logx.Nop()
	}
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler { return authOrLocalOnly(next, cfg, logger) })
	r.Mount("/debug", middleware.Profiler())
	return r
}

func authOrLocalOnly(next http.Handler, cfg config.PprofConfig, logger logx.Logger) http.Handler {
	deny := func(w http.ResponseWriter, r *http.Request, reason string) {
		logger.Warn("pprof access denied",
			logx.String("remote", r.RemoteAddr),
			logx.String("path", r.URL.Path),
			logx.String("reason", reason),
		)
		w.Header().Set("WWW-Authenticate", `Basic realm="pprof"`)
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isLoopback(r.RemoteAddr) {
			next.ServeHTTP(w, r)
			return
		}
		if cfg.User == "" || cfg.Pass == "" {
			deny(w, r, "no credentials configured")
			return
		}
		u, p, ok := r.BasicAuth()
		if !ok || !secureEq(u, cfg.User) || !secureEq(p, cfg.Pass) {
			deny(w, r, "bad credentials")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func secureEq(u, s string) bool {
	if len(u) != len(s) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(u), []byte(s)) == 1
}

func isLoopback(remoteAddr string) bool {
	host := remoteAddr
	if h, _, err := net.SplitHostPort(remoteAddr); err == nil {
		host = h
	}
	ip := net.ParseIP(strings.TrimSpace(host))
	return ip != nil && ip.IsLoopback()
}

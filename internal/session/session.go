// Package session tracks the single signed-in account and the view it lands on.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"yoyo-delivery/internal/apperr"
	"yoyo-delivery/internal/domain"
	"yoyo-delivery/internal/logx"
	"yoyo-delivery/internal/store"
)

// Authenticator checks credentials against the account directory.
type Authenticator interface {
	FindByCredentials(username, password string) (domain.Account, bool)
}

// Record is the persisted session pointer: the signed-in account plus session metadata.
type Record struct {
	domain.Account
	SessionID string    `json:"sessionId,omitempty"`
	StartedAt time.Time `json:"startedAt,omitempty"`
}

// Session holds at most one authenticated account.
type Session struct {
	mu       sync.Mutex
	store    *store.Store
	auth     Authenticator
	logger   logx.Logger
	attempts *prometheus.CounterVec
	newID    func() string
	now      func() time.Time
	current  *Record
}

// New returns an empty session. Call Restore to pick up a persisted one.
func New(st *store.Store, auth Authenticator, logger logx.Logger, attempts *prometheus.CounterVec) *Session {
	return &Session{
		store:    st,
		auth:     auth,
		logger:   logger.With(logx.String("component", "session")),
		attempts: attempts,
		newID:    uuid.NewString,
		now:      time.Now,
	}
}

// Restore loads the persisted pointer. A missing or unreadable pointer leaves the session empty.
func (s *Session) Restore(ctx context.Context) (Record, bool) {
	rec, ok := store.Lookup[Record](ctx, s.store, store.KeySession)
	if !ok || !rec.Role.Valid() {
		return Record{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = &rec
	s.logger.Info("session restored", logx.Int64("account_id", rec.ID), logx.String("role", string(rec.Role)))
	return rec, true
}

// Login authenticates and persists the session. On mismatch nothing changes
// and apperr.ErrUnauthorized is returned.
func (s *Session) Login(ctx context.Context, username, password string) (Record, error) {
	acc, ok := s.auth.FindByCredentials(username, password)
	if !ok {
		s.count("failure")
		s.logger.Warn("login failed", logx.String("event", "login_failed"), logx.String("username", username))
		return Record{}, apperr.ErrUnauthorized
	}

	rec := Record{Account: acc, SessionID: s.newID(), StartedAt: s.now().UTC()}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := store.Save(ctx, s.store, store.KeySession, rec); err != nil {
		return Record{}, fmt.Errorf("login: %w", err)
	}
	s.current = &rec
	s.count("success")
	s.logger.Info("login",
		logx.String("event", "login"),
		logx.Int64("account_id", acc.ID),
		logx.String("role", string(acc.Role)),
		logx.String("session_id", rec.SessionID),
	)
	return rec, nil
}

// Logout clears the session and its persisted pointer.
func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := store.Remove(ctx, s.store, store.KeySession); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	if s.current != nil {
		s.logger.Info("logout", logx.String("event", "logout"), logx.Int64("account_id", s.current.ID))
	}
	s.current = nil
	return nil
}

// Current returns the signed-in account, if any.
func (s *Session) Current() (Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return Record{}, false
	}
	return *s.current, true
}

func (s *Session) count(result string) {
	if s.attempts != nil {
		s.attempts.WithLabelValues(result).Inc()
	}
}

// View maps a role to its screen. An empty or unknown role lands on login.
func View(role domain.Role) domain.View {
	switch role {
	case domain.RoleCustomer:
		return domain.ViewIntake
	case domain.RoleManager:
		return domain.ViewDispatch
	case domain.RoleCourier:
		return domain.ViewDelivery
	default:
		return domain.ViewLogin
	}
}

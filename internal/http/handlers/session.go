package handlers

import (
	"net/http"

	"yoyo-delivery/internal/logx"
)

// SessionHandler serves login, logout and the current role view.
type SessionHandler struct {
	session sessionUsecase
	views   viewUsecase
	logger  logx.Logger
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(logger logx.Logger, s sessionUsecase, v viewUsecase) *SessionHandler {
	return &SessionHandler{session: s, views: v, logger: logger}
}

// Login handles POST /session/login.
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	rec, err := h.session.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, sessionToResponse(rec, true))
}

// Logout handles POST /session/logout.
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.session.Logout(r.Context()); err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Current handles GET /session.
func (h *SessionHandler) Current(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.session.Current()
	writeJSON(h.logger, w, r, http.StatusOK, sessionToResponse(rec, ok))
}

// View handles GET /view and returns the projection for the signed-in role.
// Dispatch filters are read from the query string.
func (h *SessionHandler) View(w http.ResponseWriter, r *http.Request) {
	f, err := filterFromQuery(r)
	if err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	rec, ok := h.session.Current()
	if !ok {
		writeJSON(h.logger, w, r, http.StatusOK, h.views.ForAccount(nil, f))
		return
	}
	acc := rec.Account
	writeJSON(h.logger, w, r, http.StatusOK, h.views.ForAccount(&acc, f))
}

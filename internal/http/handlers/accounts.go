package handlers

import (
	"net/http"
	"strconv"

	"yoyo-delivery/internal/logx"
)

// AccountHandler serves the account directory.
type AccountHandler struct {
	usecase accountUsecase
	logger  logx.Logger
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(logger logx.Logger, uc accountUsecase) *AccountHandler {
	return &AccountHandler{usecase: uc, logger: logger}
}

// List handles GET /accounts. ?role=courier narrows to couriers.
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	switch role := r.URL.Query().Get("role"); role {
	case "":
		writeJSON(h.logger, w, r, http.StatusOK, accountsToResponse(h.usecase.List()))
	case "courier":
		writeJSON(h.logger, w, r, http.StatusOK, accountsToResponse(h.usecase.Couriers()))
	default:
		writeError(h.logger, w, r, http.StatusBadRequest, "unsupported role filter")
	}
}

// Get handles GET /accounts/{id}.
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	acc, ok := h.usecase.Get(id)
	if !ok {
		writeError(h.logger, w, r, http.StatusNotFound, "account not found")
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, accountToResponse(acc))
}

// Create handles POST /accounts.
func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	acc, err := h.usecase.Add(r.Context(), req.toModel())
	if err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	w.Header().Set("Location", "/api/v1/accounts/"+strconv.FormatInt(acc.ID, 10))
	writeJSON(h.logger, w, r, http.StatusCreated, accountToResponse(acc))
}

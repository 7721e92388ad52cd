package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"yoyo-delivery/internal/apperr"
	"yoyo-delivery/internal/domain"
	"yoyo-delivery/internal/geo"
	"yoyo-delivery/internal/logx"
	"yoyo-delivery/internal/report"
)

// OrderHandler serves the order ledger.
type OrderHandler struct {
	orders   orderUsecase
	accounts accountUsecase
	logger   logx.Logger
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(logger logx.Logger, orders orderUsecase, accounts accountUsecase) *OrderHandler {
	return &OrderHandler{orders: orders, accounts: accounts, logger: logger}
}

func filterFromQuery(r *http.Request) (domain.Filter, error) {
	q := r.URL.Query()
	f := domain.Filter{
		DeliveryDate:    q.Get("date"),
		DropoffContains: q.Get("dropoff"),
	}
	if s := q.Get("courierId"); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return domain.Filter{}, fmt.Errorf("%w: invalid courierId", apperr.ErrInvalid)
		}
		f.CourierID = &id
	}
	return f, nil
}

// List handles GET /orders.
// @Summary List orders
// @Description Orders matching every given filter, in creation order
// @Tags orders
// @Produce json
// @Param date query string false "delivery date, YYYY-MM-DD"
// @Param courierId query int false "assigned courier"
// @Param dropoff query string false "dropoff address substring"
// @Success 200 {array} domain.Order
// @Failure 400 {object} ErrorResponse "invalid filter"
// @Router /orders [get]
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	f, err := filterFromQuery(r)
	if err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, h.orders.Filter(f))
}

// Create handles POST /orders.
// @Summary Create order
// @Description Customer intake; the order starts as new without a courier
// @Tags orders
// @Accept json
// @Produce json
// @Param request body createOrderRequest true "Order intake payload"
// @Success 201 {object} domain.Order
// @Failure 400 {object} ErrorResponse "missing or invalid fields"
// @Failure 500 {object} ErrorResponse "internal error"
// @Router /orders [post]
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	o, err := h.orders.Add(r.Context(), req.toModel())
	if err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	w.Header().Set("Location", "/api/v1/orders/"+strconv.FormatInt(o.ID, 10))
	writeJSON(h.logger, w, r, http.StatusCreated, o)
}

// Get handles GET /orders/{id}.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	o, ok := h.existing(w, r)
	if !ok {
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, o)
}

// Update handles PUT /orders/{id}: a whole-order replacement without transition checks.
func (h *OrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	current, ok := h.existing(w, r)
	if !ok {
		return
	}
	var req domain.Order
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	if !req.Status.Valid() {
		writeError(h.logger, w, r, http.StatusBadRequest, fmt.Sprintf("unknown status %q", req.Status))
		return
	}
	req.ID = current.ID
	h.mutate(w, r, current.ID, func() error { return h.orders.Update(r.Context(), req) })
}

// Assign handles POST /orders/{id}/assign.
// @Summary Assign courier
// @Tags orders
// @Accept json
// @Produce json
// @Param request body assignRequest true "Courier to assign"
// @Success 200 {object} domain.Order
// @Failure 400 {object} ErrorResponse "not a courier"
// @Failure 404 {object} ErrorResponse "order not found"
// @Failure 409 {object} ErrorResponse "order is not new"
// @Router /orders/{id}/assign [post]
func (h *OrderHandler) Assign(w http.ResponseWriter, r *http.Request) {
	o, ok := h.existing(w, r)
	if !ok {
		return
	}
	var req assignRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	h.mutate(w, r, o.ID, func() error { return h.orders.Assign(r.Context(), o.ID, req.CourierID) })
}

// AdvanceStatus handles POST /orders/{id}/status.
func (h *OrderHandler) AdvanceStatus(w http.ResponseWriter, r *http.Request) {
	o, ok := h.existing(w, r)
	if !ok {
		return
	}
	var req statusRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	h.mutate(w, r, o.ID, func() error { return h.orders.AdvanceStatus(r.Context(), o.ID, req.Status) })
}

// RecordProof handles POST /orders/{id}/proof.
// @Summary Confirm delivery
// @Description Marks an in-progress order delivered with a signature and/or photo (data URLs)
// @Tags orders
// @Accept json
// @Produce json
// @Param request body proofRequest true "Proof of delivery"
// @Success 200 {object} domain.Order
// @Failure 400 {object} ErrorResponse "empty proof"
// @Failure 404 {object} ErrorResponse "order not found"
// @Failure 409 {object} ErrorResponse "order is not in progress"
// @Router /orders/{id}/proof [post]
func (h *OrderHandler) RecordProof(w http.ResponseWriter, r *http.Request) {
	o, ok := h.existing(w, r)
	if !ok {
		return
	}
	var req proofRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	h.mutate(w, r, o.ID, func() error { return h.orders.RecordProof(r.Context(), o.ID, req.toModel()) })
}

// NavigateQR handles GET /orders/{id}/navigate.png: a QR code of the Waze link
// to the order's current target.
func (h *OrderHandler) NavigateQR(w http.ResponseWriter, r *http.Request) {
	o, ok := h.existing(w, r)
	if !ok {
		return
	}
	size := 256
	if s := r.URL.Query().Get("size"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 64 || n > 1024 {
			writeError(h.logger, w, r, http.StatusBadRequest, "size must be between 64 and 1024")
			return
		}
		size = n
	}
	png, err := geo.NavigationQR(geo.NavigationTarget(o), size)
	if err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

// Export handles GET /orders/export.xlsx with the same filters as List.
func (h *OrderHandler) Export(w http.ResponseWriter, r *http.Request) {
	f, err := filterFromQuery(r)
	if err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	raw, err := report.OrdersXLSX(h.orders.Filter(f), h.accounts.Couriers())
	if err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	name := fmt.Sprintf("orders_%s.xlsx", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}

// existing resolves {id} to an order, writing 400 or 404 when it cannot.
func (h *OrderHandler) existing(w http.ResponseWriter, r *http.Request) (domain.Order, bool) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return domain.Order{}, false
	}
	o, ok := h.orders.Get(id)
	if !ok {
		writeError(h.logger, w, r, http.StatusNotFound, "order not found")
		return domain.Order{}, false
	}
	return o, true
}

// mutate runs op and answers with the order as it is afterwards.
func (h *OrderHandler) mutate(w http.ResponseWriter, r *http.Request, id int64, op func() error) {
	if err := op(); err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	o, ok := h.orders.Get(id)
	if !ok {
		writeError(h.logger, w, r, http.StatusNotFound, "order not found")
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, o)
}

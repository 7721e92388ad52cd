package handlers

import (
	"net/http"

	"yoyo-delivery/internal/geo"
	"yoyo-delivery/internal/logx"
)

// GeoHandler serves the mock geocoder and intake form data.
type GeoHandler struct {
	views  viewUsecase
	logger logx.Logger
}

// NewGeoHandler creates a new GeoHandler.
func NewGeoHandler(logger logx.Logger, v viewUsecase) *GeoHandler {
	return &GeoHandler{views: v, logger: logger}
}

type geocodeResponse struct {
	Address string    `json:"address"`
	Point   geo.Point `json:"point"`
}

// Geocode handles GET /geocode?address=.
func (h *GeoHandler) Geocode(w http.ResponseWriter, r *http.Request) {
	addr := r.URL.Query().Get("address")
	p, ok := geo.Geocode(addr)
	if !ok {
		writeError(h.logger, w, r, http.StatusNotFound, "address not resolved")
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, geocodeResponse{Address: addr, Point: p})
}

// Route handles GET /route?pickup=&dropoff=.
func (h *GeoHandler) Route(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	writeJSON(h.logger, w, r, http.StatusOK, geo.Resolve(q.Get("pickup"), q.Get("dropoff")))
}

// TimeSlots handles GET /timeslots.
func (h *GeoHandler) TimeSlots(w http.ResponseWriter, r *http.Request) {
	writeJSON(h.logger, w, r, http.StatusOK, h.views.Intake())
}

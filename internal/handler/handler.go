// Package handler implements the HTTP API: route planning, station
// listings, the chat endpoint and lost & found report lookup.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/Jana-Alrzoog/2025-GP-28/internal/catalog"
	"github.com/Jana-Alrzoog/2025-GP-28/internal/eta"
	"github.com/Jana-Alrzoog/2025-GP-28/internal/faq"
	"github.com/Jana-Alrzoog/2025-GP-28/internal/lostfound"
	"github.com/Jana-Alrzoog/2025-GP-28/internal/route"
	"github.com/Jana-Alrzoog/2025-GP-28/internal/storage"
)

type Handler struct {
	routes   *route.Service
	eta      *eta.Client
	faq      *faq.Index
	flow     *lostfound.Flow
	db       *storage.DB
	validate *validator.Validate
	logger   *slog.Logger
}

func New(routes *route.Service, etaClient *eta.Client, faqIndex *faq.Index, flow *lostfound.Flow, db *storage.DB, logger *slog.Logger) *Handler {
	return &Handler{
		routes:   routes,
		eta:      etaClient,
		faq:      faqIndex,
		flow:     flow,
		db:       db,
		validate: validator.New(),
		logger:   logger,
	}
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]apiError{"error": {Code: code, Message: message}})
}

// RouteRequest is the plan-a-trip payload. Pointer coordinates
// distinguish an absent field from a zero value.
type RouteRequest struct {
	Destination string   `json:"destination" validate:"required"`
	Lat         *float64 `json:"lat" validate:"required,latitude"`
	Lon         *float64 `json:"lon" validate:"required,longitude"`
}

// RouteResponse pairs the itinerary with last-mile access estimates to
// the boarding station. Access is omitted when no estimates came back.
type RouteResponse struct {
	Plan   *route.Plan    `json:"plan"`
	Access *eta.Estimates `json:"access,omitempty"`
}

// PlanRoute handles POST /api/route.
func (h *Handler) PlanRoute(w http.ResponseWriter, r *http.Request) {
	var req RouteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "malformed JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	plan, err := h.routes.Plan(r.Context(), *req.Lat, *req.Lon, req.Destination)
	if err != nil {
		h.writePlanError(w, err)
		return
	}

	resp := RouteResponse{Plan: plan}
	if h.eta != nil {
		est := h.eta.WalkAndDrive(r.Context(), *req.Lat, *req.Lon, plan.Start.Lat, plan.Start.Lon)
		if est.Walk != nil || est.Drive != nil {
			resp.Access = &est
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) writePlanError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, route.ErrInvalidCoordinates):
		writeError(w, http.StatusBadRequest, "invalid_coordinates", err.Error())
	case errors.Is(err, route.ErrStationNotFound):
		writeError(w, http.StatusNotFound, "station_not_found", err.Error())
	case errors.Is(err, route.ErrNoPath):
		writeError(w, http.StatusNotFound, "no_path", err.Error())
	case errors.Is(err, route.ErrNoStations):
		writeError(w, http.StatusServiceUnavailable, "no_stations", err.Error())
	default:
		h.logger.Error("route planning failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "route planning failed")
	}
}

type stationDTO struct {
	ID     string       `json:"id"`
	Name   string       `json:"name"`
	NameAR string       `json:"name_ar,omitempty"`
	Line   catalog.Line `json:"line"`
	Lat    float64      `json:"lat"`
	Lon    float64      `json:"lon"`
}

func toStationDTO(st *catalog.Station) stationDTO {
	return stationDTO{
		ID:     st.ID,
		Name:   st.DisplayName(),
		NameAR: st.NameAR,
		Line:   catalog.LineByID(st.LineID),
		Lat:    st.Lat,
		Lon:    st.Lon,
	}
}

// ListStations handles GET /api/stations.
func (h *Handler) ListStations(w http.ResponseWriter, r *http.Request) {
	stations := h.routes.Stations()
	out := make([]stationDTO, 0, len(stations))
	for _, st := range stations {
		out = append(out, toStationDTO(st))
	}
	writeJSON(w, http.StatusOK, map[string]any{"stations": out})
}

// NearestStation handles GET /api/stations/nearest?lat=..&lon=..
func (h *Handler) NearestStation(w http.ResponseWriter, r *http.Request) {
	lat, err1 := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lon, err2 := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if err1 != nil || err2 != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "lat and lon query parameters are required")
		return
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		writeError(w, http.StatusBadRequest, "invalid_coordinates", "coordinates out of range")
		return
	}

	st, dist := h.routes.NearestStation(lat, lon)
	if st == nil {
		writeError(w, http.StatusServiceUnavailable, "no_stations", "no stations available")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"station":     toStationDTO(st),
		"distance_km": dist / 1000,
	})
}

// GetReport handles GET /api/reports/{ticket}.
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	ticket := r.PathValue("ticket")
	report, err := h.db.GetReport(r.Context(), ticket)
	if err != nil {
		h.logger.Error("report lookup failed", "ticket", ticket, "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "report lookup failed")
		return
	}
	if report == nil {
		writeError(w, http.StatusNotFound, "not_found", "no report with that ticket")
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/okian/launchboard/internal/adapters/render"
	service "github.com/okian/launchboard/internal/app"
	"github.com/okian/launchboard/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	ControlsDependencies
	ViewDependencies
	ChartDependencies
}

// Server wires HTTP routes for the dashboard API.
type Server struct {
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	controlsHandler *ControlsHandler
	viewsHandler    *ViewsHandler
	chartsHandler   *ChartsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:   NewHealthHandler(),
		statsHandler:    NewStatsHandler(statsProvider),
		controlsHandler: NewControlsHandler(deps),
		viewsHandler:    NewViewsHandler(deps),
		chartsHandler:   NewChartsHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	route := func(pattern, endpoint string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, RequestIDMiddleware(MetricsMiddleware(h, endpoint)))
	}

	route("/healthz", "healthz", s.healthHandler.HandleHealth)
	route("/stats", "stats", s.statsHandler.HandleStats)
	route("/api/controls", "controls", s.controlsHandler.HandleGetControls)
	route("/api/distribution", "distribution", s.viewsHandler.HandleGetDistribution)
	route("/api/correlation", "correlation", s.viewsHandler.HandleGetCorrelation)
	route("/charts/", "charts", s.chartsHandler.HandleGetChart)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// siteParam returns the site query parameter as sent, defaulting to every
// site only when the parameter is absent.
func siteParam(r *http.Request) string {
	q := r.URL.Query()
	if !q.Has("site") {
		return model.AllSites
	}
	return q.Get("site")
}

// windowParams reads min and max, falling back to def for absent values.
// Values that are not finite numbers are rejected.
func windowParams(r *http.Request, def model.Bounds) (model.Bounds, error) {
	b := def
	q := r.URL.Query()
	for _, p := range []struct {
		name string
		dst  *float64
	}{
		{"min", &b.Min},
		{"max", &b.Max},
	} {
		raw := strings.TrimSpace(q.Get(p.name))
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return model.Bounds{}, fmt.Errorf("%w: %s must be a finite number", ErrBadRequest, p.name)
		}
		*p.dst = v
	}
	return b, nil
}

// statusFor maps dependency errors to HTTP status codes.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrNotStarted):
		return http.StatusServiceUnavailable, "unavailable"
	case errors.Is(err, render.ErrUnknownFormat):
		return http.StatusNotFound, "not_found"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

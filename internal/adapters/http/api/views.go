package api

import (
	"context"
	"net/http"

	"github.com/okian/launchboard/internal/domain/model"
	"github.com/okian/launchboard/internal/domain/types"
)

// ViewDependencies defines the interface for the two dashboard views.
type ViewDependencies interface {
	Bounds(ctx context.Context) (model.Bounds, error)
	Distribution(ctx context.Context, site string) (types.DistributionView, error)
	Correlation(ctx context.Context, site string, lo, hi float64) (types.CorrelationView, error)
}

// ViewsHandler serves the JSON form of the distribution and correlation views.
type ViewsHandler struct {
	deps ViewDependencies
}

// NewViewsHandler creates a new views handler.
func NewViewsHandler(deps ViewDependencies) *ViewsHandler {
	return &ViewsHandler{deps: deps}
}

// HandleGetDistribution handles GET /api/distribution?site=S requests.
func (h *ViewsHandler) HandleGetDistribution(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_distribution"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	view, err := h.deps.Distribution(r.Context(), siteParam(r))
	if err != nil {
		status, code := statusFor(err)
		writeError(w, status, code, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// HandleGetCorrelation handles GET /api/correlation?site=S&min=A&max=B requests.
// Absent bounds default to the global payload bounds.
func (h *ViewsHandler) HandleGetCorrelation(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_correlation"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	window, ok := resolveWindow(w, r, op, h.deps)
	if !ok {
		return
	}
	view, err := h.deps.Correlation(r.Context(), siteParam(r), window.Min, window.Max)
	if err != nil {
		status, code := statusFor(err)
		writeError(w, status, code, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, view)
}

type boundsProvider interface {
	Bounds(ctx context.Context) (model.Bounds, error)
}

// resolveWindow parses the payload window of r, writing the error response
// itself when it reports false.
func resolveWindow(w http.ResponseWriter, r *http.Request, op string, deps boundsProvider) (model.Bounds, bool) {
	def, err := deps.Bounds(r.Context())
	if err != nil {
		status, code := statusFor(err)
		writeError(w, status, code, Wrap(op, err))
		return model.Bounds{}, false
	}
	window, err := windowParams(r, def)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return model.Bounds{}, false
	}
	return window, true
}

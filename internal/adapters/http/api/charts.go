package api

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/okian/launchboard/internal/adapters/render"
	"github.com/okian/launchboard/internal/domain/model"
)

// ChartDependencies defines the interface for server-side chart rendering.
type ChartDependencies interface {
	Bounds(ctx context.Context) (model.Bounds, error)
	RenderDistribution(ctx context.Context, w io.Writer, site string, f render.Format) error
	RenderCorrelation(ctx context.Context, w io.Writer, site string, lo, hi float64, f render.Format) error
}

// Chart names served under /charts/.
const (
	chartDistribution = "distribution"
	chartCorrelation  = "correlation"
)

// ChartsHandler handles chart image requests.
type ChartsHandler struct {
	deps ChartDependencies
}

// NewChartsHandler creates a new charts handler.
func NewChartsHandler(deps ChartDependencies) *ChartsHandler {
	return &ChartsHandler{deps: deps}
}

// HandleGetChart handles GET /charts/{name}.{svg|png} requests.
// An empty view answers 204 with no body.
func (h *ChartsHandler) HandleGetChart(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_chart"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	file := strings.TrimPrefix(r.URL.Path, "/charts/")
	if file == "" || strings.Contains(file, "/") {
		http.NotFound(w, r)
		return
	}
	ext := path.Ext(file)
	name := strings.TrimSuffix(file, ext)
	format, err := render.ParseFormat(strings.TrimPrefix(ext, "."))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	site := siteParam(r)
	var buf bytes.Buffer
	switch name {
	case chartDistribution:
		err = h.deps.RenderDistribution(r.Context(), &buf, site, format)
	case chartCorrelation:
		window, ok := resolveWindow(w, r, op, h.deps)
		if !ok {
			return
		}
		err = h.deps.RenderCorrelation(r.Context(), &buf, site, window.Min, window.Max, format)
	default:
		http.NotFound(w, r)
		return
	}

	switch {
	case errors.Is(err, render.ErrNoData):
		w.WriteHeader(http.StatusNoContent)
		return
	case err != nil:
		status, code := statusFor(err)
		writeError(w, status, code, Wrap(op, err))
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

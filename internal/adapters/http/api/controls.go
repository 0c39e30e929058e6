package api

import (
	"context"
	"net/http"

	"github.com/okian/launchboard/internal/domain/types"
)

// ControlsDependencies defines the interface for describing the dashboard controls.
type ControlsDependencies interface {
	Controls(ctx context.Context) (types.ControlSet, error)
}

// ControlsHandler handles control description requests.
type ControlsHandler struct {
	deps ControlsDependencies
}

// NewControlsHandler creates a new controls handler.
func NewControlsHandler(deps ControlsDependencies) *ControlsHandler {
	return &ControlsHandler{deps: deps}
}

// HandleGetControls handles GET /api/controls requests.
func (h *ControlsHandler) HandleGetControls(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_controls"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	cs, err := h.deps.Controls(r.Context())
	if err != nil {
		status, code := statusFor(err)
		writeError(w, status, code, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, cs)
}

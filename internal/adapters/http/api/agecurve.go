// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/paddocklab/gridboss/internal/domain/types"
)

// AgeCurveDependencies defines the interface for age curve reads.
type AgeCurveDependencies interface {
	AgeCurve(ctx context.Context) ([]types.AgeBucketSummary, error)
}

// AgeCurveHandler handles age curve requests.
type AgeCurveHandler struct {
	deps AgeCurveDependencies
}

// NewAgeCurveHandler creates a new age curve handler.
func NewAgeCurveHandler(deps AgeCurveDependencies) *AgeCurveHandler {
	return &AgeCurveHandler{deps: deps}
}

// HandleGetAgeCurve handles GET /agecurve requests.
func (h *AgeCurveHandler) HandleGetAgeCurve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	buckets, err := h.deps.AgeCurve(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, buckets)
}

// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"sort"

	"github.com/paddocklab/gridboss/internal/domain/types"
)

// CircuitsDependencies defines the interface for circuit table reads.
type CircuitsDependencies interface {
	Circuits(ctx context.Context) ([]types.CircuitSummary, error)
}

// CircuitsHandler handles circuit summary requests.
type CircuitsHandler struct {
	deps       CircuitsDependencies
	minEntries int
}

// NewCircuitsHandler creates a new circuits handler.
func NewCircuitsHandler(deps CircuitsDependencies, minEntries int) *CircuitsHandler {
	return &CircuitsHandler{deps: deps, minEntries: minEntries}
}

// HandleGetCircuits handles GET /circuits?min_entries=N requests.
func (h *CircuitsHandler) HandleGetCircuits(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	minEntries, err := queryInt(r, "min_entries", h.minEntries)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	circuits, err := h.deps.Circuits(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	out := make([]types.CircuitSummary, 0, len(circuits))
	for _, c := range circuits {
		if c.Entries >= minEntries {
			out = append(out, c)
		}
	}
	// Display order: hardest circuits first.
	sort.SliceStable(out, func(i, j int) bool { return out[i].DNFRate > out[j].DNFRate })
	writeJSON(w, http.StatusOK, out)
}

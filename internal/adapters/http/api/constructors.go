// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"sort"

	"github.com/paddocklab/gridboss/internal/domain/types"
)

// ConstructorsDependencies defines the interface for constructor table reads.
type ConstructorsDependencies interface {
	Constructors(ctx context.Context) ([]types.ConstructorSummary, error)
	ConstructorTierSplits(ctx context.Context) ([]types.TierSplit, error)
}

// ConstructorsHandler handles constructor summary and tier split requests.
type ConstructorsHandler struct {
	deps         ConstructorsDependencies
	minRaces     int
	minTierRaces int
}

// NewConstructorsHandler creates a new constructors handler.
func NewConstructorsHandler(deps ConstructorsDependencies, minRaces, minTierRaces int) *ConstructorsHandler {
	return &ConstructorsHandler{
		deps:         deps,
		minRaces:     minRaces,
		minTierRaces: minTierRaces,
	}
}

// HandleGetConstructors handles GET /constructors?min_races=N requests.
func (h *ConstructorsHandler) HandleGetConstructors(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	minRaces, err := queryInt(r, "min_races", h.minRaces)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	constructors, err := h.deps.Constructors(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	out := make([]types.ConstructorSummary, 0, len(constructors))
	for _, c := range constructors {
		if c.Races >= minRaces {
			out = append(out, c)
		}
	}
	// Display order: best tank scores first.
	sort.SliceStable(out, func(i, j int) bool { return out[i].TankScore > out[j].TankScore })
	writeJSON(w, http.StatusOK, out)
}

// HandleGetConstructorTiers handles GET /constructors/tiers?min_tier_races=N requests.
func (h *ConstructorsHandler) HandleGetConstructorTiers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	minTierRaces, err := queryInt(r, "min_tier_races", h.minTierRaces)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	splits, err := h.deps.ConstructorTierSplits(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, filterTierSplits(splits, minTierRaces))
}

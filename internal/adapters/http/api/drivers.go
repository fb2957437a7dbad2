// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"sort"

	"github.com/paddocklab/gridboss/internal/domain/types"
)

// DriversDependencies defines the interface for driver table reads.
type DriversDependencies interface {
	Drivers(ctx context.Context) ([]types.DriverSummary, error)
	DriverTierSplits(ctx context.Context) ([]types.TierSplit, error)
}

// DriversHandler handles driver summary and tier split requests.
type DriversHandler struct {
	deps         DriversDependencies
	minRaces     int
	minTierRaces int
}

// NewDriversHandler creates a new drivers handler.
func NewDriversHandler(deps DriversDependencies, minRaces, minTierRaces int) *DriversHandler {
	return &DriversHandler{
		deps:         deps,
		minRaces:     minRaces,
		minTierRaces: minTierRaces,
	}
}

// HandleGetDrivers handles GET /drivers?min_races=N requests.
func (h *DriversHandler) HandleGetDrivers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	minRaces, err := queryInt(r, "min_races", h.minRaces)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	drivers, err := h.deps.Drivers(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	out := make([]types.DriverSummary, 0, len(drivers))
	for _, d := range drivers {
		if d.Races >= minRaces {
			out = append(out, d)
		}
	}
	// Display order: best scorers first.
	sort.SliceStable(out, func(i, j int) bool { return out[i].PointsPerRace > out[j].PointsPerRace })
	writeJSON(w, http.StatusOK, out)
}

// HandleGetDriverTiers handles GET /drivers/tiers?min_tier_races=N requests.
// A driver appears only with at least N races in each of the easy and hard
// tiers, so the comparison is meaningful on both sides.
func (h *DriversHandler) HandleGetDriverTiers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	minTierRaces, err := queryInt(r, "min_tier_races", h.minTierRaces)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	splits, err := h.deps.DriverTierSplits(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, filterTierSplits(splits, minTierRaces))
}

// filterTierSplits keeps splits with enough races on both tiers.
func filterTierSplits(splits []types.TierSplit, minTierRaces int) []types.TierSplit {
	out := make([]types.TierSplit, 0, len(splits))
	for _, s := range splits {
		if s.EasyRaces >= minTierRaces && s.HardRaces >= minTierRaces {
			out = append(out, s)
		}
	}
	return out
}

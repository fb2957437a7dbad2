// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"sort"

	"github.com/paddocklab/gridboss/internal/domain/types"
)

// NationalitiesDependencies defines the interface for nationality table reads.
type NationalitiesDependencies interface {
	Nationalities(ctx context.Context) ([]types.NationalitySummary, error)
}

// NationalitiesHandler handles nationality summary requests.
type NationalitiesHandler struct {
	deps     NationalitiesDependencies
	minRaces int
}

// NewNationalitiesHandler creates a new nationalities handler.
func NewNationalitiesHandler(deps NationalitiesDependencies, minRaces int) *NationalitiesHandler {
	return &NationalitiesHandler{deps: deps, minRaces: minRaces}
}

// HandleGetNationalities handles GET /nationalities?min_races=N requests.
func (h *NationalitiesHandler) HandleGetNationalities(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	minRaces, err := queryInt(r, "min_races", h.minRaces)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	nationalities, err := h.deps.Nationalities(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	out := make([]types.NationalitySummary, 0, len(nationalities))
	for _, n := range nationalities {
		if n.Races >= minRaces {
			out = append(out, n)
		}
	}
	// Display order: best normalized scorers first, undefined last.
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].AvgNormalizedPoints, out[j].AvgNormalizedPoints
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return *a > *b
		}
	})
	writeJSON(w, http.StatusOK, out)
}

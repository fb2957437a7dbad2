// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/paddocklab/gridboss/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Read operations expose the derived analytics tables.
	Circuits(ctx context.Context) ([]types.CircuitSummary, error)
	Drivers(ctx context.Context) ([]types.DriverSummary, error)
	DriverTierSplits(ctx context.Context) ([]types.TierSplit, error)
	Constructors(ctx context.Context) ([]types.ConstructorSummary, error)
	ConstructorTierSplits(ctx context.Context) ([]types.TierSplit, error)
	Nationalities(ctx context.Context) ([]types.NationalitySummary, error)
	AgeCurve(ctx context.Context) ([]types.AgeBucketSummary, error)
	TopN(ctx context.Context, n int) ([]types.Candidate, error)
	CandidateRank(ctx context.Context, driver string) (types.Candidate, error)

	// Reload re-reads the dataset and rebuilds every table.
	Reload(ctx context.Context) error
}

// Floors carries the statistical-significance cutoffs and limits the read
// endpoints apply by default. Query parameters can tighten or relax them
// per request.
type Floors struct {
	MaxRankingLimit         int
	MinCareerRaces          int
	MinTierRaces            int
	MinConstructorRaces     int
	MinConstructorTierRaces int
	MinNationalityRaces     int
	MinCircuitEntries       int
}

// DefaultFloors returns the stock cutoffs.
func DefaultFloors() Floors {
	return Floors{
		MaxRankingLimit:         100,
		MinCareerRaces:          50,
		MinTierRaces:            10,
		MinConstructorRaces:     100,
		MinConstructorTierRaces: 50,
		MinNationalityRaces:     100,
		MinCircuitEntries:       500,
	}
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	circuitsHandler    *CircuitsHandler
	driversHandler     *DriversHandler
	constructorHandler *ConstructorsHandler
	nationalityHandler *NationalitiesHandler
	ageCurveHandler    *AgeCurveHandler
	rankingHandler     *RankingHandler
	reloadHandler      *ReloadHandler
	dashboardHandler   *dashboardHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, floors Floors) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
		circuitsHandler:    NewCircuitsHandler(deps, floors.MinCircuitEntries),
		driversHandler:     NewDriversHandler(deps, floors.MinCareerRaces, floors.MinTierRaces),
		constructorHandler: NewConstructorsHandler(deps, floors.MinConstructorRaces, floors.MinConstructorTierRaces),
		nationalityHandler: NewNationalitiesHandler(deps, floors.MinNationalityRaces),
		ageCurveHandler:    NewAgeCurveHandler(deps),
		rankingHandler:     NewRankingHandler(deps, floors.MaxRankingLimit),
		reloadHandler:      NewReloadHandler(deps),
		dashboardHandler:   newdashboardHandler(),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/dashboard", s.dashboardHandler.HandleDashboard)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/circuits", MetricsMiddleware(s.circuitsHandler.HandleGetCircuits, "circuits"))
	mux.HandleFunc("/drivers", MetricsMiddleware(s.driversHandler.HandleGetDrivers, "drivers"))
	mux.HandleFunc("/drivers/tiers", MetricsMiddleware(s.driversHandler.HandleGetDriverTiers, "driver_tiers"))
	mux.HandleFunc("/constructors", MetricsMiddleware(s.constructorHandler.HandleGetConstructors, "constructors"))
	mux.HandleFunc("/constructors/tiers", MetricsMiddleware(s.constructorHandler.HandleGetConstructorTiers, "constructor_tiers"))
	mux.HandleFunc("/nationalities", MetricsMiddleware(s.nationalityHandler.HandleGetNationalities, "nationalities"))
	mux.HandleFunc("/agecurve", MetricsMiddleware(s.ageCurveHandler.HandleGetAgeCurve, "agecurve"))
	mux.HandleFunc("/ranking", MetricsMiddleware(s.rankingHandler.HandleGetRanking, "ranking"))
	mux.HandleFunc("/ranking/", MetricsMiddleware(s.rankingHandler.HandleGetDriverRank, "driver_rank"))
	mux.HandleFunc("/reload", MetricsMiddleware(s.reloadHandler.HandlePostReload, "reload"))
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

// queryInt reads an optional positive integer query parameter, falling back
// to def when absent. Returns ErrBadRequest on non-numeric or negative input.
func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, ErrBadRequest
	}
	return n, nil
}

// isNotFound allows the API to translate upstream not-found errors to 404.
// This stays generic to avoid tight coupling with specific packages.
func isNotFound(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "not found")
}

// isNotStarted detects reads that raced service startup.
func isNotStarted(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "not started")
}

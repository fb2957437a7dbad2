// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
//
// The service owns the pipeline: load dataset -> derive columns -> classify
// circuit tiers -> aggregate summary tables -> score and rank candidates.
// The pipeline runs once at Start and again only on an explicit Reload; in
// between, every read is served from an immutable snapshot.
package service

import (
	"context"
	"sync"
	"time"

	repository "github.com/paddocklab/gridboss/internal/adapters/repository"
	"github.com/paddocklab/gridboss/internal/domain/aggregate"
	"github.com/paddocklab/gridboss/internal/domain/normalize"
	"github.com/paddocklab/gridboss/internal/domain/scoring"
	"github.com/paddocklab/gridboss/internal/domain/tier"
	"github.com/paddocklab/gridboss/internal/domain/types"
	"github.com/paddocklab/gridboss/pkg/logger"
	"github.com/paddocklab/gridboss/pkg/metrics"
)

// Default pipeline configuration.
const (
	defaultDataPath     = "f1_data.csv"
	defaultMinHardRaces = 10
)

// snapshot holds every derived table of one pipeline run. It is replaced
// wholesale on reload and never mutated in place.
type snapshot struct {
	circuits         []types.CircuitSummary
	thresholds       tier.Thresholds
	drivers          []types.DriverSummary
	driverTiers      []types.TierSplit
	constructors     []types.ConstructorSummary
	constructorTiers []types.TierSplit
	nationalities    []types.NationalitySummary
	ageCurve         []types.AgeBucketSummary
	ranking          []types.Candidate
}

// Service implements the API dependencies for the analytics system.
type Service struct {
	mu sync.RWMutex

	// Core components
	store  repository.Store
	ranker *scoring.Ranker

	// Configuration
	dataPath       string
	minHardRaces   int
	minCareerRaces int
	scoreWeights   map[string]float64

	// State
	started  bool
	loadedAt time.Time
	snap     *snapshot

	// Logging
	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		dataPath:     defaultDataPath,
		minHardRaces: defaultMinHardRaces,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start loads the dataset and computes the first snapshot. A dataset that
// cannot be read is fatal here; malformed rows inside it are not.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	s.logger.Info(ctx, "starting analytics service...")

	rankerOpts := []scoring.Option{}
	if len(s.scoreWeights) > 0 {
		rankerOpts = append(rankerOpts, scoring.WithWeightsFromConfig(s.scoreWeights))
	}
	if s.minCareerRaces > 0 {
		rankerOpts = append(rankerOpts, scoring.WithMinCareerRaces(s.minCareerRaces))
	}
	ranker, err := scoring.NewRanker(rankerOpts...)
	if err != nil {
		return err
	}
	s.ranker = ranker

	if s.store == nil {
		s.store = repository.NewCSVStore(
			repository.WithPath(s.dataPath),
			repository.WithLogger(s.logger),
		)
	}
	if err := s.store.Load(ctx); err != nil {
		return err
	}
	s.rebuildLocked(ctx)
	s.started = true

	s.logger.Info(ctx, "analytics service started",
		logger.Int("rows", s.store.Count(ctx)),
		logger.Int("skippedRows", s.store.Skipped(ctx)),
		logger.Int("candidates", len(s.snap.ranking)),
	)
	return nil
}

// Stop marks the service stopped. There is nothing asynchronous to drain.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "analytics service stopped")
}

// Reload is the explicit reset-and-reload path: it re-reads the dataset file
// and rebuilds every derived table. There is no other cache invalidation.
func (s *Service) Reload(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return ErrNotStarted
	}
	if err := s.store.Reload(ctx); err != nil {
		return err
	}
	metrics.RecordDatasetReload()
	s.rebuildLocked(ctx)

	s.logger.Info(ctx, "dataset reloaded",
		logger.Int("rows", s.store.Count(ctx)),
		logger.Int("candidates", len(s.snap.ranking)),
	)
	return nil
}

// rebuildLocked runs the derivation pipeline over the cached rows. Callers
// hold the write lock.
func (s *Service) rebuildLocked(ctx context.Context) {
	start := time.Now()
	rows := s.store.Rows(ctx)

	normalize.Derive(rows)
	circuits := tier.Summarize(rows)
	tiers, thresholds := tier.Classify(circuits)
	tier.Apply(rows, circuits, tiers)

	snap := &snapshot{
		circuits:         circuits,
		thresholds:       thresholds,
		drivers:          aggregate.Drivers(rows, s.minHardRaces),
		driverTiers:      aggregate.DriverTierSplits(rows),
		constructors:     aggregate.Constructors(rows),
		constructorTiers: aggregate.ConstructorTierSplits(rows),
		nationalities:    aggregate.Nationalities(rows),
		ageCurve:         aggregate.AgeBuckets(rows),
	}
	snap.ranking = s.ranker.Rank(snap.drivers)

	s.snap = snap
	s.loadedAt = time.Now()

	metrics.RecordSnapshotRebuild(float64(time.Since(start).Milliseconds()), s.loadedAt.Unix())
	metrics.UpdateTableRows("circuits", len(snap.circuits))
	metrics.UpdateTableRows("drivers", len(snap.drivers))
	metrics.UpdateTableRows("constructors", len(snap.constructors))
	metrics.UpdateTableRows("nationalities", len(snap.nationalities))
	metrics.UpdateCandidatesScored(len(snap.ranking))
}

// current returns the active snapshot, or ErrNotStarted before Start.
func (s *Service) current() (*snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snap == nil {
		return nil, ErrNotStarted
	}
	return s.snap, nil
}

// Circuits returns the circuit summary table with difficulty tiers.
func (s *Service) Circuits(_ context.Context) ([]types.CircuitSummary, error) {
	snap, err := s.current()
	if err != nil {
		return nil, err
	}
	return append([]types.CircuitSummary(nil), snap.circuits...), nil
}

// Drivers returns the driver summary table.
func (s *Service) Drivers(_ context.Context) ([]types.DriverSummary, error) {
	snap, err := s.current()
	if err != nil {
		return nil, err
	}
	return append([]types.DriverSummary(nil), snap.drivers...), nil
}

// DriverTierSplits returns the per-driver easy/hard tier comparison.
func (s *Service) DriverTierSplits(_ context.Context) ([]types.TierSplit, error) {
	snap, err := s.current()
	if err != nil {
		return nil, err
	}
	return append([]types.TierSplit(nil), snap.driverTiers...), nil
}

// Constructors returns the constructor summary table.
func (s *Service) Constructors(_ context.Context) ([]types.ConstructorSummary, error) {
	snap, err := s.current()
	if err != nil {
		return nil, err
	}
	return append([]types.ConstructorSummary(nil), snap.constructors...), nil
}

// ConstructorTierSplits returns the per-constructor easy/hard tier comparison.
func (s *Service) ConstructorTierSplits(_ context.Context) ([]types.TierSplit, error) {
	snap, err := s.current()
	if err != nil {
		return nil, err
	}
	return append([]types.TierSplit(nil), snap.constructorTiers...), nil
}

// Nationalities returns the nationality summary table.
func (s *Service) Nationalities(_ context.Context) ([]types.NationalitySummary, error) {
	snap, err := s.current()
	if err != nil {
		return nil, err
	}
	return append([]types.NationalitySummary(nil), snap.nationalities...), nil
}

// AgeCurve returns the age-bucket summary table in bucket order.
func (s *Service) AgeCurve(_ context.Context) ([]types.AgeBucketSummary, error) {
	snap, err := s.current()
	if err != nil {
		return nil, err
	}
	return append([]types.AgeBucketSummary(nil), snap.ageCurve...), nil
}

// TopN returns the top N ranked candidates.
func (s *Service) TopN(_ context.Context, n int) ([]types.Candidate, error) {
	snap, err := s.current()
	if err != nil {
		return nil, err
	}
	if n > len(snap.ranking) {
		n = len(snap.ranking)
	}
	return append([]types.Candidate(nil), snap.ranking[:n]...), nil
}

// CandidateRank returns the ranked row for one driver.
// Returns ErrNotFound when the driver is not in the candidate set.
func (s *Service) CandidateRank(_ context.Context, driver string) (types.Candidate, error) {
	snap, err := s.current()
	if err != nil {
		return types.Candidate{}, err
	}
	for i := range snap.ranking {
		if snap.ranking[i].Driver == driver {
			return snap.ranking[i], nil
		}
	}
	return types.Candidate{}, ErrNotFound
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":  s.started,
		"dataPath": s.dataPath,
	}
	if s.snap != nil {
		stats["rows"] = s.store.Count(ctx)
		stats["skippedRows"] = s.store.Skipped(ctx)
		stats["circuits"] = len(s.snap.circuits)
		stats["drivers"] = len(s.snap.drivers)
		stats["constructors"] = len(s.snap.constructors)
		stats["nationalities"] = len(s.snap.nationalities)
		stats["candidates"] = len(s.snap.ranking)
		stats["tierThresholds"] = s.snap.thresholds
		stats["loadedAt"] = s.loadedAt.UTC().Format(time.RFC3339)
	}
	return stats
}

package service

import (
	repository "github.com/paddocklab/gridboss/internal/adapters/repository"
	"github.com/paddocklab/gridboss/pkg/logger"
)

// Option configures the Service.
type Option func(*Service)

// WithDataPath sets the dataset CSV path used when no store is injected.
func WithDataPath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.dataPath = path
		}
	}
}

// WithStore injects a dataset store, overriding the default CSV store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		s.store = store
	}
}

// WithLogger sets the logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}

// WithScoreWeights sets the composite-score weights passed to the ranker.
func WithScoreWeights(weights map[string]float64) Option {
	return func(s *Service) {
		s.scoreWeights = weights
	}
}

// WithMinHardRaces sets the floor of hard-tier races a driver needs before
// a hard-tier points-per-race value is reported.
func WithMinHardRaces(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.minHardRaces = n
		}
	}
}

// WithMinCareerRaces sets the career-race floor for ranking eligibility.
func WithMinCareerRaces(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.minCareerRaces = n
		}
	}
}

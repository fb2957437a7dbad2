// Package scoring ranks driver summaries into a composite leaderboard.
package scoring

import (
	"fmt"
	"math"
	"sort"

	"github.com/paddocklab/gridboss/internal/domain/types"
)

// Default scoring configuration constants.
const (
	defaultMinCareerRaces = 50

	defaultWeightPPR        = 0.30
	defaultWeightFinishRate = 0.20
	defaultWeightDelta      = 0.20
	defaultWeightHardPPR    = 0.30

	// epsilon keeps a zero-range column from dividing by zero during
	// min-max normalization.
	epsilon = 1e-10

	weightSumTolerance = 1e-9
)

// Weights are the fixed linear-combination weights of the composite score.
// They must sum to 1.0.
type Weights struct {
	PPR           float64
	FinishRate    float64
	PositionDelta float64
	HardPPR       float64
}

// DefaultWeights returns the calibrated weight set: overall pace and
// hard-track pace carry 30% each, consistency and racecraft 20% each.
func DefaultWeights() Weights {
	return Weights{
		PPR:           defaultWeightPPR,
		FinishRate:    defaultWeightFinishRate,
		PositionDelta: defaultWeightDelta,
		HardPPR:       defaultWeightHardPPR,
	}
}

func (w Weights) validate() error {
	sum := w.PPR + w.FinishRate + w.PositionDelta + w.HardPPR
	if math.Abs(sum-1.0) > weightSumTolerance {
		return fmt.Errorf("%w: weights sum to %v, want 1.0", ErrInvalidWeights, sum)
	}
	return nil
}

// Ranker filters driver summaries to scorable candidates and ranks them by
// the weighted composite of four min-max normalized metrics.
type Ranker struct {
	weights        Weights
	minCareerRaces int
}

// NewRanker creates a Ranker, validating any overridden weights.
func NewRanker(opts ...Option) (*Ranker, error) {
	r := &Ranker{
		weights:        DefaultWeights(),
		minCareerRaces: defaultMinCareerRaces,
	}
	for _, opt := range opts {
		opt(r)
	}
	if err := r.weights.validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// Rank returns the scored candidates in descending score order, rank starting
// at 1. Summaries below the career-race floor, without a hard-tier points
// mean, or without a career position-delta mean are excluded entirely:
// defaulting a missing column would either bury or fake the signal the score
// exists to surface. An empty candidate set yields an empty (non-nil) result.
func (r *Ranker) Rank(summaries []types.DriverSummary) []types.Candidate {
	candidates := make([]types.Candidate, 0, len(summaries))
	for i := range summaries {
		s := &summaries[i]
		if s.Races < r.minCareerRaces || s.PPRHard == nil || s.AvgPositionDelta == nil {
			continue
		}
		candidates = append(candidates, types.Candidate{
			Driver:           s.Driver,
			Races:            s.Races,
			PointsPerRace:    s.PointsPerRace,
			FinishRate:       s.FinishRate,
			AvgPositionDelta: *s.AvgPositionDelta,
			PPRHard:          *s.PPRHard,
		})
	}
	if len(candidates) == 0 {
		return candidates
	}

	normPPR := normalizeColumn(candidates, func(c *types.Candidate) float64 { return c.PointsPerRace })
	normFinish := normalizeColumn(candidates, func(c *types.Candidate) float64 { return c.FinishRate })
	normDelta := normalizeColumn(candidates, func(c *types.Candidate) float64 { return c.AvgPositionDelta })
	normHard := normalizeColumn(candidates, func(c *types.Candidate) float64 { return c.PPRHard })

	for i := range candidates {
		candidates[i].Score = normPPR[i]*r.weights.PPR +
			normFinish[i]*r.weights.FinishRate +
			normDelta[i]*r.weights.PositionDelta +
			normHard[i]*r.weights.HardPPR
	}

	// Stable: equal scores keep the incoming (driver-name) order.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
	for i := range candidates {
		candidates[i].Rank = i + 1
	}
	return candidates
}

// normalizeColumn rescales one metric to [0,1] across the candidate set via
// (x - min) / (max - min + epsilon).
func normalizeColumn(candidates []types.Candidate, metric func(*types.Candidate) float64) []float64 {
	lo, hi := metric(&candidates[0]), metric(&candidates[0])
	for i := 1; i < len(candidates); i++ {
		v := metric(&candidates[i])
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	out := make([]float64, len(candidates))
	for i := range candidates {
		out[i] = (metric(&candidates[i]) - lo) / (hi - lo + epsilon)
	}
	return out
}

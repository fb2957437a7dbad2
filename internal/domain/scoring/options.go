package scoring

// Option applies a configuration option to the Ranker.
type Option func(*Ranker)

// WithWeights overrides the composite score weights. The weights are
// validated by NewRanker.
func WithWeights(w Weights) Option {
	return func(r *Ranker) {
		r.weights = w
	}
}

// WithWeightsFromConfig sets weights from a configuration map keyed by
// ppr, finish_rate, position_delta and ppr_hard. Missing keys keep their
// default weight.
func WithWeightsFromConfig(weights map[string]float64) Option {
	return func(r *Ranker) {
		if v, ok := weights["ppr"]; ok {
			r.weights.PPR = v
		}
		if v, ok := weights["finish_rate"]; ok {
			r.weights.FinishRate = v
		}
		if v, ok := weights["position_delta"]; ok {
			r.weights.PositionDelta = v
		}
		if v, ok := weights["ppr_hard"]; ok {
			r.weights.HardPPR = v
		}
	}
}

// WithMinCareerRaces sets the career race floor for scoring eligibility.
func WithMinCareerRaces(n int) Option {
	return func(r *Ranker) {
		if n > 0 {
			r.minCareerRaces = n
		}
	}
}

// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Keep fields unexported where possible and use functional options.
// - Provide New(...Option) initializer to build a Config with defaults.
// - All future functions must accept context.Context as the first parameter.
// - External errors must be wrapped via this package's error helpers.
package config

import "context"

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DataPath points at the race-results CSV file.
	DataPath string `koanf:"data_path"`

	// MaxRankingLimit caps GET /ranking?limit.
	MaxRankingLimit int `koanf:"max_ranking_limit"`

	// Statistical-significance floors applied by the read endpoints.
	MinCareerRaces          int `koanf:"min_career_races"`
	MinTierRaces            int `koanf:"min_tier_races"`
	MinConstructorRaces     int `koanf:"min_constructor_races"`
	MinConstructorTierRaces int `koanf:"min_constructor_tier_races"`
	MinNationalityRaces     int `koanf:"min_nationality_races"`
	MinCircuitEntries       int `koanf:"min_circuit_entries"`

	// ScoreWeights maps composite-score columns (ppr, finish_rate,
	// position_delta, ppr_hard) to their weights. Must sum to 1.0.
	ScoreWeights map[string]float64 `koanf:"score_weights"`
}

// New creates a Config using defaults. Context is accepted first to satisfy
// the project-wide convention; it is reserved for future use and currently
// unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:            "info",
		Addr:                ":9080",
		DataPath:            "f1_data.csv",
		MaxRankingLimit:         100,
		MinCareerRaces:          50,
		MinTierRaces:            10,
		MinConstructorRaces:     100,
		MinConstructorTierRaces: 50,
		MinNationalityRaces:     100,
		MinCircuitEntries:       500,
		ScoreWeights: map[string]float64{
			"ppr":            0.30,
			"finish_rate":    0.20,
			"position_delta": 0.20,
			"ppr_hard":       0.30,
		},
	}
}

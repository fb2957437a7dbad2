// Package types contains the summary shapes shared between the core and the API.
package types

// CircuitSummary is one circuit's aggregate row.
type CircuitSummary struct {
	Circuit    string  `json:"circuit"`
	Races      int     `json:"races"`
	Entries    int     `json:"entries"`
	Finishes   int     `json:"finishes"`
	DNFRate    float64 `json:"dnf_rate"`
	Difficulty string  `json:"difficulty"`
}

// DriverSummary is one driver's career aggregate row. AvgPositionDelta is nil
// when the driver has no classified finishes; PPRHard is nil when the driver
// has too few hard-tier races for the mean to be meaningful.
type DriverSummary struct {
	Driver           string   `json:"driver"`
	Races            int      `json:"races"`
	PointsPerRace    float64  `json:"points_per_race"`
	AvgPositionDelta *float64 `json:"avg_position_delta"`
	FinishRate       float64  `json:"finish_rate"`
	Wins             int      `json:"wins"`
	WinRate          float64  `json:"win_rate"`
	PPRHard          *float64 `json:"ppr_hard,omitempty"`
}

// TierSplit compares one driver's or constructor's points per race on easy
// versus hard circuits. HardRatio is nil when the easy-tier mean is zero.
type TierSplit struct {
	Name      string   `json:"name"`
	EasyRaces int      `json:"easy_races"`
	HardRaces int      `json:"hard_races"`
	EasyPPR   float64  `json:"easy_ppr"`
	HardPPR   float64  `json:"hard_ppr"`
	HardRatio *float64 `json:"hard_ratio,omitempty"`
}

// ConstructorSummary is one constructor's aggregate row. TankScore is
// points-per-race weighted by finish rate: pace that actually reaches the flag.
type ConstructorSummary struct {
	Constructor   string  `json:"constructor"`
	Races         int     `json:"races"`
	PointsPerRace float64 `json:"points_per_race"`
	FinishRate    float64 `json:"finish_rate"`
	MechDNFRate   float64 `json:"mech_dnf_rate"`
	Wins          int     `json:"wins"`
	TankScore     float64 `json:"tank_score"`
}

// NationalitySummary aggregates driver performance by nationality.
// AvgNormalizedPoints divides each row's points by its constructor's
// season mean before averaging, isolating driver skill from car quality;
// nil when no row in the group has a defined normalization.
type NationalitySummary struct {
	Nationality         string   `json:"nationality"`
	Races               int      `json:"races"`
	Drivers             int      `json:"drivers"`
	AvgPoints           float64  `json:"avg_points"`
	AvgNormalizedPoints *float64 `json:"avg_normalized_points,omitempty"`
	FinishRate          float64  `json:"finish_rate"`
}

// AgeBucketSummary aggregates entries whose driver age falls in a fixed
// half-open bucket at race time.
type AgeBucketSummary struct {
	Bucket     string  `json:"bucket"`
	Races      int     `json:"races"`
	AvgPoints  float64 `json:"avg_points"`
	FinishRate float64 `json:"finish_rate"`
	Wins       int     `json:"wins"`
	WinRate    float64 `json:"win_rate"`
}

// Candidate is one ranked row of the composite-score leaderboard.
type Candidate struct {
	Rank             int     `json:"rank"`
	Driver           string  `json:"driver"`
	Races            int     `json:"races"`
	PointsPerRace    float64 `json:"points_per_race"`
	FinishRate       float64 `json:"finish_rate"`
	AvgPositionDelta float64 `json:"avg_position_delta"`
	PPRHard          float64 `json:"ppr_hard"`
	Score            float64 `json:"score"`
}

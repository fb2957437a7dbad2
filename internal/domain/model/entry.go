// Package model contains domain records passed between layers.
package model

import "time"

// StatusCategory buckets a raw finishing status into one of four outcomes.
type StatusCategory string

// The category set is exhaustive: every status string maps to exactly one.
const (
	StatusFinished      StatusCategory = "Finished"
	StatusMechanicalDNF StatusCategory = "Mechanical DNF"
	StatusAccident      StatusCategory = "Accident"
	StatusOtherDNF      StatusCategory = "Other DNF"
)

// Tier is a circuit difficulty classification derived from DNF-rate quantiles.
type Tier string

// TierUnknown marks rows whose circuit received no tier (zero-entry circuits).
const (
	TierUnknown Tier = ""
	TierEasy    Tier = "Easy"
	TierMedium  Tier = "Medium"
	TierHard    Tier = "Hard"
)

// RaceEntry is one driver-race result row. Base fields come straight from the
// dataset file and are immutable once loaded; derived fields are attached once
// by the normalizer and the tier classifier and never mutated afterwards.
// Optional values are modeled as nil pointers rather than NaN sentinels so
// that every consumer has to check them explicitly.
type RaceEntry struct {
	RaceID            string
	RaceName          string
	Season            int
	RaceDate          time.Time // zero when the source value was unparseable
	Circuit           string
	Driver            string
	DriverDOB         time.Time // zero when the source value was unparseable
	DriverNationality string
	Constructor       string
	Grid              int
	FinalPosition     *int // nil when the entry was not classified
	Status            string
	Points            float64

	// Derived by normalize.Derive.
	AgeYears       *float64
	Finished       bool
	StatusCategory StatusCategory
	PositionDelta  *float64

	// Joined by tier.Apply.
	Difficulty Tier
}

// Win reports whether the entry is a race win.
func (e *RaceEntry) Win() bool {
	return e.FinalPosition != nil && *e.FinalPosition == 1
}

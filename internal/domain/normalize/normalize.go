// Package normalize derives per-row columns from raw race entries.
package normalize

import (
	"strings"

	"github.com/paddocklab/gridboss/internal/domain/model"
)

// daysPerYear converts a date span to fractional years, leap days included.
const daysPerYear = 365.25

const hoursPerDay = 24

// Keyword sets for status classification. Matching is case-insensitive
// substring and the first matching category wins, in declaration order.
var (
	mechanicalKeywords = []string{
		"engine", "gearbox", "hydraulics", "electrical", "transmission",
		"brake", "clutch", "suspension", "power unit", "turbo",
	}
	accidentKeywords = []string{"accident", "collision", "spun", "crash"}
)

// IsFinished reports whether a raw status marks a classified finish:
// the exact "Finished" marker or a "+N Laps" style lapped-but-classified one.
func IsFinished(status string) bool {
	return status == "Finished" || strings.HasPrefix(status, "+")
}

// ClassifyStatus buckets a raw status string into a StatusCategory.
// The result depends on the status text alone.
func ClassifyStatus(status string) model.StatusCategory {
	s := strings.ToLower(status)
	if s == "finished" || strings.HasPrefix(s, "+") {
		return model.StatusFinished
	}
	for _, k := range mechanicalKeywords {
		if strings.Contains(s, k) {
			return model.StatusMechanicalDNF
		}
	}
	for _, k := range accidentKeywords {
		if strings.Contains(s, k) {
			return model.StatusAccident
		}
	}
	return model.StatusOtherDNF
}

// AgeYears returns the driver's fractional age at race time, or nil when
// either date is missing. A bad date degrades the one derived column instead
// of failing the row.
func AgeYears(e *model.RaceEntry) *float64 {
	if e.RaceDate.IsZero() || e.DriverDOB.IsZero() {
		return nil
	}
	age := e.RaceDate.Sub(e.DriverDOB).Hours() / hoursPerDay / daysPerYear
	return &age
}

// Derive attaches the derived columns to every entry in place. It keeps all
// base fields untouched and is safe to run exactly once per load.
func Derive(rows []model.RaceEntry) {
	for i := range rows {
		e := &rows[i]
		e.AgeYears = AgeYears(e)
		e.Finished = IsFinished(e.Status)
		e.StatusCategory = ClassifyStatus(e.Status)
		if e.FinalPosition != nil {
			delta := float64(e.Grid - *e.FinalPosition)
			e.PositionDelta = &delta
		} else {
			e.PositionDelta = nil
		}
	}
}

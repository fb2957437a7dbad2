// Package aggregate reduces normalized race entries into summary tables.
//
// Every function here is a pure group-and-reduce over the row slice: grouping
// keys are immutable base fields (driver, constructor, nationality, season,
// difficulty tier) and means over optional columns skip undefined values
// instead of propagating NaN. Statistical-significance filters are the
// caller's concern; the tables carry the raw counts needed to apply them.
package aggregate

import (
	"sort"

	"github.com/paddocklab/gridboss/internal/domain/model"
	"github.com/paddocklab/gridboss/internal/domain/types"
)

// sample accumulates a mean whose inputs may be missing.
type sample struct {
	sum float64
	n   int
}

func (s *sample) add(v float64) { s.sum += v; s.n++ }

// mean reports the accumulated mean and whether any value was seen.
func (s *sample) mean() (float64, bool) {
	if s.n == 0 {
		return 0, false
	}
	return s.sum / float64(s.n), true
}

func (s *sample) meanPtr() *float64 {
	m, ok := s.mean()
	if !ok {
		return nil
	}
	return &m
}

// Drivers aggregates one summary row per driver. PPRHard is populated only
// for drivers with at least minHardRaces entries on hard-tier circuits;
// below that the hard-tier mean is noise and stays undefined.
func Drivers(rows []model.RaceEntry, minHardRaces int) []types.DriverSummary {
	type acc struct {
		races    int
		points   float64
		delta    sample
		finishes int
		wins     int
		hard     sample
	}
	byDriver := make(map[string]*acc)
	for i := range rows {
		e := &rows[i]
		a, ok := byDriver[e.Driver]
		if !ok {
			a = &acc{}
			byDriver[e.Driver] = a
		}
		a.races++
		a.points += e.Points
		if e.PositionDelta != nil {
			a.delta.add(*e.PositionDelta)
		}
		if e.Finished {
			a.finishes++
		}
		if e.Win() {
			a.wins++
		}
		if e.Difficulty == model.TierHard {
			a.hard.add(e.Points)
		}
	}

	out := make([]types.DriverSummary, 0, len(byDriver))
	for driver, a := range byDriver {
		s := types.DriverSummary{
			Driver:           driver,
			Races:            a.races,
			PointsPerRace:    a.points / float64(a.races),
			AvgPositionDelta: a.delta.meanPtr(),
			FinishRate:       float64(a.finishes) / float64(a.races),
			Wins:             a.wins,
			WinRate:          float64(a.wins) / float64(a.races),
		}
		if a.hard.n >= minHardRaces {
			s.PPRHard = a.hard.meanPtr()
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Driver < out[j].Driver })
	return out
}

// DriverTierSplits compares each driver's easy- and hard-tier points per race.
// Only drivers with entries in both tiers produce a row; the ratio stays nil
// when the easy-tier mean is zero.
func DriverTierSplits(rows []model.RaceEntry) []types.TierSplit {
	return tierSplits(rows, func(e *model.RaceEntry) string { return e.Driver })
}

// ConstructorTierSplits is the constructor variant of DriverTierSplits.
func ConstructorTierSplits(rows []model.RaceEntry) []types.TierSplit {
	return tierSplits(rows, func(e *model.RaceEntry) string { return e.Constructor })
}

func tierSplits(rows []model.RaceEntry, key func(*model.RaceEntry) string) []types.TierSplit {
	type acc struct {
		easy sample
		hard sample
	}
	byKey := make(map[string]*acc)
	for i := range rows {
		e := &rows[i]
		if e.Difficulty != model.TierEasy && e.Difficulty != model.TierHard {
			continue
		}
		a, ok := byKey[key(e)]
		if !ok {
			a = &acc{}
			byKey[key(e)] = a
		}
		if e.Difficulty == model.TierEasy {
			a.easy.add(e.Points)
		} else {
			a.hard.add(e.Points)
		}
	}

	out := make([]types.TierSplit, 0, len(byKey))
	for name, a := range byKey {
		easyPPR, easyOK := a.easy.mean()
		hardPPR, hardOK := a.hard.mean()
		if !easyOK || !hardOK {
			continue
		}
		s := types.TierSplit{
			Name:      name,
			EasyRaces: a.easy.n,
			HardRaces: a.hard.n,
			EasyPPR:   easyPPR,
			HardPPR:   hardPPR,
		}
		if easyPPR != 0 {
			ratio := hardPPR / easyPPR
			s.HardRatio = &ratio
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Constructors aggregates one summary row per constructor, including the
// composite tank score (points per race weighted by finish rate).
func Constructors(rows []model.RaceEntry) []types.ConstructorSummary {
	type acc struct {
		races    int
		points   float64
		finishes int
		mechDNFs int
		wins     int
	}
	byConstructor := make(map[string]*acc)
	for i := range rows {
		e := &rows[i]
		a, ok := byConstructor[e.Constructor]
		if !ok {
			a = &acc{}
			byConstructor[e.Constructor] = a
		}
		a.races++
		a.points += e.Points
		if e.Finished {
			a.finishes++
		}
		if e.StatusCategory == model.StatusMechanicalDNF {
			a.mechDNFs++
		}
		if e.Win() {
			a.wins++
		}
	}

	out := make([]types.ConstructorSummary, 0, len(byConstructor))
	for constructor, a := range byConstructor {
		ppr := a.points / float64(a.races)
		finishRate := float64(a.finishes) / float64(a.races)
		out = append(out, types.ConstructorSummary{
			Constructor:   constructor,
			Races:         a.races,
			PointsPerRace: ppr,
			FinishRate:    finishRate,
			MechDNFRate:   float64(a.mechDNFs) / float64(a.races),
			Wins:          a.wins,
			TankScore:     ppr * finishRate,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Constructor < out[j].Constructor })
	return out
}

// Nationalities aggregates driver performance by nationality. Normalized
// points divide each row's points by its constructor's season mean points per
// race; rows whose constructor mean is zero contribute nothing to that column.
func Nationalities(rows []model.RaceEntry) []types.NationalitySummary {
	// First pass: constructor points per race, per season.
	type seasonKey struct {
		season      int
		constructor string
	}
	type pprAcc struct {
		points  float64
		entries int
	}
	bySeason := make(map[seasonKey]*pprAcc)
	for i := range rows {
		e := &rows[i]
		k := seasonKey{e.Season, e.Constructor}
		a, ok := bySeason[k]
		if !ok {
			a = &pprAcc{}
			bySeason[k] = a
		}
		a.points += e.Points
		a.entries++
	}

	type acc struct {
		races      int
		drivers    map[string]struct{}
		points     float64
		normalized sample
		finishes   int
	}
	byNationality := make(map[string]*acc)
	for i := range rows {
		e := &rows[i]
		a, ok := byNationality[e.DriverNationality]
		if !ok {
			a = &acc{drivers: make(map[string]struct{})}
			byNationality[e.DriverNationality] = a
		}
		a.races++
		a.drivers[e.Driver] = struct{}{}
		a.points += e.Points
		if e.Finished {
			a.finishes++
		}
		cp := bySeason[seasonKey{e.Season, e.Constructor}]
		if ppr := cp.points / float64(cp.entries); ppr != 0 {
			a.normalized.add(e.Points / ppr)
		}
	}

	out := make([]types.NationalitySummary, 0, len(byNationality))
	for nationality, a := range byNationality {
		out = append(out, types.NationalitySummary{
			Nationality:         nationality,
			Races:               a.races,
			Drivers:             len(a.drivers),
			AvgPoints:           a.points / float64(a.races),
			AvgNormalizedPoints: a.normalized.meanPtr(),
			FinishRate:          float64(a.finishes) / float64(a.races),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nationality < out[j].Nationality })
	return out
}

// Age bucket edges, half-open [low, high). Entries younger than the first
// edge or without a derived age fall outside every bucket.
var ageBucketEdges = []float64{18, 22, 25, 30, 35, 40}

var ageBucketLabels = []string{"18-22", "22-25", "25-30", "30-35", "35-40", "40+"}

// AgeBuckets aggregates entries by driver age at race time into the fixed
// buckets above, in bucket order. Empty buckets are omitted.
func AgeBuckets(rows []model.RaceEntry) []types.AgeBucketSummary {
	type acc struct {
		races    int
		points   float64
		finishes int
		wins     int
	}
	buckets := make([]acc, len(ageBucketEdges))
	for i := range rows {
		e := &rows[i]
		if e.AgeYears == nil {
			continue
		}
		idx := bucketIndex(*e.AgeYears)
		if idx < 0 {
			continue
		}
		a := &buckets[idx]
		a.races++
		a.points += e.Points
		if e.Finished {
			a.finishes++
		}
		if e.Win() {
			a.wins++
		}
	}

	out := make([]types.AgeBucketSummary, 0, len(buckets))
	for i, a := range buckets {
		if a.races == 0 {
			continue
		}
		out = append(out, types.AgeBucketSummary{
			Bucket:     ageBucketLabels[i],
			Races:      a.races,
			AvgPoints:  a.points / float64(a.races),
			FinishRate: float64(a.finishes) / float64(a.races),
			Wins:       a.wins,
			WinRate:    float64(a.wins) / float64(a.races),
		})
	}
	return out
}

func bucketIndex(age float64) int {
	if age < ageBucketEdges[0] {
		return -1
	}
	for i := 1; i < len(ageBucketEdges); i++ {
		if age < ageBucketEdges[i] {
			return i - 1
		}
	}
	return len(ageBucketEdges) - 1
}

// Package tier classifies circuits into difficulty tiers by DNF-rate quantile.
package tier

import (
	"math"
	"sort"

	"github.com/paddocklab/gridboss/internal/domain/model"
	"github.com/paddocklab/gridboss/internal/domain/types"
)

// Quantile cut points for the three-way partition.
const (
	easyQuantile = 0.33
	hardQuantile = 0.66
)

// Thresholds holds the DNF-rate cut points computed over all classified circuits.
type Thresholds struct {
	P33 float64 `json:"p33"`
	P66 float64 `json:"p66"`
}

// Summarize groups entries by circuit into per-circuit counts and DNF rate.
// Races counts distinct race ids; the result is sorted by circuit name so
// repeated runs over the same dataset produce identical output.
func Summarize(rows []model.RaceEntry) []types.CircuitSummary {
	type acc struct {
		races    map[string]struct{}
		entries  int
		finishes int
	}
	byCircuit := make(map[string]*acc)
	for i := range rows {
		e := &rows[i]
		a, ok := byCircuit[e.Circuit]
		if !ok {
			a = &acc{races: make(map[string]struct{})}
			byCircuit[e.Circuit] = a
		}
		a.races[e.RaceID] = struct{}{}
		a.entries++
		if e.Finished {
			a.finishes++
		}
	}

	out := make([]types.CircuitSummary, 0, len(byCircuit))
	for circuit, a := range byCircuit {
		s := types.CircuitSummary{
			Circuit:  circuit,
			Races:    len(a.races),
			Entries:  a.entries,
			Finishes: a.finishes,
		}
		// Zero-entry groups have no defined rate; they stay out of the
		// quantile computation and keep an unknown tier.
		if a.entries > 0 {
			s.DNFRate = 1 - float64(a.finishes)/float64(a.entries)
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Circuit < out[j].Circuit })
	return out
}

// Classify computes the p33/p66 thresholds across circuits with at least one
// entry and assigns each of those circuits a tier: Easy at or below p33,
// Medium at or below p66, Hard above. Circuits without entries are skipped.
func Classify(circuits []types.CircuitSummary) (map[string]model.Tier, Thresholds) {
	rates := make([]float64, 0, len(circuits))
	for i := range circuits {
		if circuits[i].Entries > 0 {
			rates = append(rates, circuits[i].DNFRate)
		}
	}
	tiers := make(map[string]model.Tier, len(rates))
	if len(rates) == 0 {
		return tiers, Thresholds{}
	}

	sort.Float64s(rates)
	th := Thresholds{
		P33: quantile(rates, easyQuantile),
		P66: quantile(rates, hardQuantile),
	}
	for i := range circuits {
		if circuits[i].Entries == 0 {
			continue
		}
		tiers[circuits[i].Circuit] = assign(circuits[i].DNFRate, th)
	}
	return tiers, th
}

// Apply joins the circuit tier map back onto every row and stamps the tier
// label onto the matching circuit summaries.
func Apply(rows []model.RaceEntry, circuits []types.CircuitSummary, tiers map[string]model.Tier) {
	for i := range rows {
		rows[i].Difficulty = tiers[rows[i].Circuit]
	}
	for i := range circuits {
		circuits[i].Difficulty = string(tiers[circuits[i].Circuit])
	}
}

func assign(rate float64, th Thresholds) model.Tier {
	switch {
	case rate <= th.P33:
		return model.TierEasy
	case rate <= th.P66:
		return model.TierMedium
	default:
		return model.TierHard
	}
}

// quantile interpolates linearly between order statistics of an ascending
// sorted slice, matching the convention the rest of the analysis was
// calibrated against.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

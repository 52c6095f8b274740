package scoring

import "github.com/klauer/swop/internal/config"

// PassScore is the lexicographic tuple a greedy pass is ranked by (spec
// §4.4 step 3): more successful units first, then effective quality, then
// the remaining tie-breakers in order. Comparisons always walk the fields
// in this declared order, so extending the tuple is purely additive.
type PassScore struct {
	OKCount            int
	EffectiveQuality   int
	TotalQuality       int
	AvgQualityScaled   int
	NegTurnGapExcessSq int // already negated: larger (closer to 0) is better
	MinUnitQuality     int
	TotalCombatSPD     int
}

// NewPassScore derives a PassScore from the raw per-pass aggregates.
// sumEffX10 is Σ round(efficiency * 10) across every ok unit;
// turnGapExcessSq is Σ turn_gap_excess² across every violated turn-order
// pair.
func NewPassScore(okCount, totalQuality, sumEffX10, turnGapExcessSq, minUnitQuality, totalCombatSPD int) PassScore {
	effective := totalQuality +
		config.PassEfficiencyWeight*sumEffX10 -
		turnGapExcessSq*config.TurnOrderGapPenaltyWeight

	avgScaled := 0
	if okCount > 0 {
		avgScaled = totalQuality * 100 / okCount
	}

	return PassScore{
		OKCount:            okCount,
		EffectiveQuality:   effective,
		TotalQuality:       totalQuality,
		AvgQualityScaled:   avgScaled,
		NegTurnGapExcessSq: -turnGapExcessSq,
		MinUnitQuality:     minUnitQuality,
		TotalCombatSPD:     totalCombatSPD,
	}
}

// Compare returns a positive number if p ranks strictly above other, a
// negative number if it ranks strictly below, and 0 if the tuples are
// identical field-for-field.
func (p PassScore) Compare(other PassScore) int {
	fields := [][2]int{
		{p.OKCount, other.OKCount},
		{p.EffectiveQuality, other.EffectiveQuality},
		{p.TotalQuality, other.TotalQuality},
		{p.AvgQualityScaled, other.AvgQualityScaled},
		{p.NegTurnGapExcessSq, other.NegTurnGapExcessSq},
		{p.MinUnitQuality, other.MinUnitQuality},
		{p.TotalCombatSPD, other.TotalCombatSPD},
	}
	for _, f := range fields {
		if f[0] != f[1] {
			if f[0] > f[1] {
				return 1
			}
			return -1
		}
	}
	return 0
}

// Less reports whether p ranks strictly below other, the form sort.Slice
// wants for a descending (best-first) ordering: sort.Slice(passes, func(i,
// j int) bool { return !passes[i].Less(passes[j]) }) would need inversion,
// so callers typically sort ascending by Less and take the last element.
func (p PassScore) Less(other PassScore) bool {
	return p.Compare(other) < 0
}

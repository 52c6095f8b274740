// Package scoring implements the optimiser's shared quality and efficiency
// model: rune and artifact quality scores, archetype-aware defensive
// weighting, the baseline-regression guard, and pass-level scoring (spec
// §4.1).
package scoring

import (
	"math"

	"github.com/klauer/swop/internal/config"
	"github.com/klauer/swop/pkg/swop/domain"
)

// EfficiencyVariant selects which theoretical-max denominator an efficiency
// computation uses (spec §4.1.2).
type EfficiencyVariant int

const (
	EfficiencyCurrent EfficiencyVariant = iota
	EfficiencyHeroMax
	EfficiencyLegendMax
)

// RuneQuality is the weighted integer quality score for a candidate rune
// assigned to unitID under mode (spec §4.1.1).
//
// mainstatForced reports whether the active build restricts this rune's
// slot to an explicit main-stat set (so the flat-mainstat-on-even-slot
// penalty below is waived). archetype selects the archetype-aware defensive
// weighting of spec §4.1.4; pass domain.ArchetypeUnknown for the plain
// (offense-balanced) weighting.
func RuneQuality(r domain.Rune, unitID int64, mode domain.Mode, acc domain.AccountData, mainstatForced bool, archetype domain.Archetype) int {
	score := r.UpgradeLevel*config.UpgradeLevelWeight +
		r.Rank*config.RankWeight +
		r.RuneClass*config.QualityClassWeight

	score += config.SetBonus[r.SetID]

	score += effectWeightForArchetype(r.MainEffect.EffectID, archetype) * r.MainEffect.Value
	if r.PrefixEffect != nil {
		score += effectWeightForArchetype(r.PrefixEffect.EffectID, archetype) * r.PrefixEffect.Value
	}
	for _, sub := range r.SubEffects {
		score += effectWeightForArchetype(sub.EffectID, archetype) * sub.Total()
	}

	if isEvenSlot(r.SlotNo) && config.IsFlatPrimary(r.MainEffect.EffectID) && !mainstatForced {
		score += config.EvenSlotFlatMainstatPenalty
	}

	if acc.IsCurrentlyEquipped(unitID, r.RuneID, mode) {
		score += config.EquippedOwnerBonus
	}

	return score
}

func isEvenSlot(slot int) bool {
	return slot == 2 || slot == 4 || slot == 6
}

// RuneEfficiency is the ratio of a rune's achieved sub-roll value sum to
// the theoretical maximum for the given variant, expressed as a fraction
// (1.0 == 100%). Objectives multiply this by 100 and round (spec §4.1.2).
func RuneEfficiency(r domain.Rune, variant EfficiencyVariant) float64 {
	rolls := rollsForVariant(r, variant)
	if rolls <= 0 || len(r.SubEffects) == 0 {
		return 0
	}

	sumValue, sumMax := 0, 0
	for _, sub := range r.SubEffects {
		sumValue += sub.Total()
		sumMax += config.SubstatMaxRoll[sub.EffectID] * rolls
	}
	if sumMax == 0 {
		return 0
	}
	return float64(sumValue) / float64(sumMax)
}

func rollsForVariant(r domain.Rune, variant EfficiencyVariant) int {
	switch variant {
	case EfficiencyHeroMax:
		return config.RuneRollsAtHeroMax
	case EfficiencyLegendMax:
		return config.RuneRollsAtLegendMax
	default:
		return config.RuneRollsAtUpgrade(r.UpgradeLevel)
	}
}

// RoundedEfficiencyPct rounds an efficiency fraction to an integer
// percentage point, the form objectives add into the CP model. Rounds
// half-to-even so that equivalent implementations agree exactly on
// PassScore at the .5 boundary.
func RoundedEfficiencyPct(eff float64) int {
	return int(math.RoundToEven(eff * 100))
}

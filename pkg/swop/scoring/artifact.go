package scoring

import (
	"github.com/klauer/swop/internal/config"
	"github.com/klauer/swop/pkg/swop/domain"
)

// ArtifactQuality is the weighted integer quality score for a candidate
// artifact assigned to unitID (spec §4.1.3).
func ArtifactQuality(a domain.Artifact, unitID int64) int {
	score := a.Level*config.ArtifactLevelWeight + a.OriginalRank*config.ArtifactOriginalRankWeight
	for _, sub := range a.SecEffects {
		score += sub.Value * config.ArtifactSubEffectWeight
	}
	if a.OccupiedID == unitID {
		score += config.ArtifactOwnerBonus
	}
	return score
}

// ArtifactEfficiency is the ratio of an artifact's achieved sub-roll value
// sum to its theoretical maximum, using each sub-effect's own roll count
// (spec §4.1.3).
func ArtifactEfficiency(a domain.Artifact) float64 {
	sumValue, sumMax := 0, 0
	for _, sub := range a.SecEffects {
		sumValue += sub.Value
		sumMax += config.ArtifactSubstatMaxRoll[sub.EffectID] * sub.Rolls
	}
	if sumMax == 0 {
		return 0
	}
	return float64(sumValue) / float64(sumMax)
}

// ArtifactBuildBonus is the build-aware bonus for an artifact matching a
// build's preferred focus and required sub-effects (spec §4.1.3).
func ArtifactBuildBonus(a domain.Artifact, filter domain.ArtifactFilter) int {
	bonus := 0
	if key, ok := config.MainStatKeyForEffect(a.PriEffect.EffectID); ok && containsKey(filter.Focus, key) {
		bonus += config.ArtifactBuildFocusBonus
	}
	for _, wanted := range filter.Substats {
		if value, ok := subEffectValue(a, wanted); ok {
			bonus += config.ArtifactBuildMatchBonus + value*config.ArtifactBuildMatchScale
		}
	}
	return bonus
}

func containsKey(keys []config.MainStatKey, key config.MainStatKey) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}

func subEffectValue(a domain.Artifact, id config.EffectID) (int, bool) {
	for _, sub := range a.SecEffects {
		if sub.EffectID == id {
			return sub.Value, true
		}
	}
	return 0, false
}

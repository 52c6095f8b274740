package scoring

import (
	"github.com/klauer/swop/internal/config"
	"github.com/klauer/swop/pkg/swop/domain"
)

// effectWeightForArchetype returns an effect's scoring weight, amplified
// for HP%/DEF%/RES/ACC when the archetype favours survivability, and left
// at its ordinary weight for ATK%/CR/CD — "kept but not amplified" (spec
// §4.1.4).
func effectWeightForArchetype(id config.EffectID, archetype domain.Archetype) int {
	base := config.WeightForEffect(id)
	if !archetype.Defensive() {
		return base
	}
	switch id {
	case config.EffectHPPct, config.EffectDEFPct, config.EffectResist, config.EffectAccuracy:
		return base * config.DefensiveHPDEFResMultiplier
	case config.EffectATKPct, config.EffectCritRate, config.EffectCritDmg:
		return base * config.DefensiveOffenseMultiplier
	default:
		return base
	}
}

// OverCapDiscount returns the penalty to subtract from a pass's aggregate
// quality_defensive score for crit-rate past 100 and crit-dmg past 200,
// stats a defensive build gains nothing from pushing further (spec §4.1.4).
func OverCapDiscount(totalCritRate, totalCritDmg int) int {
	discount := 0
	if totalCritRate > 100 {
		discount += (totalCritRate - 100) * config.CritRateOverCapDiscount
	}
	if totalCritDmg > config.CritDmgOverCapThreshold {
		discount += (totalCritDmg - config.CritDmgOverCapThreshold) * config.CritDmgOverCapDiscount
	}
	return discount
}

// ArtifactQualityDefensive is the defensive variant of ArtifactQuality: it
// penalises an ATK main-stat focus and rewards HP/DEF/RES sub-rolls and the
// defensive combat effects (damage-received reduction, CD-received
// reduction) instead of weighting every sub-roll equally (spec §4.1.4).
func ArtifactQualityDefensive(a domain.Artifact, unitID int64) int {
	score := a.Level*config.ArtifactLevelWeight + a.OriginalRank*config.ArtifactOriginalRankWeight

	if key, ok := config.MainStatKeyForEffect(a.PriEffect.EffectID); ok && (key == config.MainStatATKFlat || key == config.MainStatATKPct) {
		score -= config.ArtifactBuildFocusBonus
	}

	for _, sub := range a.SecEffects {
		switch sub.EffectID {
		case config.EffectHPFlat, config.EffectHPPct, config.EffectDEFFlat, config.EffectDEFPct,
			config.EffectResist, config.EffectDmgReduction, config.EffectCritDmgReduced:
			score += sub.Value * config.ArtifactSubEffectWeight * config.DefensiveHPDEFResMultiplier
		default:
			score += sub.Value * config.ArtifactSubEffectWeight
		}
	}

	if a.OccupiedID == unitID {
		score += config.ArtifactOwnerBonus
	}
	return score
}

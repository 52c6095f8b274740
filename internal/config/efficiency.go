package config

// SubstatMaxRoll is the community-standard maximum single-roll value per
// sub-effect id, the denominator of the Summoners War substat-efficiency
// formula (spec §4.1.2).
var SubstatMaxRoll = map[EffectID]int{
	EffectHPFlat:   375,
	EffectHPPct:    7,
	EffectATKFlat:  25,
	EffectATKPct:   7,
	EffectDEFFlat:  25,
	EffectDEFPct:   7,
	EffectSPD:      6,
	EffectCritRate: 6,
	EffectCritDmg:  7,
	EffectResist:   7,
	EffectAccuracy: 7,
}

// ArtifactSubstatMaxRoll is the equivalent table for artifact sub-rolls,
// which additionally cover the combat-effect ids (damage reduction etc.).
var ArtifactSubstatMaxRoll = map[EffectID]int{
	EffectHPFlat:         375,
	EffectHPPct:          5,
	EffectATKFlat:        25,
	EffectATKPct:         5,
	EffectDEFFlat:        25,
	EffectDEFPct:         5,
	EffectCritRate:       4,
	EffectCritDmg:        5,
	EffectResist:         5,
	EffectAccuracy:       5,
	EffectDmgReduction:   3,
	EffectCritDmgReduced: 5,
	EffectDmgVsHP:        4,
	EffectCounterDmg:     4,
}

// RuneRollsAtUpgrade returns the number of substat rolls a rune has
// received by the given upgrade level: one innate roll plus one more at
// every +3 threshold (+3, +6, +9, +12, +15). A rune's per-substat roll
// history is not part of the immutable record (spec §3), so efficiency is
// approximated using this fixed progression shared by all substats,
// consistent with the simplification community efficiency calculators make
// for the same reason.
func RuneRollsAtUpgrade(upgradeLevel int) int {
	return 1 + upgradeLevel/3
}

// RuneRollsAtHeroMax and RuneRollsAtLegendMax are the roll counts a rune
// would have at the +12 and +15 upgrade ceilings, used for the
// eff_hero_max and eff_legend_max efficiency variants (spec §4.1.2).
var (
	RuneRollsAtHeroMax   = RuneRollsAtUpgrade(12)
	RuneRollsAtLegendMax = RuneRollsAtUpgrade(15)
)

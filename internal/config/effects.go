// Package config provides centralized scoring weights, set tables, speed-tick
// breakpoints and other named constants shared by the optimiser packages.
// This consolidates magic numbers that would otherwise be scattered across
// pkg/swop/scoring, pkg/swop/solver and pkg/swop/arenarush.
package config

// EffectID identifies a rune/artifact effect, using the same numbering the
// wider Summoners War tooling ecosystem (Swarfarm et al.) has standardised
// on for sub-stat effects.
type EffectID int

const (
	EffectHPFlat   EffectID = 1
	EffectHPPct    EffectID = 2
	EffectATKFlat  EffectID = 3
	EffectATKPct   EffectID = 4
	EffectDEFFlat  EffectID = 5
	EffectDEFPct   EffectID = 6
	EffectSPD      EffectID = 8
	EffectCritRate EffectID = 9
	EffectCritDmg  EffectID = 10
	EffectResist   EffectID = 11
	EffectAccuracy EffectID = 12

	// Artifact/rune combat-effect ids. These contribute only to scoring
	// bonuses (Open Question #2, DESIGN.md): they never enter base-stat
	// computation.
	EffectDmgReduction   EffectID = 218
	EffectCritDmgReduced EffectID = 219
	EffectDmgVsHP        EffectID = 220
	EffectCounterDmg     EffectID = 221

	// SPD-buff-increasing artifact effect, consumed by pkg/swop/opening.
	EffectSPDBuffIncrease EffectID = 206
)

// MainStatKey is a build-facing main-stat selector, e.g. "ATK%", "SPD".
type MainStatKey string

const (
	MainStatHPFlat   MainStatKey = "HP"
	MainStatHPPct    MainStatKey = "HP%"
	MainStatATKFlat  MainStatKey = "ATK"
	MainStatATKPct   MainStatKey = "ATK%"
	MainStatDEFFlat  MainStatKey = "DEF"
	MainStatDEFPct   MainStatKey = "DEF%"
	MainStatSPD      MainStatKey = "SPD"
	MainStatCritRate MainStatKey = "CR"
	MainStatCritDmg  MainStatKey = "CD"
	MainStatResist   MainStatKey = "RES"
	MainStatAccuracy MainStatKey = "ACC"
)

// effectToMainStat maps the slot-2/4/6 main-stat effect ids onto the build
// mainstat keys used to restrict slots (spec §4.3.1).
var effectToMainStat = map[EffectID]MainStatKey{
	EffectHPFlat:   MainStatHPFlat,
	EffectHPPct:    MainStatHPPct,
	EffectATKFlat:  MainStatATKFlat,
	EffectATKPct:   MainStatATKPct,
	EffectDEFFlat:  MainStatDEFFlat,
	EffectDEFPct:   MainStatDEFPct,
	EffectSPD:      MainStatSPD,
	EffectCritRate: MainStatCritRate,
	EffectCritDmg:  MainStatCritDmg,
	EffectResist:   MainStatResist,
	EffectAccuracy: MainStatAccuracy,
}

// MainStatKeyForEffect returns the build-facing key for a main-stat effect
// id, and false if the effect id has no main-stat representation.
func MainStatKeyForEffect(id EffectID) (MainStatKey, bool) {
	k, ok := effectToMainStat[id]
	return k, ok
}

// IsFlatPrimary reports whether the effect id is a flat (non-%) HP/ATK/DEF
// main-stat, the kind penalised on even slots when not forced by a build
// (spec §4.1.1).
func IsFlatPrimary(id EffectID) bool {
	return id == EffectHPFlat || id == EffectATKFlat || id == EffectDEFFlat
}

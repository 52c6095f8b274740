package domain

import "github.com/klauer/swop/internal/config"

// EffectValue is a single (effect_id, value) pair, used for main and prefix
// effects on both runes and artifacts.
type EffectValue struct {
	EffectID config.EffectID `json:"effect_id"`
	Value    int             `json:"value"`
}

// SubEffect is one rune sub-stat roll: a base value, an optional gem upgrade
// flag, and an accumulated grind value (both of which add to the base when
// computing contributions).
type SubEffect struct {
	EffectID   config.EffectID `json:"effect_id"`
	BaseValue  int             `json:"base_value"`
	Gemmed     bool            `json:"gemmed"`
	GrindValue int             `json:"grind_value"`
}

// Total is the sub-effect's full contribution: base value plus any grinds.
// The gemmed flag does not itself add value; gem upgrades are already
// folded into BaseValue by the importer, the flag only marks provenance.
func (s SubEffect) Total() int {
	return s.BaseValue + s.GrindValue
}

// Rune is an immutable record for one inventory rune (spec §3).
type Rune struct {
	RuneID       int64        `json:"rune_id"`
	SlotNo       int          `json:"slot_no"`
	SetID        config.SetID `json:"set_id"`
	Rank         int          `json:"rank"`          // 1..6, scored as rank*6 (spec §4.1.1)
	RuneClass    int          `json:"rune_class"`    // quality class 1..5 (+10 for ancient), scored as class*10
	OriginClass  int          `json:"origin_class"`  // natural class before upgrade-driven promotion, 0 if untracked
	UpgradeLevel int          `json:"upgrade_level"` // 0..15

	MainEffect   EffectValue  `json:"main_effect"`
	PrefixEffect *EffectValue `json:"prefix_effect,omitempty"`
	SubEffects   []SubEffect  `json:"sub_effects"`

	OccupiedType int   `json:"occupied_type"`
	OccupiedID   int64 `json:"occupied_id"`
}

// mainStatProjectedSPD is the guaranteed SPD roll a +12..+15 rune reaches by
// +15, keyed by RuneClass. Between +12 and +15 a rune's main-stat roll is
// fixed game-side, so an in-progress rune is scored as if already maxed
// (spec §3 "mainstat projection to +15 if upgrade ≥ 12").
var mainStatProjectedSPD = map[int]int{
	1: 2, 2: 3, 3: 4, 4: 5, 5: 6,
	11: 3, 12: 4, 13: 5, 14: 6, 15: 7, // ancient classes (class+10)
}

// FlatSPD returns the rune's flat SPD contribution: main, prefix and
// sub-effect SPD values plus grinds, with the main-stat projected to its
// guaranteed +15 roll once the rune has reached +12 (spec §3).
func (r Rune) FlatSPD() int {
	total := 0
	if r.MainEffect.EffectID == config.EffectSPD {
		if r.UpgradeLevel >= 12 {
			if projected, ok := mainStatProjectedSPD[r.RuneClass]; ok {
				total += projected
			} else {
				total += r.MainEffect.Value
			}
		} else {
			total += r.MainEffect.Value
		}
	}
	if r.PrefixEffect != nil && r.PrefixEffect.EffectID == config.EffectSPD {
		total += r.PrefixEffect.Value
	}
	for _, sub := range r.SubEffects {
		if sub.EffectID == config.EffectSPD {
			total += sub.Total()
		}
	}
	return total
}

// HasSet reports whether the rune belongs to the given set.
func (r Rune) HasSet(set config.SetID) bool {
	return r.SetID == set
}

// Package solver implements the per-monster branch-and-bound assignment
// search: one rune per slot, one artifact per type, one build variant,
// subject to the structural constraints of spec §4.3.
package solver

import (
	"github.com/klauer/swop/internal/config"
	"github.com/klauer/swop/pkg/swop/domain"
)

// StatTotals is a monster's derived stat line under a candidate assignment.
type StatTotals struct {
	HP, HPNoBase         int
	ATK, ATKNoBase       int
	DEF, DEFNoBase       int
	RawSPD, RawSPDNoBase int
	CombatSPD            int
	CritRate, CritDmg    int
	Resist, Accuracy     int
	SwiftActive          bool
}

// External carries the monster-external speed contributors: team/leader
// flat SPD bonus, the tower (totem) percentage bonus, and whatever
// speed floors/caps the caller (greedy engine, Arena Rush pre-flight)
// imposes on top of the build's own tick bucket.
type External struct {
	LeaderBonusFlat int
	TotemSPDPct     int
	MinFinalSPD     *int
	MaxFinalSPD     *int
}

// ComputeStats derives the full stat line for a candidate assignment.
// Percentage-scaling primary stats follow `final = base + flat + base*pct/100`
// (spec §4.3.1); SPD additionally folds in the Swift set bonus before the
// totem/leader contributions that turn raw SPD into combat SPD.
func ComputeStats(m domain.Monster, runes []domain.Rune, ext External) StatTotals {
	var flatHP, pctHP, flatATK, pctATK, flatDEF, pctDEF, cr, cd, res, acc int
	swiftCount := 0

	addEffect := func(id config.EffectID, value int) {
		switch id {
		case config.EffectHPFlat:
			flatHP += value
		case config.EffectHPPct:
			pctHP += value
		case config.EffectATKFlat:
			flatATK += value
		case config.EffectATKPct:
			pctATK += value
		case config.EffectDEFFlat:
			flatDEF += value
		case config.EffectDEFPct:
			pctDEF += value
		case config.EffectCritRate:
			cr += value
		case config.EffectCritDmg:
			cd += value
		case config.EffectResist:
			res += value
		case config.EffectAccuracy:
			acc += value
		}
	}

	flatSPD := 0
	for _, r := range runes {
		if r.SetID == config.SetSwift {
			swiftCount++
		}
		flatSPD += r.FlatSPD()
		addEffect(r.MainEffect.EffectID, r.MainEffect.Value)
		if r.PrefixEffect != nil {
			addEffect(r.PrefixEffect.EffectID, r.PrefixEffect.Value)
		}
		for _, sub := range r.SubEffects {
			if sub.EffectID == config.EffectSPD {
				continue // already folded into FlatSPD() above
			}
			addEffect(sub.EffectID, sub.Total())
		}
	}

	swiftActive := swiftCount >= 4

	st := StatTotals{
		HP:          m.Base.HP + flatHP + m.Base.HP*pctHP/100,
		HPNoBase:    flatHP + m.Base.HP*pctHP/100,
		ATK:         m.Base.ATK + flatATK + m.Base.ATK*pctATK/100,
		ATKNoBase:   flatATK + m.Base.ATK*pctATK/100,
		DEF:         m.Base.DEF + flatDEF + m.Base.DEF*pctDEF/100,
		DEFNoBase:   flatDEF + m.Base.DEF*pctDEF/100,
		CritRate:    m.Base.CritRate + cr,
		CritDmg:     m.Base.CritDmg + cd,
		Resist:      m.Base.Resist + res,
		Accuracy:    m.Base.Accuracy + acc,
		SwiftActive: swiftActive,
	}

	rawSPD := m.Base.SPD + flatSPD
	if swiftActive {
		rawSPD += rawSPD * config.SwiftSpeedBonusPct / 100
	}
	st.RawSPD = rawSPD
	st.RawSPDNoBase = rawSPD - m.Base.SPD

	combat := rawSPD + rawSPD*ext.TotemSPDPct/100 + ext.LeaderBonusFlat
	st.CombatSPD = combat

	return st
}

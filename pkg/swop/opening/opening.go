// Package opening simulates the ATB opening order for a team once each
// monster's final build is known, so the Arena Rush coordinator can compare
// the simulated order against the expected one and penalise divergence
// (spec §4.7).
package opening

import (
	"math"

	"github.com/klauer/swop/internal/config"
	"github.com/klauer/swop/pkg/swop/domain"
)

const (
	// DefaultATBGainPerTickPct is the percent of effective SPD added to ATB
	// on every simulated tick.
	DefaultATBGainPerTickPct = 7.0
	// DefaultSPDBuffPct is the team-wide SPD buff's base percentage, before
	// any artifact SPD-buff-increase amplification.
	DefaultSPDBuffPct = 30.0
)

// OpeningTurnEffect is one actor's opening-turn broadcast: an ATB boost
// applied to teammates, and/or activation of the team-wide SPD buff.
type OpeningTurnEffect struct {
	ATBBoostPct    float64
	AppliesSPDBuff bool
	IncludeCaster  bool
}

// ArtifactEffectTotalPercent sums an artifact's sub-effect values matching
// effectID (used for the SPD-buff-increase effect, id 206).
func ArtifactEffectTotalPercent(a domain.Artifact, effectID config.EffectID) float64 {
	total := 0.0
	for _, sub := range a.SecEffects {
		if sub.EffectID != effectID {
			continue
		}
		total += float64(sub.Value)
	}
	return total
}

// SPDBuffIncreasePctForUnit sums the SPD-buff-increase effect across a
// unit's equipped artifacts.
func SPDBuffIncreasePctForUnit(artifactIDs []int64, lookup map[int64]domain.Artifact) float64 {
	total := 0.0
	for _, id := range artifactIDs {
		a, ok := lookup[id]
		if !ok {
			continue
		}
		total += ArtifactEffectTotalPercent(a, config.EffectSPDBuffIncrease)
	}
	return total
}

// SPDBuffIncreasePctByUnit derives every unit's SPD-buff-increase total from
// its chosen artifact assignment (artifact type -> artifact id).
func SPDBuffIncreasePctByUnit(artifactsByUnit map[int64]map[int]int64, lookup map[int64]domain.Artifact) map[int64]float64 {
	out := make(map[int64]float64, len(artifactsByUnit))
	for uid, byType := range artifactsByUnit {
		var ids []int64
		for _, aid := range byType {
			if aid > 0 {
				ids = append(ids, aid)
			}
		}
		out[uid] = SPDBuffIncreasePctForUnit(ids, lookup)
	}
	return out
}

// EffectiveSPDBuffPct scales the base SPD buff percentage by a target's own
// artifact SPD-buff-increase total.
func EffectiveSPDBuffPct(incPct, baseSPDBuffPct float64) float64 {
	if incPct < 0 {
		incPct = 0
	}
	return baseSPDBuffPct * (1.0 + incPct/100.0)
}

// MinSpeedFloorByUnit computes, for every unit in expectedOrder, the
// tightest lower bound on its combat SPD implied by an earlier caster's ATB
// boost and/or SPD buff, per spec §4.6 step 2.d's opening speed floor
// formula `ceil(combat_spd(caster) * (1 - atb_boost) / (1 + effective_spd_buff))`.
func MinSpeedFloorByUnit(
	expectedOrder []int64,
	combatSpeedByUnit map[int64]int,
	turnEffects map[int64]OpeningTurnEffect,
	spdBuffIncreasePctByUnit map[int64]float64,
	baseSPDBuffPct float64,
) map[int64]int {
	out := map[int64]int{}
	for idx, casterID := range expectedOrder {
		casterSpeed := combatSpeedByUnit[casterID]
		if casterSpeed <= 0 {
			continue
		}
		effect, ok := turnEffects[casterID]
		if !ok {
			continue
		}
		atbBoostFactor := 1.0 - math.Max(0, effect.ATBBoostPct)/100.0
		if atbBoostFactor < 0 {
			atbBoostFactor = 0
		}
		if atbBoostFactor > 1 {
			atbBoostFactor = 1
		}
		for _, targetID := range expectedOrder[idx+1:] {
			targetBoostPct := 0.0
			if effect.AppliesSPDBuff {
				targetBoostPct = EffectiveSPDBuffPct(spdBuffIncreasePctByUnit[targetID], baseSPDBuffPct)
			}
			speedBuffFactor := 1.0 + math.Max(0, targetBoostPct)/100.0
			rawRequired := (float64(casterSpeed) * atbBoostFactor) / speedBuffFactor
			required := int(math.Ceil(rawRequired - 1e-9))
			if required > out[targetID] {
				out[targetID] = required
			}
		}
	}
	return out
}

// SimulateOpeningOrder replays the tick-by-tick ATB race for the given team
// and returns the actor order it produces (spec §4.7).
func SimulateOpeningOrder(
	orderedUnitIDs []int64,
	combatSpeedByUnit map[int64]int,
	turnEffects map[int64]OpeningTurnEffect,
	spdBuffIncreasePctByUnit map[int64]float64,
	maxActions int,
	onePerUnit bool,
	atbGainPerTickPct, baseSPDBuffPct float64,
) []int64 {
	seen := map[int64]bool{}
	var units []int64
	for _, uid := range orderedUnitIDs {
		if seen[uid] {
			continue
		}
		if combatSpeedByUnit[uid] <= 0 {
			continue
		}
		seen[uid] = true
		units = append(units, uid)
	}
	if len(units) == 0 {
		return nil
	}

	actionLimit := maxActions
	if actionLimit == 0 {
		actionLimit = len(units)
	}
	if actionLimit <= 0 {
		return nil
	}

	atb := make(map[int64]float64, len(units))
	spdBuffActive := make(map[int64]bool, len(units))
	actedOnce := make(map[int64]bool, len(units))
	position := make(map[int64]int, len(units))
	for i, uid := range units {
		position[uid] = i
	}

	gainRatio := atbGainPerTickPct / 100.0

	unitGain := func(uid int64) float64 {
		speed := float64(combatSpeedByUnit[uid])
		if speed <= 0 {
			return 0
		}
		mult := 1.0
		if spdBuffActive[uid] {
			inc := math.Max(0, spdBuffIncreasePctByUnit[uid])
			mult += EffectiveSPDBuffPct(inc, baseSPDBuffPct) / 100.0
		}
		return gainRatio * speed * mult
	}

	const hugeTicks = 1_000_000_000
	safetySteps := actionLimit * 20
	if safetySteps < 16 {
		safetySteps = 16
	}

	var out []int64
	for step := 0; step < safetySteps; step++ {
		if len(out) >= actionLimit {
			break
		}

		gains := make(map[int64]float64, len(units))
		ticksNeeded := make(map[int64]int, len(units))
		for _, uid := range units {
			gains[uid] = unitGain(uid)
			if onePerUnit && actedOnce[uid] {
				ticksNeeded[uid] = hugeTicks
				continue
			}
			gain := gains[uid]
			if gain <= 0 {
				ticksNeeded[uid] = hugeTicks
				continue
			}
			remain := 100.0 - atb[uid]
			if remain <= 0 {
				ticksNeeded[uid] = 0
			} else {
				ticksNeeded[uid] = int(math.Ceil(remain / gain))
			}
		}

		minTicks := hugeTicks
		for _, t := range ticksNeeded {
			if t < minTicks {
				minTicks = t
			}
		}
		if minTicks >= hugeTicks {
			break
		}
		if minTicks > 0 {
			for _, uid := range units {
				atb[uid] += gains[uid] * float64(minTicks)
			}
		}

		var ready []int64
		for _, uid := range units {
			if onePerUnit && actedOnce[uid] {
				continue
			}
			if atb[uid] >= 100.0-1e-9 {
				ready = append(ready, uid)
			}
		}
		if len(ready) == 0 {
			continue
		}

		actor := ready[0]
		for _, uid := range ready[1:] {
			if better(uid, actor, atb, gains, position) {
				actor = uid
			}
		}

		out = append(out, actor)
		if onePerUnit {
			actedOnce[actor] = true
		}
		atb[actor] = math.Max(0, atb[actor]-100.0)

		effect, ok := turnEffects[actor]
		if !ok {
			continue
		}

		boost := math.Max(0, effect.ATBBoostPct)
		if boost > 0 {
			for _, uid := range units {
				if uid == actor && !effect.IncludeCaster {
					continue
				}
				atb[uid] += boost
			}
		}
		if effect.AppliesSPDBuff {
			for _, uid := range units {
				if uid == actor && !effect.IncludeCaster {
					continue
				}
				spdBuffActive[uid] = true
			}
		}
	}
	return out
}

// better reports whether candidate outranks current by the actor-selection
// key (ATB desc, effective SPD desc, -expected_order_position desc, i.e.
// the earliest-expected position wins ties).
func better(candidate, current int64, atb, gains map[int64]float64, position map[int64]int) bool {
	if atb[candidate] != atb[current] {
		return atb[candidate] > atb[current]
	}
	if gains[candidate] != gains[current] {
		return gains[candidate] > gains[current]
	}
	return position[candidate] < position[current]
}

// OpeningOrderPenalty scores how far observed diverges from expected: a
// correctly placed actor costs 0, a mismatch at position i costs 1+i, and a
// missing actor at position i costs (team_size-i)*5 (spec §4.7).
func OpeningOrderPenalty(expected, observed []int64) int {
	if len(expected) == 0 {
		return 0
	}
	penalty := 0
	for i, expectedID := range expected {
		if i >= len(observed) {
			penalty += (len(expected) - i) * 5
			break
		}
		if observed[i] == expectedID {
			continue
		}
		penalty += 1 + i
	}
	return penalty
}

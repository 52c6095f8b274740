package solver

import (
	"math"
	"sort"

	"github.com/klauer/swop/internal/config"
	"github.com/klauer/swop/pkg/swop/domain"
	"github.com/klauer/swop/pkg/swop/scoring"
)

// searchContext bundles everything a leaf assignment needs to be scored
// and checked for feasibility, threaded through the recursive search
// without reallocating per call.
type searchContext struct {
	monster   domain.Monster
	unitID    int64
	mode      domain.Mode
	acc       domain.AccountData
	build     domain.Build
	option    domain.SetOption
	ext       External
	archetype domain.Archetype

	speedFirst bool
	effVariant scoring.EfficiencyVariant
	speedSlack int
	minSpeed   *int // best speed-first CombatSPD; leaves below it minus speedSlack are rejected. Set only on the quality pass

	baselineRunesBySlot     map[int]int64
	baselineArtifactsByType map[int]int64
	baselineWeight          int
	previousRunesBySlot     map[int]int64
	previousArtifactsByType map[int]int64

	setOptionPreferenceBonus int

	buildPriorityPenalty     int
	avoidSameRunePenalty     int
	avoidSameArtifactPenalty int

	nodeBudget   int
	nodesVisited int

	// speedFirstBase is the constant part of the admissible CombatSPD bound
	// for the speed-first pass: base SPD scaled by the best possible
	// Swift/totem multiplier, plus the leader's flat bonus. Set once by
	// search() and added to every speed-first potential-sum bound so it is
	// comparable against finalScore's actual CombatSPD leaf value.
	speedFirstBase int
}

// speedFirstMultiplier is the largest multiplier CombatSPD's
// base*(1+swift)*(1+totem) term can take on, used to keep the speed-first
// branch-and-bound's potential sums an admissible upper bound on the actual,
// possibly-smaller (Swift not active) CombatSPD of any given leaf.
func speedFirstMultiplier(ext External) float64 {
	return (1 + float64(config.SwiftSpeedBonusPct)/100) * (1 + float64(ext.TotemSPDPct)/100)
}

// speedFirstPotential is the admissible per-rune contribution to the
// CombatSPD bound: its flat SPD scaled by the best-case multiplier and
// rounded up, so summed potentials never underestimate a rune's actual
// eventual contribution to CombatSPD (spec §4.3.2's speed-first pass).
func speedFirstPotential(r domain.Rune, ext External) int {
	return int(math.Ceil(float64(r.FlatSPD()) * speedFirstMultiplier(ext)))
}

// assignment is one complete, feasible candidate: one rune per slot, one
// artifact per type.
type assignment struct {
	runes     map[int]domain.Rune
	artifacts map[int]domain.Artifact
	stats     StatTotals
	score     int
}

// runeSlots is the fixed branching order: process slots ascending, then
// the two artifact types.
var runeSlots = []int{1, 2, 3, 4, 5, 6}
var artifactTypes = []int{1, 2}

// search runs the bounded branch-and-bound DFS over the pruned candidate
// pool for one (build, set option) pair and returns the best feasible
// assignment found, if any, within the node budget (spec §9's allowance
// for a tailored branch-and-bound in place of CP-SAT/MILP).
func search(ctx *searchContext, runesBySlot map[int][]domain.Rune, artifactsByType map[int][]domain.Artifact) (assignment, bool) {
	if ctx.speedFirst {
		ctx.speedFirstBase = int(math.Ceil(float64(ctx.monster.Base.SPD)*speedFirstMultiplier(ctx.ext))) + ctx.ext.LeaderBonusFlat
	}

	slotCandidates := make([][]scoredRune, 6)
	for i, slot := range runeSlots {
		filtered := filterRunesForSlot(ctx, slot, runesBySlot[slot])
		slotCandidates[i] = rankRunes(ctx, slot, filtered)
		if len(slotCandidates[i]) == 0 {
			return assignment{}, false
		}
	}
	typeCandidates := make([][]scoredArtifact, 2)
	for i, t := range artifactTypes {
		filtered := filterArtifactsForType(ctx, t, artifactsByType[t])
		typeCandidates[i] = rankArtifacts(ctx, t, filtered)
		if len(typeCandidates[i]) == 0 {
			return assignment{}, false
		}
	}

	// bestFromSlot[i] / bestFromArtifact[i] are the best achievable potential
	// summed from step i onward — a relaxed upper bound (ignores cross-slot
	// constraints) used to prune branches that cannot beat the current best.
	bestFromSlot := make([]int, 7)
	for i := 5; i >= 0; i-- {
		bestFromSlot[i] = bestFromSlot[i+1] + slotCandidates[i][0].potential
	}
	bestFromArtifact := make([]int, 3)
	for i := 1; i >= 0; i-- {
		bestFromArtifact[i] = bestFromArtifact[i+1] + typeCandidates[i][0].potential
	}

	var best assignment
	found := false

	chosenRunes := make(map[int]domain.Rune, 6)
	chosenArtifacts := make(map[int]domain.Artifact, 2)

	var recurseRunes func(idx int, partial int)
	var recurseArtifacts func(idx int, partial int)

	recurseArtifacts = func(idx int, partial int) {
		if ctx.nodeBudget > 0 && ctx.nodesVisited >= ctx.nodeBudget {
			return
		}
		ctx.nodesVisited++
		if idx == len(artifactTypes) {
			runesList := make([]domain.Rune, 0, 6)
			for _, slot := range runeSlots {
				runesList = append(runesList, chosenRunes[slot])
			}
			stats := ComputeStats(ctx.monster, runesList, ctx.ext)
			if !setOptionSatisfied(runesList, ctx.option) {
				return
			}
			if _, ok := minStatFailure(ctx.build.MinStats, stats); !ok {
				return
			}
			if _, ok := speedWithinBounds(ctx.build, stats, ctx.ext); !ok {
				return
			}
			if ctx.minSpeed != nil && stats.CombatSPD < *ctx.minSpeed-ctx.speedSlack {
				return
			}
			total := finalScore(ctx, runesList, chosenArtifacts, stats)
			if !found || total > best.score {
				best = assignment{
					runes:     copyRuneMap(chosenRunes),
					artifacts: copyArtifactMap(chosenArtifacts),
					stats:     stats,
					score:     total,
				}
				found = true
			}
			return
		}
		t := artifactTypes[idx]
		bound := partial + ctx.speedFirstBase
		if idx+1 < len(bestFromArtifact) {
			bound += bestFromArtifact[idx+1]
		}
		if found && bound <= best.score {
			return
		}
		for _, cand := range typeCandidates[idx] {
			if found && partial+cand.potential+boundAfterArtifact(bestFromArtifact, idx+1)+ctx.speedFirstBase <= best.score {
				break
			}
			chosenArtifacts[t] = cand.artifact
			recurseArtifacts(idx+1, partial+cand.potential)
		}
		delete(chosenArtifacts, t)
	}

	recurseRunes = func(idx int, partial int) {
		if ctx.nodeBudget > 0 && ctx.nodesVisited >= ctx.nodeBudget {
			return
		}
		if idx == len(runeSlots) {
			recurseArtifacts(0, partial)
			return
		}
		slot := runeSlots[idx]
		for _, cand := range slotCandidates[idx] {
			bound := partial + cand.potential + boundAfterSlot(bestFromSlot, idx+1) + bestFromArtifact[0] + ctx.speedFirstBase
			if found && bound <= best.score {
				break
			}
			chosenRunes[slot] = cand.rune
			recurseRunes(idx+1, partial+cand.potential)
		}
		delete(chosenRunes, slot)
	}

	recurseRunes(0, 0)
	return best, found
}

func boundAfterSlot(bestFromSlot []int, idx int) int {
	if idx >= len(bestFromSlot) {
		return 0
	}
	return bestFromSlot[idx]
}

func boundAfterArtifact(bestFromArtifact []int, idx int) int {
	if idx >= len(bestFromArtifact) {
		return 0
	}
	return bestFromArtifact[idx]
}

func copyRuneMap(m map[int]domain.Rune) map[int]domain.Rune {
	out := make(map[int]domain.Rune, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func copyArtifactMap(m map[int]domain.Artifact) map[int]domain.Artifact {
	out := make(map[int]domain.Artifact, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

type scoredRune struct {
	rune      domain.Rune
	potential int
}

type scoredArtifact struct {
	artifact  domain.Artifact
	potential int
}

func filterRunesForSlot(ctx *searchContext, slot int, runes []domain.Rune) []domain.Rune {
	allowed := ctx.build.Mainstats[slot]
	var out []domain.Rune
	for _, r := range runes {
		if r.SlotNo != slot {
			continue
		}
		if !mainstatAllowed(r, allowed) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func filterArtifactsForType(ctx *searchContext, artifactType int, artifacts []domain.Artifact) []domain.Artifact {
	filter := ctx.build.ArtifactFilters[domain.ArtifactType(artifactType)]
	var out []domain.Artifact
	for _, a := range artifacts {
		if int(a.Type) != artifactType {
			continue
		}
		if !artifactFilterAllowed(a, filter) {
			continue
		}
		out = append(out, a)
	}
	return out
}

// rankRunes computes each candidate's potential score (used both to order
// the branch for best-first search and as the relaxed upper bound for
// pruning) and sorts descending.
func rankRunes(ctx *searchContext, slot int, runes []domain.Rune) []scoredRune {
	mainstatForced := len(ctx.build.Mainstats[slot]) > 0
	out := make([]scoredRune, 0, len(runes))
	for _, r := range runes {
		var potential int
		if ctx.speedFirst {
			potential = speedFirstPotential(r, ctx.ext)
		} else {
			potential = scoring.RuneQuality(r, ctx.unitID, ctx.mode, ctx.acc, mainstatForced, ctx.archetype)
			potential += config.RuneEfficiencyWeightSolver * scoring.RoundedEfficiencyPct(scoring.RuneEfficiency(r, ctx.effVariant))
			potential += scoring.RuneBaselineBonus(slot, r.RuneID, ctx.baselineRunesBySlot, ctx.baselineWeight)
			if prev, ok := ctx.previousRunesBySlot[slot]; ok && prev == r.RuneID {
				potential -= ctx.avoidSameRunePenalty
			}
		}
		out = append(out, scoredRune{rune: r, potential: potential})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].potential != out[j].potential {
			return out[i].potential > out[j].potential
		}
		return out[i].rune.RuneID < out[j].rune.RuneID
	})
	return out
}

func rankArtifacts(ctx *searchContext, artifactType int, artifacts []domain.Artifact) []scoredArtifact {
	filter := ctx.build.ArtifactFilters[domain.ArtifactType(artifactType)]
	out := make([]scoredArtifact, 0, len(artifacts))
	for _, a := range artifacts {
		var potential int
		if ctx.speedFirst {
			potential = 0
		} else {
			potential = artifactQualityFor(ctx, a)
			potential += config.RuneEfficiencyWeightSolver * scoring.RoundedEfficiencyPct(scoring.ArtifactEfficiency(a))
			potential += scoring.ArtifactBuildBonus(a, filter)
			potential += scoring.ArtifactBaselineBonus(artifactType, a.ArtifactID, ctx.baselineArtifactsByType, ctx.baselineWeight)
			if prev, ok := ctx.previousArtifactsByType[artifactType]; ok && prev == a.ArtifactID {
				potential -= ctx.avoidSameArtifactPenalty
			}
		}
		out = append(out, scoredArtifact{artifact: a, potential: potential})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].potential != out[j].potential {
			return out[i].potential > out[j].potential
		}
		return out[i].artifact.ArtifactID < out[j].artifact.ArtifactID
	})
	return out
}

// finalScore adds the combination-level terms that only make sense for a
// complete assignment: the build-priority penalty and the set-option
// preference bonus (spec §4.3.2). Per-item quality/efficiency/baseline
// terms were already accumulated during the search as `potential`.
//
// The speed-first pass maximises CombatSPD directly instead: its branch
// order and bound are FlatSPD-only (rankRunes/speedFirstPotential), so the
// objective here must match that relaxation rather than mixing in quality
// terms the bound never accounted for.
func finalScore(ctx *searchContext, runes []domain.Rune, artifacts map[int]domain.Artifact, stats StatTotals) int {
	if ctx.speedFirst {
		return stats.CombatSPD
	}

	total := 0
	mainstatAt := func(slot int) bool { return len(ctx.build.Mainstats[slot]) > 0 }
	for _, r := range runes {
		total += scoring.RuneQuality(r, ctx.unitID, ctx.mode, ctx.acc, mainstatAt(r.SlotNo), ctx.archetype)
		total += config.RuneEfficiencyWeightSolver * scoring.RoundedEfficiencyPct(scoring.RuneEfficiency(r, ctx.effVariant))
		total += scoring.RuneBaselineBonus(r.SlotNo, r.RuneID, ctx.baselineRunesBySlot, ctx.baselineWeight)
		if prev, ok := ctx.previousRunesBySlot[r.SlotNo]; ok && prev == r.RuneID {
			total -= ctx.avoidSameRunePenalty
		}
	}
	for t, a := range artifacts {
		filter := ctx.build.ArtifactFilters[domain.ArtifactType(t)]
		total += artifactQualityFor(ctx, a)
		total += config.RuneEfficiencyWeightSolver * scoring.RoundedEfficiencyPct(scoring.ArtifactEfficiency(a))
		total += scoring.ArtifactBuildBonus(a, filter)
		total += scoring.ArtifactBaselineBonus(t, a.ArtifactID, ctx.baselineArtifactsByType, ctx.baselineWeight)
		if prev, ok := ctx.previousArtifactsByType[t]; ok && prev == a.ArtifactID {
			total -= ctx.avoidSameArtifactPenalty
		}
	}
	total -= ctx.build.Priority * ctx.buildPriorityPenalty
	total += ctx.setOptionPreferenceBonus
	if ctx.archetype.Defensive() {
		total -= scoring.OverCapDiscount(stats.CritRate, stats.CritDmg)
	}
	return total
}

// artifactQualityFor picks the archetype-aware artifact quality variant
// (spec §4.1.4): defensive archetypes penalise an ATK focus and reward
// HP/DEF/RES sub-rolls instead of weighting every sub-roll equally.
func artifactQualityFor(ctx *searchContext, a domain.Artifact) int {
	if ctx.archetype.Defensive() {
		return scoring.ArtifactQualityDefensive(a, ctx.unitID)
	}
	return scoring.ArtifactQuality(a, ctx.unitID)
}

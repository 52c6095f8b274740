package greedy

import (
	"fmt"
	"math"
	"strings"

	"github.com/klauer/swop/pkg/swop/pruner"
	"github.com/klauer/swop/pkg/swop/scoring"
	"github.com/klauer/swop/pkg/swop/solver"
)

// speedEntry records one processed teammate's turn order and combat speed,
// used to derive the next teammate's speed cap (spec §4.4 step 2).
type speedEntry struct {
	turnOrder int
	speed     int
}

// Run executes the greedy engine: a single deterministic pass, or a
// multi-pass search over rotated/reversed priority orderings when
// MultiPassEnabled, stopping early on patience exhaustion or a repeated,
// non-improving signature (spec §4.4).
func Run(req Request) Result {
	base := baseOrder(req.Monsters)
	if req.EnforceTurnOrder {
		base = applyTurnOrder(base)
	}

	count := 1
	if req.MultiPassEnabled && req.MultiPassCount > 1 {
		count = req.MultiPassCount
	}
	orders := passOrders(base, count)

	patience := req.Patience
	if patience <= 0 {
		patience = 2
	}

	var best PassResult
	var prevBest *PassResult
	seenSignatures := map[string]bool{}
	noImprove := 0
	passesTried := 0
	cancelled := false

	for i, order := range orders {
		if req.IsCancelled != nil && req.IsCancelled() {
			cancelled = true
			break
		}

		refine := req.MultiPassStrategy == StrategyGreedyRefine && i > 0
		setOptionPrefIndex := i % 4
		if count == 1 {
			setOptionPrefIndex = req.SetOptionPreferenceIndex
		}

		avoid := req.AvoidResultsByUnit
		if refine && prevBest != nil {
			avoid = prevBest.Results
		}

		pass := runPass(req, order, setOptionPrefIndex, avoid)
		passesTried++
		if pass.Cancelled {
			cancelled = true
		}

		sig := signature(pass.Order, pass.Results)
		betterThanBest := i == 0 || pass.Score.Compare(best.Score) > 0
		repeated := seenSignatures[sig]

		if betterThanBest {
			best = pass
			noImprove = 0
		} else {
			noImprove++
		}
		seenSignatures[sig] = true

		passCopy := pass
		prevBest = &passCopy

		if pass.Cancelled {
			break
		}
		if repeated && !betterThanBest {
			break
		}
		if noImprove >= patience {
			break
		}
	}

	return Result{Best: best, PassesTried: passesTried, Cancelled: cancelled}
}

// runPass processes order's monsters sequentially against a shrinking
// candidate pool, locking each success's picks before moving to the next
// monster, then scores the completed pass (spec §4.4 steps 2-3).
func runPass(req Request, order []MonsterSpec, setOptionPrefIndex int, avoidPrev map[int64]solver.Result) PassResult {
	lockedRunes := copyBoolMap(req.ExcludedRuneIDs)
	lockedArtifacts := copyBoolMap(req.ExcludedArtifactIDs)

	results := make(map[int64]solver.Result, len(order))
	teamSpeeds := map[int][]speedEntry{}
	cancelled := false

	for i, spec := range order {
		if req.IsCancelled != nil && req.IsCancelled() {
			cancelled = true
			break
		}

		if fixed, ok := req.FixedResults[spec.Monster.UnitID]; ok {
			results[spec.Monster.UnitID] = fixed
			if fixed.OK {
				for _, rid := range fixed.RunesBySlot {
					lockedRunes[rid] = true
				}
				for _, aid := range fixed.ArtifactsByType {
					lockedArtifacts[aid] = true
				}
				teamSpeeds[spec.TeamID] = append(teamSpeeds[spec.TeamID], speedEntry{turnOrder: spec.TurnOrder, speed: fixed.FinalSpeed})
			}
			reportProgress(req, i+1, len(order))
			continue
		}

		pool, err := pruner.Prune(req.Account, req.TopPerSet, lockedRunes, lockedArtifacts)
		if err != nil {
			results[spec.Monster.UnitID] = solver.Result{OK: false, Message: err.Error()}
			reportProgress(req, i+1, len(order))
			continue
		}

		var maxFinalSPD *int
		if spec.TurnOrder != 0 {
			maxFinalSPD = speedCapFor(teamSpeeds[spec.TeamID], spec.TurnOrder)
		}
		var minFinalSPD *int
		if floor, ok := req.MinFinalSPDByUnit[spec.Monster.UnitID]; ok && floor > 0 {
			minFinalSPD = &floor
		}

		if req.RegisterSolver != nil {
			req.RegisterSolver(spec.Monster.UnitID)
		}

		solverReq := solver.Request{
			Mode:      req.Mode,
			Archetype: spec.Monster.Archetype,
			External: solver.External{
				MaxFinalSPD:     maxFinalSPD,
				MinFinalSPD:     minFinalSPD,
				LeaderBonusFlat: req.LeaderBonusFlatByUnit[spec.Monster.UnitID],
			},
			SpeedFirst:                       req.SpeedFirst,
			SpeedSlack:                       req.SpeedSlack,
			EffVariant:                       req.EffVariant,
			BaselineRunesBySlot:              req.BaselineRunesByUnit[spec.Monster.UnitID],
			BaselineArtifactsByType:          req.BaselineArtifactsByUnit[spec.Monster.UnitID],
			BaselineWeight:                   req.BaselineWeight,
			SetOptionPreferenceIndex:         setOptionPrefIndex,
			NodeBudget:                       req.NodeBudget,
			BuildPriorityPenaltyOverride:     req.BuildPriorityPenaltyOverride,
			AvoidSameRunePenaltyOverride:     req.AvoidSameRunePenaltyOverride,
			AvoidSameArtifactPenaltyOverride: req.AvoidSameArtifactPenaltyOverride,
		}
		if avoidPrev != nil {
			if prev, ok := avoidPrev[spec.Monster.UnitID]; ok && prev.OK {
				solverReq.PreviousRunesBySlot = prev.RunesBySlot
				solverReq.PreviousArtifactsByType = prev.ArtifactsByType
			}
		}

		res := solver.Solve(spec.Monster.UnitID, spec.Monster, spec.Builds, pool, req.Account, req.Mode, solverReq)
		results[spec.Monster.UnitID] = res

		if res.OK {
			for _, rid := range res.RunesBySlot {
				lockedRunes[rid] = true
			}
			for _, aid := range res.ArtifactsByType {
				lockedArtifacts[aid] = true
			}
			teamSpeeds[spec.TeamID] = append(teamSpeeds[spec.TeamID], speedEntry{turnOrder: spec.TurnOrder, speed: res.FinalSpeed})
		}
		reportProgress(req, i+1, len(order))
	}

	return PassResult{
		Results:   results,
		Score:     ScorePass(req, order, results),
		Order:     unitIDs(order),
		Cancelled: cancelled,
	}
}

func reportProgress(req Request, done, total int) {
	if req.Progress != nil {
		req.Progress(done, total)
	}
}

// speedCapFor returns combat_spd(earliest teammate with lower turn order) -
// 1, the tightest such cap over every already-processed teammate with
// turn_order below turnOrder (spec §4.4 step 2), or nil if none exist.
func speedCapFor(entries []speedEntry, turnOrder int) *int {
	var tightest *int
	for _, e := range entries {
		if e.turnOrder == 0 || e.turnOrder >= turnOrder {
			continue
		}
		bound := e.speed - 1
		if tightest == nil || bound < *tightest {
			tightest = &bound
		}
	}
	return tightest
}

func copyBoolMap(m map[int64]bool) map[int64]bool {
	out := make(map[int64]bool, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// ScorePass aggregates a completed ordering into the lexicographic tuple of
// spec §4.4 step 3: ok_count, effective_quality (computed by
// scoring.NewPassScore), total_quality, avg_quality_scaled,
// -Σturn_gap_excess², min_unit_quality, total_combat_spd. Exported so
// pkg/swop/global can score a merged opener+remainder ordering without
// duplicating the aggregation.
func ScorePass(req Request, order []MonsterSpec, results map[int64]solver.Result) scoring.PassScore {
	okCount := 0
	totalQuality := 0
	sumEffX10 := 0
	minUnitQuality := 0
	first := true

	for _, spec := range order {
		res, ok := results[spec.Monster.UnitID]
		if !ok || !res.OK {
			continue
		}
		okCount++
		totalQuality += res.Score
		if first || res.Score < minUnitQuality {
			minUnitQuality = res.Score
			first = false
		}
		for _, runeID := range res.RunesBySlot {
			r, ok := req.Account.Runes[runeID]
			if !ok {
				continue
			}
			eff := scoring.RuneEfficiency(r, req.EffVariant)
			sumEffX10 += int(math.RoundToEven(eff * 10))
		}
	}

	turnGapExcessSq := 0
	totalCombatSPD := 0
	teams := map[int][]speedEntry{}
	for _, spec := range order {
		res, ok := results[spec.Monster.UnitID]
		if !ok || !res.OK {
			continue
		}
		totalCombatSPD += res.FinalSpeed
		teams[spec.TeamID] = append(teams[spec.TeamID], speedEntry{turnOrder: spec.TurnOrder, speed: res.FinalSpeed})
	}
	for _, entries := range teams {
		for i, a := range entries {
			for j, b := range entries {
				if i == j || a.turnOrder == 0 || b.turnOrder == 0 || a.turnOrder >= b.turnOrder {
					continue
				}
				excess := b.speed + 1 - a.speed
				if excess > 0 {
					turnGapExcessSq += excess * excess
				}
			}
		}
	}

	return scoring.NewPassScore(okCount, totalQuality, sumEffX10, turnGapExcessSq, minUnitQuality, totalCombatSPD)
}

// signature is the pass's comparable fingerprint for the "identical
// signature, not strictly better" early-stop check (spec §4.4 step 4):
// the chosen runes/artifacts for every unit, independent of score.
func signature(order []int64, results map[int64]solver.Result) string {
	var b strings.Builder
	for _, uid := range order {
		res := results[uid]
		fmt.Fprintf(&b, "%d:%v:%d:%v:%v;", uid, res.OK, res.ChosenBuildID, res.RunesBySlot, res.ArtifactsByType)
	}
	return b.String()
}

package arenarush

import (
	"fmt"

	"github.com/klauer/swop/pkg/swop/greedy"
	"github.com/klauer/swop/pkg/swop/solver"
)

const defaultMaxOpeningRefineAttempts = 2

// Run executes the Arena Rush Coordinator for req (spec §4.6).
func Run(req Request) Result {
	if len(uniqueUnitIDs(req.DefenseUnitIDs)) == 0 {
		return Result{OK: false, Message: "arena rush: no defense units selected"}
	}
	if req.DefenseCandidateCount > 1 {
		return runCandidates(req)
	}
	return runOnce(req, 0)
}

// runOnce executes one full defence + offence pass. rotation shifts the
// defence unit order to give a defence-candidate search genuine diversity
// between seeds (spec §4.6 step 3).
func runOnce(req Request, rotation int) Result {
	defenseEngine := req.DefenseEngine
	if defenseEngine == nil {
		defenseEngine = greedy.Run
	}
	offenseEngine := req.OffenseEngine
	if offenseEngine == nil {
		offenseEngine = greedy.Run
	}
	rescueEngine := req.RescueEngine
	if rescueEngine == nil {
		rescueEngine = offenseEngine
	}
	maxAttempts := req.MaxOpeningRefineAttempts
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxOpeningRefineAttempts
	}

	orderedDefense := rotateUnitIDs(uniqueUnitIDs(req.DefenseUnitIDs), rotation)
	defenseTurnOrder := req.DefenseTurnOrder
	if len(defenseTurnOrder) == 0 {
		defenseTurnOrder = defaultTurnOrder(orderedDefense)
	}

	defenseReq := greedy.Request{
		Mode:                  req.Mode,
		Account:               req.Account,
		Monsters:              buildMonsterSpecs(orderedDefense, req.Account, req.DefenseBuilds, 0, defenseTurnOrder),
		EnforceTurnOrder:      true,
		TopPerSet:             req.TopPerSet,
		SpeedFirst:            req.SpeedFirst,
		SpeedSlack:            req.SpeedSlack,
		EffVariant:            req.EffVariant,
		BaselineWeight:        req.BaselineWeight,
		LeaderBonusFlatByUnit: req.DefenseSpeedLeaderBonusFlat,
		MultiPassEnabled:      req.MultiPassCount > 1,
		MultiPassCount:        req.MultiPassCount,
		MultiPassStrategy:     greedy.StrategyGreedyRefine,
		Progress:              req.Progress,
		IsCancelled:           req.IsCancelled,
		RegisterSolver:        req.RegisterSolver,
	}
	defenseResult := defenseEngine(defenseReq)

	lockedRunes, lockedArtifacts := lockedIDsFromResults(defenseResult.Best.Results)
	sharedAssignments := map[int64]solver.Result{}
	for uid, res := range defenseResult.Best.Results {
		if res.OK {
			sharedAssignments[uid] = res
		}
	}

	offenses := make([]OffenseResult, 0, len(req.OffenseTeams))
	for teamIndex, team := range req.OffenseTeams {
		if req.IsCancelled != nil && req.IsCancelled() {
			return cancelledResult(defenseResult, offenses)
		}
		offenses = append(offenses, runOffenseTeam(req, teamIndex, team, offenseEngine, rescueEngine, maxAttempts, &lockedRunes, &lockedArtifacts, sharedAssignments))
	}

	defenseOK := okCount(defenseResult.Best.Results) == len(orderedDefense)
	offenseOK := true
	totalPenalty := 0
	for _, off := range offenses {
		if okCount(off.Optimization.Best.Results) != len(off.TeamUnitIDs) {
			offenseOK = false
		}
		totalPenalty += off.OpeningPenalty
	}
	okAll := defenseOK && offenseOK && totalPenalty == 0
	message := fmt.Sprintf("arena rush finished: defense_ok=%t offense_ok=%t opening_penalty=%d", defenseOK, offenseOK, totalPenalty)

	return Result{OK: okAll, Message: message, Defense: defenseResult, Offenses: offenses}
}

// runOffenseTeam solves one offence team and repairs its opening order,
// mutating lockedRunes/lockedArtifacts and sharedAssignments so later
// teams see this team's picks as shared (spec §4.6 step 2).
func runOffenseTeam(req Request, teamIndex int, team OffenseTeam, offenseEngine, rescueEngine Engine, maxAttempts int, lockedRunes, lockedArtifacts *map[int64]bool, sharedAssignments map[int64]solver.Result) OffenseResult {
	unitIDs := uniqueUnitIDs(team.UnitIDs)
	if len(unitIDs) == 0 {
		return OffenseResult{TeamIndex: teamIndex, Optimization: greedy.Result{}}
	}

	expectedOrder := uniqueUnitIDs(team.ExpectedOpeningOrder)
	seen := map[int64]bool{}
	for _, uid := range expectedOrder {
		seen[uid] = true
	}
	for _, uid := range unitIDs {
		if !seen[uid] {
			expectedOrder = append(expectedOrder, uid)
			seen[uid] = true
		}
	}

	var sharedUnitIDs, swappedInUnitIDs []int64
	fixedResults := map[int64]solver.Result{}
	fixedRunes, fixedArtifacts := map[int64]bool{}, map[int64]bool{}
	for _, uid := range unitIDs {
		res, ok := sharedAssignments[uid]
		if !ok {
			swappedInUnitIDs = append(swappedInUnitIDs, uid)
			continue
		}
		sharedUnitIDs = append(sharedUnitIDs, uid)
		fixedResults[uid] = res
		for _, rid := range res.RunesBySlot {
			fixedRunes[rid] = true
		}
		for _, aid := range res.ArtifactsByType {
			fixedArtifacts[aid] = true
		}
	}

	turnOrder := team.UnitTurnOrder
	if len(turnOrder) == 0 {
		turnOrder = defaultTurnOrder(expectedOrder)
	}

	baseReq := greedy.Request{
		Mode:                  req.Mode,
		Account:               req.Account,
		Monsters:              buildMonsterSpecs(expectedOrder, req.Account, team.Builds, teamIndex+1, turnOrder),
		EnforceTurnOrder:      true,
		TopPerSet:             req.TopPerSet,
		SpeedFirst:            req.SpeedFirst,
		SpeedSlack:            req.SpeedSlack,
		EffVariant:            req.EffVariant,
		BaselineWeight:        req.BaselineWeight,
		LeaderBonusFlatByUnit: team.UnitSpeedLeaderBonusFlat,
		ExcludedRuneIDs:       excludeExcept(*lockedRunes, fixedRunes),
		ExcludedArtifactIDs:   excludeExcept(*lockedArtifacts, fixedArtifacts),
		FixedResults:          fixedResults,
		MultiPassEnabled:      req.MultiPassCount > 1,
		MultiPassCount:        req.MultiPassCount,
		MultiPassStrategy:     greedy.StrategyGreedyRefine,
		Progress:              req.Progress,
		IsCancelled:           req.IsCancelled,
		RegisterSolver:        req.RegisterSolver,
	}

	teamResult := offenseEngine(baseReq)
	if okCount(teamResult.Best.Results) < len(unitIDs) {
		teamResult = rescueEngine(baseReq)
	}

	eval := evaluateOpening(expectedOrder, team.TurnEffectsByUnit, teamResult.Best.Results, req.Account.Artifacts)

	for attempt := 0; attempt < maxAttempts; attempt++ {
		floors := speedFloorsFor(expectedOrder, eval, team.TurnEffectsByUnit)
		if len(floors) == 0 || eval.penalty == 0 {
			break
		}
		refinedReq := baseReq
		refinedReq.MinFinalSPDByUnit = floors
		refined := offenseEngine(refinedReq)
		refinedEval := evaluateOpening(expectedOrder, team.TurnEffectsByUnit, refined.Best.Results, req.Account.Artifacts)
		if okCount(refined.Best.Results) < len(unitIDs) || refinedEval.penalty >= eval.penalty {
			break
		}
		teamResult = refined
		eval = refinedEval
	}

	for uid, res := range teamResult.Best.Results {
		if res.OK {
			sharedAssignments[uid] = res
		}
	}
	newRunes, newArtifacts := lockedIDsFromResults(teamResult.Best.Results)
	*lockedRunes = mergeBoolSets(*lockedRunes, newRunes)
	*lockedArtifacts = mergeBoolSets(*lockedArtifacts, newArtifacts)

	return OffenseResult{
		TeamIndex:             teamIndex,
		TeamUnitIDs:           unitIDs,
		SharedUnitIDs:         sharedUnitIDs,
		SwappedInUnitIDs:      swappedInUnitIDs,
		Optimization:          teamResult,
		ExpectedOpeningOrder:  expectedOrder,
		SimulatedOpeningOrder: eval.simulatedOrder,
		OpeningPenalty:        eval.penalty,
	}
}

package request

import (
	"github.com/klauer/swop/internal/errors"
	"github.com/klauer/swop/pkg/swop/greedy"
)

// Run executes the sequential optimiser for req and returns the spec
// §6.2 result document.
func Run(req OptimizerRequest) OptimizerResult {
	if len(req.UnitIDsInOrder) == 0 {
		return OptimizerResult{OK: false, Message: errors.NoUnits().Error()}
	}

	// The third return value bounds parallel candidate fan-out inside
	// resolveEngine's chosen Engine (max_quality's 3-way global.Run
	// fan-out); the sequential engine itself has no further use for it.
	engine, nodeBudget, _ := resolveEngine(req.QualityProfile, req.TimeLimitPerUnit, req.Workers, req.SpeedSlackForQuality)

	greedyReq := toGreedyRequest(req, nodeBudget)
	result := engine(greedyReq)

	results := unitResultsFrom(req.UnitIDsInOrder, result)
	ok := !result.Cancelled
	message := "ok"
	if result.Cancelled {
		message = errors.Cancelled().Error()
		ok = false
	} else {
		for _, r := range results {
			if !r.OK {
				ok = false
				message = "one or more units failed to solve"
				break
			}
		}
	}

	return OptimizerResult{OK: ok, Message: message, Results: results}
}

// toGreedyRequest builds the internal greedy.Request from the wire
// request, applying the profile-derived node budget.
func toGreedyRequest(req OptimizerRequest, nodeBudget int) greedy.Request {
	monsters := make([]greedy.MonsterSpec, 0, len(req.UnitIDsInOrder))
	for _, uid := range req.UnitIDsInOrder {
		monster := req.Account.Monsters[uid]
		if archetype, ok := req.UnitArchetypeByUID[uid]; ok {
			monster.Archetype = archetype
		}
		monsters = append(monsters, greedy.MonsterSpec{
			Monster:   monster,
			Builds:    req.Account.BuildsForUnit(uid, req.Mode),
			TeamID:    req.UnitTeamIndex[uid],
			TurnOrder: req.UnitTeamTurnOrder[uid],
		})
	}

	return greedy.Request{
		Mode:                    req.Mode,
		Account:                 req.Account,
		Monsters:                monsters,
		EnforceTurnOrder:        req.EnforceTurnOrder,
		TopPerSet:               req.RuneTopPerSet,
		BaselineRunesByUnit:     req.BaselineRunesByUnit,
		BaselineArtifactsByUnit: req.BaselineArtifactsByUnit,
		BaselineWeight:          req.BaselineRegressionGuardWeight,
		LeaderBonusFlatByUnit:   req.UnitSPDLeaderBonusFlat,
		SpeedSlack:              req.SpeedSlackForQuality,
		EffVariant:              effVariantFor(req.QualityProfile),
		NodeBudget:              nodeBudget,
		MultiPassEnabled:        req.MultiPassEnabled,
		MultiPassCount:          req.MultiPassCount,
		MultiPassStrategy:       req.MultiPassStrategy,
		Progress:                greedy.ProgressFunc(req.ProgressCallback),
		IsCancelled:             req.IsCancelled,
		RegisterSolver:          req.RegisterSolver,
	}
}

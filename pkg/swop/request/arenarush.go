package request

import (
	"time"

	"github.com/klauer/swop/pkg/swop/arenarush"
	"github.com/klauer/swop/pkg/swop/domain"
	"github.com/klauer/swop/pkg/swop/greedy"
)

// greedyProgressFunc adapts the wire request's progress_callback into
// greedy.ProgressFunc, preserving a nil callback.
func greedyProgressFunc(cb func(done, total int)) greedy.ProgressFunc {
	return greedy.ProgressFunc(cb)
}

// RunArenaRush executes the Arena Rush Coordinator for req and returns the
// spec §6.3 result document.
func RunArenaRush(req ArenaRushRequest) ArenaRushResult {
	if len(req.DefenseUnitIDs) == 0 {
		return ArenaRushResult{OK: false, Message: "arena rush: no defense units selected"}
	}

	engine, nodeBudget, workers := resolveEngine(req.QualityProfile, req.TimeLimitPerUnit, req.Workers, req.SpeedSlackForQuality)
	_ = nodeBudget // node budget is an internal CP-solve knob; arenarush.Request has no field for it yet (see DESIGN.md)

	buildsByUnit := func(mode domain.Mode) map[int64][]domain.Build {
		out := map[int64][]domain.Build{}
		for uid := range req.Account.Monsters {
			out[uid] = req.Account.BuildsForUnit(uid, mode)
		}
		return out
	}(req.Mode)

	defenseBuilds := map[int64][]domain.Build{}
	for _, uid := range req.DefenseUnitIDs {
		defenseBuilds[uid] = buildsByUnit[uid]
	}

	arRequest := arenarush.Request{
		Mode:                        req.Mode,
		Account:                     req.Account,
		DefenseUnitIDs:              req.DefenseUnitIDs,
		DefenseBuilds:               defenseBuilds,
		DefenseTurnOrder:            req.DefenseUnitTeamTurnOrder,
		DefenseSpeedLeaderBonusFlat: req.DefenseUnitSPDLeaderBonusFlat,
		DefenseEngine:               arenarush.Engine(engine),
		DefenseCandidateCount:       req.DefenseCandidateCount,
		OffenseTeams:                offenseTeamsToArenaRush(req.OffenseTeams, buildsByUnit),
		OffenseEngine:               arenarush.Engine(engine),
		TopPerSet:                   req.RuneTopPerSet,
		EffVariant:                  effVariantFor(req.QualityProfile),
		SpeedSlack:                  req.SpeedSlackForQuality,
		BaselineWeight:              req.BaselineRegressionGuardWeight,
		MultiPassCount:              req.MultiPassCount,
		Workers:                     workers,
		MaxRuntime:                  time.Duration(req.MaxRuntimeS * float64(time.Second)),
		Progress:                    greedyProgressFunc(req.ProgressCallback),
		IsCancelled:                 req.IsCancelled,
		RegisterSolver:              req.RegisterSolver,
	}

	result := arenarush.Run(arRequest)

	return ArenaRushResult{
		OK:       result.OK,
		Message:  result.Message,
		Defense:  unitResultsFromArena(req.DefenseUnitIDs, result.Defense),
		Offenses: offenseResultsFromArena(result.Offenses),
	}
}

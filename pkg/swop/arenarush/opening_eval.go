package arenarush

import (
	"github.com/klauer/swop/pkg/swop/domain"
	"github.com/klauer/swop/pkg/swop/opening"
	"github.com/klauer/swop/pkg/swop/solver"
)

// openingEvaluation is the simulated opening order and its penalty for one
// offence team's solved assignment, plus the inputs a repair pass needs to
// recompute speed floors (spec §4.6 step 2g, ported from
// _evaluate_opening in the reference engine).
type openingEvaluation struct {
	simulatedOrder   []int64
	penalty          int
	speedByUnit      map[int64]int
	spdBuffIncByUnit map[int64]float64
}

func evaluateOpening(expectedOrder []int64, turnEffects map[int64]opening.OpeningTurnEffect, results map[int64]solver.Result, artifacts map[int64]domain.Artifact) openingEvaluation {
	if len(expectedOrder) == 0 {
		return openingEvaluation{}
	}
	speedByUnit := make(map[int64]int, len(expectedOrder))
	artifactsByUnit := make(map[int64]map[int]int64, len(expectedOrder))
	for _, uid := range expectedOrder {
		res, ok := results[uid]
		if !ok || !res.OK {
			continue
		}
		speedByUnit[uid] = res.FinalSpeed
		artifactsByUnit[uid] = res.ArtifactsByType
	}
	if len(speedByUnit) != len(expectedOrder) {
		return openingEvaluation{}
	}

	spdBuffIncByUnit := opening.SPDBuffIncreasePctByUnit(artifactsByUnit, artifacts)
	simulated := opening.SimulateOpeningOrder(
		expectedOrder, speedByUnit, turnEffects, spdBuffIncByUnit,
		len(expectedOrder), false,
		opening.DefaultATBGainPerTickPct, opening.DefaultSPDBuffPct,
	)
	penalty := opening.OpeningOrderPenalty(expectedOrder, simulated)
	return openingEvaluation{
		simulatedOrder:   simulated,
		penalty:          penalty,
		speedByUnit:      speedByUnit,
		spdBuffIncByUnit: spdBuffIncByUnit,
	}
}

// speedFloorsFor derives the min-final-speed floors evaluateOpening's
// inputs imply (spec §4.6 step d), filtered to positive floors for units
// in expectedOrder.
func speedFloorsFor(expectedOrder []int64, eval openingEvaluation, turnEffects map[int64]opening.OpeningTurnEffect) map[int64]int {
	if len(turnEffects) == 0 || len(eval.speedByUnit) != len(expectedOrder) {
		return nil
	}
	floors := opening.MinSpeedFloorByUnit(expectedOrder, eval.speedByUnit, turnEffects, eval.spdBuffIncByUnit, opening.DefaultSPDBuffPct)
	out := make(map[int64]int, len(floors))
	inExpected := make(map[int64]bool, len(expectedOrder))
	for _, uid := range expectedOrder {
		inExpected[uid] = true
	}
	for uid, spd := range floors {
		if inExpected[uid] && spd > 0 {
			out[uid] = spd
		}
	}
	return out
}

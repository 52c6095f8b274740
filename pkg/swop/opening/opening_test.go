package opening

import (
	"reflect"
	"testing"

	"github.com/klauer/swop/internal/config"
	"github.com/klauer/swop/pkg/swop/domain"
)

func TestSimulateOpeningOrderFastestGoesFirst(t *testing.T) {
	speeds := map[int64]int{1: 200, 2: 150, 3: 100}
	order := SimulateOpeningOrder([]int64{1, 2, 3}, speeds, nil, nil, 3, false, DefaultATBGainPerTickPct, DefaultSPDBuffPct)
	if len(order) != 3 {
		t.Fatalf("expected 3 actions, got %d (%v)", len(order), order)
	}
	if order[0] != 1 {
		t.Fatalf("expected fastest unit (1) to act first, got %d", order[0])
	}
}

func TestSimulateOpeningOrderSkipsZeroSpeedUnits(t *testing.T) {
	speeds := map[int64]int{1: 150, 2: 0}
	order := SimulateOpeningOrder([]int64{1, 2}, speeds, nil, nil, 2, false, DefaultATBGainPerTickPct, DefaultSPDBuffPct)
	for _, uid := range order {
		if uid == 2 {
			t.Fatal("zero-speed unit should never act")
		}
	}
}

func TestSimulateOpeningOrderATBBoostAdvancesTarget(t *testing.T) {
	speeds := map[int64]int{1: 200, 2: 100}
	effects := map[int64]OpeningTurnEffect{
		1: {ATBBoostPct: 50, IncludeCaster: false},
	}
	order := SimulateOpeningOrder([]int64{1, 2}, speeds, effects, nil, 2, false, DefaultATBGainPerTickPct, DefaultSPDBuffPct)
	if len(order) < 2 {
		t.Fatalf("expected at least 2 actions, got %v", order)
	}
	if order[0] != 1 {
		t.Fatalf("expected unit 1 (higher speed) to act first, got %d", order[0])
	}
}

func TestOpeningOrderPenaltyZeroWhenExactMatch(t *testing.T) {
	if p := OpeningOrderPenalty([]int64{1, 2, 3}, []int64{1, 2, 3}); p != 0 {
		t.Fatalf("expected 0 penalty for exact match, got %d", p)
	}
}

func TestOpeningOrderPenaltyMismatchCost(t *testing.T) {
	// position 1 (index 1) mismatched: cost 1+1=2.
	p := OpeningOrderPenalty([]int64{1, 2, 3}, []int64{1, 3, 2})
	if p != 2 {
		t.Fatalf("expected penalty 2, got %d", p)
	}
}

func TestOpeningOrderPenaltyMissingActorCost(t *testing.T) {
	// expected 3 actors, observed only 1: missing positions 1,2 cost (3-1)*5=10.
	p := OpeningOrderPenalty([]int64{1, 2, 3}, []int64{1})
	if p != 10 {
		t.Fatalf("expected penalty 10, got %d", p)
	}
}

func TestMinSpeedFloorByUnitAppliesATBBoostAndSPDBuff(t *testing.T) {
	speeds := map[int64]int{1: 200, 2: 0}
	effects := map[int64]OpeningTurnEffect{
		1: {ATBBoostPct: 50, AppliesSPDBuff: true},
	}
	floors := MinSpeedFloorByUnit([]int64{1, 2}, speeds, effects, nil, DefaultSPDBuffPct)
	// ceil(200 * 0.5 / 1.3) = ceil(76.9) = 77
	if floors[2] != 77 {
		t.Fatalf("expected floor 77 for unit 2, got %d", floors[2])
	}
}

func TestSPDBuffIncreasePctForUnitSumsArtifactEffects(t *testing.T) {
	lookup := map[int64]domain.Artifact{
		1: {ArtifactID: 1, SecEffects: []domain.ArtifactSubEffect{
			{EffectID: config.EffectSPDBuffIncrease, Value: 20},
		}},
	}
	pct := SPDBuffIncreasePctForUnit([]int64{1}, lookup)
	if pct != 20 {
		t.Fatalf("expected 20, got %v", pct)
	}
}

func TestSPDBuffIncreasePctByUnitFromAssignments(t *testing.T) {
	lookup := map[int64]domain.Artifact{
		1: {ArtifactID: 1, SecEffects: []domain.ArtifactSubEffect{
			{EffectID: config.EffectSPDBuffIncrease, Value: 10},
		}},
	}
	byUnit := map[int64]map[int]int64{
		100: {1: 1, 2: 0},
	}
	out := SPDBuffIncreasePctByUnit(byUnit, lookup)
	if !reflect.DeepEqual(out, map[int64]float64{100: 10}) {
		t.Fatalf("unexpected result: %v", out)
	}
}

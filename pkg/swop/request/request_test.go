package request

import (
	"testing"

	"github.com/klauer/swop/internal/config"
	"github.com/klauer/swop/pkg/swop/domain"
)

func monsterWithID(id int64) domain.Monster {
	return domain.Monster{
		UnitID:    id,
		Base:      domain.BaseStats{HP: 10000, ATK: 500, DEF: 400, SPD: 100},
		Archetype: domain.ArchetypeAttack,
	}
}

func runeFor(id int64, slot int, set config.SetID, spd int) domain.Rune {
	return domain.Rune{
		RuneID:       id,
		SlotNo:       slot,
		SetID:        set,
		Rank:         6,
		RuneClass:    5,
		UpgradeLevel: 15,
		MainEffect:   domain.EffectValue{EffectID: config.EffectATKFlat, Value: 30},
		SubEffects: []domain.SubEffect{
			{EffectID: config.EffectSPD, BaseValue: spd},
		},
	}
}

func artifactFor(id int64, atype domain.ArtifactType) domain.Artifact {
	return domain.Artifact{
		ArtifactID: id,
		Type:       atype,
		Rank:       5,
		Level:      12,
		PriEffect:  domain.EffectValue{EffectID: config.EffectATKPct, Value: 15},
	}
}

// accountForTwoMonsters builds enough runes for two monsters to each get a
// full, non-overlapping set of slot-1..6 Violent runes plus two artifacts.
func accountForTwoMonsters() domain.AccountData {
	runes := map[int64]domain.Rune{}
	var id int64 = 1
	for monster := 0; monster < 2; monster++ {
		for slot := 1; slot <= 6; slot++ {
			runes[id] = runeFor(id, slot, config.SetViolent, 3)
			id++
		}
	}
	artifacts := map[int64]domain.Artifact{
		901: artifactFor(901, domain.ArtifactTypeAttribute),
		902: artifactFor(902, domain.ArtifactTypeUnitType),
		903: artifactFor(903, domain.ArtifactTypeAttribute),
		904: artifactFor(904, domain.ArtifactTypeUnitType),
	}
	monsters := map[int64]domain.Monster{1: monsterWithID(1), 2: monsterWithID(2)}
	build := violentBuild()
	return domain.AccountData{
		Monsters:  monsters,
		Runes:     runes,
		Artifacts: artifacts,
		Builds:    map[int64][]domain.Build{1: {build}, 2: {build}},
	}
}

func violentBuild() domain.Build {
	return domain.Build{
		ID:         1,
		Name:       "violent",
		Mode:       domain.ModeSiege,
		SetOptions: []domain.SetOption{{SetIDs: []config.SetID{config.SetViolent}}},
	}
}

// accountForArenaRush mirrors accountForTwoMonsters but tags its build with
// ModeArenaRush, since Arena Rush Coordinator requests filter builds by
// domain.ModeArenaRush rather than domain.ModeSiege.
func accountForArenaRush() domain.AccountData {
	acc := accountForTwoMonsters()
	build := violentBuild()
	build.Mode = domain.ModeArenaRush
	acc.Builds = map[int64][]domain.Build{1: {build}, 2: {build}}
	return acc
}

func TestRunNoUnitsFails(t *testing.T) {
	result := Run(OptimizerRequest{Mode: domain.ModeSiege})
	if result.OK {
		t.Fatal("expected OK=false for an empty unit list")
	}
	if result.Message == "" {
		t.Fatal("expected a non-empty failure message")
	}
}

func TestRunFastProfileSolvesBothMonsters(t *testing.T) {
	req := OptimizerRequest{
		Mode:           domain.ModeSiege,
		Account:        accountForTwoMonsters(),
		UnitIDsInOrder: []int64{1, 2},
		QualityProfile: "fast",
	}

	result := Run(req)
	if !result.OK {
		t.Fatalf("expected OK, got message %q", result.Message)
	}
	if len(result.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(result.Results))
	}
	for _, r := range result.Results {
		if !r.OK {
			t.Fatalf("unit %d failed to solve: %s", r.UnitID, r.Message)
		}
	}
	for slot, rid := range result.Results[0].RunesBySlot {
		if result.Results[1].RunesBySlot[slot] == rid {
			t.Fatalf("expected no rune overlap in slot %d, both got %d", slot, rid)
		}
	}
}

func TestRunBalancedProfileResolvesThroughGlobal(t *testing.T) {
	req := OptimizerRequest{
		Mode:             domain.ModeSiege,
		Account:          accountForTwoMonsters(),
		UnitIDsInOrder:   []int64{1, 2},
		QualityProfile:   "balanced",
		TimeLimitPerUnit: 1.0,
	}

	result := Run(req)
	if !result.OK {
		t.Fatalf("expected OK, got message %q", result.Message)
	}
}

func TestRunCancelledBeforeStartReportsCancelled(t *testing.T) {
	req := OptimizerRequest{
		Mode:           domain.ModeSiege,
		Account:        accountForTwoMonsters(),
		UnitIDsInOrder: []int64{1, 2},
		QualityProfile: "fast",
		IsCancelled:    func() bool { return true },
	}

	result := Run(req)
	if result.OK {
		t.Fatal("expected OK=false when cancelled before the first monster")
	}
}

func TestRunArenaRushNoDefenseUnitsFails(t *testing.T) {
	result := RunArenaRush(ArenaRushRequest{})
	if result.OK {
		t.Fatal("expected OK=false with no defense units selected")
	}
}

func TestRunArenaRushSolvesDefenseAndOffense(t *testing.T) {
	acc := accountForArenaRush()
	req := ArenaRushRequest{
		OptimizerRequest: OptimizerRequest{
			Mode:           domain.ModeArenaRush,
			Account:        acc,
			UnitIDsInOrder: []int64{1},
			QualityProfile: "fast",
		},
		DefenseUnitIDs: []int64{1},
		OffenseTeams: []ArenaRushOffenseTeam{
			{UnitIDs: []int64{2}},
		},
		DefenseCandidateCount: 1,
	}

	result := RunArenaRush(req)
	if !result.Defense.OK {
		t.Fatalf("expected defense to solve, got message %q", result.Defense.Message)
	}
	if len(result.Offenses) != 1 {
		t.Fatalf("expected 1 offense team result, got %d", len(result.Offenses))
	}
}

func TestResolveEngineFastProfileUsesGreedyDirectly(t *testing.T) {
	engine, nodeBudget, workers := resolveEngine("fast", 0, 0, 0)
	if engine == nil {
		t.Fatal("expected a non-nil engine")
	}
	if nodeBudget != 0 {
		t.Fatalf("expected zero-limit time budget to resolve to node budget 0, got %d", nodeBudget)
	}
	if workers < 1 {
		t.Fatalf("expected at least 1 worker, got %d", workers)
	}
}

func TestResolveEngineRequestedWorkersWin(t *testing.T) {
	_, _, workers := resolveEngine("balanced", 1.0, 7, 0)
	if workers != 7 {
		t.Fatalf("expected an explicit workers request to be honoured, got %d", workers)
	}
}

func TestNodeBudgetForScalesWithTimeLimitAndTier(t *testing.T) {
	tier := config.SolverWorkerTiers["balanced"]
	fast := nodeBudgetFor(1.0, config.SolverWorkerTiers["fast"])
	balanced := nodeBudgetFor(1.0, tier)
	if balanced <= fast {
		t.Fatalf("expected balanced's larger TimeLimitScale to produce a bigger budget, got balanced=%d fast=%d", balanced, fast)
	}
	if nodeBudgetFor(0, tier) != 0 {
		t.Fatal("expected a zero time limit to resolve to node budget 0")
	}
}

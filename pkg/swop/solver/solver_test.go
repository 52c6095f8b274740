package solver

import (
	"testing"

	"github.com/klauer/swop/internal/config"
	"github.com/klauer/swop/pkg/swop/domain"
	"github.com/klauer/swop/pkg/swop/pruner"
)

func testMonster() domain.Monster {
	return domain.Monster{
		UnitID:    1001,
		MasterID:  14110,
		Base:      domain.BaseStats{HP: 10000, ATK: 500, DEF: 400, SPD: 100},
		Archetype: domain.ArchetypeAttack,
	}
}

// runeFor builds a minimal slot rune: a flat main stat plus an SPD sub-roll,
// tagged with the given set.
func runeFor(id int64, slot int, set config.SetID, mainEffect config.EffectID, mainVal, spdSub int) domain.Rune {
	return domain.Rune{
		RuneID:       id,
		SlotNo:       slot,
		SetID:        set,
		Rank:         6,
		RuneClass:    5,
		UpgradeLevel: 15,
		MainEffect:   domain.EffectValue{EffectID: mainEffect, Value: mainVal},
		SubEffects: []domain.SubEffect{
			{EffectID: config.EffectSPD, BaseValue: spdSub},
		},
	}
}

func artifactFor(id int64, atype domain.ArtifactType, priEffect config.EffectID, val int) domain.Artifact {
	return domain.Artifact{
		ArtifactID: id,
		Type:       atype,
		Rank:       5,
		Level:      12,
		PriEffect:  domain.EffectValue{EffectID: priEffect, Value: val},
	}
}

func feasiblePool() pruner.Pool {
	pool := pruner.Pool{
		RunesBySlot:     map[int][]domain.Rune{},
		ArtifactsByType: map[int][]domain.Artifact{},
	}
	for slot := 1; slot <= 6; slot++ {
		main := config.EffectATKFlat
		if slot%2 == 0 {
			main = config.EffectATKPct
		}
		pool.RunesBySlot[slot] = []domain.Rune{
			runeFor(int64(slot*100+1), slot, config.SetViolent, main, 30, 3),
			runeFor(int64(slot*100+2), slot, config.SetViolent, main, 20, 2),
		}
	}
	pool.ArtifactsByType[1] = []domain.Artifact{
		artifactFor(9001, domain.ArtifactTypeAttribute, config.EffectATKPct, 15),
	}
	pool.ArtifactsByType[2] = []domain.Artifact{
		artifactFor(9002, domain.ArtifactTypeUnitType, config.EffectCritDmg, 20),
	}
	return pool
}

func simpleBuild() domain.Build {
	return domain.Build{
		ID:         1,
		Name:       "violent atk",
		Mode:       domain.ModeSiege,
		SetOptions: []domain.SetOption{{SetIDs: []config.SetID{config.SetViolent}}},
	}
}

func TestSolveFindsFeasibleAssignment(t *testing.T) {
	monster := testMonster()
	acc := domain.AccountData{}
	pool := feasiblePool()
	req := Request{
		Mode:       domain.ModeSiege,
		Archetype:  domain.ArchetypeAttack,
		EffVariant: 0,
	}
	result := Solve(monster.UnitID, monster, []domain.Build{simpleBuild()}, pool, acc, domain.ModeSiege, req)
	if !result.OK {
		t.Fatalf("expected feasible solve, got message: %s", result.Message)
	}
	if len(result.RunesBySlot) != 6 {
		t.Fatalf("expected 6 runes chosen, got %d", len(result.RunesBySlot))
	}
	if len(result.ArtifactsByType) != 2 {
		t.Fatalf("expected 2 artifacts chosen, got %d", len(result.ArtifactsByType))
	}
	if result.ChosenBuildID != 1 {
		t.Fatalf("expected build 1 chosen, got %d", result.ChosenBuildID)
	}
}

func TestSolveReportsEmptySlotDiagnostic(t *testing.T) {
	monster := testMonster()
	acc := domain.AccountData{}
	pool := feasiblePool()
	pool.RunesBySlot[3] = nil // slot 3 has no candidates at all

	build := simpleBuild()
	result := Solve(monster.UnitID, monster, []domain.Build{build}, pool, acc, domain.ModeSiege, Request{})
	if result.OK {
		t.Fatal("expected infeasible result")
	}
	if result.Message == "" {
		t.Fatal("expected a diagnostic message")
	}
}

func TestSolveReportsMainstatUnavailable(t *testing.T) {
	monster := testMonster()
	acc := domain.AccountData{}
	pool := feasiblePool()

	build := simpleBuild()
	build.Mainstats = map[int][]config.MainStatKey{
		2: {config.MainStatHPPct}, // slot 2 candidates are all ATK%, none match
	}
	result := Solve(monster.UnitID, monster, []domain.Build{build}, pool, acc, domain.ModeSiege, Request{})
	if result.OK {
		t.Fatal("expected infeasible result due to mainstat restriction")
	}
}

func TestSolveNoBuildsConfigured(t *testing.T) {
	monster := testMonster()
	acc := domain.AccountData{}
	pool := feasiblePool()
	result := Solve(monster.UnitID, monster, nil, pool, acc, domain.ModeSiege, Request{})
	if result.OK {
		t.Fatal("expected infeasible result when no builds are configured")
	}
}

func TestSolveSpeedFirstPrefersHigherSpeedWhenTied(t *testing.T) {
	monster := testMonster()
	acc := domain.AccountData{}
	pool := feasiblePool()
	// Bump slot 1's first candidate's SPD sub-roll well above the rest so
	// speed-first search should pick it for the speed phase.
	pool.RunesBySlot[1][0].SubEffects[0].BaseValue = 30

	build := simpleBuild()
	req := Request{Mode: domain.ModeSiege, Archetype: domain.ArchetypeAttack, SpeedFirst: true, SpeedSlack: 0}
	result := Solve(monster.UnitID, monster, []domain.Build{build}, pool, acc, domain.ModeSiege, req)
	if !result.OK {
		t.Fatalf("expected feasible solve, got message: %s", result.Message)
	}
	if result.RunesBySlot[1] != 101 {
		t.Fatalf("expected slot 1 to choose the highest-SPD candidate (rune 101), got %d", result.RunesBySlot[1])
	}
}

func TestSolvePrefersBaselineWhenWeighted(t *testing.T) {
	monster := testMonster()
	acc := domain.AccountData{}
	pool := feasiblePool()

	build := simpleBuild()
	req := Request{
		Mode:                domain.ModeSiege,
		Archetype:           domain.ArchetypeAttack,
		BaselineRunesBySlot: map[int]int64{1: 102}, // the lower-quality candidate in slot 1
		BaselineWeight:      config.DefaultBaselineRegressionGuardWeight,
	}
	result := Solve(monster.UnitID, monster, []domain.Build{build}, pool, acc, domain.ModeSiege, req)
	if !result.OK {
		t.Fatalf("expected feasible solve, got message: %s", result.Message)
	}
	if result.RunesBySlot[1] != 102 {
		t.Fatalf("expected baseline rune 102 retained in slot 1, got %d", result.RunesBySlot[1])
	}
}

func TestSolveIntangibleWildcardCoversSetOption(t *testing.T) {
	monster := testMonster()
	acc := domain.AccountData{}
	pool := feasiblePool()
	// Only slots 1-3 carry genuine Violent pieces (3 of the 4 required).
	// Slots 4 and 6 are reassigned to an unrelated set, and slot 5's
	// candidates are replaced with an Intangible rune that should cover
	// the single missing Violent piece.
	for _, slot := range []int{4, 6} {
		for i := range pool.RunesBySlot[slot] {
			pool.RunesBySlot[slot][i].SetID = config.SetRage
		}
	}
	pool.RunesBySlot[5][0] = runeFor(501, 5, config.SetIntangible, config.EffectATKPct, 30, 3)
	pool.RunesBySlot[5][1] = runeFor(502, 5, config.SetIntangible, config.EffectATKPct, 20, 2)

	build := simpleBuild()
	result := Solve(monster.UnitID, monster, []domain.Build{build}, pool, acc, domain.ModeSiege, Request{
		Mode: domain.ModeSiege, Archetype: domain.ArchetypeAttack,
	})
	if !result.OK {
		t.Fatalf("expected intangible wildcard to cover the missing violent piece, got message: %s", result.Message)
	}
}

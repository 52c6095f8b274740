package global

import (
	"testing"

	"github.com/klauer/swop/internal/config"
	"github.com/klauer/swop/pkg/swop/domain"
	"github.com/klauer/swop/pkg/swop/greedy"
)

func swiftRune(id int64, slot int, spd int) domain.Rune {
	return domain.Rune{
		RuneID:       id,
		SlotNo:       slot,
		SetID:        config.SetSwift,
		Rank:         6,
		RuneClass:    5,
		UpgradeLevel: 15,
		MainEffect:   domain.EffectValue{EffectID: config.EffectATKFlat, Value: 30},
		SubEffects: []domain.SubEffect{
			{EffectID: config.EffectSPD, BaseValue: spd},
		},
	}
}

func violentRune(id int64, slot int, spd int) domain.Rune {
	return domain.Rune{
		RuneID:       id,
		SlotNo:       slot,
		SetID:        config.SetViolent,
		Rank:         6,
		RuneClass:    5,
		UpgradeLevel: 15,
		MainEffect:   domain.EffectValue{EffectID: config.EffectATKFlat, Value: 30},
		SubEffects: []domain.SubEffect{
			{EffectID: config.EffectSPD, BaseValue: spd},
		},
	}
}

func testArtifact(id int64, atype domain.ArtifactType) domain.Artifact {
	return domain.Artifact{ArtifactID: id, Type: atype, Rank: 5, Level: 12,
		PriEffect: domain.EffectValue{EffectID: config.EffectATKPct, Value: 15}}
}

func swiftOpenerBuild() domain.Build {
	return domain.Build{
		ID:         1,
		Name:       "swift opener",
		Mode:       domain.ModeSiege,
		SetOptions: []domain.SetOption{{SetIDs: []config.SetID{config.SetSwift}}},
	}
}

func violentBuild() domain.Build {
	return domain.Build{
		ID:         2,
		Name:       "violent",
		Mode:       domain.ModeSiege,
		SetOptions: []domain.SetOption{{SetIDs: []config.SetID{config.SetViolent}}},
	}
}

func monster(id int64) domain.Monster {
	return domain.Monster{UnitID: id, Base: domain.BaseStats{HP: 10000, ATK: 500, DEF: 400, SPD: 100}, Archetype: domain.ArchetypeAttack}
}

func TestRunPromotesSwiftOpener(t *testing.T) {
	runes := map[int64]domain.Rune{}
	var id int64 = 1
	for slot := 1; slot <= 6; slot++ {
		runes[id] = swiftRune(id, slot, 5)
		id++
	}
	for slot := 1; slot <= 6; slot++ {
		runes[id] = violentRune(id, slot, 2)
		id++
	}
	artifacts := map[int64]domain.Artifact{
		901: testArtifact(901, domain.ArtifactTypeAttribute),
		902: testArtifact(902, domain.ArtifactTypeUnitType),
		903: testArtifact(903, domain.ArtifactTypeAttribute),
		904: testArtifact(904, domain.ArtifactTypeUnitType),
	}
	acc := domain.AccountData{Runes: runes, Artifacts: artifacts}

	req := greedy.Request{
		Mode:             domain.ModeSiege,
		Account:          acc,
		EnforceTurnOrder: true,
		Monsters: []greedy.MonsterSpec{
			{Monster: monster(1), Builds: []domain.Build{swiftOpenerBuild(), violentBuild()}, TeamID: 1, TurnOrder: 1},
			{Monster: monster(2), Builds: []domain.Build{violentBuild()}, TeamID: 1, TurnOrder: 2},
		},
	}

	result := Run(req)
	if result.UsedFallback {
		t.Fatalf("did not expect fallback to plain greedy, results: %+v", result.Best.Results)
	}
	r1 := result.Best.Results[1]
	if !r1.OK {
		t.Fatalf("expected opener to solve, got message: %s", r1.Message)
	}
	for _, rid := range r1.RunesBySlot {
		if runes[rid].SetID != config.SetSwift {
			t.Fatalf("expected opener to be assigned only swift runes, got rune %d with set %v", rid, runes[rid].SetID)
		}
	}
}

func TestRunFallsBackWhenNoSwiftOpeners(t *testing.T) {
	runes := map[int64]domain.Rune{}
	var id int64 = 1
	for slot := 1; slot <= 6; slot++ {
		runes[id] = violentRune(id, slot, 3)
		id++
	}
	artifacts := map[int64]domain.Artifact{
		901: testArtifact(901, domain.ArtifactTypeAttribute),
		902: testArtifact(902, domain.ArtifactTypeUnitType),
	}
	acc := domain.AccountData{Runes: runes, Artifacts: artifacts}

	req := greedy.Request{
		Mode:    domain.ModeSiege,
		Account: acc,
		Monsters: []greedy.MonsterSpec{
			{Monster: monster(1), Builds: []domain.Build{violentBuild()}},
		},
	}

	result := Run(req)
	if result.UsedFallback {
		t.Fatal("no swift openers exist, should run plain greedy without being marked a fallback")
	}
	if !result.Best.Results[1].OK {
		t.Fatalf("expected the single monster to solve, got message: %s", result.Best.Results[1].Message)
	}
}

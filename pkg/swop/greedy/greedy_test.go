package greedy

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
	return domain.AccountData{Runes: runes, Artifacts: artifacts}
}

func violentBuild() domain.Build {
	return domain.Build{
		ID:         1,
		Name:       "violent",
		Mode:       domain.ModeSiege,
		SetOptions: []domain.SetOption{{SetIDs: []config.SetID{config.SetViolent}}},
	}
}

func TestRunSolvesBothMonstersWithoutOverlap(t *testing.T) {
	acc := accountForTwoMonsters()
	req := Request{
		Mode:    domain.ModeSiege,
		Account: acc,
		Monsters: []MonsterSpec{
			{Monster: monsterWithID(1), Builds: []domain.Build{violentBuild()}},
			{Monster: monsterWithID(2), Builds: []domain.Build{violentBuild()}},
		},
	}

	result := Run(req)
	if len(result.Best.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(result.Best.Results))
	}
	r1 := result.Best.Results[1]
	r2 := result.Best.Results[2]
	if !r1.OK || !r2.OK {
		t.Fatalf("expected both monsters to solve, got r1.OK=%v (%s) r2.OK=%v (%s)", r1.OK, r1.Message, r2.OK, r2.Message)
	}
	for slot, rid := range r1.RunesBySlot {
		if r2.RunesBySlot[slot] == rid {
			t.Fatalf("expected no rune overlap in slot %d, both got %d", slot, rid)
		}
	}
}

func TestRunEnforcesSpeedCapByTurnOrder(t *testing.T) {
	acc := accountForTwoMonsters()
	// Give monster 1 (runes 1-6) a faster SPD sub-roll than monster 2.
	for id := int64(1); id <= 6; id++ {
		r := acc.Runes[id]
		r.SubEffects[0].BaseValue = 10
		acc.Runes[id] = r
	}
	req := Request{
		Mode:             domain.ModeSiege,
		Account:          acc,
		EnforceTurnOrder: true,
		Monsters: []MonsterSpec{
			{Monster: monsterWithID(1), Builds: []domain.Build{violentBuild()}, TeamID: 1, TurnOrder: 1},
			{Monster: monsterWithID(2), Builds: []domain.Build{violentBuild()}, TeamID: 1, TurnOrder: 2},
		},
	}

	result := Run(req)
	r1 := result.Best.Results[1]
	r2 := result.Best.Results[2]
	if !r1.OK || !r2.OK {
		t.Fatalf("expected both monsters to solve, r1.OK=%v (%s) r2.OK=%v (%s)", r1.OK, r1.Message, r2.OK, r2.Message)
	}
	if r1.FinalSpeed < r2.FinalSpeed+1 {
		t.Fatalf("expected turn-order invariant final_speed(A) >= final_speed(B)+1, got A=%d B=%d", r1.FinalSpeed, r2.FinalSpeed)
	}
}

func TestRunMultiPassStopsWithinPatience(t *testing.T) {
	acc := accountForTwoMonsters()
	req := Request{
		Mode:              domain.ModeSiege,
		Account:           acc,
		MultiPassEnabled:  true,
		MultiPassCount:    5,
		MultiPassStrategy: StrategyGreedyRefine,
		Patience:          2,
		Monsters: []MonsterSpec{
			{Monster: monsterWithID(1), Builds: []domain.Build{violentBuild()}},
			{Monster: monsterWithID(2), Builds: []domain.Build{violentBuild()}},
		},
	}

	result := Run(req)
	if result.PassesTried == 0 {
		t.Fatal("expected at least one pass to run")
	}
	if result.PassesTried > 5 {
		t.Fatalf("expected at most the requested 5 passes, ran %d", result.PassesTried)
	}
	if len(result.Best.Results) != 2 {
		t.Fatalf("expected 2 results in the winning pass, got %d", len(result.Best.Results))
	}
}

func TestRunReportsProgress(t *testing.T) {
	acc := accountForTwoMonsters()
	var calls [][2]int
	req := Request{
		Mode:    domain.ModeSiege,
		Account: acc,
		Monsters: []MonsterSpec{
			{Monster: monsterWithID(1), Builds: []domain.Build{violentBuild()}},
			{Monster: monsterWithID(2), Builds: []domain.Build{violentBuild()}},
		},
		Progress: func(done, total int) {
			calls = append(calls, [2]int{done, total})
		},
	}
	Run(req)
	if len(calls) != 2 {
		t.Fatalf("expected 2 progress callbacks, got %d", len(calls))
	}
	if calls[len(calls)-1][0] != 2 || calls[len(calls)-1][1] != 2 {
		t.Fatalf("expected final callback (2,2), got %v", calls[len(calls)-1])
	}
}

package arenarush

import (
	"testing"

	"github.com/klauer/swop/internal/config"
	"github.com/klauer/swop/pkg/swop/domain"
)

func monster(id int64) domain.Monster {
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

func violentBuild() domain.Build {
	return domain.Build{
		ID:         1,
		Name:       "violent",
		Mode:       domain.ModeSiege,
		SetOptions: []domain.SetOption{{SetIDs: []config.SetID{config.SetViolent}}},
	}
}

// threeMonsterAccount equips enough non-overlapping Violent runes and
// artifacts for three monsters: two on defence, a third swapped into
// offence alongside a shared defender.
func threeMonsterAccount() domain.AccountData {
	runes := map[int64]domain.Rune{}
	var id int64 = 1
	for m := 0; m < 3; m++ {
		for slot := 1; slot <= 6; slot++ {
			runes[id] = runeFor(id, slot, config.SetViolent, 3)
			id++
		}
	}
	artifacts := map[int64]domain.Artifact{}
	var aid int64 = 901
	for m := 0; m < 3; m++ {
		artifacts[aid] = artifactFor(aid, domain.ArtifactTypeAttribute)
		aid++
		artifacts[aid] = artifactFor(aid, domain.ArtifactTypeUnitType)
		aid++
	}
	return domain.AccountData{
		Monsters:  map[int64]domain.Monster{1: monster(1), 2: monster(2), 3: monster(3)},
		Runes:     runes,
		Artifacts: artifacts,
	}
}

func TestRunSolvesDefenseAndOffenseWithoutOverlap(t *testing.T) {
	acc := threeMonsterAccount()
	builds := map[int64][]domain.Build{
		1: {violentBuild()},
		2: {violentBuild()},
		3: {violentBuild()},
	}

	req := Request{
		Mode:             domain.ModeSiege,
		Account:          acc,
		DefenseUnitIDs:   []int64{1, 2},
		DefenseBuilds:    builds,
		DefenseTurnOrder: map[int64]int{1: 0, 2: 0}, // unconstrained: no speed coupling needed for this test
		OffenseTeams: []OffenseTeam{
			{UnitIDs: []int64{1, 3}, Builds: builds, UnitTurnOrder: map[int64]int{1: 0, 3: 0}},
		},
	}

	result := Run(req)
	if okCount(result.Defense.Best.Results) != 2 {
		t.Fatalf("expected both defense monsters solved, got %+v", result.Defense.Best.Results)
	}
	if len(result.Offenses) != 1 {
		t.Fatalf("expected 1 offense result, got %d", len(result.Offenses))
	}
	off := result.Offenses[0]
	if okCount(off.Optimization.Best.Results) != 2 {
		t.Fatalf("expected both offense monsters solved, got %+v", off.Optimization.Best.Results)
	}

	defenseRunes := result.Defense.Best.Results[1].RunesBySlot
	offenseRunes := off.Optimization.Best.Results[1].RunesBySlot
	for slot, rid := range defenseRunes {
		if offenseRunes[slot] != rid {
			t.Fatalf("shared monster 1's offense runes must match its defense runes: slot %d defense=%d offense=%d", slot, rid, offenseRunes[slot])
		}
	}
	if len(off.SharedUnitIDs) != 1 || off.SharedUnitIDs[0] != 1 {
		t.Fatalf("expected unit 1 reported shared, got %v", off.SharedUnitIDs)
	}
	if len(off.SwappedInUnitIDs) != 1 || off.SwappedInUnitIDs[0] != 3 {
		t.Fatalf("expected unit 3 reported swapped in, got %v", off.SwappedInUnitIDs)
	}

	defenseSet := map[int64]bool{}
	for _, rid := range result.Defense.Best.Results[2].RunesBySlot {
		defenseSet[rid] = true
	}
	for _, rid := range off.Optimization.Best.Results[3].RunesBySlot {
		if defenseSet[rid] {
			t.Fatalf("offense unit 3 must not reuse defense-only monster 2's runes, got overlapping rune %d", rid)
		}
	}
}

func TestRunNoDefenseUnitsReturnsNotOK(t *testing.T) {
	result := Run(Request{Mode: domain.ModeSiege, Account: domain.AccountData{}})
	if result.OK {
		t.Fatal("expected failure with no defense units selected")
	}
}

func TestRunDefenseCandidateSearchPicksACompleteCandidate(t *testing.T) {
	acc := threeMonsterAccount()
	builds := map[int64][]domain.Build{
		1: {violentBuild()},
		2: {violentBuild()},
	}
	req := Request{
		Mode:                  domain.ModeSiege,
		Account:               acc,
		DefenseUnitIDs:        []int64{1, 2},
		DefenseBuilds:         builds,
		DefenseTurnOrder:      map[int64]int{1: 0, 2: 0},
		DefenseCandidateCount: 3,
		Workers:               2,
	}
	result := Run(req)
	if okCount(result.Defense.Best.Results) != 2 {
		t.Fatalf("expected a fully-solved defense candidate, got %+v", result.Defense.Best.Results)
	}
}

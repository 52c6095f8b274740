package storage

import (
	"path/filepath"
	"testing"

	"github.com/klauer/swop/pkg/swop/domain"
)

func TestLoadSaveAccountDataRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "account.json")
	original := domain.AccountData{
		Monsters: map[int64]domain.Monster{
			1: {UnitID: 1, Base: domain.BaseStats{HP: 10000, SPD: 100}, Archetype: domain.ArchetypeAttack},
		},
		Runes: map[int64]domain.Rune{
			1: {RuneID: 1, SlotNo: 2, SetID: 1, MainEffect: domain.EffectValue{EffectID: 1, Value: 30}},
		},
		Artifacts:           map[int64]domain.Artifact{},
		Builds:              map[int64][]domain.Build{},
		ArenaDefenseUnitIDs: []int64{1},
		SkyTribeTotemLevel:  3,
	}

	if err := SaveAccountData(path, original); err != nil {
		t.Fatalf("SaveAccountData() error = %v", err)
	}

	loaded, err := LoadAccountData(path)
	if err != nil {
		t.Fatalf("LoadAccountData() error = %v", err)
	}

	if len(loaded.Monsters) != 1 || loaded.Monsters[1].Base.HP != 10000 {
		t.Fatalf("monster round trip mismatch: %+v", loaded.Monsters)
	}
	if len(loaded.Runes) != 1 || loaded.Runes[1].MainEffect.Value != 30 {
		t.Fatalf("rune round trip mismatch: %+v", loaded.Runes)
	}
	if loaded.SkyTribeTotemLevel != 3 {
		t.Fatalf("expected SkyTribeTotemLevel 3, got %d", loaded.SkyTribeTotemLevel)
	}
}

func TestLoadAccountDataMissingFile(t *testing.T) {
	if _, err := LoadAccountData(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected an error for a missing account file")
	}
}

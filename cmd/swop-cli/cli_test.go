package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/urfave/cli/v3"

	"github.com/klauer/swop/internal/config"
	"github.com/klauer/swop/internal/storage"
	"github.com/klauer/swop/pkg/swop/domain"
)

func testAccount() domain.AccountData {
	runes := map[int64]domain.Rune{}
	var id int64 = 1
	for monster := 0; monster < 2; monster++ {
		for slot := 1; slot <= 6; slot++ {
			runes[id] = domain.Rune{
				RuneID:       id,
				SlotNo:       slot,
				SetID:        config.SetViolent,
				Rank:         6,
				RuneClass:    5,
				UpgradeLevel: 15,
				MainEffect:   domain.EffectValue{EffectID: config.EffectATKFlat, Value: 30},
			}
			id++
		}
	}
	artifacts := map[int64]domain.Artifact{
		901: {ArtifactID: 901, Type: domain.ArtifactTypeAttribute, Rank: 5, Level: 12},
		902: {ArtifactID: 902, Type: domain.ArtifactTypeUnitType, Rank: 5, Level: 12},
		903: {ArtifactID: 903, Type: domain.ArtifactTypeAttribute, Rank: 5, Level: 12},
		904: {ArtifactID: 904, Type: domain.ArtifactTypeUnitType, Rank: 5, Level: 12},
	}
	build := domain.Build{
		ID:         1,
		Name:       "violent",
		Mode:       domain.ModeSiege,
		SetOptions: []domain.SetOption{{SetIDs: []config.SetID{config.SetViolent}}},
	}
	monsters := map[int64]domain.Monster{
		1: {UnitID: 1, Base: domain.BaseStats{HP: 10000, ATK: 500, DEF: 400, SPD: 100}, Archetype: domain.ArchetypeAttack},
		2: {UnitID: 2, Base: domain.BaseStats{HP: 10000, ATK: 500, DEF: 400, SPD: 100}, Archetype: domain.ArchetypeAttack},
	}
	return domain.AccountData{
		Monsters:  monsters,
		Runes:     runes,
		Artifacts: artifacts,
		Builds:    map[int64][]domain.Build{1: {build}, 2: {build}},
	}
}

func TestOptimizeCommandWritesResult(t *testing.T) {
	dir := t.TempDir()
	accountFile := filepath.Join(dir, "account.json")
	if err := storage.SaveAccountData(accountFile, testAccount()); err != nil {
		t.Fatalf("failed to save test account: %v", err)
	}
	outputFile := filepath.Join(dir, "result.json")

	app := &cli.Command{
		Name: "swop-cli",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "account-file", Value: accountFile},
			&cli.StringFlag{Name: "data-dir", Value: dir},
			&cli.BoolFlag{Name: "verbose"},
		},
		Commands: []*cli.Command{addAccountCommand(), addOptimizeCommand(), addArenaRushCommand()},
	}

	args := []string{"swop-cli", "optimize", "--unit-ids", "1,2", "--quality-profile", "fast", "--output", outputFile}
	if err := app.Run(context.Background(), args); err != nil {
		t.Fatalf("optimize command failed: %v", err)
	}

	if _, err := os.Stat(outputFile); err != nil {
		t.Fatalf("expected result file to exist: %v", err)
	}
}

func TestAccountCommandLoadsSnapshot(t *testing.T) {
	dir := t.TempDir()
	accountFile := filepath.Join(dir, "account.json")
	if err := storage.SaveAccountData(accountFile, testAccount()); err != nil {
		t.Fatalf("failed to save test account: %v", err)
	}

	app := &cli.Command{
		Name: "swop-cli",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "account-file", Value: accountFile},
			&cli.StringFlag{Name: "data-dir", Value: dir},
			&cli.BoolFlag{Name: "verbose"},
		},
		Commands: []*cli.Command{addAccountCommand(), addOptimizeCommand(), addArenaRushCommand()},
	}

	if err := app.Run(context.Background(), []string{"swop-cli", "account"}); err != nil {
		t.Fatalf("account command failed: %v", err)
	}
}

func TestOptimizeCommandRejectsMalformedUnitIDs(t *testing.T) {
	_, err := parseUnitIDs("1, not-a-number, 3")
	if err == nil {
		t.Fatal("expected an error for a non-numeric unit id")
	}
}

func TestParseUnitIDsSkipsBlankFields(t *testing.T) {
	ids, err := parseUnitIDs("1, 2,,3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []int64{1, 2, 3}
	if len(ids) != len(want) {
		t.Fatalf("expected %d ids, got %d", len(want), len(ids))
	}
	for i, id := range ids {
		if id != want[i] {
			t.Fatalf("expected ids %v, got %v", want, ids)
		}
	}
}

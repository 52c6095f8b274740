package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/klauer/swop/internal/storage"
	"github.com/klauer/swop/pkg/swop/domain"
	"github.com/klauer/swop/pkg/swop/request"
)

// addArenaRushCommand creates the Arena Rush coordinator command (spec §6.3).
// Offence teams are read from the account snapshot's own ArenaOffenseDecks;
// this command always coordinates every configured deck against one
// defence build.
func addArenaRushCommand() *cli.Command {
	return &cli.Command{
		Name:  "arena-rush",
		Usage: "coordinate one defence build against the account's offence decks",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "quality-profile",
				Value: "balanced",
				Usage: "fast, balanced, max_quality, gpu_search_fast, gpu_search_balanced, gpu_search_max",
			},
			&cli.Float64Flag{
				Name:  "time-limit-per-unit",
				Value: 2.0,
				Usage: "time budget per monster in seconds, translated into a solver node budget",
			},
			&cli.Float64Flag{
				Name:  "max-runtime",
				Value: 30.0,
				Usage: "overall wall-clock budget in seconds",
			},
			&cli.IntFlag{
				Name:  "defense-candidate-count",
				Value: 3,
				Usage: "number of defence candidates evaluated against the offence decks",
			},
			&cli.IntFlag{
				Name:  "rune-top-per-set",
				Value: 12,
				Usage: "candidate pruner's top-N runes kept per slot/set",
			},
			&cli.StringFlag{
				Name:  "output",
				Usage: "write the result document to this JSON file instead of stdout",
			},
		},
		Action: arenaRushCommand,
	}
}

func arenaRushCommand(ctx context.Context, cmd *cli.Command) error {
	account, err := storage.LoadAccountData(cmd.String("account-file"))
	if err != nil {
		return fmt.Errorf("failed to load account data: %w", err)
	}

	if len(account.ArenaDefenseUnitIDs) == 0 {
		return fmt.Errorf("account snapshot has no arena_defense_unit_ids configured")
	}

	offenseTeams := make([]request.ArenaRushOffenseTeam, 0, len(account.ArenaOffenseDecks))
	for _, deck := range account.ArenaOffenseDecks {
		offenseTeams = append(offenseTeams, request.ArenaRushOffenseTeam{UnitIDs: deck})
	}

	req := request.ArenaRushRequest{
		OptimizerRequest: request.OptimizerRequest{
			Mode:             domain.ModeArenaRush,
			Account:          account,
			UnitIDsInOrder:   account.ArenaDefenseUnitIDs,
			TimeLimitPerUnit: cmd.Float64("time-limit-per-unit"),
			RuneTopPerSet:    cmd.Int("rune-top-per-set"),
			QualityProfile:   cmd.String("quality-profile"),
			IsCancelled:      func() bool { return ctx.Err() != nil },
		},
		DefenseUnitIDs:        account.ArenaDefenseUnitIDs,
		OffenseTeams:          offenseTeams,
		DefenseCandidateCount: cmd.Int("defense-candidate-count"),
		MaxRuntimeS:           cmd.Float64("max-runtime"),
	}

	result := request.RunArenaRush(req)

	if output := cmd.String("output"); output != "" {
		if err := storage.WriteJSON(output, result); err != nil {
			return fmt.Errorf("failed to write result: %w", err)
		}
		printf("Result written to: %s\n", output)
		return nil
	}

	displayArenaRushResult(result)
	return nil
}

func displayArenaRushResult(result request.ArenaRushResult) {
	printf("OK: %v\n", result.OK)
	printf("Message: %s\n\n", result.Message)
	printf("Defence:\n")
	for _, r := range result.Defense.Results {
		status := "ok"
		if !r.OK {
			status = "FAILED: " + r.Message
		}
		printf("  unit %d: %s (speed %d)\n", r.UnitID, status, r.FinalSpeed)
	}
	for _, team := range result.Offenses {
		printf("\nOffence team %d (swapped in %v):\n", team.TeamIndex, team.SwappedInUnitIDs)
		printf("  opening penalty: %d\n", team.OpeningPenalty)
		for _, r := range team.Optimization.Results {
			status := "ok"
			if !r.OK {
				status = "FAILED: " + r.Message
			}
			printf("  unit %d: %s (speed %d)\n", r.UnitID, status, r.FinalSpeed)
		}
	}
}

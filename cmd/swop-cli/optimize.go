package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"
	"go.uber.org/ratelimit"

	"github.com/klauer/swop/internal/storage"
	"github.com/klauer/swop/pkg/swop/domain"
	"github.com/klauer/swop/pkg/swop/request"
)

// addOptimizeCommand creates the sequential optimise command (spec §6.1/§6.2).
func addOptimizeCommand() *cli.Command {
	return &cli.Command{
		Name:  "optimize",
		Usage: "run the sequential optimiser over a set of units",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "unit-ids",
				Aliases:  []string{"u"},
				Usage:    "comma-separated unit ids, in solve order",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "mode",
				Value: string(domain.ModeSiege),
				Usage: "game mode (siege, wgb, rta, arena_rush, team)",
			},
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
			&cli.IntFlag{
				Name:  "workers",
				Usage: "parallel candidate workers; 0 resolves from the quality profile",
			},
			&cli.IntFlag{
				Name:  "rune-top-per-set",
				Value: 12,
				Usage: "candidate pruner's top-N runes kept per slot/set",
			},
			&cli.IntFlag{
				Name:  "speed-slack",
				Usage: "speed slack budget for quality-tier search",
			},
			&cli.BoolFlag{
				Name:  "enforce-turn-order",
				Usage: "enforce unit_team_turn_order as a hard constraint",
			},
			&cli.StringFlag{
				Name:  "output",
				Usage: "write the result document to this JSON file instead of stdout",
			},
		},
		Action: optimizeCommand,
	}
}

func optimizeCommand(ctx context.Context, cmd *cli.Command) error {
	verbose := cmd.Bool("verbose")
	account, err := storage.LoadAccountData(cmd.String("account-file"))
	if err != nil {
		return fmt.Errorf("failed to load account data: %w", err)
	}

	unitIDs, err := parseUnitIDs(cmd.String("unit-ids"))
	if err != nil {
		return err
	}

	var bar *progressbar.ProgressBar
	if verbose {
		bar = progressbar.NewOptions(len(unitIDs),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionShowIts(),
			progressbar.OptionSetItsString("units"),
			progressbar.OptionOnCompletion(func() {
				fprintln(os.Stderr)
			}),
		)
	}
	limiter := ratelimit.New(5, ratelimit.Per(time.Second))

	req := request.OptimizerRequest{
		Mode:                 domain.Mode(cmd.String("mode")),
		Account:              account,
		UnitIDsInOrder:       unitIDs,
		TimeLimitPerUnit:     cmd.Float64("time-limit-per-unit"),
		Workers:              cmd.Int("workers"),
		RuneTopPerSet:        cmd.Int("rune-top-per-set"),
		QualityProfile:       cmd.String("quality-profile"),
		SpeedSlackForQuality: cmd.Int("speed-slack"),
		EnforceTurnOrder:     cmd.Bool("enforce-turn-order"),
		ProgressCallback: func(done, total int) {
			if bar == nil {
				return
			}
			limiter.Take()
			_ = bar.Set(done)
		},
		IsCancelled: func() bool { return ctx.Err() != nil },
	}

	result := request.Run(req)

	if output := cmd.String("output"); output != "" {
		if err := storage.WriteJSON(output, result); err != nil {
			return fmt.Errorf("failed to write result: %w", err)
		}
		printf("Result written to: %s\n", output)
		return nil
	}

	displayOptimizerResult(result)
	return nil
}

func displayOptimizerResult(result request.OptimizerResult) {
	printf("OK: %v\n", result.OK)
	printf("Message: %s\n\n", result.Message)
	for _, r := range result.Results {
		status := "ok"
		if !r.OK {
			status = "FAILED: " + r.Message
		}
		printf("unit %d: %s (build %q, speed %d)\n", r.UnitID, status, r.ChosenBuildName, r.FinalSpeed)
	}
}

func parseUnitIDs(raw string) ([]int64, error) {
	fields := strings.Split(raw, ",")
	out := make([]int64, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		id, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid unit id %q: %w", f, err)
		}
		out = append(out, id)
	}
	return out, nil
}

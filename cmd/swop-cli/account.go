package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/klauer/swop/internal/storage"
)

// addAccountCommand creates the account inspection command: it loads the
// same snapshot optimize/arena-rush read and prints a summary table,
// grounding account_file/data_dir before a longer run rather than
// discovering a bad path mid-solve.
func addAccountCommand() *cli.Command {
	return &cli.Command{
		Name:   "account",
		Usage:  "load the account snapshot and summarise its monsters, runes and artifacts",
		Action: accountCommand,
	}
}

func accountCommand(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("account-file")
	account, err := storage.LoadAccountData(path)
	if err != nil {
		return fmt.Errorf("failed to load account data: %w", err)
	}

	printf("Account file: %s\n", path)
	printf("Monsters: %d  Runes: %d  Artifacts: %d\n", len(account.Monsters), len(account.Runes), len(account.Artifacts))
	printf("Arena defense units: %d  Arena offense decks: %d\n\n", len(account.ArenaDefenseUnitIDs), len(account.ArenaOffenseDecks))

	unitIDs := make([]int64, 0, len(account.Monsters))
	for id := range account.Monsters {
		unitIDs = append(unitIDs, id)
	}
	sort.Slice(unitIDs, func(i, j int) bool { return unitIDs[i] < unitIDs[j] })

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fprintf(w, "unit id\tarchetype\tbase spd\tbuilds\n")
	for _, id := range unitIDs {
		m := account.Monsters[id]
		fprintf(w, "%d\t%s\t%d\t%d\n", id, m.Archetype, m.Base.SPD, len(account.Builds[id]))
	}
	w.Flush()

	return nil
}

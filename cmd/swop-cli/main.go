// Command swop-cli runs the rune/artifact optimiser against a persisted
// account snapshot from the command line.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	defaultDataDir := filepath.Join(homeDir, ".swop")

	cmd := &cli.Command{
		Name:    "swop-cli",
		Usage:   "rune and artifact optimiser",
		Version: fmt.Sprintf("%s (commit: %s)", version, commit),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "account-file",
				Aliases: []string{"a"},
				Value:   filepath.Join(defaultDataDir, "account.json"),
				Usage:   "account snapshot JSON file",
				Sources: cli.EnvVars("SWOP_ACCOUNT_FILE"),
			},
			&cli.StringFlag{
				Name:    "data-dir",
				Aliases: []string{"d"},
				Value:   defaultDataDir,
				Usage:   "directory for saved optimisations and output",
				Sources: cli.EnvVars("SWOP_DATA_DIR"),
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "enable verbose progress output",
			},
		},
		Commands: []*cli.Command{
			addAccountCommand(),
			addOptimizeCommand(),
			addArenaRushCommand(),
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

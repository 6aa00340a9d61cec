package cli

import (
	"context"
	"os"
	"slices"

	"github.com/urfave/cli/v3"
	"github.com/yiffos/pkgreport/pkg/utils/logging"
)

func cmdRun() *cli.Command {
	var (
		reporterCfg reporterConfig
		dryRun      bool
	)

	flags := slices.Concat(reporterCfg.Flags(), []cli.Flag{
		&cli.BoolFlag{
			Name:        "dry-run",
			Usage:       "Search tickets without creating them and print the report instead of sending it",
			Destination: &dryRun,
			Sources:     cli.EnvVars("PKGREPORT_DRY_RUN"),
		},
	})

	return &cli.Command{
		Name:    "run",
		Aliases: []string{"r"},
		Usage:   "Run the report once",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.From(ctx)

			reporter, err := reporterCfg.build(dryRun, os.Stdout)
			if err != nil {
				return err
			}

			result, err := reporter.Run(ctx)
			if err != nil {
				return err
			}

			logger.Info("Report finished",
				"run_id", result.RunID,
				"date", result.Date,
				"created", len(result.Created),
				"dry_run", dryRun,
			)
			return nil
		},
	}
}

package cli

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"slices"

	"github.com/joho/godotenv"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"github.com/yiffos/pkgreport/pkg/cli/config"
	"github.com/yiffos/pkgreport/pkg/domain/types"
	"github.com/yiffos/pkgreport/pkg/utils/logging"
)

// Run runs the CLI application
func Run(ctx context.Context, args []string) error {
	var (
		loggerCfg config.Logger
		sentryCfg config.Sentry
		logger    *slog.Logger
	)

	// Values from .env never override the real environment
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Default().Error("Failed to load .env", slog.Any("error", err))
		return goerr.Wrap(err, "failed to load .env")
	}

	app := &cli.Command{
		Name:           "pkgreport",
		Usage:          "Daily package update report and issue filer",
		Version:        types.Version,
		Flags:          slices.Concat(loggerCfg.Flags(), sentryCfg.Flags()),
		DefaultCommand: "run",
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			var err error
			logger, err = loggerCfg.Configure()
			if err != nil {
				return nil, err
			}
			if err := sentryCfg.Configure(); err != nil {
				return nil, err
			}

			slog.SetDefault(logger)
			return logging.With(ctx, logger), nil
		},
		Commands: []*cli.Command{
			cmdRun(),
			cmdSchedule(&sentryCfg),
			cmdCompare(),
		},
	}

	if err := app.Run(ctx, args); err != nil {
		if logger == nil {
			logger = slog.Default()
		}
		attrs := []any{slog.Any("error", err)}
		if id := sentryCfg.Capture(err); id != "" {
			attrs = append(attrs, slog.String("sentry_event_id", id))
		}
		logger.Error("CLI execution failed", attrs...)
		return err
	}

	return nil
}

package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/robfig/cron/v3"
	"github.com/urfave/cli/v3"
	"github.com/yiffos/pkgreport/pkg/cli/config"
	controller "github.com/yiffos/pkgreport/pkg/controller/http"
	"github.com/yiffos/pkgreport/pkg/domain/interfaces"
	"github.com/yiffos/pkgreport/pkg/utils/logging"
)

func cmdSchedule(sentryCfg *config.Sentry) *cli.Command {
	var (
		reporterCfg reporterConfig
		serverCfg   config.Server
	)

	return &cli.Command{
		Name:    "schedule",
		Aliases: []string{"s"},
		Usage:   "Run the report on a cron schedule and serve /health",
		Flags:   slices.Concat(reporterCfg.Flags(), serverCfg.Flags()),
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.From(ctx)

			reporter, err := reporterCfg.build(false, os.Stdout)
			if err != nil {
				return err
			}

			scheduler, err := newScheduler(ctx, serverCfg.Schedule, reporter, sentryCfg)
			if err != nil {
				return err
			}

			server, err := controller.NewServer(
				ctx,
				reporter,
				controller.WithAddr(serverCfg.Addr),
				controller.WithTriggerSecret(serverCfg.TriggerSecret),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			logger.Info("Starting pkgreport scheduler",
				slog.String("schedule", serverCfg.Schedule),
				slog.String("addr", serverCfg.Addr),
				slog.Bool("trigger", serverCfg.TriggerSecret != ""),
			)
			scheduler.Start()

			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("HTTP server error", slog.Any("error", err))
				}
			}()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			// Wait for a run that is still going
			<-scheduler.Stop().Done()

			logger.Info("Scheduler shutdown complete")
			return nil
		},
	}
}

// newScheduler registers one report run per tick of expr. Ticks that arrive
// while a run is going are skipped.
func newScheduler(ctx context.Context, expr string, reportUC interfaces.ReportUseCase, sentryCfg *config.Sentry) (*cron.Cron, error) {
	logger := logging.From(ctx)
	cronLog := &cronLogger{logger: logger}

	scheduler := cron.New(
		cron.WithLogger(cronLog),
		cron.WithChain(
			cron.Recover(cronLog),
			cron.SkipIfStillRunning(cronLog),
		),
	)

	if _, err := scheduler.AddFunc(expr, func() {
		if _, err := reportUC.Run(ctx); err != nil {
			logger.Error("Scheduled run failed",
				slog.Any("error", err),
				slog.String("sentry_event_id", sentryCfg.Capture(err)),
			)
		}
	}); err != nil {
		return nil, goerr.Wrap(err, "invalid schedule", goerr.V("schedule", expr))
	}

	return scheduler, nil
}

// cronLogger adapts slog to cron.Logger
type cronLogger struct {
	logger *slog.Logger
}

func (x *cronLogger) Info(msg string, keysAndValues ...any) {
	x.logger.Debug(msg, keysAndValues...)
}

func (x *cronLogger) Error(err error, msg string, keysAndValues ...any) {
	x.logger.Error(msg, append([]any{slog.Any("error", err)}, keysAndValues...)...)
}

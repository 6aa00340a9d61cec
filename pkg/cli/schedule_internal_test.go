package cli

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/yiffos/pkgreport/pkg/cli/config"
	"github.com/yiffos/pkgreport/pkg/domain/model"
	"github.com/yiffos/pkgreport/pkg/utils/logging"
)

type stubReportUseCase struct {
	err error
}

func (s *stubReportUseCase) Run(ctx context.Context) (*model.RunResult, error) {
	return nil, s.err
}

func (s *stubReportUseCase) LastRun() time.Time {
	return time.Time{}
}

func TestNewScheduler(t *testing.T) {
	ctx := context.Background()

	t.Run("valid expression", func(t *testing.T) {
		scheduler, err := newScheduler(ctx, "0 6 * * *", &stubReportUseCase{}, &config.Sentry{})
		gt.NoError(t, err)
		gt.A(t, scheduler.Entries()).Length(1)
	})

	t.Run("descriptor", func(t *testing.T) {
		_, err := newScheduler(ctx, "@daily", &stubReportUseCase{}, &config.Sentry{})
		gt.NoError(t, err)
	})

	t.Run("invalid expression", func(t *testing.T) {
		_, err := newScheduler(ctx, "every morning", &stubReportUseCase{}, &config.Sentry{})
		gt.Error(t, err)
	})
}

func TestScheduledRunLogsFailure(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	ctx := logging.With(context.Background(), logger)

	scheduler, err := newScheduler(ctx, "@every 1h", &stubReportUseCase{err: errors.New("listing failed")}, &config.Sentry{})
	gt.NoError(t, err)

	scheduler.Entries()[0].Job.Run()
	gt.S(t, buf.String()).Contains("Scheduled run failed")
	gt.S(t, buf.String()).Contains("listing failed")
}

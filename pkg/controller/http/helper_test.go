package http_test

import (
	"context"
	"time"

	"github.com/yiffos/pkgreport/pkg/domain/model"
)

type mockReportUseCase struct {
	runFunc func(ctx context.Context) (*model.RunResult, error)
	lastRun time.Time
	calls   int
}

func (m *mockReportUseCase) Run(ctx context.Context) (*model.RunResult, error) {
	m.calls++
	if m.runFunc != nil {
		return m.runFunc(ctx)
	}
	return &model.RunResult{RunID: "run-1", Date: "2026-10-17"}, nil
}

func (m *mockReportUseCase) LastRun() time.Time {
	return m.lastRun
}

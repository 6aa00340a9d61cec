package interfaces

import (
	"context"
	"errors"
	"time"

	"github.com/yiffos/pkgreport/pkg/domain/model"
)

// ErrRunInProgress is returned by ReportUseCase.Run while another run is still going
var ErrRunInProgress = errors.New("report run already in progress")

// ReportUseCase runs one reporting pass
type ReportUseCase interface {
	// Run lists, classifies and files tickets for tracked packages, then notifies
	Run(ctx context.Context) (*model.RunResult, error)

	// LastRun returns when the last run completed, or the zero time
	LastRun() time.Time
}

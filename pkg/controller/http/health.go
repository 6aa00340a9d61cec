package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/yiffos/pkgreport/pkg/domain/interfaces"
	"github.com/yiffos/pkgreport/pkg/domain/model"
	"github.com/yiffos/pkgreport/pkg/domain/types"
	"github.com/yiffos/pkgreport/pkg/utils/logging"
)

// handleHealth reports liveness and when the last run completed
func handleHealth(reportUC interfaces.ReportUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := &model.HealthStatus{
			Status:  "healthy",
			Service: "pkgreport",
			Version: types.Version,
		}
		if last := reportUC.LastRun(); !last.IsZero() {
			status.LastRun = last.UTC().Format(time.RFC3339)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(status); err != nil {
			logging.From(r.Context()).Error("Failed to encode health response", "error", err)
		}
	}
}

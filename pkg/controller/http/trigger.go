package http

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/yiffos/pkgreport/pkg/domain/interfaces"
	"github.com/yiffos/pkgreport/pkg/utils/logging"
)

// SignatureHeader carries "sha256=" followed by the hex HMAC-SHA256 of the body
const SignatureHeader = "X-Signature-256"

const maxTriggerBody = 1 << 20

// TriggerHandler runs a report on request
type TriggerHandler struct {
	secret   string
	reportUC interfaces.ReportUseCase
}

// TriggerResponse summarizes a run triggered over HTTP
type TriggerResponse struct {
	RunID         string   `json:"run_id"`
	Date          string   `json:"date"`
	Created       []string `json:"created"`
	NewIssues     []string `json:"new_issues"`
	TrackedIssues []string `json:"tracked_issues"`
	Anomalies     []string `json:"anomalies"`
}

// NewTriggerHandler creates a new TriggerHandler
func NewTriggerHandler(secret string, reportUC interfaces.ReportUseCase) *TriggerHandler {
	return &TriggerHandler{
		secret:   secret,
		reportUC: reportUC,
	}
}

// Handle verifies the request signature and runs a report synchronously.
// The run outlives the request. A run already in progress answers 409.
func (h *TriggerHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.From(ctx)

	body, err := io.ReadAll(io.LimitReader(r.Body, maxTriggerBody))
	if err != nil {
		logger.Error("Failed to read request body", "error", err)
		writeError(w, logger, goerr.Wrap(err, "failed to read request body"), http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if !h.verifySignature(body, r.Header.Get(SignatureHeader)) {
		logger.Warn("Invalid trigger signature")
		writeError(w, logger, goerr.New("invalid signature"), http.StatusUnauthorized)
		return
	}

	// Tickets filed before a client disconnect must not leave a half-finished run
	result, err := h.reportUC.Run(context.WithoutCancel(ctx))
	if errors.Is(err, interfaces.ErrRunInProgress) {
		logger.Info("Trigger rejected, run in progress")
		writeError(w, logger, err, http.StatusConflict)
		return
	}
	if err != nil {
		logger.Error("Triggered run failed", "error", err)
		writeError(w, logger, err, http.StatusInternalServerError)
		return
	}

	resp := TriggerResponse{
		RunID:         result.RunID,
		Date:          result.Date,
		Created:       []string{},
		NewIssues:     nonNil(result.Report.NewIssues),
		TrackedIssues: nonNil(result.Report.TrackedIssues),
		Anomalies:     nonNil(result.Report.Anomalies),
	}
	for _, issue := range result.Created {
		resp.Created = append(resp.Created, issue.Key)
	}

	writeJSON(w, logger, http.StatusOK, resp)
}

// verifySignature verifies the trigger signature
func (h *TriggerHandler) verifySignature(payload []byte, signature string) bool {
	if signature == "" {
		return false
	}
	signature = strings.TrimPrefix(signature, "sha256=")

	mac := hmac.New(sha256.New, []byte(h.secret))
	mac.Write(payload)
	expectedMAC := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(signature), []byte(expectedMAC))
}

func nonNil(lines []string) []string {
	if lines == nil {
		return []string{}
	}
	return lines
}

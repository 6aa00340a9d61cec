package jira

import (
	"context"

	"github.com/yiffos/pkgreport/pkg/domain/interfaces"
	"github.com/yiffos/pkgreport/pkg/domain/model"
	"github.com/yiffos/pkgreport/pkg/utils/logging"
)

type readOnly struct {
	interfaces.IssueTracker
}

// NewReadOnly wraps tracker so that searches go through and creations are only logged
func NewReadOnly(tracker interfaces.IssueTracker) interfaces.IssueTracker {
	return &readOnly{IssueTracker: tracker}
}

// CreateIssue logs req and returns a placeholder issue without calling the tracker
func (r *readOnly) CreateIssue(ctx context.Context, req *model.IssueRequest) (*model.Issue, error) {
	logging.From(ctx).Info("Dry run, not creating issue",
		"project", req.Project,
		"summary", req.Summary,
	)
	return &model.Issue{Key: req.Project + "-DRYRUN", Summary: req.Summary}, nil
}

package interfaces

import (
	"context"

	"github.com/yiffos/pkgreport/pkg/domain/model"
)

// IssueTracker defines the issue tracker operations used to file update tickets
type IssueTracker interface {
	// SearchIssues returns up to limit issues of project whose text matches text
	SearchIssues(ctx context.Context, project, text string, limit int) ([]*model.Issue, error)

	// CreateIssue files a new issue
	CreateIssue(ctx context.Context, req *model.IssueRequest) (*model.Issue, error)
}

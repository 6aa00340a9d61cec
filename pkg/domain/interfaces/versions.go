package interfaces

import (
	"context"

	"github.com/yiffos/pkgreport/pkg/domain/model"
)

// VersionService defines read operations of the package version tracking service
type VersionService interface {
	// ListProjects returns project identifiers matching query, in the order the service lists them
	ListProjects(ctx context.Context, query model.ProjectQuery) ([]string, error)

	// GetProject returns all per-repository entries of a project
	GetProject(ctx context.Context, id string) ([]model.RawVersionEntry, error)
}

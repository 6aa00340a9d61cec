package model

import "fmt"

// IssueRequest describes a ticket to file in the issue tracker
type IssueRequest struct {
	Project     string
	IssueType   string
	Summary     string
	Description string
}

// Issue is a ticket known to the issue tracker
type Issue struct {
	Key     string
	Summary string
}

// NewUpdateIssue builds the ticket asking to update a package to version
func NewUpdateIssue(policy Policy, name, version string) *IssueRequest {
	return &IssueRequest{
		Project:     policy.ProjectKey,
		IssueType:   policy.IssueType,
		Summary:     fmt.Sprintf("Update %s to v%s", name, version),
		Description: fmt.Sprintf("The package %s is outdated. Please update it to version %s.", name, version),
	}
}

// UpdateSearchText is the text an existing update ticket for name and version must contain
func UpdateSearchText(name, version string) string {
	return name + " " + version
}

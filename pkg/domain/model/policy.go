package model

import "github.com/m-mizutani/goerr/v2"

// Policy holds the naming decisions of the distribution being tracked
type Policy struct {
	Product    string `toml:"product"`     // name used in the report and mail subject
	RepoFamily string `toml:"repo_family"` // version service repository prefix
	Toolchain  string `toml:"toolchain"`   // tracked toolchain tag
	ProjectKey string `toml:"project_key"` // issue tracker project
	IssueType  string `toml:"issue_type"`
}

// DefaultPolicy returns the policy used when nothing is configured
func DefaultPolicy() Policy {
	return Policy{
		Product:    "yiffOS",
		RepoFamily: "yiffos",
		Toolchain:  "knot",
		ProjectKey: "PAC",
		IssueType:  "Improvement",
	}
}

// Repo returns the version service repository name of the tracked toolchain
func (p Policy) Repo() string {
	return p.RepoFamily + "_" + p.Toolchain
}

// Validate checks that no field is empty
func (p Policy) Validate() error {
	fields := map[string]string{
		"product":     p.Product,
		"repo_family": p.RepoFamily,
		"toolchain":   p.Toolchain,
		"project_key": p.ProjectKey,
		"issue_type":  p.IssueType,
	}
	for name, value := range fields {
		if value == "" {
			return goerr.New("policy field must not be empty", goerr.V("field", name))
		}
	}
	return nil
}

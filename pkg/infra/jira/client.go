package jira

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	jira "github.com/andygrunwald/go-jira"
	"github.com/m-mizutani/goerr/v2"
	"github.com/yiffos/pkgreport/pkg/domain/interfaces"
	"github.com/yiffos/pkgreport/pkg/domain/model"
)

// DefaultBaseURL is the Jira Cloud site tickets are filed in
const DefaultBaseURL = "https://yiffos.atlassian.net/"

type client struct {
	jira *jira.Client
}

// NewClient creates a Jira client authenticated with an account email and API token
func NewClient(baseURL, email, token string, timeout time.Duration) (interfaces.IssueTracker, error) {
	tp := jira.BasicAuthTransport{
		Username: email,
		Password: token,
	}
	httpClient := tp.Client()
	httpClient.Timeout = timeout

	return newClient(httpClient, baseURL)
}

func newClient(httpClient *http.Client, baseURL string) (*client, error) {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	jc, err := jira.NewClient(httpClient, baseURL)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Jira client", goerr.V("url", baseURL))
	}

	return &client{jira: jc}, nil
}

// searchPath is the JQL search endpoint. go-jira's Issue.Search targets
// rest/api/2/search, which Jira Cloud no longer serves.
const searchPath = "rest/api/2/search/jql"

type searchResult struct {
	Issues []jira.Issue `json:"issues"`
}

// SearchIssues runs a JQL full text search in project
func (c *client) SearchIssues(ctx context.Context, project, text string, limit int) ([]*model.Issue, error) {
	jql := fmt.Sprintf(`project = %s AND text ~ "%s"`, project, escapeJQL(text))

	query := url.Values{
		"jql":        {jql},
		"maxResults": {strconv.Itoa(limit)},
		"fields":     {"summary"},
	}
	req, err := c.jira.NewRequestWithContext(ctx, http.MethodGet, searchPath+"?"+query.Encode(), nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build Jira search request", goerr.V("jql", jql))
	}

	var result searchResult
	resp, err := c.jira.Do(req, &result)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to search Jira issues",
			goerr.V("jql", jql),
			goerr.V("status", statusCode(resp)),
		)
	}

	issues := make([]*model.Issue, 0, len(result.Issues))
	for _, issue := range result.Issues {
		out := &model.Issue{Key: issue.Key}
		if issue.Fields != nil {
			out.Summary = issue.Fields.Summary
		}
		issues = append(issues, out)
	}

	return issues, nil
}

// CreateIssue files req as a new Jira issue
func (c *client) CreateIssue(ctx context.Context, req *model.IssueRequest) (*model.Issue, error) {
	created, resp, err := c.jira.Issue.CreateWithContext(ctx, &jira.Issue{
		Fields: &jira.IssueFields{
			Project:     jira.Project{Key: req.Project},
			Type:        jira.IssueType{Name: req.IssueType},
			Summary:     req.Summary,
			Description: req.Description,
		},
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Jira issue",
			goerr.V("project", req.Project),
			goerr.V("summary", req.Summary),
			goerr.V("status", statusCode(resp)),
		)
	}

	return &model.Issue{Key: created.Key, Summary: req.Summary}, nil
}

// escapeJQL escapes text for use inside a double quoted JQL string
func escapeJQL(text string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(text)
}

func statusCode(resp *jira.Response) int {
	if resp == nil || resp.Response == nil {
		return 0
	}
	return resp.StatusCode
}

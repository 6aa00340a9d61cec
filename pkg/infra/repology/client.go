package repology

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/iancoleman/orderedmap"
	"github.com/m-mizutani/goerr/v2"
	"github.com/yiffos/pkgreport/pkg/domain/interfaces"
	"github.com/yiffos/pkgreport/pkg/domain/model"
	"github.com/yiffos/pkgreport/pkg/domain/types"
)

// DefaultBaseURL is the public Repology API endpoint
const DefaultBaseURL = "https://repology.org/api/v1/"

type client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

// Option is a functional option for the Repology client
type Option func(*client)

// WithHTTPClient replaces the HTTP client used for requests
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *client) {
		c.httpClient = httpClient
	}
}

// WithTimeout sets the timeout of each request
func WithTimeout(timeout time.Duration) Option {
	return func(c *client) {
		c.httpClient = &http.Client{Timeout: timeout}
	}
}

// NewClient creates a Repology API client rooted at baseURL
func NewClient(baseURL string, opts ...Option) (interfaces.VersionService, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid Repology base URL", goerr.V("url", baseURL))
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, goerr.New("Repology base URL must be absolute", goerr.V("url", baseURL))
	}

	c := &client{
		baseURL:    u,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// ListProjects lists project identifiers present in query.InRepo
func (c *client) ListProjects(ctx context.Context, query model.ProjectQuery) ([]string, error) {
	u := c.baseURL.JoinPath("projects/")
	u.RawQuery = projectsQuery(query)

	body, err := c.get(ctx, u)
	if err != nil {
		return nil, err
	}

	// keys are project identifiers; the object order is the listing order
	projects := orderedmap.New()
	if err := json.Unmarshal(body, projects); err != nil {
		return nil, goerr.Wrap(err, "failed to decode project listing", goerr.V("url", u.String()))
	}

	return projects.Keys(), nil
}

// GetProject returns the per-repository entries of project id
func (c *client) GetProject(ctx context.Context, id string) ([]model.RawVersionEntry, error) {
	u := c.baseURL.JoinPath("project", id)

	body, err := c.get(ctx, u)
	if err != nil {
		return nil, err
	}

	var entries []model.RawVersionEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, goerr.Wrap(err, "failed to decode project", goerr.V("project", id))
	}

	return entries, nil
}

func (c *client) get(ctx context.Context, u *url.URL) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create request", goerr.V("url", u.String()))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", types.UserAgent())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to call Repology", goerr.V("url", u.String()))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read Repology response", goerr.V("url", u.String()))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, goerr.New("unexpected status code from Repology",
			goerr.V("url", u.String()),
			goerr.V("status", resp.StatusCode),
			goerr.V("body", truncate(string(body), 256)),
		)
	}

	return body, nil
}

// projectsQuery keeps the parameter order of the Repology web form
func projectsQuery(query model.ProjectQuery) string {
	params := []string{
		"search=",
		"maintainer=",
		"category=",
		"inrepo=" + url.QueryEscape(query.InRepo),
		"notinrepo=",
		"repos=",
		"families=",
		"repos_newest=",
		"families_newest=",
	}
	if query.OutdatedOnly {
		params = append(params, "outdated=on")
	}
	return strings.Join(params, "&")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "...(truncated)"
}

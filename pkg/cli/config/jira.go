package config

import (
	"time"

	"github.com/urfave/cli/v3"
	"github.com/yiffos/pkgreport/pkg/domain/interfaces"
	"github.com/yiffos/pkgreport/pkg/infra/jira"
)

// Jira holds issue tracker configuration
type Jira struct {
	URL   string
	Email string
	Token string `masq:"secret"`
}

// Flags returns CLI flags for Jira configuration
func (c *Jira) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "jira-url",
			Usage:       "Jira base URL",
			Value:       jira.DefaultBaseURL,
			Destination: &c.URL,
			Sources:     cli.EnvVars("JIRA_URL"),
		},
		&cli.StringFlag{
			Name:        "jira-email",
			Usage:       "Jira account email",
			Required:    true,
			Destination: &c.Email,
			Sources:     cli.EnvVars("JIRA_EMAIL"),
		},
		&cli.StringFlag{
			Name:        "jira-token",
			Usage:       "Jira API token",
			Required:    true,
			Destination: &c.Token,
			Sources:     cli.EnvVars("JIRA_TOKEN"),
		},
	}
}

// NewTracker creates the issue tracker client. A read-only tracker never
// creates tickets.
func (c *Jira) NewTracker(timeout time.Duration, readOnly bool) (interfaces.IssueTracker, error) {
	tracker, err := jira.NewClient(c.URL, c.Email, c.Token, timeout)
	if err != nil {
		return nil, err
	}
	if readOnly {
		return jira.NewReadOnly(tracker), nil
	}
	return tracker, nil
}

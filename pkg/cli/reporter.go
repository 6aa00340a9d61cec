package cli

import (
	"io"
	"slices"

	"github.com/urfave/cli/v3"
	"github.com/yiffos/pkgreport/pkg/cli/config"
	"github.com/yiffos/pkgreport/pkg/infra/stdout"
	"github.com/yiffos/pkgreport/pkg/usecase"
)

// reporterConfig gathers everything needed to build a usecase.Reporter
type reporterConfig struct {
	repology config.Repology
	jira     config.Jira
	mail     config.Mail
	slack    config.Slack
	policy   config.Policy
}

func (c *reporterConfig) Flags() []cli.Flag {
	return slices.Concat(
		c.repology.Flags(),
		c.jira.Flags(),
		c.mail.Flags(),
		c.slack.Flags(),
		c.policy.Flags(),
	)
}

// build wires the Reporter. A dry run never creates tickets and writes the
// report to w instead of mailing it.
func (c *reporterConfig) build(dryRun bool, w io.Writer) (*usecase.Reporter, error) {
	policy, err := c.policy.Load()
	if err != nil {
		return nil, err
	}

	versions, err := c.repology.NewClient()
	if err != nil {
		return nil, err
	}

	tracker, err := c.jira.NewTracker(c.repology.Timeout, dryRun)
	if err != nil {
		return nil, err
	}

	opts := []usecase.ReporterOption{usecase.WithPolicy(policy)}
	if dryRun {
		opts = append(opts, usecase.WithNotifier(stdout.New(w)))
		return usecase.NewReporter(versions, tracker, opts...), nil
	}

	sender, err := c.mail.NewNotifier(c.repology.Timeout)
	if err != nil {
		return nil, err
	}
	opts = append(opts, usecase.WithNotifier(sender))

	if c.slack.Enabled() {
		opts = append(opts, usecase.WithNotifier(c.slack.NewNotifier(c.repology.Timeout)))
	}

	return usecase.NewReporter(versions, tracker, opts...), nil
}

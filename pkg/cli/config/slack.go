package config

import (
	"time"

	"github.com/urfave/cli/v3"
	"github.com/yiffos/pkgreport/pkg/infra/slack"
)

// Slack holds optional chat notification configuration
type Slack struct {
	WebhookURL string `masq:"secret"`
}

// Flags returns CLI flags for Slack configuration
func (c *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-webhook-url",
			Usage:       "Slack incoming webhook URL, the report is also posted there when set",
			Destination: &c.WebhookURL,
			Sources:     cli.EnvVars("SLACK_WEBHOOK_URL"),
		},
	}
}

// Enabled reports whether a webhook is configured
func (c *Slack) Enabled() bool {
	return c.WebhookURL != ""
}

// NewNotifier creates the Slack notifier
func (c *Slack) NewNotifier(timeout time.Duration) *slack.Webhook {
	return slack.NewWebhook(c.WebhookURL, timeout)
}

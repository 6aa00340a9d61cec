package slack

import (
	"context"
	"net/http"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"
	"github.com/yiffos/pkgreport/pkg/domain/model"
)

// Webhook posts notifications to a Slack incoming webhook
type Webhook struct {
	url        string
	httpClient *http.Client
}

// NewWebhook creates a notifier posting to url
func NewWebhook(url string, timeout time.Duration) *Webhook {
	return &Webhook{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Notify posts the subject in bold followed by the report as a code block
func (w *Webhook) Notify(ctx context.Context, n *model.Notification) error {
	msg := &slack.WebhookMessage{
		Text: "*" + n.Subject + "*\n```\n" + n.Body + "```",
	}

	if err := slack.PostWebhookCustomHTTPContext(ctx, w.url, w.httpClient, msg); err != nil {
		return goerr.Wrap(err, "failed to post Slack webhook")
	}
	return nil
}

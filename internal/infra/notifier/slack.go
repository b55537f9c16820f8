package notifier

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"climate-dashboard/internal/domain/entity"
	"climate-dashboard/internal/utils/text"
)

// SlackConfig contains configuration for Slack webhook notifications.
type SlackConfig struct {
	// Enabled indicates whether Slack notifications are enabled
	Enabled bool

	// WebhookURL is the Slack Incoming Webhook URL (includes authentication token)
	WebhookURL string

	// Timeout is the HTTP request timeout for Slack API calls
	Timeout time.Duration
}

// SlackNotifier posts update announcements via a Slack Incoming Webhook.
type SlackNotifier struct {
	webhook *webhook
}

// NewSlackNotifier creates a SlackNotifier limited to 1 request/second,
// Slack's documented webhook limit.
func NewSlackNotifier(config SlackConfig) *SlackNotifier {
	return &SlackNotifier{
		webhook: newWebhook("slack", config.WebhookURL, config.Timeout, rate.NewLimiter(rate.Every(time.Second), 1)),
	}
}

// SlackWebhookPayload is the Block Kit message body.
type SlackWebhookPayload struct {
	Text   string       `json:"text"`
	Blocks []SlackBlock `json:"blocks"`
}

// SlackBlock represents a Slack Block Kit block.
type SlackBlock struct {
	Type     string            `json:"type"`
	Text     *SlackTextObject  `json:"text,omitempty"`
	Elements []SlackTextObject `json:"elements,omitempty"`
}

// SlackTextObject represents a text object in Slack Block Kit.
type SlackTextObject struct {
	Type string `json:"type"` // "mrkdwn" or "plain_text"
	Text string `json:"text"`
}

const (
	maxSectionTextLength = 3000
	maxFallbackLength    = 150
	slackTruncation      = "..."
)

func buildSlackPayload(company entity.Company, u entity.ManualUpdate) SlackWebhookPayload {
	fallback := text.Truncate(fmt.Sprintf("[%s] %s: %s", company.Name, u.Category, u.Title), maxFallbackLength, slackTruncation)

	section := fmt.Sprintf("*%s* · %s\n*%s*\n\n%s", company.Name, u.Category, u.Title, u.Description)
	section = text.Truncate(section, maxSectionTextLength, slackTruncation)

	footer := fmt.Sprintf("%s • %s", entity.SourceLabelManual, u.Date)
	if company.Group != "" {
		footer = fmt.Sprintf("%s • %s", company.Group, footer)
	}

	return SlackWebhookPayload{
		Text: fallback,
		Blocks: []SlackBlock{
			{Type: "section", Text: &SlackTextObject{Type: "mrkdwn", Text: section}},
			{Type: "context", Elements: []SlackTextObject{{Type: "mrkdwn", Text: footer}}},
		},
	}
}

// NotifyUpdate implements Notifier.
func (s *SlackNotifier) NotifyUpdate(ctx context.Context, company entity.Company, u entity.ManualUpdate) error {
	return s.webhook.deliver(ctx, buildSlackPayload(company, u))
}

package notifier

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"climate-dashboard/internal/domain/entity"
	"climate-dashboard/internal/utils/text"
)

// DiscordConfig contains configuration for Discord webhook notifications.
type DiscordConfig struct {
	// Enabled indicates whether Discord notifications are enabled
	Enabled bool

	// WebhookURL is the Discord webhook URL (includes authentication token)
	WebhookURL string

	// Timeout is the HTTP request timeout for Discord API calls
	Timeout time.Duration
}

// DiscordNotifier posts update announcements via a Discord webhook.
type DiscordNotifier struct {
	webhook *webhook
}

// NewDiscordNotifier creates a DiscordNotifier limited to 0.5 requests/second
// with a burst of 3 (Discord allows 30 webhook calls per minute).
func NewDiscordNotifier(config DiscordConfig) *DiscordNotifier {
	return &DiscordNotifier{
		webhook: newWebhook("discord", config.WebhookURL, config.Timeout, rate.NewLimiter(rate.Every(2*time.Second), 3)),
	}
}

// DiscordWebhookPayload represents the JSON payload sent to Discord webhook.
type DiscordWebhookPayload struct {
	Embeds []DiscordEmbed `json:"embeds"`
}

// DiscordEmbed represents a Discord embed message.
type DiscordEmbed struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Color       int                 `json:"color"`
	Fields      []DiscordEmbedField `json:"fields,omitempty"`
	Footer      DiscordEmbedFooter  `json:"footer"`
}

// DiscordEmbedField is one name/value row of an embed.
type DiscordEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

// DiscordEmbedFooter represents the footer of a Discord embed.
type DiscordEmbedFooter struct {
	Text string `json:"text"`
}

const (
	maxTitleLength       = 256
	maxDescriptionLength = 4096
	discordTruncation    = "..."

	// green (#2E8B57)
	discordGreenColor = 3050327
)

func buildDiscordPayload(company entity.Company, u entity.ManualUpdate) DiscordWebhookPayload {
	fields := []DiscordEmbedField{
		{Name: "Type", Value: string(u.Category), Inline: true},
		{Name: "Date", Value: u.Date, Inline: true},
	}
	if company.Group != "" {
		fields = append(fields, DiscordEmbedField{Name: "Group", Value: company.Group, Inline: true})
	}

	return DiscordWebhookPayload{
		Embeds: []DiscordEmbed{{
			Title:       text.Truncate(company.Name+": "+u.Title, maxTitleLength, discordTruncation),
			Description: text.Truncate(u.Description, maxDescriptionLength, discordTruncation),
			Color:       discordGreenColor,
			Fields:      fields,
			Footer:      DiscordEmbedFooter{Text: entity.SourceLabelManual},
		}},
	}
}

// NotifyUpdate implements Notifier.
func (d *DiscordNotifier) NotifyUpdate(ctx context.Context, company entity.Company, u entity.ManualUpdate) error {
	return d.webhook.deliver(ctx, buildDiscordPayload(company, u))
}

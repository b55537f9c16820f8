// Package notify dispatches manual update announcements to every enabled
// notification channel without blocking the submitter.
package notify

import (
	"context"

	"climate-dashboard/internal/domain/entity"
	"climate-dashboard/internal/infra/notifier"
)

// Channel represents a notification delivery channel (Slack, Discord).
// Implementations must be safe for concurrent use and respect ctx.
type Channel interface {
	// Name returns the channel identifier used in logs and metrics.
	Name() string

	// IsEnabled reports whether the channel should receive notifications.
	IsEnabled() bool

	// Send delivers one announcement.
	Send(ctx context.Context, company entity.Company, u entity.ManualUpdate) error
}

// webhookChannel adapts an infra notifier to Channel.
type webhookChannel struct {
	name     string
	notifier notifier.Notifier
	enabled  bool
}

// NewSlackChannel returns the Slack channel. A disabled config gets a no-op notifier.
func NewSlackChannel(config notifier.SlackConfig) Channel {
	var n notifier.Notifier = notifier.NewNoOpNotifier()
	if config.Enabled {
		n = notifier.NewSlackNotifier(config)
	}
	return &webhookChannel{name: "slack", notifier: n, enabled: config.Enabled}
}

// NewDiscordChannel returns the Discord channel. A disabled config gets a no-op notifier.
func NewDiscordChannel(config notifier.DiscordConfig) Channel {
	var n notifier.Notifier = notifier.NewNoOpNotifier()
	if config.Enabled {
		n = notifier.NewDiscordNotifier(config)
	}
	return &webhookChannel{name: "discord", notifier: n, enabled: config.Enabled}
}

func (c *webhookChannel) Name() string { return c.name }

func (c *webhookChannel) IsEnabled() bool { return c.enabled }

func (c *webhookChannel) Send(ctx context.Context, company entity.Company, u entity.ManualUpdate) error {
	if !c.enabled {
		return ErrChannelDisabled
	}
	if u.Company == "" || u.Title == "" {
		return ErrInvalidUpdate
	}
	return c.notifier.NotifyUpdate(ctx, company, u)
}

// Package notifier posts manual update announcements to chat webhooks.
//
// Slack and Discord are supported. Each notifier rate-limits its own webhook,
// retries transient failures once and never logs the webhook URL.
package notifier

import (
	"context"

	"climate-dashboard/internal/domain/entity"
)

// Notifier sends an announcement for a stored manual update.
type Notifier interface {
	NotifyUpdate(ctx context.Context, company entity.Company, u entity.ManualUpdate) error
}

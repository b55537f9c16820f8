package notifier

import (
	"context"

	"climate-dashboard/internal/domain/entity"
)

// NoOpNotifier is used when a channel is disabled (Null Object pattern).
type NoOpNotifier struct{}

// NewNoOpNotifier creates a new NoOpNotifier instance.
func NewNoOpNotifier() *NoOpNotifier {
	return &NoOpNotifier{}
}

// NotifyUpdate does nothing and returns nil immediately.
func (n *NoOpNotifier) NotifyUpdate(context.Context, entity.Company, entity.ManualUpdate) error {
	return nil
}

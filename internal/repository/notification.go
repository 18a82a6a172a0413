package repository

import (
	"context"

	"hail/internal/domain"
)

// NotificationRepository is the fire-and-forget notification sink. Delivery
// to devices is a collaborator concern; the core only records the message.
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
}

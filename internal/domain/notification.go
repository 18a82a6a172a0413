package domain

import "time"

// NotificationType represents the type of notification.
type NotificationType string

const (
	NotificationRideRequested  NotificationType = "RIDE_REQUESTED"
	NotificationDriverAssigned NotificationType = "DRIVER_ASSIGNED"
	NotificationStatusChanged  NotificationType = "STATUS_CHANGED"
	NotificationRideCompleted  NotificationType = "RIDE_COMPLETED"
	NotificationRideCancelled  NotificationType = "RIDE_CANCELLED"
)

// Notification is a fire-and-forget message to a passenger or driver.
// Delivery mechanics live outside the core; the sink only records it.
type Notification struct {
	ID          string
	RecipientID string
	RideID      string
	Type        NotificationType
	Title       string
	Message     string
	CreatedAt   time.Time
}

package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"hail/internal/domain"
	"hail/internal/repository"
)

// statusMessages maps ride statuses to the passenger-facing message sent when
// a ride enters that status. Statuses without an entry emit no notification.
var statusMessages = map[domain.RideStatus]string{
	domain.RideStatusAccepted:   "A driver has been assigned to your ride",
	domain.RideStatusInProgress: "Your ride has started. Enjoy the trip!",
	domain.RideStatusCompleted:  "Your ride is complete. Please rate your driver",
	domain.RideStatusCancelled:  "Your ride has been cancelled",
}

// NotificationService records fire-and-forget notifications. Push/SMS/email
// delivery happens outside the core; failures here never fail the triggering
// transition.
type NotificationService struct {
	sink repository.NotificationRepository
}

// NewNotificationService creates a new NotificationService. sink may be nil,
// in which case notifications are only logged.
func NewNotificationService(sink repository.NotificationRepository) *NotificationService {
	return &NotificationService{sink: sink}
}

// NotifyRideRequested tells the passenger their booking was created.
func (s *NotificationService) NotifyRideRequested(ctx context.Context, ride *domain.Ride) {
	s.send(ctx, domain.Notification{
		RecipientID: passengerRecipient(ride),
		RideID:      ride.ID,
		Type:        domain.NotificationRideRequested,
		Title:       "Ride Requested",
		Message:     fmt.Sprintf("Looking for a driver near %s", ride.PickupAddress),
	})
}

// NotifyStatusChanged sends the passenger the message mapped to the ride's
// new status. Unmapped statuses are a no-op.
func (s *NotificationService) NotifyStatusChanged(ctx context.Context, ride *domain.Ride) {
	msg, ok := statusMessages[ride.Status]
	if !ok {
		return
	}

	typ := domain.NotificationStatusChanged
	title := "Ride Update"
	switch ride.Status {
	case domain.RideStatusAccepted:
		typ = domain.NotificationDriverAssigned
		title = "Driver Assigned"
	case domain.RideStatusCompleted:
		typ = domain.NotificationRideCompleted
		title = "Ride Completed"
	case domain.RideStatusCancelled:
		typ = domain.NotificationRideCancelled
		title = "Ride Cancelled"
	}

	s.send(ctx, domain.Notification{
		RecipientID: passengerRecipient(ride),
		RideID:      ride.ID,
		Type:        typ,
		Title:       title,
		Message:     msg,
	})
}

// NotifyRideCancelled notifies the passenger and, when one is assigned, the
// driver about a cancellation.
func (s *NotificationService) NotifyRideCancelled(ctx context.Context, ride *domain.Ride) {
	s.NotifyStatusChanged(ctx, ride)

	if ride.DriverID == "" {
		return
	}
	s.send(ctx, domain.Notification{
		RecipientID: ride.DriverID,
		RideID:      ride.ID,
		Type:        domain.NotificationRideCancelled,
		Title:       "Ride Cancelled",
		Message:     "The passenger has cancelled the ride",
	})
}

// send records a notification. Errors are logged, never propagated.
func (s *NotificationService) send(ctx context.Context, n domain.Notification) {
	n.ID = uuid.New().String()
	n.CreatedAt = time.Now()

	log.Printf("[NOTIFICATION] Type=%s, Recipient=%s, Title=%s, Message=%s",
		n.Type, n.RecipientID, n.Title, n.Message)

	if s.sink == nil {
		return
	}
	if err := s.sink.Create(ctx, &n); err != nil {
		log.Printf("failed to store notification %s: %v", n.ID, err)
	}
}

func passengerRecipient(ride *domain.Ride) string {
	return fmt.Sprintf("passenger:%d", ride.PassengerID)
}

package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"hail/internal/domain"
	"hail/internal/pricing"
	"hail/internal/registry"
	"hail/internal/repository"
	"hail/internal/service"
)

// offPeakClock pins the engine to a mid-morning hour so no peak surge leaks
// into lifecycle tests.
func offPeakClock() time.Time {
	return time.Date(2025, 6, 10, 10, 0, 0, 0, time.UTC)
}

func newTestRideService(repo *MockRideRepository, earnings *MockEarningRepository, sink *MockNotificationSink) *service.RideService {
	engine := pricing.NewEngine(registry.New(), nil).WithClock(offPeakClock)
	var notifier *service.NotificationService
	if sink != nil {
		notifier = service.NewNotificationService(sink)
	}
	return service.NewRideService(repo, earnings, engine, notifier, nil)
}

func seedRide(repo *MockRideRepository, status domain.RideStatus, driverID string) *domain.Ride {
	ride := &domain.Ride{
		ID:            "ride-1",
		PassengerID:   42,
		DriverID:      driverID,
		PickupAddress: "Connaught Place",
		DropAddress:   "Hauz Khas",
		CityKey:       "delhi",
		DistanceKm:    9.27,
		BaseFare:      30,
		FinalFare:     150.56,
		DurationMin:   30,
		Status:        status,
		CreatedAt:     time.Now().Add(-5 * time.Minute),
	}
	repo.AddRide(ride)
	return ride
}

func floatPtr(f float64) *float64 { return &f }
func boolPtr(b bool) *bool        { return &b }

func TestCreateRideValidation(t *testing.T) {
	svc := newTestRideService(NewMockRideRepository(), NewMockEarningRepository(), nil)

	valid := service.BookingRequest{
		PassengerID:   42,
		PickupAddress: "Connaught Place",
		DropAddress:   "Hauz Khas",
		DistanceKm:    9,
	}

	tests := []struct {
		name    string
		mutate  func(*service.BookingRequest)
		wantErr error
	}{
		{name: "empty pickup", mutate: func(r *service.BookingRequest) { r.PickupAddress = "  " }, wantErr: service.ErrEmptyPickupAddress},
		{name: "empty drop", mutate: func(r *service.BookingRequest) { r.DropAddress = "" }, wantErr: service.ErrEmptyDropAddress},
		{name: "negative distance", mutate: func(r *service.BookingRequest) { r.DistanceKm = -1 }, wantErr: service.ErrNegativeDistance},
		{name: "traffic too high", mutate: func(r *service.BookingRequest) { r.SimulatedTraffic = floatPtr(10.5) }, wantErr: service.ErrTrafficOutOfRange},
		{name: "traffic negative", mutate: func(r *service.BookingRequest) { r.SimulatedTraffic = floatPtr(-0.1) }, wantErr: service.ErrTrafficOutOfRange},
		{name: "zero passenger id", mutate: func(r *service.BookingRequest) { r.PassengerID = 0 }, wantErr: service.ErrInvalidPassengerID},
		{name: "negative passenger id", mutate: func(r *service.BookingRequest) { r.PassengerID = -7 }, wantErr: service.ErrInvalidPassengerID},
		{name: "scheduled in the past", mutate: func(r *service.BookingRequest) { r.ScheduledAt = time.Now().Add(-time.Hour) }, wantErr: service.ErrScheduledInPast},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			if _, err := svc.CreateRide(context.Background(), req); !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestCreateRidePendingWithQuote(t *testing.T) {
	repo := NewMockRideRepository()
	sink := NewMockNotificationSink()
	svc := newTestRideService(repo, NewMockEarningRepository(), sink)

	ride, err := svc.CreateRide(context.Background(), service.BookingRequest{
		PassengerID:      42,
		PickupAddress:    "Connaught Place",
		DropAddress:      "Hauz Khas",
		DistanceKm:       5,
		SimulatedPeak:    boolPtr(false),
		SimulatedTraffic: floatPtr(2),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ride.ID == "" {
		t.Error("expected a generated ride id")
	}
	if ride.Status != domain.RideStatusPending {
		t.Errorf("expected pending, got %s", ride.Status)
	}
	if ride.DriverID != "" {
		t.Errorf("new ride must not have a driver, got %q", ride.DriverID)
	}
	if ride.CityKey != "delhi" {
		t.Errorf("expected delhi, got %q", ride.CityKey)
	}
	if !ride.RouteCalculated {
		t.Error("expected route calculated from zone coordinates")
	}
	if ride.DistanceKm < 9.1 || ride.DistanceKm > 9.4 {
		t.Errorf("expected resolved distance in [9.1, 9.4], got %v", ride.DistanceKm)
	}
	if ride.FinalFare <= ride.BaseFare {
		t.Errorf("fare %v should exceed base fare %v", ride.FinalFare, ride.BaseFare)
	}
	if repo.CreateCallCount != 1 {
		t.Errorf("expected 1 repository create, got %d", repo.CreateCallCount)
	}

	requested := sink.OfType(domain.NotificationRideRequested)
	if len(requested) != 1 {
		t.Fatalf("expected 1 ride requested notification, got %d", len(requested))
	}
	if requested[0].RecipientID != "passenger:42" {
		t.Errorf("expected recipient passenger:42, got %q", requested[0].RecipientID)
	}
	if requested[0].RideID != ride.ID {
		t.Errorf("notification ride id %q does not match %q", requested[0].RideID, ride.ID)
	}
}

func TestPredictDoesNotPersist(t *testing.T) {
	repo := NewMockRideRepository()
	svc := newTestRideService(repo, NewMockEarningRepository(), nil)

	quote, err := svc.Predict(context.Background(), service.BookingRequest{
		PassengerID:   42,
		PickupAddress: "Connaught Place",
		DropAddress:   "Hauz Khas",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.FinalFare <= 0 {
		t.Errorf("expected a positive fare, got %v", quote.FinalFare)
	}
	if repo.CreateCallCount != 0 {
		t.Errorf("predict must not persist rides, got %d creates", repo.CreateCallCount)
	}
}

func TestAcceptRide(t *testing.T) {
	repo := NewMockRideRepository()
	sink := NewMockNotificationSink()
	svc := newTestRideService(repo, NewMockEarningRepository(), sink)
	seedRide(repo, domain.RideStatusPending, "")

	ride, err := svc.AcceptRide(context.Background(), "ride-1", "driver-9")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ride.Status != domain.RideStatusAccepted {
		t.Errorf("expected accepted, got %s", ride.Status)
	}
	if ride.DriverID != "driver-9" {
		t.Errorf("expected driver-9, got %q", ride.DriverID)
	}

	assigned := sink.OfType(domain.NotificationDriverAssigned)
	if len(assigned) != 1 {
		t.Errorf("expected 1 driver assigned notification, got %d", len(assigned))
	}
}

func TestAcceptRideGuards(t *testing.T) {
	tests := []struct {
		name     string
		status   domain.RideStatus
		driverID string
		rideID   string
		driver   string
		wantErr  error
	}{
		{name: "already accepted", status: domain.RideStatusAccepted, driverID: "other", rideID: "ride-1", driver: "driver-9", wantErr: service.ErrRideNotPending},
		{name: "in progress", status: domain.RideStatusInProgress, driverID: "other", rideID: "ride-1", driver: "driver-9", wantErr: service.ErrRideNotPending},
		{name: "completed", status: domain.RideStatusCompleted, driverID: "other", rideID: "ride-1", driver: "driver-9", wantErr: service.ErrRideNotPending},
		{name: "cancelled", status: domain.RideStatusCancelled, driverID: "", rideID: "ride-1", driver: "driver-9", wantErr: service.ErrRideNotPending},
		{name: "unknown ride", status: domain.RideStatusPending, driverID: "", rideID: "ride-404", driver: "driver-9", wantErr: repository.ErrNotFound},
		{name: "empty ride id", status: domain.RideStatusPending, driverID: "", rideID: "", driver: "driver-9", wantErr: service.ErrInvalidRideID},
		{name: "empty driver id", status: domain.RideStatusPending, driverID: "", rideID: "ride-1", driver: "", wantErr: service.ErrInvalidDriverID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewMockRideRepository()
			svc := newTestRideService(repo, NewMockEarningRepository(), nil)
			seedRide(repo, tt.status, tt.driverID)

			if _, err := svc.AcceptRide(context.Background(), tt.rideID, tt.driver); !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestUpdateStatusFullLifecycle(t *testing.T) {
	repo := NewMockRideRepository()
	earnings := NewMockEarningRepository()
	sink := NewMockNotificationSink()
	svc := newTestRideService(repo, earnings, sink)
	seedRide(repo, domain.RideStatusAccepted, "driver-9")

	ride, err := svc.UpdateStatus(context.Background(), "ride-1", "driver-9", domain.RideStatusInProgress)
	if err != nil {
		t.Fatalf("start trip: %v", err)
	}
	if ride.Status != domain.RideStatusInProgress {
		t.Fatalf("expected in_progress, got %s", ride.Status)
	}

	ride, err = svc.UpdateStatus(context.Background(), "ride-1", "driver-9", domain.RideStatusCompleted)
	if err != nil {
		t.Fatalf("complete trip: %v", err)
	}
	if ride.Status != domain.RideStatusCompleted {
		t.Fatalf("expected completed, got %s", ride.Status)
	}

	if got := len(earnings.All()); got != 1 {
		t.Errorf("expected exactly 1 earning, got %d", got)
	}
	if got := len(sink.OfType(domain.NotificationRideCompleted)); got != 1 {
		t.Errorf("expected 1 ride completed notification, got %d", got)
	}
}

func TestUpdateStatusGuards(t *testing.T) {
	tests := []struct {
		name      string
		status    domain.RideStatus
		driverID  string
		caller    string
		newStatus domain.RideStatus
		wantErr   error
	}{
		{name: "wrong driver", status: domain.RideStatusAccepted, driverID: "driver-9", caller: "driver-2", newStatus: domain.RideStatusInProgress, wantErr: service.ErrNotAssignedDriver},
		{name: "completed is terminal", status: domain.RideStatusCompleted, driverID: "driver-9", caller: "driver-9", newStatus: domain.RideStatusInProgress, wantErr: service.ErrRideTerminal},
		{name: "cancelled is terminal", status: domain.RideStatusCancelled, driverID: "driver-9", caller: "driver-9", newStatus: domain.RideStatusCompleted, wantErr: service.ErrRideTerminal},
		{name: "skip in_progress", status: domain.RideStatusAccepted, driverID: "driver-9", caller: "driver-9", newStatus: domain.RideStatusCompleted, wantErr: service.ErrInvalidTransition},
		{name: "back to pending", status: domain.RideStatusAccepted, driverID: "driver-9", caller: "driver-9", newStatus: domain.RideStatusPending, wantErr: service.ErrInvalidTransition},
		{name: "cancel via status update", status: domain.RideStatusAccepted, driverID: "driver-9", caller: "driver-9", newStatus: domain.RideStatusCancelled, wantErr: service.ErrInvalidTransition},
		{name: "start before accept", status: domain.RideStatusInProgress, driverID: "driver-9", caller: "driver-9", newStatus: domain.RideStatusInProgress, wantErr: service.ErrInvalidTransition},
		{name: "unknown status", status: domain.RideStatusAccepted, driverID: "driver-9", caller: "driver-9", newStatus: domain.RideStatus("flying"), wantErr: service.ErrUnknownStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewMockRideRepository()
			svc := newTestRideService(repo, NewMockEarningRepository(), nil)
			seedRide(repo, tt.status, tt.driverID)

			if _, err := svc.UpdateStatus(context.Background(), "ride-1", tt.caller, tt.newStatus); !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestCompletionEarningMath(t *testing.T) {
	tests := []struct {
		name           string
		fare           float64
		distance       float64
		wantCommission float64
		wantBonus      float64
		wantNet        float64
	}{
		{name: "long ride gets bonus", fare: 100, distance: 16, wantCommission: 20, wantBonus: 20, wantNet: 100},
		{name: "boundary distance gets no bonus", fare: 100, distance: 15, wantCommission: 20, wantBonus: 0, wantNet: 80},
		{name: "amounts rounded to paise", fare: 99.99, distance: 9.27, wantCommission: 20, wantBonus: 0, wantNet: 79.99},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewMockRideRepository()
			earnings := NewMockEarningRepository()
			svc := newTestRideService(repo, earnings, nil)

			ride := seedRide(repo, domain.RideStatusInProgress, "driver-9")
			ride.FinalFare = tt.fare
			ride.DistanceKm = tt.distance

			if _, err := svc.UpdateStatus(context.Background(), "ride-1", "driver-9", domain.RideStatusCompleted); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			all := earnings.All()
			if len(all) != 1 {
				t.Fatalf("expected 1 earning, got %d", len(all))
			}
			e := all[0]
			if e.DriverID != "driver-9" || e.RideID != "ride-1" {
				t.Errorf("earning linked to %s/%s, want driver-9/ride-1", e.DriverID, e.RideID)
			}
			if e.GrossAmount != tt.fare {
				t.Errorf("gross = %v, want %v", e.GrossAmount, tt.fare)
			}
			if e.Commission != tt.wantCommission {
				t.Errorf("commission = %v, want %v", e.Commission, tt.wantCommission)
			}
			if e.BonusAmount != tt.wantBonus {
				t.Errorf("bonus = %v, want %v", e.BonusAmount, tt.wantBonus)
			}
			if e.NetEarnings != tt.wantNet {
				t.Errorf("net = %v, want %v", e.NetEarnings, tt.wantNet)
			}
		})
	}
}

func TestCompletionEarningRecordedOnce(t *testing.T) {
	repo := NewMockRideRepository()
	earnings := NewMockEarningRepository()
	svc := newTestRideService(repo, earnings, nil)
	seedRide(repo, domain.RideStatusInProgress, "driver-9")

	if _, err := svc.UpdateStatus(context.Background(), "ride-1", "driver-9", domain.RideStatusCompleted); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// A completed ride is terminal, so a repeated completion is rejected
	// before it can touch earnings.
	if _, err := svc.UpdateStatus(context.Background(), "ride-1", "driver-9", domain.RideStatusCompleted); !errors.Is(err, service.ErrRideTerminal) {
		t.Fatalf("expected terminal rejection, got %v", err)
	}
	if got := len(earnings.All()); got != 1 {
		t.Errorf("expected exactly 1 earning, got %d", got)
	}
}

func TestCancelRideByOwner(t *testing.T) {
	for _, status := range []domain.RideStatus{domain.RideStatusPending, domain.RideStatusAccepted} {
		t.Run(string(status), func(t *testing.T) {
			repo := NewMockRideRepository()
			svc := newTestRideService(repo, NewMockEarningRepository(), nil)
			driverID := ""
			if status == domain.RideStatusAccepted {
				driverID = "driver-9"
			}
			seedRide(repo, status, driverID)

			ride, err := svc.CancelRide(context.Background(), "ride-1", 42)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ride.Status != domain.RideStatusCancelled {
				t.Errorf("expected cancelled, got %s", ride.Status)
			}
			if ride.CancelledAt.IsZero() {
				t.Error("expected cancellation timestamp to be set")
			}
		})
	}
}

func TestCancelRideNotifiesDriver(t *testing.T) {
	repo := NewMockRideRepository()
	sink := NewMockNotificationSink()
	svc := newTestRideService(repo, NewMockEarningRepository(), sink)
	seedRide(repo, domain.RideStatusAccepted, "driver-9")

	if _, err := svc.CancelRide(context.Background(), "ride-1", 42); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cancelled := sink.OfType(domain.NotificationRideCancelled)
	if len(cancelled) != 2 {
		t.Fatalf("expected passenger and driver notifications, got %d", len(cancelled))
	}
	recipients := map[string]bool{}
	for _, n := range cancelled {
		recipients[n.RecipientID] = true
	}
	if !recipients["passenger:42"] || !recipients["driver-9"] {
		t.Errorf("expected passenger:42 and driver-9 recipients, got %v", recipients)
	}
}

func TestCancelRideGuards(t *testing.T) {
	tests := []struct {
		name        string
		status      domain.RideStatus
		passengerID int64
		wantErr     error
	}{
		{name: "wrong passenger", status: domain.RideStatusPending, passengerID: 7, wantErr: service.ErrNotRideOwner},
		{name: "in progress", status: domain.RideStatusInProgress, passengerID: 42, wantErr: service.ErrInvalidTransition},
		{name: "completed", status: domain.RideStatusCompleted, passengerID: 42, wantErr: service.ErrRideTerminal},
		{name: "already cancelled", status: domain.RideStatusCancelled, passengerID: 42, wantErr: service.ErrRideTerminal},
		{name: "bad passenger id", status: domain.RideStatusPending, passengerID: 0, wantErr: service.ErrInvalidPassengerID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewMockRideRepository()
			svc := newTestRideService(repo, NewMockEarningRepository(), nil)
			seedRide(repo, tt.status, "driver-9")

			if _, err := svc.CancelRide(context.Background(), "ride-1", tt.passengerID); !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestDriverEarningsLookup(t *testing.T) {
	repo := NewMockRideRepository()
	earnings := NewMockEarningRepository()
	svc := newTestRideService(repo, earnings, nil)
	seedRide(repo, domain.RideStatusInProgress, "driver-9")

	if _, err := svc.UpdateStatus(context.Background(), "ride-1", "driver-9", domain.RideStatusCompleted); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := svc.DriverEarnings(context.Background(), "driver-9")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 earning, got %d", len(got))
	}

	other, err := svc.DriverEarnings(context.Background(), "driver-2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(other) != 0 {
		t.Errorf("expected no earnings for another driver, got %d", len(other))
	}

	if _, err := svc.DriverEarnings(context.Background(), ""); !errors.Is(err, service.ErrInvalidDriverID) {
		t.Errorf("expected invalid driver id, got %v", err)
	}
}

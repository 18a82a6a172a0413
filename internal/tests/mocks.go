package tests

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"hail/internal/domain"
	"hail/internal/redis"
	"hail/internal/repository"
)

// Ensure mocks satisfy the interfaces they stand in for.
var (
	_ repository.RideRepository         = (*MockRideRepository)(nil)
	_ repository.EarningRepository      = (*MockEarningRepository)(nil)
	_ repository.NotificationRepository = (*MockNotificationSink)(nil)
	_ redis.LockStoreInterface          = (*MockLockStore)(nil)
	_ redis.PositionStoreInterface      = (*MockPositionStore)(nil)
)

// ──────────────────────────────────────────────
// MOCK RIDE REPOSITORY
// ──────────────────────────────────────────────

// MockRideRepository is an in-memory implementation of RideRepository. Its
// UpdateStatus applies the compare-and-set under a mutex, giving the same
// winner-takes-all behavior as the conditional UPDATE in Postgres.
type MockRideRepository struct {
	mu    sync.RWMutex
	rides map[string]*domain.Ride

	// Counters for verification
	CreateCallCount       int32
	UpdateStatusCallCount int32

	// Error injection
	CreateError       error
	UpdateStatusError error
}

// NewMockRideRepository creates a new mock ride repository.
func NewMockRideRepository() *MockRideRepository {
	return &MockRideRepository{
		rides: make(map[string]*domain.Ride),
	}
}

// AddRide adds a ride to the mock repository.
func (m *MockRideRepository) AddRide(ride *domain.Ride) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rides[ride.ID] = ride
}

func (m *MockRideRepository) Create(ctx context.Context, ride *domain.Ride) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rides[ride.ID] = ride
	return nil
}

func (m *MockRideRepository) GetByID(ctx context.Context, id string) (*domain.Ride, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ride, ok := m.rides[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	// Return a copy to avoid mutation issues.
	copy := *ride
	return &copy, nil
}

func (m *MockRideRepository) GetAll(ctx context.Context) ([]*domain.Ride, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Ride, 0, len(m.rides))
	for _, r := range m.rides {
		copy := *r
		result = append(result, &copy)
	}
	return result, nil
}

func (m *MockRideRepository) UpdateStatus(ctx context.Context, rideID string, upd repository.StatusUpdate) (*domain.Ride, error) {
	atomic.AddInt32(&m.UpdateStatusCallCount, 1)
	if m.UpdateStatusError != nil {
		return nil, m.UpdateStatusError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	ride, ok := m.rides[rideID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if ride.Status != upd.From {
		return nil, repository.ErrStatusConflict
	}
	ride.Status = upd.To
	if upd.DriverID != "" {
		ride.DriverID = upd.DriverID
	}
	if !upd.CancelledAt.IsZero() {
		ride.CancelledAt = upd.CancelledAt
	}
	copy := *ride
	return &copy, nil
}

// GetRide returns the stored ride for test assertions.
func (m *MockRideRepository) GetRide(id string) *domain.Ride {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.rides[id]
}

// ──────────────────────────────────────────────
// MOCK EARNING REPOSITORY
// ──────────────────────────────────────────────

// MockEarningRepository is an in-memory implementation of EarningRepository
// that enforces the one-earning-per-ride rule.
type MockEarningRepository struct {
	mu       sync.RWMutex
	earnings []*domain.DriverEarning
	byRide   map[string]bool

	CreateCallCount int32
	CreateError     error
}

// NewMockEarningRepository creates a new mock earning repository.
func NewMockEarningRepository() *MockEarningRepository {
	return &MockEarningRepository{
		byRide: make(map[string]bool),
	}
}

func (m *MockEarningRepository) Create(ctx context.Context, earning *domain.DriverEarning) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.byRide[earning.RideID] {
		return repository.ErrDuplicate
	}
	m.byRide[earning.RideID] = true
	copy := *earning
	m.earnings = append(m.earnings, &copy)
	return nil
}

func (m *MockEarningRepository) GetByDriver(ctx context.Context, driverID string) ([]*domain.DriverEarning, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.DriverEarning
	for _, e := range m.earnings {
		if e.DriverID == driverID {
			copy := *e
			result = append(result, &copy)
		}
	}
	return result, nil
}

// All returns every stored earning for test assertions.
func (m *MockEarningRepository) All() []*domain.DriverEarning {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*domain.DriverEarning(nil), m.earnings...)
}

// ──────────────────────────────────────────────
// MOCK NOTIFICATION SINK
// ──────────────────────────────────────────────

// MockNotificationSink records notifications for verification.
type MockNotificationSink struct {
	mu            sync.RWMutex
	notifications []*domain.Notification

	CreateError error
}

// NewMockNotificationSink creates a new mock notification sink.
func NewMockNotificationSink() *MockNotificationSink {
	return &MockNotificationSink{}
}

func (m *MockNotificationSink) Create(ctx context.Context, n *domain.Notification) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *n
	m.notifications = append(m.notifications, &copy)
	return nil
}

// All returns every recorded notification.
func (m *MockNotificationSink) All() []*domain.Notification {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*domain.Notification(nil), m.notifications...)
}

// OfType returns the recorded notifications of the given type.
func (m *MockNotificationSink) OfType(typ domain.NotificationType) []*domain.Notification {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Notification
	for _, n := range m.notifications {
		if n.Type == typ {
			result = append(result, n)
		}
	}
	return result
}

// ──────────────────────────────────────────────
// MOCK LOCK STORE
// ──────────────────────────────────────────────

// MockLockStore is an in-memory implementation of the ride lock store.
type MockLockStore struct {
	mu    sync.Mutex
	locks map[string]bool
}

// NewMockLockStore creates a new mock lock store.
func NewMockLockStore() *MockLockStore {
	return &MockLockStore{locks: make(map[string]bool)}
}

func (m *MockLockStore) AcquireRideLock(ctx context.Context, rideID string, ttl time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.locks[rideID] {
		return false, nil
	}
	m.locks[rideID] = true
	return true, nil
}

func (m *MockLockStore) ReleaseRideLock(ctx context.Context, rideID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locks, rideID)
	return nil
}

// ──────────────────────────────────────────────
// MOCK POSITION STORE
// ──────────────────────────────────────────────

// MockPositionStore is an in-memory implementation of the position store.
type MockPositionStore struct {
	mu        sync.RWMutex
	positions map[string]redis.RidePosition
}

// NewMockPositionStore creates a new mock position store.
func NewMockPositionStore() *MockPositionStore {
	return &MockPositionStore{positions: make(map[string]redis.RidePosition)}
}

func (m *MockPositionStore) UpdatePosition(ctx context.Context, rideID string, lat, lng float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.positions[rideID] = redis.RidePosition{RideID: rideID, Lat: lat, Lng: lng}
	return nil
}

func (m *MockPositionStore) LastPosition(ctx context.Context, rideID string) (*redis.RidePosition, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	pos, ok := m.positions[rideID]
	if !ok {
		return nil, nil
	}
	copy := pos
	return &copy, nil
}

func (m *MockPositionStore) RemovePosition(ctx context.Context, rideID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.positions, rideID)
	return nil
}

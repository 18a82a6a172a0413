package postgres

import (
	"context"
	"database/sql"
	"errors"

	"hail/internal/domain"
	"hail/internal/repository"
)

// RideRepository is a PostgreSQL implementation of repository.RideRepository.
type RideRepository struct {
	q Querier
}

// NewRideRepository creates a new PostgreSQL ride repository.
func NewRideRepository(db *sql.DB) *RideRepository {
	return &RideRepository{q: db}
}

// NewRideRepositoryWithTx creates a ride repository using a transaction.
func NewRideRepositoryWithTx(tx *sql.Tx) *RideRepository {
	return &RideRepository{q: tx}
}

const rideColumns = `id, passenger_id, driver_id, pickup_address, drop_address, city_key,
	distance_km, base_fare, surge_multiplier, final_fare, wait_time_min, duration_min,
	cancellation_prob, carbon_kg, fairness_score, route_calculated, status,
	scheduled_at, created_at, cancelled_at`

// Create persists a new ride.
func (r *RideRepository) Create(ctx context.Context, ride *domain.Ride) error {
	query := `
		INSERT INTO rides (` + rideColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
	`

	var driverID sql.NullString
	if ride.DriverID != "" {
		driverID = sql.NullString{String: ride.DriverID, Valid: true}
	}

	var scheduledAt sql.NullTime
	if !ride.ScheduledAt.IsZero() {
		scheduledAt = sql.NullTime{Time: ride.ScheduledAt, Valid: true}
	}

	var cancelledAt sql.NullTime
	if !ride.CancelledAt.IsZero() {
		cancelledAt = sql.NullTime{Time: ride.CancelledAt, Valid: true}
	}

	_, err := r.q.ExecContext(ctx, query,
		ride.ID,
		ride.PassengerID,
		driverID,
		ride.PickupAddress,
		ride.DropAddress,
		ride.CityKey,
		ride.DistanceKm,
		ride.BaseFare,
		ride.SurgeMultiplier,
		ride.FinalFare,
		ride.WaitTimeMin,
		ride.DurationMin,
		ride.CancellationProb,
		ride.CarbonKg,
		ride.FairnessScore,
		ride.RouteCalculated,
		ride.Status,
		scheduledAt,
		ride.CreatedAt,
		cancelledAt,
	)

	return err
}

// GetByID retrieves a ride by ID.
func (r *RideRepository) GetByID(ctx context.Context, id string) (*domain.Ride, error) {
	query := `SELECT ` + rideColumns + ` FROM rides WHERE id = $1`

	ride, err := scanRide(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return ride, nil
}

// GetAll retrieves the most recent rides.
func (r *RideRepository) GetAll(ctx context.Context) ([]*domain.Ride, error) {
	query := `SELECT ` + rideColumns + ` FROM rides ORDER BY created_at DESC LIMIT 100`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rides []*domain.Ride
	for rows.Next() {
		ride, err := scanRide(rows)
		if err != nil {
			return nil, err
		}
		rides = append(rides, ride)
	}
	return rides, rows.Err()
}

// UpdateStatus atomically moves a ride from upd.From to upd.To. The guard is
// a conditional UPDATE: when the current status no longer matches, zero rows
// are affected and the loser of the race gets ErrStatusConflict.
func (r *RideRepository) UpdateStatus(ctx context.Context, rideID string, upd repository.StatusUpdate) (*domain.Ride, error) {
	query := `
		UPDATE rides
		SET status = $1,
		    driver_id = COALESCE(NULLIF($2, ''), driver_id),
		    cancelled_at = COALESCE($3, cancelled_at)
		WHERE id = $4 AND status = $5
	`

	var cancelledAt sql.NullTime
	if !upd.CancelledAt.IsZero() {
		cancelledAt = sql.NullTime{Time: upd.CancelledAt, Valid: true}
	}

	result, err := r.q.ExecContext(ctx, query, upd.To, upd.DriverID, cancelledAt, rideID, upd.From)
	if err != nil {
		return nil, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}

	if rowsAffected == 0 {
		// Distinguish a missing ride from a lost race.
		if _, err := r.GetByID(ctx, rideID); err != nil {
			return nil, err
		}
		return nil, repository.ErrStatusConflict
	}

	return r.GetByID(ctx, rideID)
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRide(row rowScanner) (*domain.Ride, error) {
	var ride domain.Ride
	var driverID sql.NullString
	var scheduledAt sql.NullTime
	var cancelledAt sql.NullTime

	err := row.Scan(
		&ride.ID,
		&ride.PassengerID,
		&driverID,
		&ride.PickupAddress,
		&ride.DropAddress,
		&ride.CityKey,
		&ride.DistanceKm,
		&ride.BaseFare,
		&ride.SurgeMultiplier,
		&ride.FinalFare,
		&ride.WaitTimeMin,
		&ride.DurationMin,
		&ride.CancellationProb,
		&ride.CarbonKg,
		&ride.FairnessScore,
		&ride.RouteCalculated,
		&ride.Status,
		&scheduledAt,
		&ride.CreatedAt,
		&cancelledAt,
	)
	if err != nil {
		return nil, err
	}

	if driverID.Valid {
		ride.DriverID = driverID.String
	}
	if scheduledAt.Valid {
		ride.ScheduledAt = scheduledAt.Time
	}
	if cancelledAt.Valid {
		ride.CancelledAt = cancelledAt.Time
	}

	return &ride, nil
}

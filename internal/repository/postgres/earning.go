package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"hail/internal/domain"
	"hail/internal/repository"
)

// EarningRepository is a PostgreSQL implementation of repository.EarningRepository.
// The earnings table carries a unique constraint on ride_id, which backs the
// create-once-per-completion guarantee.
type EarningRepository struct {
	q Querier
}

// NewEarningRepository creates a new PostgreSQL earning repository.
func NewEarningRepository(db *sql.DB) *EarningRepository {
	return &EarningRepository{q: db}
}

// NewEarningRepositoryWithTx creates an earning repository using a transaction.
func NewEarningRepositoryWithTx(tx *sql.Tx) *EarningRepository {
	return &EarningRepository{q: tx}
}

// Create persists a new earning record.
func (r *EarningRepository) Create(ctx context.Context, earning *domain.DriverEarning) error {
	query := `
		INSERT INTO driver_earnings (id, driver_id, ride_id, gross_amount, commission, bonus_amount, net_earnings, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.q.ExecContext(ctx, query,
		earning.ID,
		earning.DriverID,
		earning.RideID,
		earning.GrossAmount,
		earning.Commission,
		earning.BonusAmount,
		earning.NetEarnings,
		earning.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return repository.ErrDuplicate
		}
		return err
	}
	return nil
}

// GetByDriver retrieves all earnings for a driver, newest first.
func (r *EarningRepository) GetByDriver(ctx context.Context, driverID string) ([]*domain.DriverEarning, error) {
	query := `
		SELECT id, driver_id, ride_id, gross_amount, commission, bonus_amount, net_earnings, created_at
		FROM driver_earnings WHERE driver_id = $1 ORDER BY created_at DESC
	`

	rows, err := r.q.QueryContext(ctx, query, driverID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var earnings []*domain.DriverEarning
	for rows.Next() {
		var e domain.DriverEarning
		if err := rows.Scan(
			&e.ID,
			&e.DriverID,
			&e.RideID,
			&e.GrossAmount,
			&e.Commission,
			&e.BonusAmount,
			&e.NetEarnings,
			&e.CreatedAt,
		); err != nil {
			return nil, err
		}
		earnings = append(earnings, &e)
	}
	return earnings, rows.Err()
}

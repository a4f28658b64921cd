package repository

import (
	"context"

	"ticket-qr-gate/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

type CheckInRepository interface {
	Create(ctx context.Context, checkIn *model.CheckIn) (*model.CheckIn, error)
	ListByEventID(ctx context.Context, eventID int) ([]*model.CheckIn, error)
}

type CheckInRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewCheckInRepository(pool *pgxpool.Pool) CheckInRepository {
	return &CheckInRepositoryImpl{
		pool: pool,
	}
}

func (r *CheckInRepositoryImpl) Create(ctx context.Context, checkIn *model.CheckIn) (*model.CheckIn, error) {
	query := `
		INSERT INTO check_ins (event_id, order_id, code, unit_label, scanned_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, event_id, order_id, code, unit_label, scanned_at, created_at
	`

	err := r.pool.QueryRow(ctx, query,
		checkIn.EventID, checkIn.OrderID, checkIn.Code, checkIn.UnitLabel, checkIn.ScannedAt,
	).Scan(
		&checkIn.ID,
		&checkIn.EventID,
		&checkIn.OrderID,
		&checkIn.Code,
		&checkIn.UnitLabel,
		&checkIn.ScannedAt,
		&checkIn.CreatedAt,
	)

	if err != nil {
		return nil, err
	}

	return checkIn, nil
}

func (r *CheckInRepositoryImpl) ListByEventID(ctx context.Context, eventID int) ([]*model.CheckIn, error) {
	query := `
		SELECT id, event_id, order_id, code, unit_label, scanned_at, created_at
		FROM check_ins
		WHERE event_id = $1
		ORDER BY scanned_at DESC
	`

	rows, err := r.pool.Query(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	checkIns := make([]*model.CheckIn, 0)

	for rows.Next() {
		var checkIn model.CheckIn
		err := rows.Scan(
			&checkIn.ID,
			&checkIn.EventID,
			&checkIn.OrderID,
			&checkIn.Code,
			&checkIn.UnitLabel,
			&checkIn.ScannedAt,
			&checkIn.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		checkIns = append(checkIns, &checkIn)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return checkIns, nil
}

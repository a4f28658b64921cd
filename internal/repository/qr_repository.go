package repository

import (
	"context"
	"time"

	"ticket-qr-gate/internal/model"
	apperrors "ticket-qr-gate/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type QRRepository interface {
	Issue(ctx context.Context, rec *model.QRRecord) (*model.QRRecord, error)
	FindByCode(ctx context.Context, code string) (*model.QRRecord, error)
	FindByOrderID(ctx context.Context, orderID int) ([]*model.QRRecord, error)
	MarkScanned(ctx context.Context, code string) error
}

type QRRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewQRRepository(pool *pgxpool.Pool) QRRepository {
	return &QRRepositoryImpl{
		pool: pool,
	}
}

func (r *QRRepositoryImpl) Issue(ctx context.Context, rec *model.QRRecord) (*model.QRRecord, error) {
	query := `
		INSERT INTO qr_codes (
		code, order_id, event_id, ticket_id, ticket_qty_index, area_id, seat_number, is_scanned)
		VALUES ($1, $2, $3, $4, $5, $6, $7, FALSE)
		RETURNING id, code, order_id, event_id, ticket_id, ticket_qty_index,
			area_id, seat_number, is_scanned, created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		rec.Code, rec.OrderID, rec.EventID,
		rec.TicketID, rec.TicketQtyIndex, rec.AreaID, rec.SeatNumber,
	).Scan(
		&rec.ID,
		&rec.Code,
		&rec.OrderID,
		&rec.EventID,
		&rec.TicketID,
		&rec.TicketQtyIndex,
		&rec.AreaID,
		&rec.SeatNumber,
		&rec.IsScanned,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	return rec, nil
}

func (r *QRRepositoryImpl) FindByCode(ctx context.Context, code string) (*model.QRRecord, error) {
	query := `
		SELECT id, code, order_id, event_id, ticket_id, ticket_qty_index,
				area_id, seat_number, is_scanned, created_at, updated_at, scanned_at
		FROM qr_codes
		WHERE code = $1
	`

	var rec model.QRRecord
	err := r.pool.QueryRow(ctx, query, code).Scan(
		&rec.ID,
		&rec.Code,
		&rec.OrderID,
		&rec.EventID,
		&rec.TicketID,
		&rec.TicketQtyIndex,
		&rec.AreaID,
		&rec.SeatNumber,
		&rec.IsScanned,
		&rec.CreatedAt,
		&rec.UpdatedAt,
		&rec.ScannedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrQRNotFound
		}
		return nil, err
	}

	return &rec, nil
}

// FindByOrderID 以 created_at 降冪排序：同一單位被重新簽發時，最前面的即為權威紀錄
func (r *QRRepositoryImpl) FindByOrderID(ctx context.Context, orderID int) ([]*model.QRRecord, error) {
	query := `
		SELECT id, code, order_id, event_id, ticket_id, ticket_qty_index,
				area_id, seat_number, is_scanned, created_at, updated_at, scanned_at
		FROM qr_codes
		WHERE order_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]*model.QRRecord, 0)

	for rows.Next() {
		var rec model.QRRecord
		err := rows.Scan(
			&rec.ID,
			&rec.Code,
			&rec.OrderID,
			&rec.EventID,
			&rec.TicketID,
			&rec.TicketQtyIndex,
			&rec.AreaID,
			&rec.SeatNumber,
			&rec.IsScanned,
			&rec.CreatedAt,
			&rec.UpdatedAt,
			&rec.ScannedAt,
		)
		if err != nil {
			return nil, err
		}
		records = append(records, &rec)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// MarkScanned is_scanned 單向 false→true；已掃描的紀錄不會被更新到第二次
func (r *QRRepositoryImpl) MarkScanned(ctx context.Context, code string) error {
	query := `
		UPDATE qr_codes
		SET is_scanned = TRUE, scanned_at = $1, updated_at = $1
		WHERE code = $2 AND is_scanned = FALSE
	`

	result, err := r.pool.Exec(ctx, query, time.Now().UTC(), code)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrQRAlreadyScanned
	}

	return nil
}

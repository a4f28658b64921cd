package repository

import (
	"context"

	"ticket-qr-gate/internal/model"
	apperrors "ticket-qr-gate/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OrderRepository interface {
	FindByID(ctx context.Context, id int) (*model.Order, error)
}

type OrderRepositoryImpl struct {
	pool   *pgxpool.Pool
	qrRepo QRRepository
}

func NewOrderRepository(pool *pgxpool.Pool, qrRepo QRRepository) OrderRepository {
	return &OrderRepositoryImpl{
		pool:   pool,
		qrRepo: qrRepo,
	}
}

// FindByID 讀出訂單本體、兩種票券形態（擇一會有資料）及其全部 QR 紀錄
func (r *OrderRepositoryImpl) FindByID(ctx context.Context, id int) (*model.Order, error) {
	query := `
		SELECT id, event_id, buyer_name, status, created_at, updated_at, deleted_at
		FROM orders
		WHERE id = $1 AND deleted_at IS NULL
	`

	var order model.Order
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&order.ID,
		&order.EventID,
		&order.BuyerName,
		&order.Status,
		&order.CreatedAt,
		&order.UpdatedAt,
		&order.DeletedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrOrderNotFound
		}
		return nil, err
	}

	if err := r.loadSeatMapDetails(ctx, &order); err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, &order); err != nil {
		return nil, err
	}

	records, err := r.qrRepo.FindByOrderID(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.QRCodes = make([]model.QRRecord, 0, len(records))
	for _, rec := range records {
		order.QRCodes = append(order.QRCodes, *rec)
	}

	return &order, nil
}

func (r *OrderRepositoryImpl) loadSeatMapDetails(ctx context.Context, order *model.Order) error {
	query := `
		SELECT id, order_id, area_id, seat_number, area_name, price
		FROM seat_map_details
		WHERE order_id = $1
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query, order.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var seat model.SeatMapDetail
		err := rows.Scan(
			&seat.ID,
			&seat.OrderID,
			&seat.AreaID,
			&seat.SeatNumber,
			&seat.AreaName,
			&seat.Price,
		)
		if err != nil {
			return err
		}
		order.SeatMapDetails = append(order.SeatMapDetails, seat)
	}

	return rows.Err()
}

func (r *OrderRepositoryImpl) loadItems(ctx context.Context, order *model.Order) error {
	query := `
		SELECT id, order_id, ticket_id, type, price, quantity
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query, order.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var item model.OrderItem
		err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.TicketID,
			&item.Type,
			&item.Price,
			&item.Quantity,
		)
		if err != nil {
			return err
		}
		order.Items = append(order.Items, item)
	}

	return rows.Err()
}

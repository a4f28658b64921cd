package service

import (
	"context"

	"ticket-qr-gate/internal/model"
	"ticket-qr-gate/internal/repository"
	"ticket-qr-gate/internal/resolver"
)

type OrderService interface {
	GetOrderByID(ctx context.Context, id int) (*model.Order, error)
	// 攤平訂單為可掃描的票券單位序列（含各單位的權威 QR 與掃描比例）
	GetOrderUnits(ctx context.Context, id int) (*model.OrderUnitsResponse, error)
}

type OrderServiceImpl struct {
	repo repository.OrderRepository
}

func NewOrderService(repo repository.OrderRepository) OrderService {
	return &OrderServiceImpl{repo: repo}
}

func (s *OrderServiceImpl) GetOrderByID(ctx context.Context, id int) (*model.Order, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *OrderServiceImpl) GetOrderUnits(ctx context.Context, id int) (*model.OrderUnitsResponse, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	units := resolver.Resolve(order)

	return &model.OrderUnitsResponse{
		OrderID:        order.ID,
		EventID:        order.EventID,
		Units:          units,
		PercentScanned: resolver.PercentScanned(units),
	}, nil
}

package service

import (
	"context"

	"ticket-qr-gate/internal/model"
	"ticket-qr-gate/internal/repository"
)

type CheckInService interface {
	// 由 worker 呼叫：把核銷事件落成入場稽核紀錄
	Record(ctx context.Context, event *model.ScanEvent) error
	ListByEventID(ctx context.Context, eventID int) ([]*model.CheckIn, error)
}

type CheckInServiceImpl struct {
	repo repository.CheckInRepository
}

func NewCheckInService(repo repository.CheckInRepository) CheckInService {
	return &CheckInServiceImpl{repo: repo}
}

func (s *CheckInServiceImpl) Record(ctx context.Context, event *model.ScanEvent) error {
	checkIn := &model.CheckIn{
		EventID:   event.EventID,
		OrderID:   event.OrderID,
		Code:      event.Code,
		UnitLabel: event.UnitLabel,
		ScannedAt: event.ScannedAt,
	}

	_, err := s.repo.Create(ctx, checkIn)
	return err
}

func (s *CheckInServiceImpl) ListByEventID(ctx context.Context, eventID int) ([]*model.CheckIn, error) {
	return s.repo.ListByEventID(ctx, eventID)
}

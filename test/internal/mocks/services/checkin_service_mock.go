package services

import (
	"context"
	"ticket-qr-gate/internal/model"

	"github.com/stretchr/testify/mock"
)

type CheckInServiceMock struct {
	mock.Mock
}

func NewCheckInServiceMock() *CheckInServiceMock {
	return &CheckInServiceMock{}
}

func (m *CheckInServiceMock) Record(ctx context.Context, event *model.ScanEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *CheckInServiceMock) ListByEventID(ctx context.Context, eventID int) ([]*model.CheckIn, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.CheckIn), args.Error(1)
}

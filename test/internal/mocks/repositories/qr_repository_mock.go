package repositories

import (
	"context"
	"ticket-qr-gate/internal/model"

	"github.com/stretchr/testify/mock"
)

type QRRepositoryMock struct {
	mock.Mock
}

func NewQRRepositoryMock() *QRRepositoryMock {
	return &QRRepositoryMock{}
}

func (m *QRRepositoryMock) Issue(ctx context.Context, rec *model.QRRecord) (*model.QRRecord, error) {
	args := m.Called(ctx, rec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.QRRecord), args.Error(1)
}

func (m *QRRepositoryMock) FindByCode(ctx context.Context, code string) (*model.QRRecord, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.QRRecord), args.Error(1)
}

func (m *QRRepositoryMock) FindByOrderID(ctx context.Context, orderID int) ([]*model.QRRecord, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.QRRecord), args.Error(1)
}

func (m *QRRepositoryMock) MarkScanned(ctx context.Context, code string) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

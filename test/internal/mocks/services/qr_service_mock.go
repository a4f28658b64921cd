package services

import (
	"context"
	"ticket-qr-gate/internal/model"

	"github.com/stretchr/testify/mock"
)

type QRServiceMock struct {
	mock.Mock
}

func NewQRServiceMock() *QRServiceMock {
	return &QRServiceMock{}
}

func (m *QRServiceMock) IssueQR(ctx context.Context, req model.IssueQRRequest) (*model.QRCodeIssued, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.QRCodeIssued), args.Error(1)
}

func (m *QRServiceMock) ValidateCode(ctx context.Context, rawCode string) (*model.ValidationResult, error) {
	args := m.Called(ctx, rawCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ValidationResult), args.Error(1)
}

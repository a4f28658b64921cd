package caches

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

type RedemptionGuardMock struct {
	mock.Mock
}

func NewRedemptionGuardMock() *RedemptionGuardMock {
	return &RedemptionGuardMock{}
}

func (m *RedemptionGuardMock) Claim(ctx context.Context, code string, issuedAt time.Time, window time.Duration) (bool, error) {
	args := m.Called(ctx, code, issuedAt, window)
	return args.Bool(0), args.Error(1)
}

func (m *RedemptionGuardMock) Release(ctx context.Context, code string) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

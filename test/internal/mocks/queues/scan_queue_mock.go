package queues

import (
	"context"

	"ticket-qr-gate/internal/model"
	"ticket-qr-gate/internal/queue"

	"github.com/stretchr/testify/mock"
)

type ScanQueueMock struct {
	mock.Mock
}

func NewScanQueueMock() *ScanQueueMock {
	return &ScanQueueMock{}
}

func (m *ScanQueueMock) PublishScan(ctx context.Context, event *model.ScanEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *ScanQueueMock) SubscribeScans(ctx context.Context) (<-chan queue.Delivery, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan queue.Delivery), args.Error(1)
}

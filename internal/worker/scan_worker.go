package worker

import (
	"context"

	"ticket-qr-gate/internal/queue"
	"ticket-qr-gate/internal/service"
)

type ScanWorker interface {
	// 訂閱核銷事件隊列
	Start(ctx context.Context) error
}

type ScanWorkerImpl struct {
	service service.CheckInService
	queue   queue.ScanQueue
}

func NewScanWorker(service service.CheckInService, queue queue.ScanQueue) ScanWorker {
	return &ScanWorkerImpl{
		service: service,
		queue:   queue,
	}
}

func (w *ScanWorkerImpl) Start(ctx context.Context) error {
	msgs, _ := w.queue.SubscribeScans(ctx)

	go func() {
		for msg := range msgs {
			// 把核銷事件落成入場稽核紀錄
			err := w.service.Record(ctx, msg.Data)

			if err != nil {
				// 資料庫暫時連不上時重試
				msg.Nack(true)
			} else {
				msg.Ack()
			}
		}
	}()
	return nil
}

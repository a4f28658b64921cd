package queue

import (
	"context"

	"ticket-qr-gate/internal/model"
)

type Delivery struct {
	Data *model.ScanEvent
	Ack  func()
	Nack func(requeue bool)
}

type ScanQueue interface {
	// 發送核銷事件到隊列
	PublishScan(ctx context.Context, event *model.ScanEvent) error
	// 訂閱核銷事件隊列
	SubscribeScans(ctx context.Context) (<-chan Delivery, error)
}

type ScanQueueImpl struct {
	// 使用 Go channel 來模擬 MQ 隊列
	ch chan *model.ScanEvent
}

func NewScanQueue(bufferSize int) ScanQueue {
	return &ScanQueueImpl{
		ch: make(chan *model.ScanEvent, bufferSize),
	}
}

func (q *ScanQueueImpl) PublishScan(ctx context.Context, event *model.ScanEvent) error {
	q.ch <- event
	return nil
}

func (q *ScanQueueImpl) SubscribeScans(ctx context.Context) (<-chan Delivery, error) {
	out := make(chan Delivery)

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-q.ch:
				if !ok {
					return
				}

				out <- Delivery{
					Data: event,
					Ack:  func() { /* 記憶體版不用做特別動作 */ },
					Nack: func(requeue bool) {
						if requeue {
							q.ch <- event // 簡單模擬重回隊列
						}
					},
				}
			}
		}
	}()

	return out, nil
}

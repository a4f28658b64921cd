package worker

import (
	"context"
	"testing"
	"time"

	"ticket-qr-gate/internal/model"
	"ticket-qr-gate/internal/queue"
	"ticket-qr-gate/internal/service"
	"ticket-qr-gate/internal/worker"
)

func TestScanWorker_Integration(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	// 1. 準備：建立自製的 Memory Queue
	q := queue.NewScanQueue(10)

	// 2. 準備：建立一個 Mock Service 來記錄有沒有被呼叫
	recorded := make(chan *model.ScanEvent, 1)
	mockSvc := &mockCheckInService{
		onRecord: func(event *model.ScanEvent) {
			recorded <- event
		},
	}

	// 3. 啟動 Worker
	w := worker.NewScanWorker(mockSvc, q)
	w.Start(ctx)

	// 4. 執行：模擬核銷成功後發佈一筆事件
	event := &model.ScanEvent{Code: "abc-123", EventID: 42, OrderID: 7, UnitLabel: "T1-1", ScannedAt: time.Now()}
	q.PublishScan(ctx, event)

	// 5. 驗證：檢查 Service 是否在時間內被觸發
	select {
	case got := <-recorded:
		if got.Code != "abc-123" || got.EventID != 42 {
			t.Errorf("Service 被呼叫了，但事件內容不正確: %+v", got)
		}
	case <-time.After(1 * time.Second):
		t.Error("超時！Worker 沒有在時間內處理核銷事件")
	}
}

// 簡單的 Mock 實作
type mockCheckInService struct {
	service.CheckInService // 嵌入介面
	onRecord               func(*model.ScanEvent)
}

func (m *mockCheckInService) Record(ctx context.Context, event *model.ScanEvent) error {
	m.onRecord(event)
	return nil
}

package queue_test

import (
	"context"
	"testing"
	"time"

	"ticket-qr-gate/internal/model"
	"ticket-qr-gate/internal/queue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cleanupStream(ctx context.Context, t *testing.T) {
	t.Helper()
	_ = testRdb.Del(ctx, queue.StreamKey).Err()
}

func testScanEvent(code string) *model.ScanEvent {
	return &model.ScanEvent{
		Code:      code,
		EventID:   42,
		OrderID:   7,
		UnitLabel: "T1-1",
		ScannedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
}

// --- 1. 建構 ---

func TestNewRedisStreamScanQueue(t *testing.T) {
	ctx := context.Background()
	cleanupStream(ctx, t)

	t.Run("success", func(t *testing.T) {
		q, err := queue.NewRedisStreamScanQueue(testRdb, "test-consumer", nil)
		require.NoError(t, err)
		require.NotNil(t, q)
	})

	t.Run("empty_consumer_id_generates_uuid", func(t *testing.T) {
		cleanupStream(ctx, t)
		q, err := queue.NewRedisStreamScanQueue(testRdb, "", nil)
		require.NoError(t, err)
		require.NotNil(t, q)
	})
}

// --- 2. 發送（基本成功即可；完整「有收到」由訂閱測試涵蓋）---

func TestRedisStreamScanQueue_PublishScan(t *testing.T) {
	ctx := context.Background()
	cleanupStream(ctx, t)

	q, err := queue.NewRedisStreamScanQueue(testRdb, "pub-test", nil)
	require.NoError(t, err)

	err = q.PublishScan(ctx, testScanEvent("pub-code"))
	require.NoError(t, err)
}

// --- 3. 訂閱與投遞：驗證「發出去的內容」與「收進來的內容」一致 ---

func TestRedisStreamScanQueue_Subscribe_deliversPublishedMessage(t *testing.T) {
	ctx := context.Background()
	cleanupStream(ctx, t)

	q, err := queue.NewRedisStreamScanQueue(testRdb, "deliver-test", nil)
	require.NoError(t, err)

	event := testScanEvent("deliver-code")
	require.NoError(t, q.PublishScan(ctx, event))

	subCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	delCh, err := q.SubscribeScans(subCtx)
	require.NoError(t, err)

	select {
	case d, ok := <-delCh:
		require.True(t, ok, "應收到一筆")
		require.NotNil(t, d.Data)
		assert.Equal(t, event.Code, d.Data.Code)
		assert.Equal(t, event.EventID, d.Data.EventID)
		assert.Equal(t, event.OrderID, d.Data.OrderID)
		assert.Equal(t, event.UnitLabel, d.Data.UnitLabel)
		assert.True(t, event.ScannedAt.Equal(d.Data.ScannedAt))
	case <-subCtx.Done():
		t.Fatal("timeout 未收到訊息")
	}
}

// --- 4. Ack 結果：Ack 後該訊息不應再被投遞 ---

func TestRedisStreamScanQueue_Ack_preventsRedelivery(t *testing.T) {
	ctx := context.Background()
	cleanupStream(ctx, t)

	q, err := queue.NewRedisStreamScanQueue(testRdb, "ack-test", nil)
	require.NoError(t, err)

	event := testScanEvent("ack-code")
	require.NoError(t, q.PublishScan(ctx, event))

	subCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	delCh, err := q.SubscribeScans(subCtx)
	require.NoError(t, err)

	var first *model.ScanEvent
	select {
	case d, ok := <-delCh:
		require.True(t, ok)
		require.NotNil(t, d.Data)
		first = d.Data
		d.Ack()
	case <-subCtx.Done():
		t.Fatal("timeout 未收到第一筆")
	}

	// 驗證結果：下一讀應為 channel 關閉（cancel 後），不應再收到同一筆
	cancel()
	next, ok := <-delCh
	assert.False(t, ok, "Ack 後不應再投遞；下一讀應為 channel 關閉")
	if ok && next.Data != nil && next.Data.Code == first.Code {
		t.Fatalf("Ack 後不應再收到同一筆: Code=%s", first.Code)
	}
}

// --- 5. Nack(true) 結果：重試時應在約 ClaimMinIdleTime 後再次投遞 ---

func TestRedisStreamScanQueue_NackRequeue_redeliversAfterIdle(t *testing.T) {
	ctx := context.Background()
	cleanupStream(ctx, t)

	cfg := &queue.RedisStreamScanQueueConfig{
		ClaimMinIdleTime:   200 * time.Millisecond,
		ReadGroupBlockTime: 500 * time.Millisecond,
	}
	q, err := queue.NewRedisStreamScanQueue(testRdb, "nack-requeue-test", cfg)
	require.NoError(t, err)

	event := testScanEvent("requeue-code")
	require.NoError(t, q.PublishScan(ctx, event))

	subCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	delCh, err := q.SubscribeScans(subCtx)
	require.NoError(t, err)

	select {
	case d, ok := <-delCh:
		require.True(t, ok)
		require.NotNil(t, d.Data)
		assert.Equal(t, event.Code, d.Data.Code)
		d.Nack(true)
	case <-subCtx.Done():
		t.Fatal("timeout 未收到第一筆")
	}

	// 驗證結果：ClaimMinIdleTime 後應再次收到同一筆（XAUTOCLAIM 領回）
	select {
	case d, ok := <-delCh:
		require.True(t, ok, "Nack(requeue) 後應在 ClaimMinIdleTime 後再次投遞")
		require.NotNil(t, d.Data)
		assert.Equal(t, event.Code, d.Data.Code, "重試應為同一筆")
	case <-subCtx.Done():
		t.Fatal("timeout 未收到重試投遞")
	}
}

// --- 6. 毒藥消息：超過 MaxRetryCount 後應被丟棄，不再投遞 ---

func TestRedisStreamScanQueue_poisonMessage_discardedAfterMaxRetries(t *testing.T) {
	ctx := context.Background()
	cleanupStream(ctx, t)

	// 注入短逾時與較小重試次數，測試可在數秒內完成
	cfg := &queue.RedisStreamScanQueueConfig{
		ClaimMinIdleTime:   200 * time.Millisecond,
		MaxRetryCount:      3,
		ReadGroupBlockTime: 200 * time.Millisecond,
	}
	q, err := queue.NewRedisStreamScanQueue(testRdb, "poison-test", cfg)
	require.NoError(t, err)

	event := testScanEvent("poison-code")
	require.NoError(t, q.PublishScan(ctx, event))

	subCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	delCh, err := q.SubscribeScans(subCtx)
	require.NoError(t, err)

	// 每次收到都 Nack(requeue)；超過 MaxRetryCount 後實作會丟棄，不再投遞
	received := 0
	waitNoMore := 500 * time.Millisecond
loop:
	for {
		select {
		case d, ok := <-delCh:
			if !ok {
				t.Fatalf("channel 提早關閉，只收到 %d 次", received)
			}
			require.NotNil(t, d.Data)
			assert.Equal(t, event.Code, d.Data.Code)
			received++
			d.Nack(true)
		case <-time.After(waitNoMore):
			if received >= 1 {
				break loop
			}
			t.Fatalf("timeout 未收到任何一筆")
		case <-subCtx.Done():
			t.Fatalf("test context timeout，只收到 %d 次", received)
		}
	}

	require.GreaterOrEqual(t, received, 1, "應至少收到 1 次")
	// 驗證結果：已不再投遞；若再收到同一筆則失敗
	select {
	case d, ok := <-delCh:
		if ok && d.Data != nil && d.Data.Code == event.Code {
			t.Fatalf("超過 MaxRetryCount 後應丟棄毒藥消息，不應再投遞: Code=%s", d.Data.Code)
		}
	case <-time.After(500 * time.Millisecond):
		// 短時間內無再投遞，視為已丟棄
	}
}

// --- 關閉行為：context 取消時 channel 關閉 ---

func TestRedisStreamScanQueue_Subscribe_ctxCancel_closesChannel(t *testing.T) {
	ctx := context.Background()
	cleanupStream(ctx, t)

	q, err := queue.NewRedisStreamScanQueue(testRdb, "cancel-test", nil)
	require.NoError(t, err)

	subCtx, cancel := context.WithCancel(ctx)
	delCh, err := q.SubscribeScans(subCtx)
	require.NoError(t, err)

	cancel()
	select {
	case _, ok := <-delCh:
		assert.False(t, ok, "context 取消後 channel 應關閉")
	case <-time.After(3 * time.Second):
		t.Fatal("channel 未在時限內關閉")
	}
}

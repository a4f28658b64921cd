package acquirer

import (
	"context"
	"io"
	"strings"
	"sync"
	"sync/atomic"

	apperrors "ticket-qr-gate/pkg/app_errors"
	"ticket-qr-gate/pkg/logger"

	"go.uber.org/zap"
)

// VideoDevice 一個可用的視訊輸入裝置
type VideoDevice struct {
	ID    string
	Label string
}

// DeviceProvider 列舉可用的視訊輸入裝置
type DeviceProvider interface {
	VideoInputs(ctx context.Context) ([]VideoDevice, error)
}

// StreamDecoder 對指定裝置開啟連續解碼串流
// 每解出一個 frame 呼叫一次 onDecode、串流層錯誤呼叫 onError；Close 釋放裝置
type StreamDecoder interface {
	Open(ctx context.Context, deviceID string, onDecode func(text string), onError func(err error)) (io.Closer, error)
}

// CameraScanner 相機擷取：挑選裝置、開啟連續解碼、首次成功即停止並送出
// 執行期間互斥；錯誤時停止掃描並回到可重新啟動狀態，不自動重試
type CameraScanner struct {
	provider DeviceProvider
	decoder  StreamDecoder
	sink     Sink
	running  atomic.Bool
}

func NewCameraScanner(provider DeviceProvider, decoder StreamDecoder, sink Sink) *CameraScanner {
	return &CameraScanner{provider: provider, decoder: decoder, sink: sink}
}

// IsRunning 是否有進行中的相機 session
func (s *CameraScanner) IsRunning() bool {
	return s.running.Load()
}

// Scan 啟動一次相機擷取，阻塞到首次解碼成功、解碼錯誤或 ctx 取消為止
// 裝置在三種結束路徑都會被釋放，不遺留 handle
func (s *CameraScanner) Scan(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return apperrors.ErrCameraBusy
	}
	defer s.running.Store(false)

	devices, err := s.provider.VideoInputs(ctx)
	if err != nil {
		logger.WithComponent("scanner").Warn("list video inputs failed", zap.Error(err))
		return err
	}
	device, err := pickDevice(devices)
	if err != nil {
		return err
	}

	type outcome struct {
		code string
		err  error
	}
	resultCh := make(chan outcome, 1)
	var once sync.Once

	// 回呼逐 frame 觸發，包裝成單次結果：第一個成功解碼（或錯誤）定案
	closer, err := s.decoder.Open(ctx, device.ID,
		func(text string) {
			once.Do(func() { resultCh <- outcome{code: text} })
		},
		func(decodeErr error) {
			once.Do(func() { resultCh <- outcome{err: decodeErr} })
		},
	)
	if err != nil {
		logger.WithComponent("scanner").Warn("open camera stream failed",
			zap.String("device_id", device.ID), zap.Error(err))
		return err
	}
	defer closer.Close()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case res := <-resultCh:
		if res.err != nil {
			logger.WithComponent("scanner").Warn("camera decode failed", zap.Error(res.err))
			return res.err
		}
		s.sink(res.code)
		return nil
	}
}

// pickDevice 優先選 label 含 back／environment 的鏡頭，否則取第一個
func pickDevice(devices []VideoDevice) (VideoDevice, error) {
	if len(devices) == 0 {
		return VideoDevice{}, apperrors.ErrNoVideoDevice
	}
	for _, d := range devices {
		label := strings.ToLower(d.Label)
		if strings.Contains(label, "back") || strings.Contains(label, "environment") {
			return d, nil
		}
	}
	return devices[0], nil
}

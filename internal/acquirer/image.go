package acquirer

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"

	apperrors "ticket-qr-gate/pkg/app_errors"
	"ticket-qr-gate/pkg/logger"

	"go.uber.org/zap"
)

// ImageScanner 上傳圖片的單次解碼
// 無狀態：每次嘗試（成功或失敗）結束即復位，同一個檔案可以重新提交
type ImageScanner struct {
	sink Sink
}

func NewImageScanner(sink Sink) *ImageScanner {
	return &ImageScanner{sink: sink}
}

// ScanImage 解讀一張上傳圖片中的 QR code
// 讀不出來一律回 ErrUnreadableImage（與相機錯誤區隔的使用者層錯誤）
func (s *ImageScanner) ScanImage(r io.Reader) error {
	img, _, err := image.Decode(r)
	if err != nil {
		logger.WithComponent("scanner").Warn("decode uploaded image failed", zap.Error(err))
		return fmt.Errorf("%w: %v", apperrors.ErrUnreadableImage, err)
	}

	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrUnreadableImage, err)
	}

	result, err := qrcode.NewQRCodeReader().Decode(bmp, nil)
	if err != nil {
		logger.WithComponent("scanner").Warn("no qr code in uploaded image", zap.Error(err))
		return fmt.Errorf("%w: %v", apperrors.ErrUnreadableImage, err)
	}

	s.sink(result.GetText())
	return nil
}

package service

import (
	"context"
	"fmt"
	"time"

	"ticket-qr-gate/internal/cache"
	"ticket-qr-gate/internal/model"
	"ticket-qr-gate/internal/queue"
	"ticket-qr-gate/internal/repository"
	apperrors "ticket-qr-gate/pkg/app_errors"
	"ticket-qr-gate/pkg/logger"

	"github.com/google/uuid"
	qrencode "github.com/skip2/go-qrcode"
	"go.uber.org/zap"
)

const qrImageSize = 256

type QRService interface {
	// 簽發：為一個票券單位產生新的 QR（舊紀錄不刪除，顯示端取最新者）
	IssueQR(ctx context.Context, req model.IssueQRRequest) (*model.QRCodeIssued, error)
	// 核銷：驗證並標記掃描，成功後發佈入場事件
	ValidateCode(ctx context.Context, rawCode string) (*model.ValidationResult, error)
}

type QRServiceImpl struct {
	repo      repository.QRRepository
	guard     cache.RedemptionGuard
	scanQueue queue.ScanQueue
	window    time.Duration
	baseURL   string
}

func NewQRService(
	repo repository.QRRepository,
	guard cache.RedemptionGuard,
	scanQueue queue.ScanQueue,
	window time.Duration,
	baseURL string,
) QRService {
	return &QRServiceImpl{
		repo:      repo,
		guard:     guard,
		scanQueue: scanQueue,
		window:    window,
		baseURL:   baseURL,
	}
}

func (s *QRServiceImpl) IssueQR(ctx context.Context, req model.IssueQRRequest) (*model.QRCodeIssued, error) {
	rec := &model.QRRecord{
		Code:           uuid.New().String(),
		OrderID:        req.OrderID,
		EventID:        req.EventID,
		TicketID:       req.TicketID,
		TicketQtyIndex: req.TicketQtyIndex,
		AreaID:         req.AreaID,
		SeatNumber:     req.SeatNumber,
	}

	created, err := s.repo.Issue(ctx, rec)
	if err != nil {
		return nil, err
	}

	payload := fmt.Sprintf("%s%s%d/%s", s.baseURL, model.QRIdentitySegment, created.EventID, created.Code)

	png, err := qrencode.Encode(payload, qrencode.Medium, qrImageSize)
	if err != nil {
		return nil, fmt.Errorf("encode qr image: %w", err)
	}

	return &model.QRCodeIssued{
		Record:  created,
		Payload: payload,
		PNG:     png,
	}, nil
}

// ValidateCode 核銷流程：解析 → 查紀錄 → 檢查狀態與時間窗 → 原子領取 → 落庫 → 發佈事件
// rawCode 可為完整 qr-identity URL 或裸 code
func (s *QRServiceImpl) ValidateCode(ctx context.Context, rawCode string) (*model.ValidationResult, error) {
	code := rawCode
	if identity := model.ParseQRIdentity(rawCode); !identity.IsZero() {
		code = identity.Code
	}
	if code == "" {
		return nil, apperrors.ErrMalformedCode
	}

	rec, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if rec.IsScanned {
		return nil, apperrors.ErrQRAlreadyScanned
	}
	if rec.IsExpired(s.window, time.Now()) {
		return nil, apperrors.ErrQRExpired
	}

	claimed, err := s.guard.Claim(ctx, code, rec.CreatedAt, s.window)
	if err != nil {
		return nil, err
	}
	if !claimed {
		return nil, apperrors.ErrQRAlreadyScanned
	}

	if err := s.repo.MarkScanned(ctx, code); err != nil {
		// 落庫失敗時釋放領取紀錄，讓操作員能重試
		// Release 使用 context.Background() 傳遞, 確保一定會執行
		if releaseErr := s.guard.Release(context.Background(), code); releaseErr != nil {
			logger.WithComponent("service").Error("release claim failed",
				zap.String("code", code), zap.Error(releaseErr))
		}
		return nil, err
	}

	now := time.Now().UTC()
	rec.IsScanned = true
	rec.ScannedAt = &now

	event := &model.ScanEvent{
		Code:      rec.Code,
		EventID:   rec.EventID,
		OrderID:   rec.OrderID,
		UnitLabel: unitLabel(rec),
		ScannedAt: now,
	}
	// 入場稽核是事後紀錄：發佈失敗只記 log，不回滾已完成的核銷
	if err := s.scanQueue.PublishScan(ctx, event); err != nil {
		logger.WithComponent("service").Error("publish scan event failed",
			zap.String("code", rec.Code), zap.Error(err))
	}

	return &model.ValidationResult{
		StatusCode: 200,
		Message:    "Ticket verified",
		Data:       rec,
	}, nil
}

func unitLabel(rec *model.QRRecord) string {
	if rec.TicketID != "" {
		return fmt.Sprintf("%s-%d", rec.TicketID, rec.TicketQtyIndex)
	}
	return fmt.Sprintf("%d-%d", rec.AreaID, rec.SeatNumber)
}

package verifier

import (
	"context"
	"sync"
	"time"

	"ticket-qr-gate/internal/model"
	apperrors "ticket-qr-gate/pkg/app_errors"
	"ticket-qr-gate/pkg/logger"

	"go.uber.org/zap"
)

// DefaultAutoCloseDelay 驗證成功後確認視窗自動關閉的預設延遲
const DefaultAutoCloseDelay = 4 * time.Second

// 遠端驗證失敗又沒給原因時的後備訊息
const fallbackRejectMessage = "Unable to verify ticket"

// ValidationClient 遠端 validate-by-code 端點
type ValidationClient interface {
	ValidateCode(ctx context.Context, code string) (*model.ValidationResult, error)
}

// ControllerConfig 可注入的延遲設定；nil 或零值時使用預設
type ControllerConfig struct {
	AutoCloseDelay time.Duration
}

// Controller 持有 ScanSession 狀態機，介接擷取端與遠端驗證
//
// 同一時間只有一個 session；validating 期間最多一個 in-flight 請求，
// 期間新擷取的碼會被防禦性忽略而非破壞狀態。
// validating 中不支援中途取消：in-flight 請求跑完、結果套用到當下的 session
// （最後取得的碼為準），這是沿用來源系統的已知簡化。
type Controller struct {
	client    ValidationClient
	autoClose time.Duration

	mu         sync.Mutex
	state      model.SessionState
	rawCode    string
	identity   model.QRIdentity
	errMsg     string
	confirmed  bool
	closeTimer *time.Timer
}

func NewController(client ValidationClient, config *ControllerConfig) *Controller {
	autoClose := DefaultAutoCloseDelay
	if config != nil && config.AutoCloseDelay > 0 {
		autoClose = config.AutoCloseDelay
	}
	return &Controller{
		client:    client,
		autoClose: autoClose,
		state:     model.SessionIdle,
	}
}

// Snapshot UI 綁定的介面狀態
type Snapshot struct {
	State           model.SessionState `json:"state"`
	RawCode         string             `json:"raw_code"`
	EventID         string             `json:"event_id"`
	Code            string             `json:"code"`
	PopupOpen       bool               `json:"is_verification_popup_open"`
	Loading         bool               `json:"loading"`
	TicketConfirmed bool               `json:"is_ticket_confirmed"`
	ScanError       string             `json:"scan_error,omitempty"`
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		State:           c.state,
		RawCode:         c.rawCode,
		EventID:         c.identity.EventID,
		Code:            c.identity.Code,
		PopupOpen:       c.state != model.SessionIdle,
		Loading:         c.state == model.SessionValidating,
		TicketConfirmed: c.confirmed,
		ScanError:       c.errMsg,
	}
}

// Acquire 任一擷取方式取得碼時進入 code_acquired 並打開確認視窗，
// 同時清掉前一輪的錯誤與 confirmed 旗標
// validating 期間的重疊擷取被忽略（回 ErrScanInProgress），不覆寫進行中的 session
func (c *Controller) Acquire(rawCode string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == model.SessionValidating {
		logger.WithComponent("verifier").Warn("code acquired while validating, ignored",
			zap.String("raw_code", rawCode))
		return apperrors.ErrScanInProgress
	}

	c.stopCloseTimer()
	c.rawCode = rawCode
	c.identity = model.ParseQRIdentity(rawCode)
	c.errMsg = ""
	c.confirmed = false
	c.state = model.SessionCodeAcquired
	return nil
}

// Confirm 操作員確認後呼叫遠端驗證，同一 session 僅允許一個 in-flight 請求
// 解析失敗的碼在發出任何網路請求前即被拒絕
func (c *Controller) Confirm(ctx context.Context) error {
	c.mu.Lock()

	if c.state == model.SessionValidating {
		c.mu.Unlock()
		return apperrors.ErrScanInProgress
	}
	if !c.state.CanTransitionTo(model.SessionValidating) {
		c.mu.Unlock()
		return apperrors.ErrInvalidInput
	}

	if c.identity.IsZero() {
		c.state = model.SessionRejected
		c.errMsg = apperrors.ErrMalformedCode.Error()
		c.mu.Unlock()
		return apperrors.ErrMalformedCode
	}

	c.state = model.SessionValidating
	code := c.identity.Code
	c.mu.Unlock()

	// 不持鎖等待遠端回應，UI 在此期間仍可讀取 Snapshot
	result, err := c.client.ValidateCode(ctx, code)

	c.mu.Lock()
	defer c.mu.Unlock()

	// validating 期間 Acquire／Cancel 皆被擋下，session 不會在腳下被換掉
	if c.state != model.SessionValidating {
		return nil
	}

	if err != nil {
		logger.WithComponent("verifier").Warn("validate call failed", zap.Error(err))
		c.state = model.SessionRejected
		c.errMsg = err.Error()
		return nil
	}

	if !result.IsSuccess() {
		c.state = model.SessionRejected
		c.errMsg = result.Message
		if c.errMsg == "" {
			c.errMsg = fallbackRejectMessage
		}
		return nil
	}

	c.state = model.SessionConfirmed
	c.confirmed = true
	c.errMsg = ""
	c.scheduleAutoClose()
	return nil
}

// Cancel 在 code_acquired／rejected／confirmed 丟棄整個 session，無副作用
// validating 中不支援取消，呼叫被忽略
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == model.SessionValidating {
		return
	}
	c.resetLocked()
}

// scheduleAutoClose confirmed 後延遲自動關閉，操作員先手動關閉則計時器作廢
func (c *Controller) scheduleAutoClose() {
	c.stopCloseTimer()
	c.closeTimer = time.AfterFunc(c.autoClose, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.state == model.SessionConfirmed {
			c.resetLocked()
		}
	})
}

func (c *Controller) stopCloseTimer() {
	if c.closeTimer != nil {
		c.closeTimer.Stop()
		c.closeTimer = nil
	}
}

func (c *Controller) resetLocked() {
	c.stopCloseTimer()
	c.state = model.SessionIdle
	c.rawCode = ""
	c.identity = model.QRIdentity{}
	c.errMsg = ""
	c.confirmed = false
}

package model

import (
	"strings"
	"time"
)

// QRIdentitySegment QR payload 的路徑識別段：.../qr-identity/<eventId>/<code>
const QRIdentitySegment = "/qr-identity/"

// QRRecord 一張票券單位對應的掃描碼
// TicketQtyIndex 與後端約定為 1-based（第一張票是 1），
// 與 TicketUnit 的 0-based UnitIndex 差一，屬既有外部契約，不可修正
type QRRecord struct {
	ID             int        `json:"id" db:"id"`
	Code           string     `json:"code" db:"code"`
	OrderID        int        `json:"order_id" db:"order_id"`
	EventID        int        `json:"event_id" db:"event_id"`
	TicketID       string     `json:"ticket_id,omitempty" db:"ticket_id"`
	TicketQtyIndex int        `json:"ticket_qty_index,omitempty" db:"ticket_qty_index"`
	AreaID         int        `json:"area_id,omitempty" db:"area_id"`
	SeatNumber     int        `json:"seat_number,omitempty" db:"seat_number"`
	IsScanned      bool       `json:"is_scanned" db:"is_scanned"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
	ScannedAt      *time.Time `json:"scanned_at,omitempty" db:"scanned_at"`
}

// IsExpired 檢查是否超過有效時間窗（純推導狀態，不落庫）
func (r *QRRecord) IsExpired(window time.Duration, now time.Time) bool {
	return now.After(r.CreatedAt.Add(window))
}

// QRIdentity 從原始掃描字串解析出的識別欄位
type QRIdentity struct {
	EventID string `json:"event_id"`
	Code    string `json:"code"`
}

func (i QRIdentity) IsZero() bool {
	return i.EventID == "" && i.Code == ""
}

// ParseQRIdentity 解析 .../qr-identity/<eventId>/<code> 形式的掃描字串
// 結構不符時回傳零值（兩個欄位皆空），由呼叫端轉成驗證錯誤，不得 panic
func ParseQRIdentity(raw string) QRIdentity {
	_, tail, found := strings.Cut(raw, QRIdentitySegment)
	if !found {
		return QRIdentity{}
	}
	segs := strings.Split(tail, "/")
	if len(segs) < 2 || segs[0] == "" || segs[1] == "" {
		return QRIdentity{}
	}
	return QRIdentity{EventID: segs[0], Code: segs[1]}
}

// ValidationResult 外部驗證服務的回應：statusCode == 200 代表驗證／核銷成功
type ValidationResult struct {
	StatusCode int       `json:"statusCode"`
	Message    string    `json:"message"`
	Data       *QRRecord `json:"data,omitempty"`
}

func (r *ValidationResult) IsSuccess() bool {
	return r.StatusCode == 200
}

// IssueQRRequest 簽發 QR 的請求：regular 票傳 ticket_id + ticket_qty_index，
// seat-mapped 票傳 area_id + seat_number
type IssueQRRequest struct {
	OrderID        int    `json:"order_id" binding:"required"`
	EventID        int    `json:"event_id" binding:"required"`
	TicketID       string `json:"ticket_id"`
	TicketQtyIndex int    `json:"ticket_qty_index"`
	AreaID         int    `json:"area_id"`
	SeatNumber     int    `json:"seat_number"`
}

// QRCodeIssued 簽發結果：PNG 會以 base64 編碼進 JSON
type QRCodeIssued struct {
	Record  *QRRecord `json:"record"`
	Payload string    `json:"payload"`
	PNG     []byte    `json:"png_base64"`
}

// ValidateCodeRequest 核銷請求，code 可為完整 qr-identity URL 或裸 code
type ValidateCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

package expiry

import (
	"time"

	"ticket-qr-gate/internal/model"
)

// DefaultValidityWindow QR 產生後的預設有效時間
const DefaultValidityWindow = 5 * time.Minute

// DefaultTickInterval 倒數重算的預設間隔
const DefaultTickInterval = time.Second

// State 單一票券單位的顯示狀態，優先序：Scanned > NotGenerated > Expired > Active
type State string

const (
	StateScanned      State = "scanned"
	StateNotGenerated State = "not_generated"
	StateExpired      State = "expired"
	StateActive       State = "active"
)

// Snapshot 單次推導結果，Active 時附帶剩餘分秒
type Snapshot struct {
	State       State `json:"state"`
	MinutesLeft int   `json:"minutes_left"`
	SecondsLeft int   `json:"seconds_left"`
}

// IsTerminal 檢查狀態是否不再變化（倒數可以停止）
func (s Snapshot) IsTerminal() bool {
	return s.State != StateActive
}

// Evaluate 純推導：不發網路請求、不記憶前次結果，每次呼叫都從頭計算
func Evaluate(rec *model.QRRecord, window time.Duration, now time.Time) Snapshot {
	if rec != nil && rec.IsScanned {
		return Snapshot{State: StateScanned}
	}
	if rec == nil {
		return Snapshot{State: StateNotGenerated}
	}

	remaining := rec.CreatedAt.Add(window).Sub(now)
	if remaining <= 0 {
		return Snapshot{State: StateExpired}
	}

	total := int(remaining / time.Second)
	return Snapshot{
		State:       StateActive,
		MinutesLeft: total / 60,
		SecondsLeft: total % 60,
	}
}

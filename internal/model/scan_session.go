package model

// SessionState 一次驗證流程（ScanSession）的狀態類型
type SessionState string

const (
	SessionIdle         SessionState = "idle"
	SessionCodeAcquired SessionState = "code_acquired"
	SessionValidating   SessionState = "validating"
	SessionConfirmed    SessionState = "confirmed"
	SessionRejected     SessionState = "rejected"
)

// IsValid 驗證狀態是否有效
func (s SessionState) IsValid() bool {
	switch s {
	case SessionIdle, SessionCodeAcquired, SessionValidating, SessionConfirmed, SessionRejected:
		return true
	}
	return false
}

// CanTransitionTo 檢查是否可以轉換到目標狀態
// rejected 可重新進入 validating（操作員手動重試），confirmed 只能關閉回 idle
func (s SessionState) CanTransitionTo(target SessionState) bool {
	transitions := map[SessionState][]SessionState{
		SessionIdle:         {SessionCodeAcquired},
		SessionCodeAcquired: {SessionValidating, SessionRejected, SessionIdle},
		SessionValidating:   {SessionConfirmed, SessionRejected},
		SessionConfirmed:    {SessionIdle, SessionCodeAcquired},
		SessionRejected:     {SessionValidating, SessionIdle, SessionCodeAcquired},
	}

	allowed, ok := transitions[s]
	if !ok {
		return false
	}

	for _, state := range allowed {
		if state == target {
			return true
		}
	}
	return false
}

// IsTerminal 檢查是否為本次驗證的結果狀態
func (s SessionState) IsTerminal() bool {
	return s == SessionConfirmed || s == SessionRejected
}

package acquirer

import (
	"strings"

	apperrors "ticket-qr-gate/pkg/app_errors"
)

// ManualEntry 手動輸入：明確 Submit 才送出（非即時逐字），內容原樣轉發
type ManualEntry struct {
	sink Sink
}

func NewManualEntry(sink Sink) *ManualEntry {
	return &ManualEntry{sink: sink}
}

func (m *ManualEntry) Submit(code string) error {
	if strings.TrimSpace(code) == "" {
		return apperrors.ErrInvalidInput
	}
	m.sink(code)
	return nil
}

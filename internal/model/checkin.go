package model

import "time"

// ScanEvent 核銷成功後發佈到隊列的事件，由 worker 寫入入場紀錄
type ScanEvent struct {
	Code      string    `json:"code"`
	EventID   int       `json:"event_id"`
	OrderID   int       `json:"order_id"`
	UnitLabel string    `json:"unit_label"`
	ScannedAt time.Time `json:"scanned_at"`
}

// CheckIn 入場稽核紀錄
type CheckIn struct {
	ID        int       `json:"id" db:"id"`
	EventID   int       `json:"event_id" db:"event_id"`
	OrderID   int       `json:"order_id" db:"order_id"`
	Code      string    `json:"code" db:"code"`
	UnitLabel string    `json:"unit_label" db:"unit_label"`
	ScannedAt time.Time `json:"scanned_at" db:"scanned_at"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

package model

import "fmt"

// TicketUnit 訂單內一個可定址、可掃描的票券單位
// regular 票以 (TicketID, UnitIndex) 識別、UnitIndex 為 0-based；
// seat-mapped 票以 (AreaID, SeatNumber) 識別
// 每次抓取訂單時重新推導，client 端不持久化、不就地修改
type TicketUnit struct {
	OrderID    int     `json:"order_id"`
	TicketID   string  `json:"ticket_id,omitempty"`
	UnitIndex  int     `json:"unit_index"`
	AreaID     int     `json:"area_id,omitempty"`
	SeatNumber int     `json:"seat_number,omitempty"`
	Seated     bool    `json:"seated"`
	Label      string  `json:"label"`
	Price      float64 `json:"price"`
}

// Key 顯示用的單位識別字串
func (u TicketUnit) Key() string {
	if u.Seated {
		return fmt.Sprintf("%d-%d", u.AreaID, u.SeatNumber)
	}
	return fmt.Sprintf("%s-%d", u.TicketID, u.UnitIndex)
}

// ResolvedUnit 單位與其權威 QRRecord 的配對，QR 為 nil 代表尚未產生
type ResolvedUnit struct {
	Unit TicketUnit `json:"unit"`
	QR   *QRRecord  `json:"qr_record,omitempty"`
}

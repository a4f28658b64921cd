package model

import "time"

// Order 訂單，兩種互斥的票券形態擇一：
// SeatMapDetails（座位圖，一筆即一個單位）或 Items（一般票種，依數量展開）
// 下游一律透過 resolver 攤平成 TicketUnit，不直接讀原始形態
type Order struct {
	ID             int             `json:"id" db:"id"`
	EventID        int             `json:"event_id" db:"event_id"`
	BuyerName      string          `json:"buyer_name" db:"buyer_name"`
	Status         string          `json:"status" db:"status"`
	Items          []OrderItem     `json:"order_items,omitempty"`
	SeatMapDetails []SeatMapDetail `json:"seat_map_details,omitempty"`
	QRCodes        []QRRecord      `json:"qr_codes"`
	CreatedAt      time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at" db:"updated_at"`
	DeletedAt      *time.Time      `json:"deleted_at,omitempty" db:"deleted_at"`
}

// IsSeatMapped 判斷訂單屬於哪一種票券形態
func (o *Order) IsSeatMapped() bool {
	return len(o.SeatMapDetails) > 0
}

// IsDeleted 檢查訂單是否已刪除
func (o *Order) IsDeleted() bool {
	return o.DeletedAt != nil
}

// OrderItem 一般票種的訂單項目，Quantity N 會展開為 N 個 TicketUnit
type OrderItem struct {
	ID       int     `json:"id" db:"id"`
	OrderID  int     `json:"order_id" db:"order_id"`
	TicketID string  `json:"ticket_id" db:"ticket_id"`
	Type     string  `json:"type" db:"type"`
	Price    float64 `json:"price" db:"price"`
	Quantity int     `json:"quantity" db:"quantity"`
}

// SeatMapDetail 座位圖訂單的單一座位，天生 1:1 對應一個 TicketUnit
type SeatMapDetail struct {
	ID         int     `json:"id" db:"id"`
	OrderID    int     `json:"order_id" db:"order_id"`
	AreaID     int     `json:"area_id" db:"area_id"`
	SeatNumber int     `json:"seat_number" db:"seat_number"`
	AreaName   string  `json:"area_name" db:"area_name"`
	Price      float64 `json:"price" db:"price"`
}

// OrderUnitsResponse 訂單攤平後的掃描顯示資料
type OrderUnitsResponse struct {
	OrderID        int            `json:"order_id"`
	EventID        int            `json:"event_id"`
	Units          []ResolvedUnit `json:"units"`
	PercentScanned int            `json:"percent_scanned"`
}

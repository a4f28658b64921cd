package resolver

import (
	"sort"

	"ticket-qr-gate/internal/model"
)

// Resolve 將訂單的兩種票券形態攤平成統一的 TicketUnit 序列，並配上各自的權威 QRRecord
// 輸出順序與輸入一致；同一單位有多筆候選紀錄時（重新簽發）取 created_at 最新者
func Resolve(order *model.Order) []model.ResolvedUnit {
	if order == nil {
		return []model.ResolvedUnit{}
	}

	records := sortedByCreatedAtDesc(order.QRCodes)

	if order.IsSeatMapped() {
		return resolveSeated(order, records)
	}
	return resolveRegular(order, records)
}

// resolveSeated 座位圖形態：一座位即一單位，以 (seat_number, area_id) 配對
func resolveSeated(order *model.Order, records []*model.QRRecord) []model.ResolvedUnit {
	units := make([]model.ResolvedUnit, 0, len(order.SeatMapDetails))
	for _, seat := range order.SeatMapDetails {
		unit := model.TicketUnit{
			OrderID:    order.ID,
			AreaID:     seat.AreaID,
			SeatNumber: seat.SeatNumber,
			Seated:     true,
			Label:      seat.AreaName,
			Price:      seat.Price,
		}
		qr := firstMatch(records, func(r *model.QRRecord) bool {
			return r.SeatNumber == seat.SeatNumber && r.AreaID == seat.AreaID
		})
		units = append(units, model.ResolvedUnit{Unit: unit, QR: qr})
	}
	return units
}

// resolveRegular 一般形態：quantity N 展開為 N 個單位（0-based index）
// QRRecord 的 ticket_qty_index 為 1-based，配對時須 +1，屬後端既有契約
func resolveRegular(order *model.Order, records []*model.QRRecord) []model.ResolvedUnit {
	units := make([]model.ResolvedUnit, 0)
	for _, item := range order.Items {
		for i := 0; i < item.Quantity; i++ {
			unit := model.TicketUnit{
				OrderID:   order.ID,
				TicketID:  item.TicketID,
				UnitIndex: i,
				Label:     item.Type,
				Price:     item.Price,
			}
			wantQtyIndex := i + 1
			qr := firstMatch(records, func(r *model.QRRecord) bool {
				return r.TicketID == item.TicketID && r.TicketQtyIndex == wantQtyIndex
			})
			units = append(units, model.ResolvedUnit{Unit: unit, QR: qr})
		}
	}
	return units
}

// PercentScanned 已掃描比例；單位數為 0 時回傳 0，不得出現除以零
func PercentScanned(units []model.ResolvedUnit) int {
	if len(units) == 0 {
		return 0
	}
	scanned := 0
	for _, u := range units {
		if u.QR != nil && u.QR.IsScanned {
			scanned++
		}
	}
	return scanned * 100 / len(units)
}

// sortedByCreatedAtDesc 先整體降冪排序，firstMatch 取到的即為最新簽發的紀錄
func sortedByCreatedAtDesc(records []model.QRRecord) []*model.QRRecord {
	sorted := make([]*model.QRRecord, 0, len(records))
	for i := range records {
		sorted = append(sorted, &records[i])
	}
	sort.SliceStable(sorted, func(a, b int) bool {
		return sorted[a].CreatedAt.After(sorted[b].CreatedAt)
	})
	return sorted
}

func firstMatch(records []*model.QRRecord, match func(*model.QRRecord) bool) *model.QRRecord {
	for _, r := range records {
		if match(r) {
			return r
		}
	}
	return nil
}

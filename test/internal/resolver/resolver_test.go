package resolver

import (
	"testing"
	"time"

	"ticket-qr-gate/internal/model"
	"ticket-qr-gate/internal/resolver"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_RegularOrder(t *testing.T) {
	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Quantity expands to indexed units", func(t *testing.T) {
		order := &model.Order{
			ID:    7,
			Items: []model.OrderItem{{TicketID: "T1", Type: "regular", Price: 10, Quantity: 3}},
		}

		units := resolver.Resolve(order)

		require.Len(t, units, 3)
		assert.Equal(t, "T1-0", units[0].Unit.Key())
		assert.Equal(t, "T1-1", units[1].Unit.Key())
		assert.Equal(t, "T1-2", units[2].Unit.Key())
		for _, u := range units {
			assert.Nil(t, u.QR)
			assert.Equal(t, 7, u.Unit.OrderID)
			assert.Equal(t, 10.0, u.Unit.Price)
		}
	})

	t.Run("QtyIndex is 1-based against 0-based unit index", func(t *testing.T) {
		order := &model.Order{
			ID:    7,
			Items: []model.OrderItem{{TicketID: "T1", Type: "regular", Price: 10, Quantity: 3}},
			QRCodes: []model.QRRecord{
				{Code: "abc", TicketID: "T1", TicketQtyIndex: 2, CreatedAt: t0},
			},
		}

		units := resolver.Resolve(order)

		require.Len(t, units, 3)
		// ticket_qty_index 2 對應 0-based 單位 index 1
		assert.Nil(t, units[0].QR)
		require.NotNil(t, units[1].QR)
		assert.Equal(t, "abc", units[1].QR.Code)
		assert.Nil(t, units[2].QR)
	})

	t.Run("Reissued code - latest created_at wins", func(t *testing.T) {
		order := &model.Order{
			ID:    7,
			Items: []model.OrderItem{{TicketID: "T1", Type: "regular", Price: 10, Quantity: 1}},
			QRCodes: []model.QRRecord{
				{Code: "old", TicketID: "T1", TicketQtyIndex: 1, CreatedAt: t0},
				{Code: "new", TicketID: "T1", TicketQtyIndex: 1, CreatedAt: t0.Add(time.Minute)},
			},
		}

		units := resolver.Resolve(order)

		require.Len(t, units, 1)
		require.NotNil(t, units[0].QR)
		assert.Equal(t, "new", units[0].QR.Code)
	})
}

func TestResolve_SeatMappedOrder(t *testing.T) {
	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Pairs by area and seat regardless of array order", func(t *testing.T) {
		order := &model.Order{
			ID: 9,
			SeatMapDetails: []model.SeatMapDetail{
				{AreaID: 2, SeatNumber: 8, AreaName: "B", Price: 30},
				{AreaID: 1, SeatNumber: 5, AreaName: "A", Price: 50},
			},
			QRCodes: []model.QRRecord{
				{Code: "seat-a5", AreaID: 1, SeatNumber: 5, CreatedAt: t0},
			},
		}

		units := resolver.Resolve(order)

		require.Len(t, units, 2)
		// 輸出順序跟隨輸入
		assert.Equal(t, "2-8", units[0].Unit.Key())
		assert.Equal(t, "1-5", units[1].Unit.Key())
		assert.Nil(t, units[0].QR)
		require.NotNil(t, units[1].QR)
		assert.Equal(t, "seat-a5", units[1].QR.Code)
	})
}

func TestPercentScanned(t *testing.T) {
	t.Run("Zero units renders zero", func(t *testing.T) {
		assert.Equal(t, 0, resolver.PercentScanned(nil))
		assert.Equal(t, 0, resolver.PercentScanned(resolver.Resolve(&model.Order{})))
	})

	t.Run("Counts only scanned units", func(t *testing.T) {
		units := []model.ResolvedUnit{
			{QR: &model.QRRecord{IsScanned: true}},
			{QR: &model.QRRecord{IsScanned: false}},
			{QR: nil},
			{QR: &model.QRRecord{IsScanned: true}},
		}
		assert.Equal(t, 50, resolver.PercentScanned(units))
	})
}

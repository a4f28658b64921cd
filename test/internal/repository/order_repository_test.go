package repository

import (
	"context"
	"testing"
	"time"

	"ticket-qr-gate/internal/repository"
	apperrors "ticket-qr-gate/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrderRepo() repository.OrderRepository {
	qrRepo := repository.NewQRRepository(getTestDB())
	return repository.NewOrderRepository(getTestDB(), qrRepo)
}

func TestOrderRepository_FindByID(t *testing.T) {
	repo := newOrderRepo()
	ctx := context.Background()

	t.Run("Success - regular order with items and qr codes", func(t *testing.T) {
		cleanup := setupTestWithTruncate(t)
		defer cleanup()

		orderID := createTestOrder(t, 42, "Test Buyer")
		createTestOrderItem(t, orderID, "T1", 3)
		createTestQRCode(t, uuid.New().String(), orderID, 42, "T1", 1, time.Now())

		found, err := repo.FindByID(ctx, orderID)

		require.NoError(t, err)
		assert.Equal(t, orderID, found.ID)
		assert.Equal(t, 42, found.EventID)
		assert.Equal(t, "Test Buyer", found.BuyerName)
		assert.False(t, found.IsSeatMapped())
		require.Len(t, found.Items, 1)
		assert.Equal(t, 3, found.Items[0].Quantity)
		assert.Len(t, found.QRCodes, 1)
	})

	t.Run("Success - seat mapped order", func(t *testing.T) {
		cleanup := setupTestWithTruncate(t)
		defer cleanup()

		orderID := createTestOrder(t, 42, "Seat Buyer")
		createTestSeatMapDetail(t, orderID, 1, 5)
		createTestSeatMapDetail(t, orderID, 1, 6)

		found, err := repo.FindByID(ctx, orderID)

		require.NoError(t, err)
		assert.True(t, found.IsSeatMapped())
		assert.Len(t, found.SeatMapDetails, 2)
		assert.Empty(t, found.QRCodes)
	})

	t.Run("NotFound", func(t *testing.T) {
		cleanup := setupTestWithTruncate(t)
		defer cleanup()

		_, err := repo.FindByID(ctx, 99999)

		require.Error(t, err)
		assert.Equal(t, apperrors.ErrOrderNotFound, err)
	})
}

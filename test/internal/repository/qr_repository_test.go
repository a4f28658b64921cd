package repository

import (
	"context"
	"testing"
	"time"

	"ticket-qr-gate/internal/model"
	"ticket-qr-gate/internal/repository"
	apperrors "ticket-qr-gate/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQRRepository_Issue(t *testing.T) {
	repo := repository.NewQRRepository(getTestDB())
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		cleanup := setupTestWithTruncate(t)
		defer cleanup()

		orderID := createTestOrder(t, 42, "Test Buyer")

		rec := &model.QRRecord{
			Code:           uuid.New().String(),
			OrderID:        orderID,
			EventID:        42,
			TicketID:       "T1",
			TicketQtyIndex: 1,
		}

		created, err := repo.Issue(ctx, rec)

		require.NoError(t, err)
		assert.NotZero(t, created.ID)
		assert.Equal(t, rec.Code, created.Code)
		assert.Equal(t, orderID, created.OrderID)
		assert.False(t, created.IsScanned)
		assert.NotZero(t, created.CreatedAt)
	})

	t.Run("Success - reissue keeps old record", func(t *testing.T) {
		cleanup := setupTestWithTruncate(t)
		defer cleanup()

		orderID := createTestOrder(t, 42, "Test Buyer")

		first := &model.QRRecord{Code: uuid.New().String(), OrderID: orderID, EventID: 42, TicketID: "T1", TicketQtyIndex: 1}
		_, err := repo.Issue(ctx, first)
		require.NoError(t, err)

		second := &model.QRRecord{Code: uuid.New().String(), OrderID: orderID, EventID: 42, TicketID: "T1", TicketQtyIndex: 1}
		_, err = repo.Issue(ctx, second)
		require.NoError(t, err)

		// 重新簽發不刪舊紀錄，同一單位可同時存在多筆
		records, err := repo.FindByOrderID(ctx, orderID)
		require.NoError(t, err)
		assert.Len(t, records, 2)
	})
}

func TestQRRepository_FindByCode(t *testing.T) {
	repo := repository.NewQRRepository(getTestDB())
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		cleanup := setupTestWithTruncate(t)
		defer cleanup()

		orderID := createTestOrder(t, 42, "Test Buyer")
		code := uuid.New().String()
		createTestQRCode(t, code, orderID, 42, "T1", 1, time.Now())

		found, err := repo.FindByCode(ctx, code)

		require.NoError(t, err)
		assert.Equal(t, code, found.Code)
		assert.Equal(t, orderID, found.OrderID)
		assert.Equal(t, "T1", found.TicketID)
		assert.Equal(t, 1, found.TicketQtyIndex)
		assert.Nil(t, found.ScannedAt)
	})

	t.Run("NotFound", func(t *testing.T) {
		cleanup := setupTestWithTruncate(t)
		defer cleanup()

		_, err := repo.FindByCode(ctx, "no-such-code")

		require.Error(t, err)
		assert.Equal(t, apperrors.ErrQRNotFound, err)
	})
}

func TestQRRepository_FindByOrderID(t *testing.T) {
	repo := repository.NewQRRepository(getTestDB())
	ctx := context.Background()

	t.Run("Success - newest first", func(t *testing.T) {
		cleanup := setupTestWithTruncate(t)
		defer cleanup()

		orderID := createTestOrder(t, 42, "Test Buyer")
		old := uuid.New().String()
		fresh := uuid.New().String()
		createTestQRCode(t, old, orderID, 42, "T1", 1, time.Now().Add(-time.Hour))
		createTestQRCode(t, fresh, orderID, 42, "T1", 1, time.Now())

		records, err := repo.FindByOrderID(ctx, orderID)

		require.NoError(t, err)
		require.Len(t, records, 2)
		// created_at 降冪：重新簽發後最新的排最前，即權威紀錄
		assert.Equal(t, fresh, records[0].Code)
		assert.Equal(t, old, records[1].Code)
	})

	t.Run("Success - empty order", func(t *testing.T) {
		cleanup := setupTestWithTruncate(t)
		defer cleanup()

		orderID := createTestOrder(t, 42, "Test Buyer")

		records, err := repo.FindByOrderID(ctx, orderID)

		require.NoError(t, err)
		assert.Empty(t, records)
	})
}

func TestQRRepository_MarkScanned(t *testing.T) {
	repo := repository.NewQRRepository(getTestDB())
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		cleanup := setupTestWithTruncate(t)
		defer cleanup()

		orderID := createTestOrder(t, 42, "Test Buyer")
		code := uuid.New().String()
		createTestQRCode(t, code, orderID, 42, "T1", 1, time.Now())

		err := repo.MarkScanned(ctx, code)

		require.NoError(t, err)
		found, err := repo.FindByCode(ctx, code)
		require.NoError(t, err)
		assert.True(t, found.IsScanned)
		require.NotNil(t, found.ScannedAt)
	})

	t.Run("Failed - ErrQRAlreadyScanned on second mark", func(t *testing.T) {
		cleanup := setupTestWithTruncate(t)
		defer cleanup()

		orderID := createTestOrder(t, 42, "Test Buyer")
		code := uuid.New().String()
		createTestQRCode(t, code, orderID, 42, "T1", 1, time.Now())

		require.NoError(t, repo.MarkScanned(ctx, code))

		err := repo.MarkScanned(ctx, code)
		assert.Equal(t, apperrors.ErrQRAlreadyScanned, err)
	})

	t.Run("Failed - unknown code", func(t *testing.T) {
		cleanup := setupTestWithTruncate(t)
		defer cleanup()

		err := repo.MarkScanned(ctx, "no-such-code")
		assert.Equal(t, apperrors.ErrQRAlreadyScanned, err)
	})
}

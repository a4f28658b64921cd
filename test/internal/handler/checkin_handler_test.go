package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ticket-qr-gate/internal/handler"
	"ticket-qr-gate/internal/model"
	"ticket-qr-gate/test/internal/mocks/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupCheckInTestRouter(mockService *services.CheckInServiceMock) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	checkInHandler := handler.NewCheckInHandler(mockService)
	checkInHandler.RegisterRoutes(router)

	return router
}

func TestListCheckIns(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := services.NewCheckInServiceMock()
		router := setupCheckInTestRouter(mockService)

		mockService.On("ListByEventID", mock.Anything, 42).Return([]*model.CheckIn{
			{ID: 1, EventID: 42, OrderID: 7, Code: "abc-123", UnitLabel: "T1-1", ScannedAt: time.Now()},
		}, nil)

		req, _ := http.NewRequest("GET", "/api/v1/events/42/checkins", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var checkIns []*model.CheckIn
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &checkIns))
		assert.Len(t, checkIns, 1)
		assert.Equal(t, "abc-123", checkIns[0].Code)
	})

	t.Run("Failed - non-numeric event id", func(t *testing.T) {
		mockService := services.NewCheckInServiceMock()
		router := setupCheckInTestRouter(mockService)

		req, _ := http.NewRequest("GET", "/api/v1/events/abc/checkins", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "ListByEventID", mock.Anything, mock.Anything)
	})

	t.Run("Failed - service error", func(t *testing.T) {
		mockService := services.NewCheckInServiceMock()
		router := setupCheckInTestRouter(mockService)

		mockService.On("ListByEventID", mock.Anything, 42).Return(nil, assert.AnError)

		req, _ := http.NewRequest("GET", "/api/v1/events/42/checkins", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

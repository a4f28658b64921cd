package handler

import (
	"errors"
	"net/http"
	"strconv"

	"ticket-qr-gate/internal/service"
	apperrors "ticket-qr-gate/pkg/app_errors"
	"ticket-qr-gate/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type OrderHandler struct {
	service service.OrderService
}

func NewOrderHandler(service service.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

func (h *OrderHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.GET("orders/:id", h.GetOrder)
		router.GET("orders/:id/units", h.GetOrderUnits)
	}
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	id := c.Param("id")
	idInt, err := strconv.Atoi(id)
	if err != nil {
		h.handleOrderError(c, err, "GetOrder")
		return
	}
	order, err := h.service.GetOrderByID(c, idInt)
	if err != nil {
		h.handleOrderError(c, err, "GetOrder")
		return
	}

	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) GetOrderUnits(c *gin.Context) {
	id := c.Param("id")
	idInt, err := strconv.Atoi(id)
	if err != nil {
		h.handleOrderError(c, err, "GetOrderUnits")
		return
	}
	units, err := h.service.GetOrderUnits(c, idInt)
	if err != nil {
		h.handleOrderError(c, err, "GetOrderUnits")
		return
	}

	c.JSON(http.StatusOK, units)
}

// Helper functions

func (h *OrderHandler) handleOrderError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrOrderNotFound):
		log.Warn("Order not found")
		RespondError(c, http.StatusNotFound, "Order not found")
	case errors.Is(err, strconv.ErrSyntax):
		log.Warn("Invalid order id")
		RespondError(c, http.StatusBadRequest, "Invalid order id")
	default:
		log.Error("Unexpected error")
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}

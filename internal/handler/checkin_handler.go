package handler

import (
	"net/http"
	"strconv"

	"ticket-qr-gate/internal/service"
	"ticket-qr-gate/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CheckInHandler struct {
	service service.CheckInService
}

func NewCheckInHandler(service service.CheckInService) *CheckInHandler {
	return &CheckInHandler{service: service}
}

func (h *CheckInHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.GET("events/:id/checkins", h.ListCheckIns)
	}
}

func (h *CheckInHandler) ListCheckIns(c *gin.Context) {
	id := c.Param("id")
	idInt, err := strconv.Atoi(id)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "Invalid event id")
		return
	}

	checkIns, err := h.service.ListByEventID(c, idInt)
	if err != nil {
		logger.WithComponent("handler").Error("list check-ins failed",
			zap.String("operation", "ListCheckIns"), zap.Error(err))
		RespondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, checkIns)
}

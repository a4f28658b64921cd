package handler

import (
	"errors"
	"net/http"

	"ticket-qr-gate/internal/model"
	"ticket-qr-gate/internal/service"
	apperrors "ticket-qr-gate/pkg/app_errors"
	"ticket-qr-gate/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type QRHandler struct {
	service service.QRService
}

func NewQRHandler(service service.QRService) *QRHandler {
	return &QRHandler{service: service}
}

func (h *QRHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.POST("qrcodes", h.IssueQR)
		router.POST("qrcodes/validate", h.ValidateCode)
	}
}

func (h *QRHandler) IssueQR(c *gin.Context) {
	var req model.IssueQRRequest

	if err := BindJson(c, &req); err != nil {
		return
	}

	issued, err := h.service.IssueQR(c, req)
	if err != nil {
		h.handleQRError(c, err, "IssueQR")
		return
	}

	c.JSON(http.StatusCreated, issued)
}

// ValidateCode 成功與失敗都用 {statusCode, message, data?} 信封回應，
// gate 端一律讀 body 的 statusCode 判斷結果
func (h *QRHandler) ValidateCode(c *gin.Context) {
	var req model.ValidateCodeRequest

	if err := BindJson(c, &req); err != nil {
		return
	}

	result, err := h.service.ValidateCode(c, req.Code)
	if err != nil {
		h.handleQRError(c, err, "ValidateCode")
		return
	}

	c.JSON(http.StatusOK, result)
}

// Helper functions

func (h *QRHandler) handleQRError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrMalformedCode):
		log.Warn("Malformed code")
		RespondError(c, http.StatusBadRequest, "Malformed ticket code")
	case errors.Is(err, apperrors.ErrQRNotFound):
		log.Warn("QR code not found")
		RespondError(c, http.StatusNotFound, "Ticket code not found")
	case errors.Is(err, apperrors.ErrQRAlreadyScanned):
		log.Warn("QR code already scanned")
		RespondError(c, http.StatusConflict, "Already scanned")
	case errors.Is(err, apperrors.ErrQRExpired):
		log.Warn("QR code expired")
		RespondError(c, http.StatusGone, "Ticket code expired")
	case errors.Is(err, apperrors.ErrInvalidInput):
		log.Warn("Invalid input")
		RespondError(c, http.StatusBadRequest, "Invalid input")
	default:
		log.Error("Unexpected error")
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}

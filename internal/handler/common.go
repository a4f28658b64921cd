package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIError 錯誤回應統一用 statusCode + message 信封，與 gate 端讀取的驗證契約一致
type APIError struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

func RespondError(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, APIError{StatusCode: statusCode, Message: message})
}

func BindJson(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		RespondError(c, http.StatusBadRequest, "Invalid request format")
		return err
	}
	return nil
}

func BindQuery(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindQuery(obj); err != nil {
		RespondError(c, http.StatusBadRequest, "Invalid request format")
		return err
	}
	return nil
}

func BindUri(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindUri(obj); err != nil {
		RespondError(c, http.StatusBadRequest, "Invalid request format")
		return err
	}
	return nil
}

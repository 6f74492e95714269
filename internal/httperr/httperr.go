package httperr

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/petcrm/internal/logger"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

// FromError writes a rejection with its own reason, or a generic 500 for
// anything that is not a BusinessError.
func FromError(c *gin.Context, err error, fallbackCode string) {
	be, ok := AsBusiness(err)
	if !ok {
		logger.ErrorLogger.WithError(err).WithField("code", fallbackCode).Error("request failed")
		Internal(c, fallbackCode, "Internal error.")
		return
	}

	message := be.Message
	if message == "" {
		message = be.Code
	}

	switch {
	case be.Code == CodeForbidden:
		Forbidden(c, be.Code, message)
	case strings.HasSuffix(be.Code, "_not_found"):
		NotFound(c, be.Code, message)
	default:
		BadRequest(c, be.Code, message)
	}
}

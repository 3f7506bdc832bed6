package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"invoicelens/internal/domain"
	"invoicelens/internal/middleware"
)

// APIResponse is the envelope for error responses.
type APIResponse struct {
	Success bool      `json:"success"`
	Error   *APIError `json:"error,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
// Client errors carry the error text so callers can see why the upload was rejected.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, "INVALID_INPUT", err.Error()
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size"
	case errors.Is(err, domain.ErrUnsupportedFormat):
		return http.StatusBadRequest, "UNSUPPORTED_FORMAT", err.Error()
	case errors.Is(err, domain.ErrConfiguration):
		return http.StatusInternalServerError, "EXTRACTOR_NOT_CONFIGURED", "extraction model is not configured"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, logger logrus.FieldLogger, err error) {
	status, code, msg := MapDomainError(err)
	_ = c.Error(err)
	if status >= 500 {
		requestID, _ := c.Get(middleware.ContextKeyRequestID)
		logger.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err,
		}).Error("internal error")
	}
	RespondError(c, status, code, msg)
}

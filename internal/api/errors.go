package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	apperrors "github.com/Kamar-Folarin/portfolio-service/internal/errors"
)

// statusFor maps an error type onto the HTTP status returned to clients
func statusFor(errType apperrors.ErrorType) int {
	switch errType {
	case apperrors.ErrConfiguration:
		return http.StatusServiceUnavailable
	case apperrors.ErrNotFound, apperrors.ErrNoArticles:
		return http.StatusNotFound
	case apperrors.ErrRateLimit:
		return http.StatusTooManyRequests
	case apperrors.ErrUnauthorized, apperrors.ErrRemote, apperrors.ErrNetwork:
		return http.StatusBadGateway
	case apperrors.ErrInvalidInput:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) respondWithError(c *gin.Context, err error) {
	errType := apperrors.TypeOf(err)
	status := statusFor(errType)

	entry := h.logger.WithError(err).WithFields(logrus.Fields{
		"path":       c.FullPath(),
		"type":       errType,
		"request_id": c.GetString(requestIDKey),
	})
	if status >= http.StatusInternalServerError {
		entry.Error("Request failed")
	} else {
		entry.Warn("Request failed")
	}

	c.JSON(status, ErrorResponse{
		Error: apperrors.Message(err),
		Type:  string(errType),
	})
}

func (h *Handler) respondWithBadRequest(c *gin.Context, message string) {
	h.respondWithError(c, apperrors.NewValidationError(message, nil))
}

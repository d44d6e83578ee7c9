// Package httputil provides HTTP utility functions for request and response handling.
package httputil

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/kms/internal/errors"
	kmsDomain "github.com/allisson/kms/internal/kms/domain"
)

// statusForKind maps service error kinds to HTTP status codes.
var statusForKind = map[kmsDomain.ErrorKind]int{
	kmsDomain.KindNotFound:          http.StatusNotFound,
	kmsDomain.KindAccessDenied:      http.StatusForbidden,
	kmsDomain.KindKeyUnavailable:    http.StatusConflict,
	kmsDomain.KindInvalidKeyUsage:   http.StatusBadRequest,
	kmsDomain.KindInvalidCiphertext: http.StatusBadRequest,
	kmsDomain.KindInvalidKeyID:      http.StatusBadRequest,
	kmsDomain.KindInvalidGrantToken: http.StatusBadRequest,
	kmsDomain.KindThrottling:        http.StatusTooManyRequests,
	kmsDomain.KindInternal:          http.StatusInternalServerError,
}

// HandleErrorGin maps service errors to HTTP status codes and writes the
// error wire format as the JSON response body.
func HandleErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if err == nil {
		return
	}

	wireErr := toWireError(err)
	statusCode, ok := statusForKind[wireErr.Kind]
	if !ok {
		statusCode = http.StatusInternalServerError
	}

	// Log the full error details (including wrapped errors)
	if logger != nil {
		logger.Error("request failed",
			slog.Int("status_code", statusCode),
			slog.String("error_type", wireErr.WireType()),
			slog.Any("error", err),
		)
	}

	c.JSON(statusCode, wireErr)
}

// HandleValidationErrorGin writes a response for malformed or invalid
// request payloads using the error wire format.
func HandleValidationErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("validation failed", slog.Any("error", err))
	}

	wireErr := kmsDomain.NewInvalidKeyUsage("%s", err.Error())
	c.JSON(http.StatusBadRequest, wireErr)
}

// toWireError normalizes any error into a wire-format error. Errors that
// are not already wire errors are classified by their base sentinel;
// anything unrecognized becomes an internal error with a generic message.
func toWireError(err error) *kmsDomain.Error {
	var wireErr *kmsDomain.Error
	if apperrors.As(err, &wireErr) {
		return wireErr
	}

	switch {
	case apperrors.Is(err, apperrors.ErrNotFound):
		return kmsDomain.NewNotFound("%s", err.Error())
	case apperrors.Is(err, apperrors.ErrForbidden), apperrors.Is(err, apperrors.ErrUnauthorized):
		return kmsDomain.NewAccessDenied("%s", err.Error())
	case apperrors.Is(err, apperrors.ErrInvalidInput):
		return kmsDomain.NewInvalidKeyUsage("%s", err.Error())
	case apperrors.Is(err, apperrors.ErrTooManyRequests):
		return kmsDomain.NewThrottling("%s", err.Error())
	default:
		// Don't expose details of unknown errors to the client
		return kmsDomain.NewInternal("an internal error occurred")
	}
}

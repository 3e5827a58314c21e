package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/platewise/platewise-engine/pkg/apperrors"
)

// writeServiceError maps service-layer errors onto HTTP responses. Anything
// not recognized as a client error is a 500 with a generic message; the
// underlying error is logged, never leaked.
func writeServiceError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var (
		status    int
		errorCode string
		message   string
	)

	switch {
	case errors.Is(err, apperrors.ErrInvalidInput):
		status, errorCode, message = http.StatusBadRequest, "invalid_input", err.Error()
	case errors.Is(err, apperrors.ErrInvalidFormat):
		status, errorCode, message = http.StatusBadRequest, "invalid_format", "export_format must be \"json\" or \"text\""
	case errors.Is(err, apperrors.ErrNotFound):
		status, errorCode, message = http.StatusNotFound, "not_found", "Resource not found"
	case errors.Is(err, apperrors.ErrConflict):
		status, errorCode, message = http.StatusConflict, "conflict", "Resource already exists"
	default:
		status, errorCode, message = http.StatusInternalServerError, "internal_error", "Internal server error"
	}

	if writeErr := ErrorResponse(w, status, errorCode, message); writeErr != nil {
		logger.Error("Failed to write error response", zap.Error(writeErr))
	}
}

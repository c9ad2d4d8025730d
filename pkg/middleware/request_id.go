package middleware

import (
	"context"
	"net/http"

	apperrors "spacebook/pkg/errors"
	"spacebook/pkg/logger"
)

type contextKey string

const RequestIDKey contextKey = "request_id"

const RequestIDHeader = "X-Request-ID"

// RequestIDFromContext returns the id assigned by RequestLogging, or "".
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(RequestIDKey).(string); ok {
		return id
	}
	return ""
}

func writeAppError(w http.ResponseWriter, log *logger.Logger, r *http.Request, err *apperrors.AppError) {
	if writeErr := apperrors.WriteError(w, err); writeErr != nil {
		log.Error("failed to write error response",
			"request_id", RequestIDFromContext(r.Context()),
			"path", r.URL.Path,
			"error", writeErr,
		)
	}
}

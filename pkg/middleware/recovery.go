package middleware

import (
	"errors"
	"net/http"
	"runtime/debug"

	apperrors "spacebook/pkg/errors"
	"spacebook/pkg/logger"
)

// Recovery turns a handler panic into a 500 response. http.ErrAbortHandler is
// re-raised so the server can abort the connection.
func Recovery(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(rec)
				}

				log.Error("Panic recovered",
					"request_id", RequestIDFromContext(r.Context()),
					"error", rec,
					"method", r.Method,
					"path", r.URL.Path,
					"stack", string(debug.Stack()),
				)
				writeAppError(w, log, r, apperrors.Internal("Internal server error", nil))
			}()

			next.ServeHTTP(w, r)
		})
	}
}

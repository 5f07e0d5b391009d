package middleware

import (
	"curoo/pkg/logger"
	"fmt"
	"net/http"
	"runtime/debug"

	apperrors "curoo/pkg/errors"
	httputil "curoo/pkg/http"
)

// Recovery is the last-resort boundary: a panic becomes a logged
// INTERNAL_ERROR response instead of a dropped connection.
func Recovery(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}

					log.Error("Panic recovered",
						"request_id", RequestID(r.Context()),
						"error", rec,
						"method", r.Method,
						"path", r.URL.Path,
						"stack", string(debug.Stack()),
					)

					httputil.WriteError(w, apperrors.Internal("unexpected error", fmt.Errorf("panic: %v", rec)))
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

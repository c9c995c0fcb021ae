package middleware

import (
	"net/http"
	"runtime/debug"
	apperrors "stayspot/pkg/errors"
	httputil "stayspot/pkg/http"
	"stayspot/pkg/logger"
)

func Recovery(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.FromContext(r.Context()).Error("Panic recovered",
						"error", err,
						"method", r.Method,
						"path", r.URL.Path,
						"stack", string(debug.Stack()),
					)

					_ = httputil.WriteError(w, apperrors.Internal(apperrors.MessageInternalServer, nil))
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

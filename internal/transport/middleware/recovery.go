package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/frahmantamala/crm-console/internal"
	"github.com/frahmantamala/crm-console/internal/transport"
)

// RecoveryMiddleware turns a panic into a 500 with the generic error body.
func RecoveryMiddleware(lg *slog.Logger) func(http.Handler) http.Handler {
	base := transport.NewBaseHandler(lg)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					base.Logger.Error("panic recovered",
						"error", rec,
						"method", r.Method,
						"url", r.URL.String(),
						"stack", string(debug.Stack()))

					base.WriteAppError(w, internal.NewUnexpectedError(fmt.Errorf("panic: %v", rec)))
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

package middleware

import (
	"net/http"

	"github.com/frahmantamala/crm-console/pkg/logger"
	chiMiddleware "github.com/go-chi/chi/middleware"
	"github.com/google/uuid"
)

const TraceHeader = "X-Trace-ID"

// RequestID tags the request logger with a trace id. It reuses the id set by
// chi's RequestID middleware, then the client's X-Trace-ID, then a new uuid.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := chiMiddleware.GetReqID(r.Context())
		if traceID == "" {
			traceID = r.Header.Get(TraceHeader)
		}
		if traceID == "" {
			traceID = uuid.NewString()
		}

		ctx := logger.With(r.Context(), "traceID", traceID)
		w.Header().Set(TraceHeader, traceID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

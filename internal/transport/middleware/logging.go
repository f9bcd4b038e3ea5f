package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/frahmantamala/crm-console/pkg/logger"
	"github.com/go-chi/chi/middleware"
)

const filtered = "[FILTERED]"

// sensitiveFields are matched as substrings of lower-cased header names and
// JSON keys.
var sensitiveFields = []string{
	"password",
	"token",
	"authorization",
	"secret",
	"api_key",
	"cookie",
	"credential",
}

// maxLoggedBody caps how much of a body ends up in a log line.
const maxLoggedBody = 4096

// LoggingMiddleware logs every request and its response with credentials
// masked. Non-JSON response bodies (spreadsheets, swagger assets) are only
// measured, not logged.
func LoggingMiddleware(lg *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqID := middleware.GetReqID(r.Context())
			l := requestLogger(lg, r)

			logRequest(l, r, reqID)

			ww := &responseWriter{
				ResponseWriter: w,
				body:           &bytes.Buffer{},
			}

			next.ServeHTTP(ww, r)

			logResponse(l, r, ww, time.Since(start), reqID)
		})
	}
}

// requestLogger prefers the logger RequestID put in the context.
func requestLogger(fallback *slog.Logger, r *http.Request) *slog.Logger {
	if l := logger.From(r.Context()); l != nil && l != logger.LoggerWrapper() {
		return l
	}
	return fallback
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
	size       int
	body       *bytes.Buffer
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	rw.size += len(b)
	if isJSON(rw.Header().Get("Content-Type")) && rw.body.Len() < maxLoggedBody {
		rw.body.Write(b)
	}
	return rw.ResponseWriter.Write(b)
}

func logRequest(l *slog.Logger, r *http.Request, reqID string) {
	var bodyBytes []byte
	if r.Body != nil && isJSON(r.Header.Get("Content-Type")) {
		bodyBytes, _ = io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
	}

	l.Info("incoming request",
		"request_id", reqID,
		"method", r.Method,
		"path", r.URL.Path,
		"query", r.URL.RawQuery,
		"remote_addr", r.RemoteAddr,
		"user_agent", r.UserAgent(),
		"headers", filterSensitiveHeaders(r.Header),
		"body", filterSensitiveBody(bodyBytes),
	)
}

func logResponse(l *slog.Logger, r *http.Request, rw *responseWriter, duration time.Duration, reqID string) {
	statusCode := rw.statusCode
	if statusCode == 0 {
		statusCode = http.StatusOK
	}

	level := slog.LevelInfo
	switch {
	case statusCode >= 500:
		level = slog.LevelError
	case statusCode >= 400:
		level = slog.LevelWarn
	}

	l.Log(r.Context(), level, "response",
		"request_id", reqID,
		"status_code", statusCode,
		"duration_ms", duration.Milliseconds(),
		"response_size", rw.size,
		"body", filterSensitiveBody(rw.body.Bytes()),
	)
}

func isJSON(contentType string) bool {
	return strings.HasPrefix(contentType, "application/json")
}

func isSensitive(name string) bool {
	lower := strings.ToLower(name)
	for _, field := range sensitiveFields {
		if strings.Contains(lower, field) {
			return true
		}
	}
	return false
}

func filterSensitiveHeaders(headers http.Header) map[string]string {
	out := make(map[string]string, len(headers))
	for name, values := range headers {
		if isSensitive(name) {
			out[name] = filtered
			continue
		}
		out[name] = strings.Join(values, ", ")
	}
	return out
}

func filterSensitiveBody(body []byte) string {
	if len(body) == 0 {
		return ""
	}

	var data interface{}
	if err := json.Unmarshal(body, &data); err != nil {
		if len(body) > maxLoggedBody {
			return string(body[:maxLoggedBody]) + "..."
		}
		return string(body)
	}

	out, err := json.Marshal(filterSensitiveJSON(data))
	if err != nil {
		return "[ERROR - Failed to marshal filtered JSON]"
	}
	return string(out)
}

func filterSensitiveJSON(data interface{}) interface{} {
	switch v := data.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for key, value := range v {
			if isSensitive(key) {
				out[key] = filtered
			} else {
				out[key] = filterSensitiveJSON(value)
			}
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, item := range v {
			out[i] = filterSensitiveJSON(item)
		}
		return out
	default:
		return v
	}
}

package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("LoggingMiddleware", func() {
	It("should mask credentials in JSON bodies", func() {
		out := filterSensitiveBody([]byte(`{"username":"ravi","password":"secret","user":{"token":"abc","name":"Ravi"}}`))
		Expect(out).To(ContainSubstring(`"username":"ravi"`))
		Expect(out).To(ContainSubstring(`"name":"Ravi"`))
		Expect(out).NotTo(ContainSubstring("secret"))
		Expect(out).NotTo(ContainSubstring("abc"))
	})

	It("should mask the authorization header", func() {
		h := http.Header{}
		h.Set("Authorization", "Bearer abc")
		h.Set("Accept", "application/json")
		out := filterSensitiveHeaders(h)
		Expect(out["Authorization"]).To(Equal(filtered))
		Expect(out["Accept"]).To(Equal("application/json"))
	})

	It("should log the request without leaking the password", func() {
		var logs bytes.Buffer
		lg := slog.New(slog.NewTextHandler(&logs, nil))
		h := LoggingMiddleware(lg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":{"code":"INVALID_CREDENTIALS"}}`))
		}))

		req := httptest.NewRequest(http.MethodPost, "/console/v1/auth/login", strings.NewReader(`{"username":"ravi","password":"hunter2"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusUnauthorized))
		Expect(logs.String()).To(ContainSubstring("incoming request"))
		Expect(logs.String()).To(ContainSubstring("level=WARN"))
		Expect(logs.String()).To(ContainSubstring("INVALID_CREDENTIALS"))
		Expect(logs.String()).NotTo(ContainSubstring("hunter2"))
	})

	It("should only measure non-JSON responses", func() {
		var logs bytes.Buffer
		lg := slog.New(slog.NewTextHandler(&logs, nil))
		h := LoggingMiddleware(lg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/octet-stream")
			w.Write([]byte("PK\x03\x04binary"))
		}))

		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/orders/export", nil))

		Expect(logs.String()).To(ContainSubstring("response_size=10"))
		Expect(logs.String()).NotTo(ContainSubstring("binary"))
	})
})

package middleware_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"

	"github.com/frahmantamala/crm-console/internal"
	"github.com/frahmantamala/crm-console/internal/permission"
	"github.com/frahmantamala/crm-console/internal/session"
	"github.com/frahmantamala/crm-console/internal/transport/middleware"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

type stubResolver struct {
	sessions map[string]*session.Session
}

func (s stubResolver) Resolve(ctx context.Context, token string) (*session.Session, error) {
	if token == "" {
		return nil, internal.ErrNoSession
	}
	sess, ok := s.sessions[token]
	if !ok {
		return nil, internal.ErrTokenExpired
	}
	return sess, nil
}

func errorCode(w *httptest.ResponseRecorder) string {
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	Expect(json.NewDecoder(w.Body).Decode(&body)).To(Succeed())
	return body.Error.Code
}

var _ = Describe("Authenticate and RequirePermission", func() {
	var router chi.Router

	BeforeEach(func() {
		resolver := stubResolver{sessions: map[string]*session.Session{
			"viewer-token":  {User: &session.User{ID: "u-1", Role: permission.RoleViewer}, Token: "viewer-token"},
			"manager-token": {User: &session.User{ID: "u-2", Role: permission.RoleManager}, Token: "manager-token"},
		}}

		router = chi.NewRouter()
		router.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(resolver, quietLogger()))
			r.Get("/orders", func(w http.ResponseWriter, r *http.Request) {
				sess, _ := session.FromContext(r.Context())
				w.Write([]byte(sess.User.ID))
			})
			r.With(middleware.RequirePermission(permission.ResourceOrders, permission.ActionWrite, quietLogger())).
				Patch("/orders/{id}/status", func(w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(http.StatusNoContent)
				})
		})
	})

	do := func(method, path, token string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	It("should put the session in the context", func() {
		w := do(http.MethodGet, "/orders", "viewer-token")
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(Equal("u-1"))
	})

	It("should answer 401 without a token", func() {
		w := do(http.MethodGet, "/orders", "")
		Expect(w.Code).To(Equal(http.StatusUnauthorized))
		Expect(errorCode(w)).To(Equal(string(internal.ErrCodeNoSession)))
	})

	It("should answer 401 for an unknown token", func() {
		w := do(http.MethodGet, "/orders", "stale")
		Expect(w.Code).To(Equal(http.StatusUnauthorized))
		Expect(errorCode(w)).To(Equal(string(internal.ErrCodeTokenExpired)))
	})

	It("should answer 403 when the role lacks the action", func() {
		w := do(http.MethodPatch, "/orders/o-1/status", "viewer-token")
		Expect(w.Code).To(Equal(http.StatusForbidden))
		Expect(errorCode(w)).To(Equal(string(internal.ErrCodeAccessDenied)))
	})

	It("should pass when the role holds the action", func() {
		w := do(http.MethodPatch, "/orders/o-1/status", "manager-token")
		Expect(w.Code).To(Equal(http.StatusNoContent))
	})

	It("should answer 401 when no session reached RequirePermission", func() {
		h := middleware.RequirePermission(permission.ResourceOrders, permission.ActionRead, quietLogger())(http.NotFoundHandler())
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		Expect(w.Code).To(Equal(http.StatusUnauthorized))
	})
})

var _ = Describe("RecoveryMiddleware", func() {
	It("should turn a panic into the generic 500 body", func() {
		h := middleware.RecoveryMiddleware(quietLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic("boom")
		}))
		w := httptest.NewRecorder()

		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		Expect(w.Code).To(Equal(http.StatusInternalServerError))
		Expect(w.Body.String()).To(ContainSubstring(internal.MsgUnexpected))
		Expect(w.Body.String()).NotTo(ContainSubstring("boom"))
	})
})

var _ = Describe("RequestID", func() {
	It("should echo the client trace id", func() {
		h := middleware.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(middleware.TraceHeader, "trace-1")
		w := httptest.NewRecorder()

		h.ServeHTTP(w, req)

		Expect(w.Header().Get(middleware.TraceHeader)).To(Equal("trace-1"))
	})

	It("should mint one when missing", func() {
		h := middleware.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		w := httptest.NewRecorder()

		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		Expect(w.Header().Get(middleware.TraceHeader)).To(HaveLen(36))
	})
})

var _ = Describe("CORS", func() {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	It("should answer preflight requests for allowed origins", func() {
		h := middleware.CORS([]string{"http://localhost:5173"})(next)
		req := httptest.NewRequest(http.MethodOptions, "/console/v1/orders", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
		w := httptest.NewRecorder()

		h.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusNoContent))
		Expect(w.Header().Get("Access-Control-Allow-Origin")).To(Equal("http://localhost:5173"))
		Expect(w.Header().Get("Access-Control-Allow-Methods")).To(ContainSubstring("PATCH"))
	})

	It("should not grant unknown origins", func() {
		h := middleware.CORS([]string{"http://localhost:5173"})(next)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "http://evil.test")
		w := httptest.NewRecorder()

		h.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusTeapot))
		Expect(w.Header().Get("Access-Control-Allow-Origin")).To(BeEmpty())
	})

	It("should allow any origin with a wildcard", func() {
		h := middleware.CORS([]string{"*"})(next)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "http://anything.test")
		w := httptest.NewRecorder()

		h.ServeHTTP(w, req)

		Expect(w.Header().Get("Access-Control-Allow-Origin")).To(Equal("*"))
	})
})

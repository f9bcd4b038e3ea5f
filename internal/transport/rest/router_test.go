package rest_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/frahmantamala/crm-console/internal"
	orderDatamodel "github.com/frahmantamala/crm-console/internal/core/datamodel/order"
	"github.com/frahmantamala/crm-console/internal/order"
	"github.com/frahmantamala/crm-console/internal/permission"
	"github.com/frahmantamala/crm-console/internal/session"
	"github.com/frahmantamala/crm-console/internal/transport"
	"github.com/frahmantamala/crm-console/internal/transport/rest"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestRest(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Rest Suite")
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

type stubResolver map[string]permission.Role

func (s stubResolver) Resolve(ctx context.Context, token string) (*session.Session, error) {
	role, ok := s[token]
	if !ok {
		return nil, internal.ErrNoSession
	}
	return &session.Session{User: &session.User{ID: "u-" + token, Role: role}, Token: token}, nil
}

type stubOrders struct {
	patched []string
}

func (s *stubOrders) ListOrders(ctx context.Context) ([]orderDatamodel.Order, error) {
	return []orderDatamodel.Order{{ID: "o-1", OrderID: "A1", Status: "Pending", Channel: "Website"}}, nil
}

func (s *stubOrders) UpdateOrderStatus(ctx context.Context, id, status string) error {
	s.patched = append(s.patched, id+":"+status)
	return nil
}

var _ = Describe("Router", func() {
	var (
		router  *chi.Mux
		backend *stubOrders
		dbErr   error
	)

	BeforeEach(func() {
		dbErr = nil
		backend = &stubOrders{}
		base := &transport.BaseHandler{Logger: quietLogger()}
		service := order.NewService(backend, nil, quietLogger())

		router = chi.NewRouter()
		rest.RegisterAllRoutes(router, rest.Handlers{
			Health: rest.NewHealthHandler(map[string]rest.PingFunc{
				"store": func(ctx context.Context) error { return dbErr },
				"redis": nil,
			}),
			Orders: order.NewHandler(base, service, nil),
		}, stubResolver{"viewer": permission.RoleViewer, "manager": permission.RoleManager}, []string{"*"}, quietLogger())
	})

	do := func(method, path, token, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		if body != "" {
			req.Header.Set("Content-Type", "application/json")
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	It("should report healthy components", func() {
		w := do(http.MethodGet, "/console/v1/health", "", "")
		Expect(w.Code).To(Equal(http.StatusOK))

		var resp rest.HealthResponse
		Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
		Expect(resp.Status).To(Equal(rest.HealthHealthy))
		Expect(resp.Components).To(HaveKey("store"))
		Expect(resp.Components).NotTo(HaveKey("redis"))
	})

	It("should answer 503 when a component fails", func() {
		dbErr = errors.New("connection refused")
		w := do(http.MethodGet, "/console/v1/health", "", "")
		Expect(w.Code).To(Equal(http.StatusServiceUnavailable))
		Expect(w.Body.String()).To(ContainSubstring("connection refused"))
	})

	It("should serve the OpenAPI document", func() {
		w := do(http.MethodGet, "/openapi.yml", "", "")
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring("openapi: 3.0.3"))
	})

	It("should require a token for orders", func() {
		w := do(http.MethodGet, "/console/v1/orders", "", "")
		Expect(w.Code).To(Equal(http.StatusUnauthorized))
	})

	It("should list orders for a viewer", func() {
		w := do(http.MethodGet, "/console/v1/orders", "viewer", "")
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring(`"orderId":"A1"`))
		Expect(w.Header().Get("X-Trace-ID")).NotTo(BeEmpty())
	})

	It("should refuse a viewer status change before reaching the backend", func() {
		w := do(http.MethodPatch, "/console/v1/orders/o-1/status", "viewer", `{"status":"Shipped"}`)
		Expect(w.Code).To(Equal(http.StatusForbidden))
		Expect(backend.patched).To(BeEmpty())
	})

	It("should let a manager change the status", func() {
		Expect(do(http.MethodGet, "/console/v1/orders", "manager", "").Code).To(Equal(http.StatusOK))

		w := do(http.MethodPatch, "/console/v1/orders/o-1/status", "manager", `{"status":"Shipped"}`)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(backend.patched).To(Equal([]string{"o-1:Shipped"}))
	})

	It("should leave out routes without a handler", func() {
		w := do(http.MethodGet, "/console/v1/users", "manager", "")
		Expect(w.Code).To(Equal(http.StatusNotFound))
	})
})

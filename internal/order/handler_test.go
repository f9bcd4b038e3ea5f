package order_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	orderDatamodel "github.com/frahmantamala/crm-console/internal/core/datamodel/order"
	"github.com/frahmantamala/crm-console/internal/order"
	"github.com/frahmantamala/crm-console/internal/permission"
	"github.com/frahmantamala/crm-console/internal/session"
	"github.com/frahmantamala/crm-console/internal/transport"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type fakeHistory struct {
	transitions []orderDatamodel.Transition
}

func (f *fakeHistory) History(ctx context.Context, orderID string) ([]orderDatamodel.Transition, error) {
	var out []orderDatamodel.Transition
	for _, t := range f.transitions {
		if t.OrderID == orderID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeHistory) Recent(ctx context.Context, limit int) ([]orderDatamodel.Transition, error) {
	return f.transitions, nil
}

var _ = Describe("Order Handler", func() {
	var (
		api     *fakeAPI
		handler *order.Handler
		router  chi.Router
	)

	withRole := func(req *http.Request, role permission.Role) *http.Request {
		sess := &session.Session{User: &session.User{ID: "u-1", Name: "Asha", Role: role}, Token: "t"}
		return req.WithContext(session.NewContext(req.Context(), sess))
	}

	BeforeEach(func() {
		now := time.Now()
		api = &fakeAPI{orders: fixtureOrders(now)}
		service := order.NewService(api, &recordingBus{}, quietLogger())
		handler = order.NewHandler(&transport.BaseHandler{Logger: quietLogger()}, service, &fakeHistory{
			transitions: []orderDatamodel.Transition{{ID: "t-1", OrderID: "o-1", FromStatus: "Pending", ToStatus: "Shipped", State: "applied"}},
		})

		router = chi.NewRouter()
		router.Get("/orders", handler.ListOrders)
		router.Patch("/orders/{id}/status", handler.UpdateStatus)
		router.Get("/orders/{id}/history", handler.History)
	})

	It("should list filtered orders with tab counts", func() {
		req := withRole(httptest.NewRequest(http.MethodGet, "/orders?status=pending", nil), permission.RoleViewer)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Header().Get("Content-Type")).To(ContainSubstring("application/json"))

		var response order.ListResponse
		Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
		Expect(response.Total).To(Equal(1))
		Expect(response.Orders[0].OrderID).To(Equal("A1"))
		Expect(response.Counts).To(HaveKeyWithValue("All", 2))
		Expect(response.Counts).To(HaveKeyWithValue("Delivered", 1))
	})

	It("should reject unknown filter values", func() {
		req := withRole(httptest.NewRequest(http.MethodGet, "/orders?amountRange=huge", nil), permission.RoleViewer)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(w.Body.String()).To(ContainSubstring("amountRange must be one of"))
	})

	It("should answer 401 without a session", func() {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders", nil))
		Expect(w.Code).To(Equal(http.StatusUnauthorized))
	})

	It("should update the status for managers", func() {
		body := strings.NewReader(`{"status":"Shipped"}`)
		req := withRole(httptest.NewRequest(http.MethodPatch, "/orders/o-1/status", body), permission.RoleManager)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))
		var updated order.Order
		Expect(json.NewDecoder(w.Body).Decode(&updated)).To(Succeed())
		Expect(updated.Status).To(Equal(order.StatusShipped))
		Expect(api.updates).To(Equal([]string{"o-1=Shipped"}))
	})

	It("should forbid viewers from updating", func() {
		body := strings.NewReader(`{"status":"Shipped"}`)
		req := withRole(httptest.NewRequest(http.MethodPatch, "/orders/o-1/status", body), permission.RoleViewer)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusForbidden))
		Expect(w.Body.String()).To(ContainSubstring("Access Denied"))
		Expect(api.updates).To(BeEmpty())
	})

	It("should reject a malformed body", func() {
		req := withRole(httptest.NewRequest(http.MethodPatch, "/orders/o-1/status", strings.NewReader("{")), permission.RoleManager)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("should return the transition history of an order", func() {
		req := withRole(httptest.NewRequest(http.MethodGet, "/orders/o-1/history", nil), permission.RoleViewer)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring(`"toStatus":"Shipped"`))
	})
})

package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"time"

	"github.com/frahmantamala/crm-console/internal"
	"github.com/frahmantamala/crm-console/internal/order"
	"github.com/frahmantamala/crm-console/internal/permission"
	"github.com/frahmantamala/crm-console/internal/session"
	"github.com/frahmantamala/crm-console/internal/user"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("loadConfig", func() {
	It("reads the repository config.yml", func() {
		cfg, err := loadConfig("../config.yml")
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.API.Endpoint()).To(Equal("http://localhost:5000/api/crm"))
		Expect(cfg.Store.Driver).To(Equal("sqlite"))
		Expect(cfg.Polling.Orders).To(Equal(5 * time.Second))
		Expect(cfg.Server.Origins()).To(Equal([]string{"http://localhost:3000"}))
	})

	It("falls back to defaults when the directory has no config file", func() {
		cfg, err := loadConfig(GinkgoT().TempDir())
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Server.Port).To(Equal(8080))
		Expect(cfg.Redis.Enabled).To(BeFalse())
		Expect(cfg.Polling.Dashboard).To(Equal(10 * time.Second))
	})

	It("lets CRM_ variables override the file", func() {
		GinkgoT().Setenv("CRM_API_BASE_URL", "https://crm.example.com")
		GinkgoT().Setenv("CRM_HTTP_SERVER_PORT", "9090")

		cfg, err := loadConfig("../config.yml")
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.API.BaseURL).To(Equal("https://crm.example.com"))
		Expect(cfg.Server.Port).To(Equal(9090))
	})

	It("rejects an invalid configuration", func() {
		path := filepath.Join(GinkgoT().TempDir(), "config.yml")
		Expect(os.WriteFile(path, []byte("store:\n  driver: mysql\n"), 0o600)).To(Succeed())

		_, err := loadConfig(path)
		Expect(err).To(MatchError(ContainSubstring(`unsupported driver "mysql"`)))
	})
})

var _ = Describe("readProductForm", func() {
	It("decodes a JSON form", func() {
		path := filepath.Join(GinkgoT().TempDir(), "ghee.json")
		body := `{"name":"A2 Ghee","category":"Ghee","baseVariant":{"label":"500ml","quantity":500,"unit":"ml","price":950},"currentStock":12}`
		Expect(os.WriteFile(path, []byte(body), 0o600)).To(Succeed())

		form, err := readProductForm(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(form.Name).To(Equal("A2 Ghee"))
		Expect(form.BaseVariant.Price).To(Equal(950.0))
	})

	It("requires a file", func() {
		_, err := readProductForm("")
		appErr, ok := internal.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
	})

	It("reports malformed JSON as a validation error", func() {
		path := filepath.Join(GinkgoT().TempDir(), "broken.json")
		Expect(os.WriteFile(path, []byte("{"), 0o600)).To(Succeed())

		_, err := readProductForm(path)
		appErr, ok := internal.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.Message).To(HavePrefix("product form is not valid JSON"))
	})
})

var _ = Describe("filterFromFlags", func() {
	AfterEach(func() {
		orderFilter = orderFlags{}
	})

	It("defaults every facet to All", func() {
		Expect(filterFromFlags()).To(Equal(order.DefaultFilterState()))
	})

	It("copies the flags into the filter state", func() {
		orderFilter = orderFlags{status: "Pending", search: "ravi", channel: "Amazon", date: "Today", amount: ">5000"}
		state := filterFromFlags()
		Expect(state.Tab).To(Equal("Pending"))
		Expect(state.Search).To(Equal("ravi"))
		Expect(state.Side.Channel).To(Equal("Amazon"))
		Expect(state.Side.DateRange).To(Equal(order.DateToday))
		Expect(state.Side.Amount).To(Equal(order.AmountOver5000))
	})
})

var _ = Describe("rendering", func() {
	It("lists the views a role may open", func() {
		var out bytes.Buffer
		renderWhoami(&out, &session.Session{User: &session.User{Name: "Asha", Username: "asha", Role: permission.RoleManager}})
		Expect(out.String()).To(ContainSubstring("Asha (asha), role manager"))
		Expect(out.String()).To(ContainSubstring("Views: Dashboard, Inventory, Orders, Reports"))
	})

	It("prints tab counts and an empty-state line", func() {
		var out bytes.Buffer
		renderOrders(&out, nil, order.CountByStatus(nil))
		Expect(out.String()).To(HavePrefix("All (0)  Pending (0)"))
		Expect(out.String()).To(ContainSubstring("No orders match the current filters."))
	})

	It("prints one row per order", func() {
		revenue := 1500.0
		orders := []order.Order{{
			ID: "1", OrderID: "A1", Channel: "Website", Revenue: &revenue, NetProfit: 420,
			Status: order.StatusPending, CreatedAt: time.Now(),
			Customer: &order.Customer{Name: "Ravi Kumar"},
		}}
		var out bytes.Buffer
		renderOrders(&out, orders, order.CountByStatus(orders))
		Expect(out.String()).To(ContainSubstring("Pending (1)"))
		Expect(out.String()).To(MatchRegexp(`A1\s+.*Ravi Kumar\s+Website\s+0\s+1500\.00\s+420\.00\s+Pending`))
	})

	It("shows account status labels", func() {
		var out bytes.Buffer
		renderUsers(&out, []user.Account{{ID: "u1", Username: "asha", Name: "Asha", Role: permission.RoleAdmin}})
		Expect(out.String()).To(MatchRegexp(`u1\s+asha\s+Asha\s+admin\s+Inactive`))
	})
})

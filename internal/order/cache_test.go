package order_test

import (
	"github.com/frahmantamala/crm-console/internal/order"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Cache", func() {
	var cache *order.Cache

	BeforeEach(func() {
		cache = order.NewCache()
		Expect(cache.Replace(cache.Ticket(), []order.Order{{
			ID:       "1",
			OrderID:  "A1",
			Status:   order.StatusPending,
			Revenue:  revenue(1500),
			Customer: &order.Customer{Name: "Ravi Kumar"},
			Items:    []order.Item{{SKU: "GHEE-500", Name: "A2 Ghee", Price: 1500, Quantity: 1}},
		}})).To(BeTrue())
	})

	It("hands out snapshots that do not share memory with the cache", func() {
		snap := cache.Snapshot()
		*snap[0].Revenue = 1
		snap[0].Customer.Name = "Someone Else"
		snap[0].Items[0].Quantity = 99

		again := cache.Snapshot()
		Expect(again[0].RevenueValue()).To(Equal(1500.0))
		Expect(again[0].CustomerName()).To(Equal("Ravi Kumar"))
		Expect(again[0].Items[0].Quantity).To(Equal(1))
	})

	It("keeps its own copy of the list it was given", func() {
		list := []order.Order{{ID: "2", OrderID: "A2", Customer: &order.Customer{Name: "Meera Shah"}}}
		Expect(cache.Replace(cache.Ticket(), list)).To(BeTrue())
		list[0].Customer.Name = "changed"

		found, ok := cache.Find("2")
		Expect(ok).To(BeTrue())
		Expect(found.CustomerName()).To(Equal("Meera Shah"))
	})

	It("rejects a snapshot fetched before a newer one was stored", func() {
		stale := cache.Ticket()
		fresh := cache.Ticket()
		Expect(cache.Replace(fresh, []order.Order{{ID: "3"}})).To(BeTrue())
		Expect(cache.Replace(stale, []order.Order{{ID: "4"}})).To(BeFalse())
		snap := cache.Snapshot()
		Expect(snap).To(HaveLen(1))
		Expect(snap[0].ID).To(Equal("3"))
	})
})

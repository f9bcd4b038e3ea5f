package order_test

import (
	"time"

	"github.com/frahmantamala/crm-console/internal/order"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func revenue(v float64) *float64 { return &v }

func ids(orders []order.Order) []string {
	out := make([]string, len(orders))
	for i, o := range orders {
		out[i] = o.OrderID
	}
	return out
}

var _ = Describe("FilterOrders", func() {
	var (
		now  time.Time
		list []order.Order
	)

	BeforeEach(func() {
		now = time.Date(2026, 10, 16, 14, 30, 0, 0, time.Local)
		list = []order.Order{
			{ID: "1", OrderID: "A1", Status: order.StatusPending, Revenue: revenue(500), Channel: "Website", CreatedAt: now.Add(-time.Hour), Customer: &order.Customer{Name: "Ravi Kumar"}},
			{ID: "2", OrderID: "A2", Status: order.StatusDelivered, Revenue: revenue(6000), Channel: "Amazon", CreatedAt: now.AddDate(0, 0, -10), Customer: &order.Customer{Name: "Meera Shah"}},
		}
	})

	Context("with the two order fixture", func() {
		It("returns both orders unchanged when nothing is selected", func() {
			out := order.FilterOrders(list, order.DefaultFilterState(), now)
			Expect(out).To(Equal(list))
		})

		It("keeps only the Pending tab", func() {
			state := order.DefaultFilterState()
			state.Tab = "Pending"
			Expect(ids(order.FilterOrders(list, state, now))).To(Equal([]string{"A1"}))
		})

		It("keeps only orders above 5000", func() {
			state := order.DefaultFilterState()
			state.Side.Amount = order.AmountOver5000
			Expect(ids(order.FilterOrders(list, state, now))).To(Equal([]string{"A2"}))
		})

		It("drops orders older than the last 7 days", func() {
			state := order.DefaultFilterState()
			state.Side.DateRange = order.DateLast7Days
			Expect(ids(order.FilterOrders(list, state, now))).To(Equal([]string{"A1"}))
		})

		It("matches the identifier case-insensitively", func() {
			state := order.DefaultFilterState()
			state.Search = "a1"
			Expect(ids(order.FilterOrders(list, state, now))).To(Equal([]string{"A1"}))
		})
	})

	It("matches the tab case-insensitively", func() {
		state := order.DefaultFilterState()
		state.Tab = "delivered"
		Expect(ids(order.FilterOrders(list, state, now))).To(Equal([]string{"A2"}))
	})

	It("searches customer names and survives a missing customer", func() {
		list = append(list, order.Order{ID: "3", OrderID: "B7", Status: order.StatusShipped, Revenue: revenue(100), CreatedAt: now})
		state := order.DefaultFilterState()
		state.Search = "MEERA"
		Expect(ids(order.FilterOrders(list, state, now))).To(Equal([]string{"A2"}))

		state.Search = "b7"
		Expect(ids(order.FilterOrders(list, state, now))).To(Equal([]string{"B7"}))
	})

	It("matches the search text as typed without trimming it", func() {
		state := order.DefaultFilterState()
		state.Search = " "
		Expect(ids(order.FilterOrders(list, state, now))).To(Equal([]string{"A1", "A2"}))

		state.Search = " a1"
		Expect(order.FilterOrders(list, state, now)).To(BeEmpty())

		state.Search = "a shah"
		Expect(ids(order.FilterOrders(list, state, now))).To(Equal([]string{"A2"}))
	})

	It("filters by channel", func() {
		state := order.DefaultFilterState()
		state.Side.Channel = "Amazon"
		Expect(ids(order.FilterOrders(list, state, now))).To(Equal([]string{"A2"}))
	})

	It("treats empty facets as All", func() {
		Expect(order.FilterOrders(list, order.FilterState{}, now)).To(HaveLen(2))
	})

	DescribeTable("date buckets",
		func(created time.Time, bucket order.DateRange, kept bool) {
			in := []order.Order{{ID: "x", OrderID: "X", CreatedAt: created}}
			state := order.DefaultFilterState()
			state.Side.DateRange = bucket
			Expect(order.FilterOrders(in, state, now)).To(HaveLen(map[bool]int{true: 1, false: 0}[kept]))
		},
		Entry("today at midnight is today", time.Date(2026, 10, 16, 0, 0, 0, 0, time.Local), order.DateToday, true),
		Entry("yesterday is not today", time.Date(2026, 10, 15, 23, 59, 0, 0, time.Local), order.DateToday, false),
		Entry("late yesterday is yesterday", time.Date(2026, 10, 15, 23, 59, 0, 0, time.Local), order.DateYesterday, true),
		Entry("two days ago is not yesterday", time.Date(2026, 10, 14, 12, 0, 0, 0, time.Local), order.DateYesterday, false),
		Entry("start of the 7 day window is kept", time.Date(2026, 10, 9, 0, 0, 0, 0, time.Local), order.DateLast7Days, true),
		Entry("just before the window is dropped", time.Date(2026, 10, 8, 23, 59, 0, 0, time.Local), order.DateLast7Days, false),
	)

	DescribeTable("amount buckets",
		func(value *float64, bucket order.AmountRange, kept bool) {
			in := []order.Order{{ID: "x", OrderID: "X", Revenue: value, CreatedAt: now}}
			state := order.DefaultFilterState()
			state.Side.Amount = bucket
			Expect(order.FilterOrders(in, state, now)).To(HaveLen(map[bool]int{true: 1, false: 0}[kept]))
		},
		Entry("999 is under 1000", revenue(999), order.AmountUnder1000, true),
		Entry("1000 is not under 1000", revenue(1000), order.AmountUnder1000, false),
		Entry("1000 is in the middle bucket", revenue(1000), order.Amount1000To5000, true),
		Entry("5000 is in the middle bucket", revenue(5000), order.Amount1000To5000, true),
		Entry("5000 is not above 5000", revenue(5000), order.AmountOver5000, false),
		Entry("missing revenue counts as 0", nil, order.AmountUnder1000, true),
		Entry("missing revenue is not above 5000", nil, order.AmountOver5000, false),
		Entry("missing revenue is not in the middle bucket", nil, order.Amount1000To5000, false),
	)

	It("is idempotent and order preserving", func() {
		many := []order.Order{}
		for i, st := range []order.Status{order.StatusPending, order.StatusShipped, order.StatusPending, order.StatusCancelled, order.StatusPending} {
			many = append(many, order.Order{ID: string(rune('a' + i)), OrderID: string(rune('A' + i)), Status: st, Revenue: revenue(float64(i) * 900), CreatedAt: now.Add(-time.Duration(i) * time.Hour)})
		}
		state := order.DefaultFilterState()
		state.Tab = "Pending"
		state.Side.Amount = order.AmountUnder1000

		once := order.FilterOrders(many, state, now)
		twice := order.FilterOrders(once, state, now)
		Expect(twice).To(Equal(once))
		Expect(ids(once)).To(Equal([]string{"A"}))

		state.Side.Amount = order.AmountAny
		Expect(ids(order.FilterOrders(many, state, now))).To(Equal([]string{"A", "C", "E"}))
	})

	It("does not modify its input", func() {
		before := append([]order.Order(nil), list...)
		state := order.DefaultFilterState()
		state.Tab = "Pending"
		out := order.FilterOrders(list, state, now)
		out[0].Status = order.StatusCancelled
		Expect(list).To(Equal(before))
	})
})

var _ = Describe("FilterState", func() {
	It("accepts the menu values", func() {
		state := order.FilterState{Tab: "Shipped", Side: order.SideFilters{Channel: "Blinkit", DateRange: order.DateYesterday, Amount: order.Amount1000To5000}}
		Expect(state.Validate()).To(Succeed())
		Expect(state.Side.Active()).To(BeTrue())
	})

	It("rejects unknown values", func() {
		state := order.DefaultFilterState()
		state.Side.Amount = "huge"
		state.Tab = "Lost"
		err := state.Validate()
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("status must be one of"))
	})

	It("resets every criterion", func() {
		state := order.FilterState{Tab: "Pending", Search: "x", Side: order.SideFilters{Channel: "Amazon"}}
		state.Reset()
		Expect(state).To(Equal(order.DefaultFilterState()))
		Expect(state.Side.Active()).To(BeFalse())
	})
})

var _ = Describe("SortByNewest", func() {
	It("sorts descending and keeps ties in place", func() {
		t0 := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
		list := []order.Order{
			{OrderID: "old", CreatedAt: t0},
			{OrderID: "tie-1", CreatedAt: t0.Add(time.Hour)},
			{OrderID: "new", CreatedAt: t0.Add(2 * time.Hour)},
			{OrderID: "tie-2", CreatedAt: t0.Add(time.Hour)},
		}
		order.SortByNewest(list)
		Expect(ids(list)).To(Equal([]string{"new", "tie-1", "tie-2", "old"}))
	})
})

var _ = Describe("CountByStatus", func() {
	It("counts every tab", func() {
		counts := order.CountByStatus([]order.Order{{Status: "pending"}, {Status: order.StatusPending}, {Status: order.StatusShipped}})
		Expect(counts["All"]).To(Equal(3))
		Expect(counts["Pending"]).To(Equal(2))
		Expect(counts["Shipped"]).To(Equal(1))
		Expect(counts).To(HaveKeyWithValue("Cancelled", 0))
	})
})

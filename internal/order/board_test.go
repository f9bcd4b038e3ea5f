package order_test

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/frahmantamala/crm-console/internal/order"
	"github.com/frahmantamala/crm-console/internal/permission"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Board", func() {
	var (
		api   *fakeAPI
		board *order.Board
	)

	BeforeEach(func() {
		now := time.Now()
		api = &fakeAPI{orders: fixtureOrders(now)}
		service := order.NewService(api, nil, quietLogger())
		board = order.NewBoard(service, permission.RoleChecker(permission.RoleManager), 10*time.Millisecond, quietLogger())
	})

	AfterEach(func() {
		board.StopLive()
	})

	It("hands the filtered view to the change callback", func() {
		var seen atomic.Int32
		board.OnChange(func(view []order.Order) { seen.Store(int32(len(view))) })
		Expect(board.SetState(order.FilterState{Tab: "Delivered"})).To(Succeed())

		Expect(board.Refresh(context.Background())).To(Succeed())
		Expect(seen.Load()).To(Equal(int32(1)))
		Expect(board.Counts()).To(HaveKeyWithValue("All", 2))

		board.ClearFilters()
		Expect(board.View()).To(HaveLen(2))
	})

	It("refuses an invalid filter state and keeps the old one", func() {
		Expect(board.SetState(order.FilterState{Side: order.SideFilters{Channel: "Fax"}})).NotTo(Succeed())
		Expect(board.State()).To(Equal(order.DefaultFilterState()))
	})

	It("toggles live refresh", func() {
		var refreshes atomic.Int32
		board.OnChange(func([]order.Order) { refreshes.Add(1) })

		Expect(board.ToggleLive(context.Background())).To(BeTrue())
		Expect(board.Live()).To(BeTrue())
		Eventually(refreshes.Load).Should(BeNumerically(">=", 2))

		Expect(board.ToggleLive(context.Background())).To(BeFalse())
		Expect(board.Live()).To(BeFalse())
		stopped := refreshes.Load()
		Consistently(refreshes.Load, 50*time.Millisecond).Should(Equal(stopped))
	})

	It("applies status updates to the view", func() {
		Expect(board.Refresh(context.Background())).To(Succeed())
		_, err := board.UpdateStatus(context.Background(), "o-2", "Cancelled")
		Expect(err).NotTo(HaveOccurred())
		Expect(board.Counts()).To(HaveKeyWithValue("Cancelled", 1))
	})
})

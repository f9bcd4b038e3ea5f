package order_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/frahmantamala/crm-console/internal"
	orderDatamodel "github.com/frahmantamala/crm-console/internal/core/datamodel/order"
	"github.com/frahmantamala/crm-console/internal/core/events"
	"github.com/frahmantamala/crm-console/internal/order"
	"github.com/frahmantamala/crm-console/internal/permission"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type fakeAPI struct {
	mu        sync.Mutex
	orders    []orderDatamodel.Order
	listErr   error
	updateErr error
	updates   []string
	// gate, when set, holds the next ListOrders call until it is closed.
	// entered is closed once that call is waiting.
	gate    chan struct{}
	entered chan struct{}
}

func (f *fakeAPI) ListOrders(ctx context.Context) ([]orderDatamodel.Order, error) {
	f.mu.Lock()
	gate, entered := f.gate, f.entered
	f.gate, f.entered = nil, nil
	f.mu.Unlock()
	if gate != nil {
		close(entered)
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]orderDatamodel.Order(nil), f.orders...), nil
}

func (f *fakeAPI) UpdateOrderStatus(ctx context.Context, id, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, id+"="+status)
	if f.updateErr != nil {
		return f.updateErr
	}
	for i := range f.orders {
		if f.orders[i].ID == id {
			f.orders[i].Status = status
		}
	}
	return nil
}

type recordingBus struct {
	mu     sync.Mutex
	events []*events.OrderStatusEvent
}

func (b *recordingBus) Publish(ctx context.Context, e events.Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, e.(*events.OrderStatusEvent))
	return nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func fixtureOrders(now time.Time) []orderDatamodel.Order {
	return []orderDatamodel.Order{
		{ID: "o-2", OrderID: "A2", Status: "Delivered", Revenue: revenue(6000), Channel: "Amazon", CreatedAt: now.AddDate(0, 0, -10), Customer: &orderDatamodel.Customer{Name: "Meera"}},
		{ID: "o-1", OrderID: "A1", Status: "Pending", Revenue: revenue(500), Channel: "Website", CreatedAt: now.Add(-time.Hour), Customer: &orderDatamodel.Customer{Name: "Ravi"},
			Items: []orderDatamodel.Item{{SKU: "GHEE-1", Name: "Ghee", Price: 500, Quantity: 1}}},
	}
}

var _ = Describe("Service", func() {
	var (
		api     *fakeAPI
		bus     *recordingBus
		service *order.Service
		ctx     context.Context
		now     time.Time
		manager permission.Checker
		viewer  permission.Checker
	)

	BeforeEach(func() {
		now = time.Date(2026, 10, 16, 12, 0, 0, 0, time.Local)
		api = &fakeAPI{orders: fixtureOrders(now)}
		bus = &recordingBus{}
		service = order.NewService(api, bus, quietLogger()).WithClock(func() time.Time { return now })
		ctx = context.Background()
		manager = permission.RoleChecker(permission.RoleManager)
		viewer = permission.RoleChecker(permission.RoleViewer)
	})

	Describe("Refresh", func() {
		It("sorts the fetched list newest first", func() {
			orders, err := service.Refresh(ctx, viewer)
			Expect(err).NotTo(HaveOccurred())
			Expect(ids(orders)).To(Equal([]string{"A1", "A2"}))
			Expect(orders[0].ID).To(Equal("o-1"))
		})

		It("denies users without orders:read before calling the backend", func() {
			api.listErr = errors.New("must not be called")
			_, err := service.Refresh(ctx, nil)
			Expect(err).To(Equal(internal.ErrAccessDenied))
		})

		It("keeps the previous list when a fetch fails", func() {
			_, err := service.Refresh(ctx, viewer)
			Expect(err).NotTo(HaveOccurred())

			api.listErr = internal.NewNetworkError(errors.New("dial tcp: refused"))
			_, err = service.Refresh(ctx, viewer)
			Expect(internal.IsType(err, internal.ErrorTypeNetwork)).To(BeTrue())
			Expect(service.Cache().Snapshot()).To(HaveLen(2))
		})
	})

	Describe("List", func() {
		It("filters the refreshed list", func() {
			state := order.DefaultFilterState()
			state.Side.DateRange = order.DateLast7Days
			orders, err := service.List(ctx, viewer, state)
			Expect(err).NotTo(HaveOccurred())
			Expect(ids(orders)).To(Equal([]string{"A1"}))
		})

		It("rejects unknown buckets", func() {
			state := order.DefaultFilterState()
			state.Side.DateRange = "Last Year"
			_, err := service.List(ctx, viewer, state)
			Expect(internal.IsType(err, internal.ErrorTypeValidation)).To(BeTrue())
		})
	})

	Describe("UpdateStatus", func() {
		BeforeEach(func() {
			_, err := service.Refresh(ctx, viewer)
			Expect(err).NotTo(HaveOccurred())
		})

		It("replaces only the status of the matching order", func() {
			before := service.Cache().Snapshot()

			updated, err := service.UpdateStatus(ctx, manager, "o-1", "shipped")
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Status).To(Equal(order.StatusShipped))
			Expect(api.updates).To(Equal([]string{"o-1=Shipped"}))

			after := service.Cache().Snapshot()
			expected := append([]order.Order(nil), before...)
			expected[0].Status = order.StatusShipped
			Expect(after).To(Equal(expected))
			Expect(before[0].Status).To(Equal(order.StatusPending))

			Expect(bus.events).To(HaveLen(1))
			Expect(bus.events[0].EventType()).To(Equal(events.EventTypeOrderStatusApplied))
			Expect(bus.events[0].From).To(Equal("Pending"))
			Expect(bus.events[0].DisplayID).To(Equal("A1"))
		})

		It("leaves the list untouched when the backend fails", func() {
			before := service.Cache().Snapshot()
			api.updateErr = internal.NewValidationError("Invalid status transition", internal.ErrCodeBackendRejected)

			_, err := service.UpdateStatus(ctx, manager, "o-1", "Cancelled")
			Expect(err).To(HaveOccurred())
			Expect(internal.UserMessage(err)).To(Equal("Failed to update status: Invalid status transition"))
			Expect(internal.IsType(err, internal.ErrorTypeValidation)).To(BeTrue())
			Expect(service.Cache().Snapshot()).To(Equal(before))

			Expect(bus.events).To(HaveLen(1))
			Expect(bus.events[0].EventType()).To(Equal(events.EventTypeOrderStatusReverted))
			Expect(bus.events[0].Reason).To(Equal("Invalid status transition"))
		})

		It("rejects the current status without calling the backend", func() {
			_, err := service.UpdateStatus(ctx, manager, "o-1", "Pending")
			Expect(err).To(Equal(internal.ErrStatusUnchanged))
			Expect(api.updates).To(BeEmpty())
		})

		It("rejects unknown statuses", func() {
			_, err := service.UpdateStatus(ctx, manager, "o-1", "Lost")
			Expect(internal.IsType(err, internal.ErrorTypeValidation)).To(BeTrue())
			Expect(api.updates).To(BeEmpty())
		})

		It("denies viewers", func() {
			_, err := service.UpdateStatus(ctx, viewer, "o-1", "Shipped")
			Expect(err).To(Equal(internal.ErrAccessDenied))
			Expect(api.updates).To(BeEmpty())
		})

		It("wraps unclassified failures as unexpected", func() {
			api.updateErr = errors.New("boom")
			_, err := service.UpdateStatus(ctx, manager, "o-1", "Shipped")
			Expect(internal.UserMessage(err)).To(Equal("Failed to update status: " + internal.MsgUnexpected))
		})
	})

	It("drops a snapshot that was requested before a status patch landed", func() {
		_, err := service.Refresh(ctx, viewer)
		Expect(err).NotTo(HaveOccurred())

		gate, entered := make(chan struct{}), make(chan struct{})
		api.mu.Lock()
		api.gate, api.entered = gate, entered
		api.mu.Unlock()

		done := make(chan []order.Order, 1)
		go func() {
			defer GinkgoRecover()
			orders, err := service.Refresh(ctx, viewer)
			Expect(err).NotTo(HaveOccurred())
			done <- orders
		}()

		// the slow fetch holds its ticket while the patch lands
		Eventually(entered).Should(BeClosed())
		_, err = service.UpdateStatus(ctx, manager, "o-1", "Shipped")
		Expect(err).NotTo(HaveOccurred())

		// release the slow fetch carrying the pre-patch status
		api.mu.Lock()
		api.orders = fixtureOrders(now)
		api.mu.Unlock()
		close(gate)

		var orders []order.Order
		Eventually(done).Should(Receive(&orders))
		Expect(orders[0].Status).To(Equal(order.StatusShipped))

		fresh, err := service.Refresh(ctx, viewer)
		Expect(err).NotTo(HaveOccurred())
		Expect(fresh[0].Status).To(Equal(order.StatusPending))
	})
})

package dashboard

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/frahmantamala/crm-console/internal/permission"
	"github.com/frahmantamala/crm-console/internal/poller"
)

// Monitor refreshes the KPIs and the stock summary on an interval while live
// mode is on.
type Monitor struct {
	service *Service
	checker permission.Checker
	poller  *poller.Poller

	mu       sync.Mutex
	onChange func(Snapshot)
}

func NewMonitor(service *Service, checker permission.Checker, interval time.Duration, logger *slog.Logger) *Monitor {
	m := &Monitor{service: service, checker: checker}
	m.poller = poller.New("dashboard", interval, m.Refresh, logger)
	return m
}

func (m *Monitor) OnChange(fn func(Snapshot)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onChange = fn
}

// Refresh reports the snapshot even when a part failed, since the other part
// may have changed.
func (m *Monitor) Refresh(ctx context.Context) error {
	snap, err := m.service.Refresh(ctx, m.checker)
	m.mu.Lock()
	fn := m.onChange
	m.mu.Unlock()
	if fn != nil && ctx.Err() == nil {
		fn(snap)
	}
	return err
}

func (m *Monitor) Start(ctx context.Context) bool {
	return m.poller.Start(ctx)
}

func (m *Monitor) Stop() {
	m.poller.Stop()
}

func (m *Monitor) Toggle(ctx context.Context) bool {
	return m.poller.Toggle(ctx)
}

func (m *Monitor) Live() bool {
	return m.poller.Running()
}

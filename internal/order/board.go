package order

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/frahmantamala/crm-console/internal/permission"
	"github.com/frahmantamala/crm-console/internal/poller"
)

// Board is the order view of one operator: its filter state, the shared
// cache behind the service, and the live refresh loop.
type Board struct {
	service  *Service
	checker  permission.Checker
	poller   *poller.Poller
	onChange func(view []Order)
	logger   *slog.Logger

	mu    sync.Mutex
	state FilterState
}

func NewBoard(service *Service, checker permission.Checker, interval time.Duration, logger *slog.Logger) *Board {
	b := &Board{
		service: service,
		checker: checker,
		state:   DefaultFilterState(),
		logger:  logger,
	}
	b.poller = poller.New("orders", interval, b.Refresh, logger)
	return b
}

// OnChange registers fn to receive the filtered view after every refresh.
func (b *Board) OnChange(fn func(view []Order)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onChange = fn
}

func (b *Board) State() FilterState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

func (b *Board) SetState(state FilterState) error {
	if err := state.Validate(); err != nil {
		return err
	}
	b.mu.Lock()
	b.state = state
	b.mu.Unlock()
	return nil
}

func (b *Board) ClearFilters() {
	b.mu.Lock()
	b.state.Reset()
	b.mu.Unlock()
}

func (b *Board) View() []Order {
	return b.service.Filtered(b.State())
}

// Counts are taken over the unfiltered list.
func (b *Board) Counts() map[string]int {
	return b.service.Counts()
}

func (b *Board) Refresh(ctx context.Context) error {
	if _, err := b.service.Refresh(ctx, b.checker); err != nil {
		return err
	}
	b.notify()
	return nil
}

func (b *Board) UpdateStatus(ctx context.Context, id, status string) (*Order, error) {
	updated, err := b.service.UpdateStatus(ctx, b.checker, id, status)
	if err != nil {
		return nil, err
	}
	b.notify()
	return updated, nil
}

func (b *Board) StartLive(ctx context.Context) bool {
	return b.poller.Start(ctx)
}

func (b *Board) StopLive() {
	b.poller.Stop()
}

func (b *Board) ToggleLive(ctx context.Context) bool {
	return b.poller.Toggle(ctx)
}

func (b *Board) Live() bool {
	return b.poller.Running()
}

func (b *Board) notify() {
	b.mu.Lock()
	fn := b.onChange
	b.mu.Unlock()
	if fn != nil {
		fn(b.View())
	}
}

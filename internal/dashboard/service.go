package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	dashboardDatamodel "github.com/frahmantamala/crm-console/internal/core/datamodel/dashboard"
	"github.com/frahmantamala/crm-console/internal/core/sequence"
	"github.com/frahmantamala/crm-console/internal/permission"
)

type API interface {
	KPIs(ctx context.Context) (*dashboardDatamodel.KPIs, error)
	SalesByChannel(ctx context.Context, period string) ([]dashboardDatamodel.ChannelSales, error)
	LowStock(ctx context.Context) (*dashboardDatamodel.StockSummary, error)
}

// Service keeps the latest dashboard parts. Each part has its own sequence
// guard; a failed fetch leaves that part as it was.
type Service struct {
	api    API
	logger *slog.Logger
	now    func() time.Time

	kpiGuard   sequence.Guard
	stockGuard sequence.Guard
	salesGuard sequence.Guard

	mu       sync.RWMutex
	snapshot Snapshot
}

func NewService(api API, logger *slog.Logger) *Service {
	return &Service{
		api:      api,
		logger:   logger,
		now:      time.Now,
		snapshot: Snapshot{Period: DefaultPeriod},
	}
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Refresh fetches the KPIs and the stock summary. Both are attempted even
// when one fails; the errors are joined.
func (s *Service) Refresh(ctx context.Context, checker permission.Checker) (Snapshot, error) {
	if err := permission.Require(checker, permission.ResourceDashboard, permission.ActionRead); err != nil {
		return Snapshot{}, err
	}

	var (
		wg               sync.WaitGroup
		kpiErr, stockErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		kpiErr = s.refreshKPIs(ctx)
	}()
	go func() {
		defer wg.Done()
		stockErr = s.refreshStock(ctx)
	}()
	wg.Wait()

	return s.Snapshot(), errors.Join(kpiErr, stockErr)
}

func (s *Service) refreshKPIs(ctx context.Context) error {
	ticket := s.kpiGuard.Issue()
	kpis, err := s.api.KPIs(ctx)
	if err != nil {
		s.logger.Error("failed to fetch kpis", "error", err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.kpiGuard.Accept(ticket) {
		s.logger.Debug("dropped superseded kpi snapshot", "ticket", ticket)
		return nil
	}
	s.snapshot.KPIs = kpis
	s.snapshot.MarginPercent = MarginPercent(kpis)
	s.snapshot.Trend = RevenueTrend(kpis)
	s.snapshot.UpdatedAt = s.now()
	return nil
}

func (s *Service) refreshStock(ctx context.Context) error {
	ticket := s.stockGuard.Issue()
	stock, err := s.api.LowStock(ctx)
	if err != nil {
		s.logger.Error("failed to fetch stock summary", "error", err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.stockGuard.Accept(ticket) {
		s.logger.Debug("dropped superseded stock snapshot", "ticket", ticket)
		return nil
	}
	s.snapshot.Stock = stock
	s.snapshot.UpdatedAt = s.now()
	return nil
}

// Chart fetches the sales per channel for period. An empty period means the
// default.
func (s *Service) Chart(ctx context.Context, checker permission.Checker, period string) ([]dashboardDatamodel.ChannelSales, error) {
	if err := permission.Require(checker, permission.ResourceDashboard, permission.ActionRead); err != nil {
		return nil, err
	}
	p, err := ParsePeriod(period)
	if err != nil {
		return nil, err
	}

	ticket := s.salesGuard.Issue()
	sales, err := s.api.SalesByChannel(ctx, string(p))
	if err != nil {
		s.logger.Error("failed to fetch sales by channel", "error", err, "period", p)
		return nil, err
	}
	if sales == nil {
		sales = []dashboardDatamodel.ChannelSales{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.salesGuard.Accept(ticket) {
		s.snapshot.Sales = sales
		s.snapshot.Period = p
	} else {
		s.logger.Debug("dropped superseded sales snapshot", "ticket", ticket, "period", p)
	}
	return sales, nil
}

func (s *Service) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := s.snapshot
	snap.Sales = append([]dashboardDatamodel.ChannelSales(nil), s.snapshot.Sales...)
	return snap
}

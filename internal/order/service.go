package order

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/crm-console/internal"
	orderDatamodel "github.com/frahmantamala/crm-console/internal/core/datamodel/order"
	"github.com/frahmantamala/crm-console/internal/core/events"
	"github.com/frahmantamala/crm-console/internal/permission"
)

// API is the part of the CRM backend the order service talks to.
type API interface {
	ListOrders(ctx context.Context) ([]orderDatamodel.Order, error)
	UpdateOrderStatus(ctx context.Context, id, status string) error
}

type Publisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type Service struct {
	api    API
	cache  *Cache
	events Publisher
	logger *slog.Logger
	now    func() time.Time
}

func NewService(api API, publisher Publisher, logger *slog.Logger) *Service {
	return &Service{
		api:    api,
		cache:  NewCache(),
		events: publisher,
		logger: logger,
		now:    time.Now,
	}
}

// WithClock replaces the clock used for date range filters.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) Cache() *Cache {
	return s.cache
}

// Refresh fetches the order list and stores it unless a newer fetch or a
// status patch got there first. It returns the list that is current after
// the call either way.
func (s *Service) Refresh(ctx context.Context, checker permission.Checker) ([]Order, error) {
	if err := permission.Require(checker, permission.ResourceOrders, permission.ActionRead); err != nil {
		return nil, err
	}

	ticket := s.cache.Ticket()
	list, err := s.api.ListOrders(ctx)
	if err != nil {
		s.logger.Error("failed to fetch orders", "error", err, "ticket", ticket)
		return nil, err
	}

	orders := FromDataModels(list)
	SortByNewest(orders)
	if !s.cache.Replace(ticket, orders) {
		s.logger.Debug("dropped superseded order snapshot", "ticket", ticket, "count", len(orders))
	}
	return s.cache.Snapshot(), nil
}

// List refreshes and returns the orders matching state.
func (s *Service) List(ctx context.Context, checker permission.Checker, state FilterState) ([]Order, error) {
	if err := state.Validate(); err != nil {
		return nil, err
	}
	orders, err := s.Refresh(ctx, checker)
	if err != nil {
		return nil, err
	}
	return FilterOrders(orders, state, s.now()), nil
}

// Filtered applies state to the cached list without fetching.
func (s *Service) Filtered(state FilterState) []Order {
	return FilterOrders(s.cache.Snapshot(), state, s.now())
}

// UpdateStatus sends a status change and patches the cached order once the
// backend accepted it. On failure the cache is left as it was.
func (s *Service) UpdateStatus(ctx context.Context, checker permission.Checker, id string, status string) (*Order, error) {
	if err := permission.Require(checker, permission.ResourceOrders, permission.ActionWrite); err != nil {
		return nil, err
	}

	to, ok := ParseStatus(status)
	if !ok {
		return nil, internal.NewValidationFieldError("status", "status must be one of: Pending, Confirmed, Processing, Shipped, Delivered, Cancelled", internal.ErrCodeInvalidStatus)
	}

	patch, err := s.cache.Begin(id, to)
	if err != nil {
		return nil, err
	}

	if err := s.api.UpdateOrderStatus(ctx, id, string(to)); err != nil {
		s.cache.Revert(patch, err)
		s.logger.Error("order status update failed",
			"error", err,
			"order_id", id,
			"from", patch.From,
			"to", patch.To)
		s.publish(ctx, events.EventTypeOrderStatusReverted, patch)
		return nil, updateFailed(err)
	}

	s.cache.Apply(patch)
	s.logger.Info("order status updated",
		"order_id", id,
		"display_id", patch.DisplayID,
		"from", patch.From,
		"to", patch.To)
	s.publish(ctx, events.EventTypeOrderStatusApplied, patch)

	if updated, ok := s.cache.Find(id); ok {
		return &updated, nil
	}
	return &Order{ID: id, Status: to}, nil
}

func (s *Service) publish(ctx context.Context, eventType string, p *Patch) {
	if s.events == nil {
		return
	}
	reason := ""
	if p.Err != nil {
		reason = internal.UserMessage(p.Err)
	}
	event := events.NewOrderStatusEvent(eventType, p.OrderID, p.DisplayID, string(p.From), string(p.To), reason)
	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.Error("failed to publish order status event", "error", err, "event_type", eventType)
	}
}

// updateFailed keeps the classification of err and prefixes its message.
func updateFailed(err error) error {
	appErr, ok := internal.IsAppError(err)
	if !ok {
		appErr = internal.NewUnexpectedError(err)
	}
	return &internal.AppError{
		Type:       appErr.Type,
		Code:       appErr.Code,
		Message:    "Failed to update status: " + appErr.GetDetailedMessage(),
		StatusCode: appErr.StatusCode,
		Cause:      err,
	}
}

func (s *Service) Counts() map[string]int {
	return CountByStatus(s.cache.Snapshot())
}

package order

import (
	"context"
	"log/slog"
	"time"

	orderDatamodel "github.com/frahmantamala/crm-console/internal/core/datamodel/order"
	"github.com/frahmantamala/crm-console/internal/core/events"
	"github.com/google/uuid"
)

// TransitionRepository persists the outcome of status changes.
type TransitionRepository interface {
	Record(ctx context.Context, t *orderDatamodel.Transition) error
	ListByOrder(ctx context.Context, orderID string) ([]orderDatamodel.Transition, error)
	Recent(ctx context.Context, limit int) ([]orderDatamodel.Transition, error)
}

type Subscriber interface {
	Subscribe(eventType string, handler events.Handler)
}

// Journal writes every applied or reverted status patch to the repository.
type Journal struct {
	repo   TransitionRepository
	logger *slog.Logger
}

func NewJournal(repo TransitionRepository, logger *slog.Logger) *Journal {
	return &Journal{repo: repo, logger: logger}
}

func (j *Journal) Register(bus Subscriber) {
	bus.Subscribe(events.EventTypeOrderStatusApplied, j.handle)
	bus.Subscribe(events.EventTypeOrderStatusReverted, j.handle)
}

func (j *Journal) handle(ctx context.Context, event events.Event) error {
	e, ok := event.(*events.OrderStatusEvent)
	if !ok {
		j.logger.Error("unexpected event payload", "event_type", event.EventType())
		return nil
	}

	state := PatchApplied
	if e.EventType() == events.EventTypeOrderStatusReverted {
		state = PatchReverted
	}

	t := &orderDatamodel.Transition{
		ID:         uuid.New().String(),
		OrderID:    e.OrderID,
		DisplayID:  e.DisplayID,
		FromStatus: e.From,
		ToStatus:   e.To,
		State:      string(state),
		Error:      e.Reason,
		CreatedAt:  e.OccurredAt().UTC().Truncate(time.Millisecond),
	}
	if err := j.repo.Record(ctx, t); err != nil {
		j.logger.Error("failed to record status transition", "error", err, "order_id", e.OrderID)
		return err
	}
	return nil
}

func (j *Journal) History(ctx context.Context, orderID string) ([]orderDatamodel.Transition, error) {
	return j.repo.ListByOrder(ctx, orderID)
}

func (j *Journal) Recent(ctx context.Context, limit int) ([]orderDatamodel.Transition, error) {
	if limit <= 0 {
		limit = 20
	}
	return j.repo.Recent(ctx, limit)
}

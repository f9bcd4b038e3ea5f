package postgres

import (
	"context"
	"fmt"

	orderDatamodel "github.com/frahmantamala/crm-console/internal/core/datamodel/order"
	"github.com/jmoiron/sqlx"
)

type TransitionRepository struct {
	db *sqlx.DB
}

func NewTransitionRepository(db *sqlx.DB) *TransitionRepository {
	return &TransitionRepository{db: db}
}

const transitionColumns = `id, order_id, display_id, from_status, to_status, state, error, created_at`

func (r *TransitionRepository) Record(ctx context.Context, t *orderDatamodel.Transition) error {
	query := `
INSERT INTO order_status_transitions (` + transitionColumns + `)
VALUES (:id, :order_id, :display_id, :from_status, :to_status, :state, :error, :created_at)`

	if _, err := r.db.NamedExecContext(ctx, query, t); err != nil {
		return fmt.Errorf("record transition: %w", err)
	}
	return nil
}

func (r *TransitionRepository) ListByOrder(ctx context.Context, orderID string) ([]orderDatamodel.Transition, error) {
	query := r.db.Rebind(`SELECT ` + transitionColumns + ` FROM order_status_transitions WHERE order_id = ? ORDER BY created_at ASC`)

	var list []orderDatamodel.Transition
	if err := r.db.SelectContext(ctx, &list, query, orderID); err != nil {
		return nil, fmt.Errorf("list transitions: %w", err)
	}
	return list, nil
}

func (r *TransitionRepository) Recent(ctx context.Context, limit int) ([]orderDatamodel.Transition, error) {
	query := r.db.Rebind(`SELECT ` + transitionColumns + ` FROM order_status_transitions ORDER BY created_at DESC LIMIT ?`)

	var list []orderDatamodel.Transition
	if err := r.db.SelectContext(ctx, &list, query, limit); err != nil {
		return nil, fmt.Errorf("recent transitions: %w", err)
	}
	return list, nil
}

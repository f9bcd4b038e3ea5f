package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/crm-console/internal"
	"github.com/frahmantamala/crm-console/internal/core/events"
	"github.com/frahmantamala/crm-console/internal/crmapi"
	"github.com/frahmantamala/crm-console/internal/dashboard"
	"github.com/frahmantamala/crm-console/internal/inventory"
	"github.com/frahmantamala/crm-console/internal/order"
	orderPostgres "github.com/frahmantamala/crm-console/internal/order/postgres"
	"github.com/frahmantamala/crm-console/internal/report"
	"github.com/frahmantamala/crm-console/internal/session"
	sessionPostgres "github.com/frahmantamala/crm-console/internal/session/postgres"
	"github.com/frahmantamala/crm-console/internal/store"
	"github.com/frahmantamala/crm-console/internal/user"
	"github.com/frahmantamala/crm-console/pkg/logger"
)

// console is the terminal face: one store, one session and the services
// that act on behalf of it.
type console struct {
	cfg     *internal.Config
	logger  *slog.Logger
	store   *store.Store
	client  *crmapi.Client
	session *session.Manager
	bus     *events.EventBus

	orders    *order.Service
	journal   *order.Journal
	dashboard *dashboard.Service
	inventory *inventory.Service
	users     *user.Service
	reports   *report.Service
}

// openConsole opens and migrates the local store and wires the services.
// The session is not restored yet; see restore.
func openConsole(ctx context.Context, cfg *internal.Config) (*console, error) {
	lg := logger.LoggerWrapper()

	st, err := store.Open(cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close()
		return nil, fmt.Errorf("failed to migrate store: %w", err)
	}

	client := crmapi.New(crmapi.Config{Endpoint: cfg.API.Endpoint(), Timeout: cfg.API.Timeout}, nil, lg)
	manager := session.NewManager(sessionPostgres.NewTokenStore(st.Gorm), client, lg)
	client = client.WithTokenSource(manager)

	bus := events.NewEventBus(lg)
	journal := order.NewJournal(orderPostgres.NewTransitionRepository(st.DB), lg)
	journal.Register(bus)

	orders := order.NewService(client, bus, lg)

	return &console{
		cfg:       cfg,
		logger:    lg,
		store:     st,
		client:    client,
		session:   manager,
		bus:       bus,
		orders:    orders,
		journal:   journal,
		dashboard: dashboard.NewService(client, lg),
		inventory: inventory.NewService(client, lg),
		users:     user.NewService(client, lg),
		reports:   report.NewService(orders, lg),
	}, nil
}

// restore brings back the persisted session or fails with the reason the
// user has to log in again.
func (c *console) restore(ctx context.Context) (*session.Session, error) {
	return c.session.Init(ctx)
}

// Close waits for pending journal writes before closing the store.
func (c *console) Close() {
	if err := c.bus.Drain(context.Background()); err != nil {
		c.logger.Warn("event bus did not drain", "error", err)
	}
	if err := c.store.Close(); err != nil {
		c.logger.Error("failed to close store", "error", err)
	}
}

// withConsole opens the console, restores the session when needsSession is
// set and runs fn. A 401 from the backend ends the session.
func withConsole(ctx context.Context, needsSession bool, fn func(c *console, sess *session.Session) error) error {
	c, err := openConsole(ctx, appConfig)
	if err != nil {
		return err
	}
	defer c.Close()

	var sess *session.Session
	if needsSession {
		if sess, err = c.restore(ctx); err != nil {
			return err
		}
	}
	return c.session.Check(ctx, fn(c, sess))
}

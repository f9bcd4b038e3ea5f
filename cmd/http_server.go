package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/crm-console/api"
	"github.com/frahmantamala/crm-console/internal"
	"github.com/frahmantamala/crm-console/internal/auth"
	"github.com/frahmantamala/crm-console/internal/core/events"
	"github.com/frahmantamala/crm-console/internal/crmapi"
	"github.com/frahmantamala/crm-console/internal/dashboard"
	"github.com/frahmantamala/crm-console/internal/inventory"
	"github.com/frahmantamala/crm-console/internal/order"
	orderPostgres "github.com/frahmantamala/crm-console/internal/order/postgres"
	"github.com/frahmantamala/crm-console/internal/report"
	"github.com/frahmantamala/crm-console/internal/session"
	sessionRedis "github.com/frahmantamala/crm-console/internal/session/redis"
	"github.com/frahmantamala/crm-console/internal/store"
	"github.com/frahmantamala/crm-console/internal/transport"
	"github.com/frahmantamala/crm-console/internal/transport/rest"
	"github.com/frahmantamala/crm-console/internal/user"
	"github.com/frahmantamala/crm-console/pkg/logger"

	"github.com/go-chi/chi"
	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Serve the console over HTTP under /console/v1, forwarding each caller's token to the CRM backend`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return startHTTPServer(cmd.Context())
	},
}

type Dependencies struct {
	Config   *internal.Config
	Store    *store.Store
	Redis    *goredis.Client
	Bus      *events.EventBus
	Resolver *session.Resolver
	Router   *chi.Mux
	Handlers rest.Handlers
	Logger   *slog.Logger
}

func startHTTPServer(ctx context.Context) error {
	deps, err := initializeDependencies(ctx, appConfig)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer deps.Close()

	rest.RegisterAllRoutes(deps.Router, deps.Handlers, deps.Resolver, deps.Config.Server.Origins(), deps.Logger)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("Starting HTTP server", "address", addr, "backend", deps.Config.API.Endpoint())

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("Received signal, shutting down...", "signal", sig)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			deps.Logger.Error("Server shutdown error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	}

	deps.Logger.Info("Server stopped")
	return nil
}

func initializeDependencies(ctx context.Context, cfg *internal.Config) (*Dependencies, error) {
	lg := logger.LoggerWrapper()

	if _, err := api.Load(ctx); err != nil {
		return nil, fmt.Errorf("invalid embedded OpenAPI document: %w", err)
	}

	st, err := store.Open(cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close()
		return nil, fmt.Errorf("failed to migrate store: %w", err)
	}

	// Requests carry their own token through the context.
	client := crmapi.New(crmapi.Config{Endpoint: cfg.API.Endpoint(), Timeout: cfg.API.Timeout}, nil, lg)

	deps := &Dependencies{
		Config: cfg,
		Store:  st,
		Router: chi.NewRouter(),
		Logger: lg,
	}

	checks := map[string]rest.PingFunc{"store": st.Ping}
	if cfg.Redis.Enabled {
		deps.Redis = sessionRedis.Connect(ctx, cfg.Redis, lg)
		checks["redis"] = func(ctx context.Context) error {
			return deps.Redis.Ping(ctx).Err()
		}
		deps.Resolver = session.NewResolver(client, sessionRedis.NewCache(deps.Redis, cfg.Redis.SessionTTL), lg)
	} else {
		deps.Resolver = session.NewResolver(client, nil, lg)
	}

	deps.Bus = events.NewEventBus(lg)
	journal := order.NewJournal(orderPostgres.NewTransitionRepository(st.DB), lg)
	journal.Register(deps.Bus)

	orders := order.NewService(client, deps.Bus, lg)
	base := transport.NewBaseHandler(lg)

	deps.Handlers = rest.Handlers{
		Health:    rest.NewHealthHandler(checks),
		Auth:      auth.NewHandler(base, deps.Resolver),
		Dashboard: dashboard.NewHandler(base, dashboard.NewService(client, lg)),
		Orders:    order.NewHandler(base, orders, journal),
		Reports:   report.NewHandler(base, report.NewService(orders, lg)),
		Inventory: inventory.NewHandler(base, inventory.NewService(client, lg)),
		Users:     user.NewHandler(base, user.NewService(client, lg)),
	}

	return deps, nil
}

// Close drains pending journal writes and releases the store and redis.
func (d *Dependencies) Close() {
	drainCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := d.Bus.Drain(drainCtx); err != nil {
		d.Logger.Warn("event bus did not drain", "error", err)
	}
	if d.Redis != nil {
		if err := d.Redis.Close(); err != nil {
			d.Logger.Error("Redis close error", "error", err)
		}
	}
	if err := d.Store.Close(); err != nil {
		d.Logger.Error("Store close error", "error", err)
	}
}

package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/portcfg/internal/adapters/file"
	"github.com/aretw0/portcfg/internal/config"
	"github.com/aretw0/portcfg/internal/logging"
	porthttp "github.com/aretw0/portcfg/pkg/adapters/http"
	"github.com/aretw0/portcfg/pkg/adapters/memory"
	"github.com/aretw0/portcfg/pkg/adapters/redis"
	"github.com/aretw0/portcfg/pkg/domain"
	"github.com/aretw0/portcfg/pkg/editor"
	"github.com/aretw0/portcfg/pkg/observability"
	"github.com/aretw0/portcfg/pkg/ports"
	"github.com/aretw0/portcfg/pkg/revision"
)

// App holds the collaborators shared by the CLI commands.
type App struct {
	Config        *config.Config
	Logger        *slog.Logger
	Client        *porthttp.Client
	Store         ports.PortStore
	Disconnection ports.DisconnectionState
	Revisions     *revision.Client

	debug   bool
	metrics *observability.Metrics
	closer  func() error
}

// NewApp wires the configured store, service client and logger.
func NewApp(ctx context.Context, cfg *config.Config, debug bool) (*App, error) {
	logger := NewLogger(cfg.Log.Level, debug)

	app := &App{
		Config:    cfg,
		Logger:    logger,
		Revisions: revision.NewClient(""),
		debug:     debug,
		closer:    func() error { return nil },
		Client: porthttp.NewClient(cfg.API.BaseURL,
			porthttp.WithTimeout(cfg.API.Timeout),
			porthttp.WithClientLogger(logger),
		),
	}

	switch cfg.Cache.Driver {
	case config.DriverMemory:
		app.Store = memory.NewStore()
		app.Disconnection = memory.NewAcknowledgement(cfg.Cluster.DisconnectionAcknowledged)
	case config.DriverRedis:
		store := redis.New(cfg.Cache.Redis.Address,
			redis.WithPrefix(cfg.Cache.Redis.Prefix),
			redis.WithTTL(cfg.Cache.TTL),
			redis.WithLogger(logger),
		)
		ack := redis.NewAcknowledgement(store.Client(), "", logger)
		if cfg.Cluster.DisconnectionAcknowledged {
			if err := ack.Acknowledge(ctx, true); err != nil {
				store.Client().Close()
				return nil, fmt.Errorf("failed to record disconnection acknowledgement: %w", err)
			}
		}
		app.Store = store
		app.Disconnection = ack
		app.closer = store.Client().Close
	default:
		app.Store = file.New(cfg.Cache.Dir)
		app.Disconnection = memory.NewAcknowledgement(cfg.Cluster.DisconnectionAcknowledged)
	}

	logger.Debug("CLI initialized",
		"api", cfg.API.BaseURL,
		"cache", cfg.Cache.Driver,
		"client_id", app.Revisions.ID(),
	)
	return app, nil
}

// EditorOptions returns the options every editor built by the app shares.
func (a *App) EditorOptions() []editor.Option {
	opts := []editor.Option{
		editor.WithLogger(a.Logger),
		editor.WithRevisionSource(a.Revisions),
		editor.WithDisconnectionState(a.Disconnection),
	}

	var hooks domain.EditorHooks
	if a.debug {
		hooks = observability.LogHooks(a.Logger)
	}
	if a.metrics != nil {
		hooks = a.metrics.Hooks(hooks)
	}
	return append(opts, editor.WithLifecycleHooks(hooks))
}

// RecordMetrics makes every editor built afterwards record into m.
func (a *App) RecordMetrics(m *observability.Metrics) {
	a.metrics = m
}

// NewEditor creates an editor on the app's collaborators. Later options win.
func (a *App) NewEditor(opts ...editor.Option) *editor.Editor {
	return editor.New(a.Client, a.Store, append(a.EditorOptions(), opts...)...)
}

// FetchPort loads a port from the service.
func (a *App) FetchPort(ctx context.Context, kind domain.ComponentType, id string) (*domain.PortEntity, error) {
	return a.Client.GetPort(ctx, a.Client.PortURI(kind, id))
}

// Close releases store connections.
func (a *App) Close() error {
	return a.closer()
}

// NewLogger configures the application logger.
// --debug wins over the configured level.
func NewLogger(level string, debug bool) *slog.Logger {
	if debug {
		return logging.New(slog.LevelDebug)
	}
	return logging.New(logging.ParseLevel(level))
}

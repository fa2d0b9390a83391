package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/aretw0/storefront"
	"github.com/aretw0/storefront/internal/adapters/file"
	"github.com/aretw0/storefront/internal/config"
	"github.com/aretw0/storefront/internal/logging"
	"github.com/aretw0/storefront/pkg/adapters/memory"
	"github.com/aretw0/storefront/pkg/adapters/redis"
	"github.com/aretw0/storefront/pkg/domain"
	"github.com/aretw0/storefront/pkg/observability"
	"github.com/aretw0/storefront/pkg/persistence/middleware"
	"github.com/aretw0/storefront/pkg/ports"
	"github.com/aretw0/storefront/pkg/session"
)

// App bundles everything a command needs, built from a Config.
type App struct {
	Config   config.Config
	Logger   *slog.Logger
	Metrics  *observability.Metrics
	Engine   *storefront.Engine
	Sessions *session.Manager

	closers []func() error
}

// NewApp wires logger, metrics, engine, store and session manager.
func NewApp(ctx context.Context, cfg config.Config) (*App, error) {
	logger, err := NewLogger(cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:  cfg,
		Logger:  logger,
		Metrics: observability.NewMetrics(),
	}

	app.Engine, err = NewEngine(cfg, logger, domain.ChainHooks(
		app.Metrics.Hooks(),
		observability.LoggingHooks(logger),
	))
	if err != nil {
		return nil, err
	}

	store, locker, closeStore, err := NewStore(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}
	app.closers = append(app.closers, closeStore)

	store = middleware.Chain(store, middleware.NewInstrumentation(app.Metrics, logger))

	opts := []session.Option{
		session.WithLogger(logger),
		session.WithLockTTL(cfg.Store.LockTTL),
	}
	if locker != nil {
		opts = append(opts, session.WithLocker(locker))
	}
	app.Sessions = session.NewManager(store, app.Engine, opts...)

	logger.Debug("app ready", "store", cfg.Store.Kind, "products", len(app.Engine.Catalog().Products()))
	return app, nil
}

// Close releases store connections.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewLogger builds the application logger. Logs go to stderr so stdout stays
// free for the shop UI, JSON lines and MCP stdio.
func NewLogger(cfg config.Config) (*slog.Logger, error) {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	format, err := logging.ParseFormat(cfg.LogFormat)
	if err != nil {
		return nil, err
	}
	return logging.NewWithWriter(os.Stderr, level, format), nil
}

// NewEngine builds the storefront engine over the configured catalog.
func NewEngine(cfg config.Config, logger *slog.Logger, hooks domain.LifecycleHooks) (*storefront.Engine, error) {
	opts := []storefront.Option{
		storefront.WithLogger(logger),
		storefront.WithLifecycleHooks(hooks),
	}
	switch {
	case cfg.Catalog.File != "":
		opts = append(opts, storefront.WithCatalogFile(cfg.Catalog.File))
	case cfg.Catalog.Dir != "":
		opts = append(opts, storefront.WithCatalogDir(cfg.Catalog.Dir))
	}
	engine, err := storefront.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing storefront: %w", err)
	}
	return engine, nil
}

// NewStore opens the configured session store. The locker is only set for redis.
func NewStore(ctx context.Context, cfg config.Store) (ports.StateStore, ports.DistributedLocker, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Kind {
	case config.StoreMemory:
		return memory.NewStore(), nil, noop, nil
	case config.StoreFile:
		return file.New(cfg.Dir), nil, noop, nil
	case config.StoreRedis:
		var opts []redis.Option
		if cfg.TTL > 0 {
			opts = append(opts, redis.WithTTL(cfg.TTL))
		}
		store := redis.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, opts...)

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := store.Ping(pingCtx); err != nil {
			_ = store.Close()
			return nil, nil, nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddr, err)
		}
		return store, redis.NewLocker(store.Client(), store.Prefix()), store.Close, nil
	}
	return nil, nil, nil, fmt.Errorf("unknown store kind %q", cfg.Kind)
}

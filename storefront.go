package storefront

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/storefront/internal/runtime"
	loamAdapter "github.com/aretw0/storefront/pkg/adapters/loam"
	"github.com/aretw0/storefront/pkg/catalog"
	"github.com/aretw0/storefront/pkg/domain"
	"github.com/aretw0/storefront/pkg/ports"
)

// Engine is the high-level entry point for the storefront library.
// It wraps the internal runtime and provides a simplified API for consumers.
type Engine struct {
	runtime     *runtime.Engine
	catalog     ports.Catalog
	catalogFile string
	catalogDir  string
	entryPage   domain.Page
	hooks       domain.LifecycleHooks
	logger      *slog.Logger
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithCatalog injects a ready-made catalog.
func WithCatalog(c ports.Catalog) Option {
	return func(e *Engine) {
		e.catalog = c
	}
}

// WithCatalogFile loads the catalog from a YAML or JSON file.
func WithCatalogFile(path string) Option {
	return func(e *Engine) {
		e.catalogFile = path
	}
}

// WithCatalogDir loads the catalog from a directory of product documents (one file per product).
func WithCatalogDir(path string) Option {
	return func(e *Engine) {
		e.catalogDir = path
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithEntryPage configures the page new sessions open on (default: landing).
func WithEntryPage(p domain.Page) Option {
	return func(e *Engine) {
		e.entryPage = p
	}
}

// New initializes a storefront Engine.
// Without a catalog option the built-in Paradise Nursery catalog is used.
func New(opts ...Option) (*Engine, error) {
	eng := &Engine{entryPage: domain.PageLanding}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	if err := eng.resolveCatalog(); err != nil {
		return nil, err
	}

	eng.runtime = runtime.NewEngine(eng.catalog,
		runtime.WithLifecycleHooks(eng.hooks),
		runtime.WithLogger(eng.logger),
		runtime.WithEntryPage(eng.entryPage),
	)
	return eng, nil
}

func (e *Engine) resolveCatalog() error {
	switch {
	case e.catalog != nil:
	case e.catalogFile != "":
		c, err := catalog.LoadFile(e.catalogFile)
		if err != nil {
			return fmt.Errorf("failed to load catalog file: %w", err)
		}
		e.catalog = c
	case e.catalogDir != "":
		c, err := loamAdapter.Open(context.Background(), e.catalogDir)
		if err != nil {
			return fmt.Errorf("failed to load catalog dir: %w", err)
		}
		e.catalog = c
	default:
		e.catalog = catalog.Default()
	}
	e.logger.Debug("catalog ready", "products", len(e.catalog.Products()))
	return nil
}

// Start creates the initial state for a session and triggers lifecycle hooks.
func (e *Engine) Start(ctx context.Context, sessionID string) (*domain.State, error) {
	return e.runtime.Start(ctx, sessionID)
}

// Dispatch applies an intent and returns the next state.
func (e *Engine) Dispatch(ctx context.Context, state *domain.State, intent domain.Intent) (*domain.State, error) {
	return e.runtime.Dispatch(ctx, state, intent)
}

// Render describes what to display for the current state without changing it.
func (e *Engine) Render(ctx context.Context, state *domain.State) (domain.View, error) {
	return e.runtime.Render(ctx, state)
}

// Inspect returns the page navigation graph for visualization.
func (e *Engine) Inspect() []domain.PageNode {
	return e.runtime.Inspect()
}

// Catalog returns the catalog the engine serves.
func (e *Engine) Catalog() ports.Catalog {
	return e.catalog
}

var _ ports.Engine = (*Engine)(nil)

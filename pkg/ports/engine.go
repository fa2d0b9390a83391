package ports

import (
	"context"

	"github.com/aretw0/storefront/pkg/domain"
)

// Engine is the stateless storefront core used by adapters (HTTP, MCP, terminal)
// that keep session state externally.
type Engine interface {
	// Start creates the initial state for a new session.
	Start(ctx context.Context, sessionID string) (*domain.State, error)

	// Dispatch applies an intent and returns the next state. The input is not modified.
	Dispatch(ctx context.Context, state *domain.State, intent domain.Intent) (*domain.State, error)

	// Render describes what the host should display for a state.
	Render(ctx context.Context, state *domain.State) (domain.View, error)

	// Inspect returns the page navigation graph for introspection.
	Inspect() []domain.PageNode

	// Catalog exposes the catalog the engine was built with.
	Catalog() Catalog
}

package runtime

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aretw0/storefront/internal/logging"
	"github.com/aretw0/storefront/pkg/domain"
	"github.com/aretw0/storefront/pkg/ports"
)

// Engine is the stateless storefront core. It never holds session state:
// callers pass a State in and get a new State back.
type Engine struct {
	catalog   ports.Catalog
	entryPage domain.Page
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
	now       func() time.Time
}

// EngineOption configures the engine.
type EngineOption func(*Engine)

// WithLifecycleHooks registers observability callbacks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets the engine logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithEntryPage sets the page new sessions start on. Invalid pages are ignored.
func WithEntryPage(p domain.Page) EngineOption {
	return func(e *Engine) {
		if p.Valid() {
			e.entryPage = p
		}
	}
}

// WithClock overrides the time source used for event timestamps.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		e.now = now
	}
}

// NewEngine creates a new engine over a catalog.
func NewEngine(catalog ports.Catalog, opts ...EngineOption) *Engine {
	e := &Engine{
		catalog:   catalog,
		entryPage: domain.PageLanding,
		logger:    logging.NewNop(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Catalog returns the catalog the engine serves.
func (e *Engine) Catalog() ports.Catalog {
	return e.catalog
}

// Start creates the initial state for a session.
func (e *Engine) Start(ctx context.Context, sessionID string) (*domain.State, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	state := domain.NewState(sessionID)
	state.Page = e.entryPage

	e.logger.DebugContext(ctx, "session started", "session_id", sessionID, "page", state.Page)
	if e.hooks.OnNavigate != nil {
		e.hooks.OnNavigate(ctx, &domain.NavigateEvent{
			EventBase: e.event(domain.EventNavigate, sessionID),
			To:        state.Page,
		})
	}
	return state, nil
}

// Dispatch applies an intent and returns the next state.
//
// ADD_TO_CART intents are always resolved against the catalog by product id;
// a product carried in the payload is replaced by the catalog entry and unknown
// ids leave the state unchanged. Dispatch only fails
// when the context is done or the state is nil.
func (e *Engine) Dispatch(ctx context.Context, state *domain.State, intent domain.Intent) (*domain.State, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if state == nil {
		return nil, errors.New("dispatch requires a state")
	}

	intent = e.resolve(intent)
	next := domain.Reduce(*state.Snapshot(), intent)

	pageChanged := next.Page != state.Page
	cartChanged := domain.Diff(&domain.State{Cart: state.Cart}, &domain.State{Cart: next.Cart}) != nil

	e.logger.DebugContext(ctx, "intent dispatched",
		"session_id", state.SessionID,
		"intent", intent.Type,
		"product_id", intent.TargetID(),
		"page", next.Page,
		"changed", pageChanged || cartChanged,
	)
	e.emit(ctx, state, &next, intent, pageChanged, cartChanged)

	return &next, nil
}

func (e *Engine) resolve(intent domain.Intent) domain.Intent {
	if intent.Type != domain.IntentAddToCart {
		return intent
	}
	id := intent.TargetID()
	intent.ProductID = id
	intent.Product = nil
	if p, ok := e.catalog.Product(id); ok {
		intent.Product = &p
	} else {
		e.logger.Debug("add to cart ignored: unknown product", "product_id", id)
	}
	return intent
}

func (e *Engine) emit(ctx context.Context, prev, next *domain.State, intent domain.Intent, pageChanged, cartChanged bool) {
	if e.hooks.OnIntent != nil {
		e.hooks.OnIntent(ctx, &domain.IntentEvent{
			EventBase: e.event(domain.EventIntent, next.SessionID),
			Intent:    intent,
			Changed:   pageChanged || cartChanged,
		})
	}
	if intent.Type == domain.IntentCheckout && e.hooks.OnCheckout != nil {
		e.hooks.OnCheckout(ctx, &domain.IntentEvent{
			EventBase: e.event(domain.EventCheckout, next.SessionID),
			Intent:    intent,
		})
	}
	if pageChanged && e.hooks.OnNavigate != nil {
		e.hooks.OnNavigate(ctx, &domain.NavigateEvent{
			EventBase: e.event(domain.EventNavigate, next.SessionID),
			From:      prev.Page,
			To:        next.Page,
		})
	}
	if cartChanged && e.hooks.OnCartChange != nil {
		e.hooks.OnCartChange(ctx, &domain.CartEvent{
			EventBase:  e.event(domain.EventCartChange, next.SessionID),
			Lines:      len(next.Cart.Items),
			TotalItems: next.Cart.TotalItemCount(),
			TotalCost:  next.Cart.TotalCost(),
		})
	}
}

func (e *Engine) event(t domain.EventType, sessionID string) domain.EventBase {
	return domain.EventBase{Timestamp: e.now(), Type: t, SessionID: sessionID}
}

// Inspect returns the navigation graph derived from the rendered views.
func (e *Engine) Inspect() []domain.PageNode {
	// A non-empty cart so the cart page exposes its full navigation.
	sample := domain.NewState("inspect")
	if products := e.catalog.Products(); len(products) > 0 {
		sample.Cart = sample.Cart.AddToCart(products[0])
	}

	nodes := make([]domain.PageNode, 0, len(domain.Pages()))
	for _, p := range domain.Pages() {
		sample.Page = p
		view := e.render(sample)
		node := domain.PageNode{Page: p, Title: view.Title}
		seen := make(map[domain.Page]bool)
		for _, a := range view.AllActions() {
			if a.Intent.Type != domain.IntentNavigate || seen[a.Intent.Page] {
				continue
			}
			seen[a.Intent.Page] = true
			node.Transitions = append(node.Transitions, domain.PageTransition{To: a.Intent.Page, Label: a.Label})
		}
		nodes = append(nodes, node)
	}
	return nodes
}

package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventIntent     EventType = "intent"
	EventNavigate   EventType = "navigate"
	EventCartChange EventType = "cart_change"
	EventCheckout   EventType = "checkout"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	SessionID string    `json:"session_id"`
}

// IntentEvent is emitted for every dispatched intent, including no-ops.
type IntentEvent struct {
	EventBase
	Intent  Intent `json:"intent"`
	Changed bool   `json:"changed"`
}

// NavigateEvent is emitted when the current page changes.
type NavigateEvent struct {
	EventBase
	From Page `json:"from"`
	To   Page `json:"to"`
}

// CartEvent is emitted when the cart contents change.
type CartEvent struct {
	EventBase
	Lines      int   `json:"lines"`
	TotalItems int   `json:"total_items"`
	TotalCost  Money `json:"total_cost"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnIntent     func(context.Context, *IntentEvent)
	OnNavigate   func(context.Context, *NavigateEvent)
	OnCartChange func(context.Context, *CartEvent)
	OnCheckout   func(context.Context, *IntentEvent)
}

// ChainHooks fans every callback out to each of the given hook sets in order.
func ChainHooks(sets ...LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnIntent: func(ctx context.Context, e *IntentEvent) {
			for _, h := range sets {
				if h.OnIntent != nil {
					h.OnIntent(ctx, e)
				}
			}
		},
		OnNavigate: func(ctx context.Context, e *NavigateEvent) {
			for _, h := range sets {
				if h.OnNavigate != nil {
					h.OnNavigate(ctx, e)
				}
			}
		},
		OnCartChange: func(ctx context.Context, e *CartEvent) {
			for _, h := range sets {
				if h.OnCartChange != nil {
					h.OnCartChange(ctx, e)
				}
			}
		},
		OnCheckout: func(ctx context.Context, e *IntentEvent) {
			for _, h := range sets {
				if h.OnCheckout != nil {
					h.OnCheckout(ctx, e)
				}
			}
		},
	}
}

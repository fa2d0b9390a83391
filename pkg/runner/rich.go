package runner

import (
	"context"

	"github.com/aretw0/storefront/pkg/domain"
	"github.com/aretw0/storefront/pkg/session"
)

// RichResponse combines state and its rendered view for rich clients (Web, MCP, etc).
type RichResponse struct {
	State  *domain.State `json:"state" jsonschema_description:"The stored session state"`
	View   domain.View   `json:"view" jsonschema_description:"What the current page displays"`
	Notice string        `json:"notice,omitempty" jsonschema_description:"Message for the shopper, set on checkout"`
}

// StartAndRender opens or resumes a session and renders it.
func StartAndRender(ctx context.Context, sessions *session.Manager, sessionID string) (*RichResponse, error) {
	state, err := sessions.LoadOrStart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return Render(ctx, sessions, state, "")
}

// LoadAndRender renders an existing session.
func LoadAndRender(ctx context.Context, sessions *session.Manager, sessionID string) (*RichResponse, error) {
	state, err := sessions.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return Render(ctx, sessions, state, "")
}

// ApplyAndRender applies an intent and renders the resulting state, so clients
// always receive the page they just landed on.
func ApplyAndRender(ctx context.Context, sessions *session.Manager, sessionID string, intent domain.Intent) (*RichResponse, error) {
	_, next, err := sessions.Apply(ctx, sessionID, intent)
	if err != nil {
		return nil, err
	}
	notice := ""
	if intent.Type == domain.IntentCheckout {
		notice = domain.CheckoutNotice
	}
	return Render(ctx, sessions, next, notice)
}

// Render pairs a state with its view.
func Render(ctx context.Context, sessions *session.Manager, state *domain.State, notice string) (*RichResponse, error) {
	view, err := sessions.Engine().Render(ctx, state)
	if err != nil {
		return &RichResponse{State: state, Notice: notice}, err
	}
	return &RichResponse{State: state, View: view, Notice: notice}, nil
}

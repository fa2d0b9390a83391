package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/storefront/internal/runtime"
	"github.com/aretw0/storefront/pkg/adapters/memory"
	"github.com/aretw0/storefront/pkg/catalog"
	"github.com/aretw0/storefront/pkg/domain"
	"github.com/aretw0/storefront/pkg/runner"
	"github.com/aretw0/storefront/pkg/session"
)

func newTestServer() *Server {
	manager := session.NewManager(memory.NewStore(), runtime.NewEngine(catalog.Default()))
	return NewServer(manager, "test")
}

func TestServer_ShoppingFlow(t *testing.T) {
	ctx := context.Background()
	s := newTestServer()
	req := mcp.CallToolRequest{}

	start, err := s.handleStartSession(ctx, req, map[string]interface{}{"session_id": "s1"})
	require.NoError(t, err)
	assert.Equal(t, domain.PageLanding, start.State.Page)

	_, err = s.handleDispatchIntent(ctx, req, map[string]interface{}{
		"session_id": "s1", "type": "ADD_TO_CART", "product_id": float64(3),
	})
	require.NoError(t, err)

	out, err := s.handleDispatchIntent(ctx, req, map[string]interface{}{
		"session_id": "s1", "type": "navigate", "page": "Cart",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.PageCart, out.View.Page)
	assert.Equal(t, 1, out.View.TotalItems)
	assert.Equal(t, "15.99", out.View.TotalCost.String())

	out, err = s.handleDispatchIntent(ctx, req, map[string]interface{}{"session_id": "s1", "type": "CHECKOUT"})
	require.NoError(t, err)
	assert.Equal(t, domain.CheckoutNotice, out.Notice)

	view, err := s.handleViewPage(ctx, req, map[string]interface{}{"session_id": "s1"})
	require.NoError(t, err)
	assert.Equal(t, domain.PageCart, view.State.Page)
}

func TestServer_StartSession_GeneratesID(t *testing.T) {
	s := newTestServer()
	out, err := s.handleStartSession(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{})
	require.NoError(t, err)
	assert.NotEmpty(t, out.State.SessionID)
}

func TestServer_DispatchIntent_Rejects(t *testing.T) {
	ctx := context.Background()
	s := newTestServer()
	_, err := s.handleStartSession(ctx, mcp.CallToolRequest{}, map[string]interface{}{"session_id": "s1"})
	require.NoError(t, err)

	tests := []struct {
		name string
		args map[string]interface{}
		want error
	}{
		{"unknown type", map[string]interface{}{"session_id": "s1", "type": "FLY"}, domain.ErrUnknownIntent},
		{"unknown page", map[string]interface{}{"session_id": "s1", "type": "NAVIGATE", "page": "attic"}, domain.ErrUnknownPage},
		{"unknown session", map[string]interface{}{"session_id": "ghost", "type": "CHECKOUT"}, domain.ErrSessionNotFound},
		{"fractional product id", map[string]interface{}{"session_id": "s1", "type": "ADD_TO_CART", "product_id": 1.5}, errProductID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.handleDispatchIntent(ctx, mcp.CallToolRequest{}, tt.args)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestServer_DispatchIntent_FractionalIDLeavesCart(t *testing.T) {
	ctx := context.Background()
	s := newTestServer()
	_, err := s.handleStartSession(ctx, mcp.CallToolRequest{}, map[string]interface{}{"session_id": "s1"})
	require.NoError(t, err)

	_, err = s.handleDispatchIntent(ctx, mcp.CallToolRequest{}, map[string]interface{}{
		"session_id": "s1", "type": "ADD_TO_CART", "product_id": 1.5,
	})
	require.Error(t, err)

	view, err := s.handleViewPage(ctx, mcp.CallToolRequest{}, map[string]interface{}{"session_id": "s1"})
	require.NoError(t, err)
	assert.True(t, view.State.Cart.IsEmpty())
}

func TestServer_MaxInputSize(t *testing.T) {
	manager := session.NewManager(memory.NewStore(), runtime.NewEngine(catalog.Default()))
	s := NewServer(manager, "test", WithMaxInputSize(4))

	_, err := s.handleStartSession(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{"session_id": "too-long"})
	assert.ErrorIs(t, err, runner.ErrInputTooLarge)

	_, err = s.handleStartSession(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{"session_id": "s1"})
	assert.NoError(t, err)
}

func TestServer_CatalogResource(t *testing.T) {
	contents, err := jsonResource(catalogURI, catalog.Default().Categories())
	require.NoError(t, err)
	require.Len(t, contents, 1)

	text, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, catalogURI, text.URI)

	var categories []domain.Category
	require.NoError(t, json.Unmarshal([]byte(text.Text), &categories))
	assert.Len(t, categories, 3)
}

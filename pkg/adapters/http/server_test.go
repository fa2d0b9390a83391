package http_test

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/storefront/internal/runtime"
	api "github.com/aretw0/storefront/pkg/adapters/http"
	"github.com/aretw0/storefront/pkg/adapters/memory"
	"github.com/aretw0/storefront/pkg/catalog"
	"github.com/aretw0/storefront/pkg/domain"
	"github.com/aretw0/storefront/pkg/observability"
	"github.com/aretw0/storefront/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, opts ...api.Option) (*api.Server, *httptest.Server) {
	t.Helper()
	engine := runtime.NewEngine(catalog.Default())
	manager := session.NewManager(memory.NewStore(), engine)
	srv := api.NewServer(manager, opts...)
	ts := httptest.NewServer(srv.Routes())
	t.Cleanup(ts.Close)
	return srv, ts
}

func do(t *testing.T, method, url, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestServer_ShoppingFlow(t *testing.T) {
	_, ts := newTestServer(t)

	resp := do(t, http.MethodPost, ts.URL+"/sessions", `{"session_id":"s1"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[api.SessionResponse](t, resp)
	assert.Equal(t, domain.PageLanding, created.State.Page)
	assert.Equal(t, "Paradise Nursery", created.View.Title)

	resp = do(t, http.MethodPost, ts.URL+"/sessions/s1/intents", `{"type":"NAVIGATE","page":"products"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, http.MethodPost, ts.URL+"/sessions/s1/intents", `{"type":"ADD_TO_CART","product_id":1}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp = do(t, http.MethodPost, ts.URL+"/sessions/s1/intents", `{"type":"INCREASE_QUANTITY","product_id":1}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp = do(t, http.MethodPost, ts.URL+"/sessions/s1/intents", `{"type":"NAVIGATE","page":"cart"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, http.MethodGet, ts.URL+"/sessions/s1/view", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	view := decode[domain.View](t, resp)
	assert.Equal(t, domain.PageCart, view.Page)
	assert.Equal(t, 2, view.TotalItems)
	assert.Equal(t, "51.98", view.TotalCost.String())

	resp = do(t, http.MethodPost, ts.URL+"/sessions/s1/intents", `{"type":"CHECKOUT"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	checkout := decode[api.SessionResponse](t, resp)
	assert.Equal(t, domain.CheckoutNotice, checkout.Notice)
	assert.Equal(t, 2, checkout.State.Cart.TotalItemCount(), "checkout must not clear the cart")
}

func TestServer_CreateSession_GeneratesID(t *testing.T) {
	_, ts := newTestServer(t)

	resp := do(t, http.MethodPost, ts.URL+"/sessions", "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[api.SessionResponse](t, resp)
	assert.NotEmpty(t, created.State.SessionID)

	resp = do(t, http.MethodGet, ts.URL+"/sessions", "")
	ids := decode[[]string](t, resp)
	assert.Equal(t, []string{created.State.SessionID}, ids)
}

func TestServer_Errors(t *testing.T) {
	_, ts := newTestServer(t)
	do(t, http.MethodPost, ts.URL+"/sessions", `{"session_id":"s1"}`)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"unknown intent", http.MethodPost, "/sessions/s1/intents", `{"type":"EXPLODE"}`, http.StatusBadRequest},
		{"unknown page", http.MethodPost, "/sessions/s1/intents", `{"type":"NAVIGATE","page":"checkout"}`, http.StatusBadRequest},
		{"missing product", http.MethodPost, "/sessions/s1/intents", `{"type":"REMOVE_FROM_CART"}`, http.StatusBadRequest},
		{"malformed json", http.MethodPost, "/sessions/s1/intents", `{"type":`, http.StatusBadRequest},
		{"unknown session intent", http.MethodPost, "/sessions/ghost/intents", `{"type":"CHECKOUT"}`, http.StatusNotFound},
		{"unknown session view", http.MethodGet, "/sessions/ghost/view", "", http.StatusNotFound},
		{"unknown session state", http.MethodGet, "/sessions/ghost", "", http.StatusNotFound},
		{"events without session", http.MethodGet, "/events", "", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, tt.method, ts.URL+tt.path, tt.body)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestServer_UnknownProductIsNoop(t *testing.T) {
	_, ts := newTestServer(t)
	do(t, http.MethodPost, ts.URL+"/sessions", `{"session_id":"s1"}`)

	resp := do(t, http.MethodPost, ts.URL+"/sessions/s1/intents", `{"type":"INCREASE_QUANTITY","product_id":42}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[api.SessionResponse](t, resp)
	assert.True(t, out.State.Cart.IsEmpty())
}

func TestServer_AddToCartUsesCatalogProduct(t *testing.T) {
	_, ts := newTestServer(t)
	do(t, http.MethodPost, ts.URL+"/sessions", `{"session_id":"s1"}`)

	resp := do(t, http.MethodPost, ts.URL+"/sessions/s1/intents",
		`{"type":"ADD_TO_CART","product":{"id":1,"name":"Rose","price":-5.00}}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[api.SessionResponse](t, resp)
	require.Len(t, out.State.Cart.Items, 1)
	assert.Equal(t, "25.99", out.State.Cart.Items[0].Price.String())

	resp = do(t, http.MethodPost, ts.URL+"/sessions/s1/intents",
		`{"type":"ADD_TO_CART","product":{"id":999,"name":"Ghost","price":1}}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out = decode[api.SessionResponse](t, resp)
	assert.Len(t, out.State.Cart.Items, 1)
	assert.Equal(t, "25.99", out.State.Cart.TotalCost().String())
}

func TestServer_DeleteSession(t *testing.T) {
	_, ts := newTestServer(t)
	do(t, http.MethodPost, ts.URL+"/sessions", `{"session_id":"s1"}`)

	resp := do(t, http.MethodDelete, ts.URL+"/sessions/s1", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, http.MethodGet, ts.URL+"/sessions/s1", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_CatalogAndGraph(t *testing.T) {
	_, ts := newTestServer(t)

	resp := do(t, http.MethodGet, ts.URL+"/catalog", "")
	categories := decode[[]domain.Category](t, resp)
	require.Len(t, categories, 3)
	assert.Equal(t, "Rose", categories[0].Products[0].Name)

	resp = do(t, http.MethodGet, ts.URL+"/graph", "")
	nodes := decode[[]domain.PageNode](t, resp)
	require.Len(t, nodes, 3)
	assert.Equal(t, domain.PageLanding, nodes[0].Page)
}

func TestServer_HealthAndInfo(t *testing.T) {
	_, ts := newTestServer(t, api.WithVersion("1.2.3"))

	resp := do(t, http.MethodGet, ts.URL+"/health", "")
	assert.Equal(t, map[string]string{"status": "ok"}, decode[map[string]string](t, resp))

	resp = do(t, http.MethodGet, ts.URL+"/info", "")
	info := decode[map[string]string](t, resp)
	assert.Equal(t, "1.2.3", info["version"])
	assert.Equal(t, "1.0.0", info["api_version"])

	resp = do(t, http.MethodGet, ts.URL+"/openapi.yaml", "")
	assert.Equal(t, "text/yaml", resp.Header.Get("Content-Type"))
}

func TestServer_CORSPreflight(t *testing.T) {
	_, ts := newTestServer(t)
	resp := do(t, http.MethodOptions, ts.URL+"/sessions", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestServer_Metrics(t *testing.T) {
	metrics := observability.NewMetrics()
	_, ts := newTestServer(t, api.WithMetrics(metrics.Handler()))

	resp := do(t, http.MethodGet, ts.URL+"/metrics", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServer_SSE_Diffs(t *testing.T) {
	srv, ts := newTestServer(t)
	do(t, http.MethodPost, ts.URL+"/sessions", `{"session_id":"s1"}`)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/events?session_id=s1&watch=cart", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	lines := make(chan string, 16)
	go func() {
		scanner := bufio.NewScanner(resp.Body)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	require.Eventually(t, func() bool { return srv.Streams.Subscribers("s1") == 1 }, 2*time.Second, 10*time.Millisecond)

	// Page-only change is filtered out by watch=cart.
	do(t, http.MethodPost, ts.URL+"/sessions/s1/intents", `{"type":"NAVIGATE","page":"products"}`)
	do(t, http.MethodPost, ts.URL+"/sessions/s1/intents", `{"type":"ADD_TO_CART","product_id":1}`)

	var events []string
	var data string
	for line := range lines {
		if strings.HasPrefix(line, "event: ") {
			events = append(events, strings.TrimPrefix(line, "event: "))
		}
		if strings.HasPrefix(line, "data: {") {
			data = strings.TrimPrefix(line, "data: ")
			break
		}
	}

	assert.Equal(t, []string{"ping", api.EventDiff}, events)
	var diff domain.StateDiff
	require.NoError(t, json.Unmarshal([]byte(data), &diff))
	assert.Equal(t, "s1", diff.SessionID)
	assert.Nil(t, diff.Page)
	require.Len(t, diff.Upserted, 1)
	assert.Equal(t, 1, diff.Upserted[0].ID)
	require.NotNil(t, diff.TotalItems)
	assert.Equal(t, 1, *diff.TotalItems)
}

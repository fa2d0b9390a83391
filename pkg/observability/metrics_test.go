package observability_test

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aretw0/storefront/internal/runtime"
	"github.com/aretw0/storefront/pkg/catalog"
	"github.com/aretw0/storefront/pkg/domain"
	"github.com/aretw0/storefront/pkg/observability"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Hooks(t *testing.T) {
	ctx := context.Background()
	m := observability.NewMetrics()

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	engine := runtime.NewEngine(catalog.Default(),
		runtime.WithLifecycleHooks(domain.ChainHooks(m.Hooks(), observability.LoggingHooks(logger))),
	)

	state, err := engine.Start(ctx, "s1")
	require.NoError(t, err)
	for _, in := range []domain.Intent{
		domain.Navigate(domain.PageProducts),
		{Type: domain.IntentAddToCart, ProductID: 1},
		domain.IncreaseQuantity(42),
		domain.Checkout(),
	} {
		state, err = engine.Dispatch(ctx, state, in)
		require.NoError(t, err)
	}

	assert.Equal(t, 1.0, testutil.ToFloat64(m.PageViews.WithLabelValues("products")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PageViews.WithLabelValues("landing")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Intents.WithLabelValues("ADD_TO_CART", "true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Intents.WithLabelValues("INCREASE_QUANTITY", "false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Checkouts))

	assert.Contains(t, logs.String(), "cart changed")
	assert.Contains(t, logs.String(), "total=25.99")
}

func TestMetrics_Handler(t *testing.T) {
	m := observability.NewMetrics()
	m.Checkouts.Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "storefront_checkout_attempts_total 1")
}

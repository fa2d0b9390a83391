package observability

import (
	"context"
	"net/http"

	"github.com/aretw0/storefront/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the storefront collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	Intents     *prometheus.CounterVec
	PageViews   *prometheus.CounterVec
	Checkouts   prometheus.Counter
	CartItems   prometheus.Histogram
	CartValue   prometheus.Histogram
	StoreOps    *prometheus.CounterVec
	StoreErrors *prometheus.CounterVec
}

// NewMetrics creates and registers the collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Intents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storefront_intents_total",
				Help: "Dispatched intents by type and whether they changed the session.",
			},
			[]string{"type", "changed"},
		),
		PageViews: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storefront_page_views_total",
				Help: "Navigations by destination page.",
			},
			[]string{"page"},
		),
		Checkouts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "storefront_checkout_attempts_total",
			Help: "Checkout attempts.",
		}),
		CartItems: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "storefront_cart_items",
			Help:    "Total item count of carts after each change.",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50},
		}),
		CartValue: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "storefront_cart_value",
			Help:    "Cart total in currency units after each change.",
			Buckets: prometheus.ExponentialBuckets(10, 2, 8),
		}),
		StoreOps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storefront_store_operations_total",
				Help: "State store calls by operation.",
			},
			[]string{"op"},
		),
		StoreErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storefront_store_errors_total",
				Help: "Failed state store calls by operation.",
			},
			[]string{"op"},
		),
	}
	m.registry.MustRegister(
		m.Intents, m.PageViews, m.Checkouts, m.CartItems, m.CartValue, m.StoreOps, m.StoreErrors,
		collectors.NewGoCollector(),
	)
	return m
}

// Registry exposes the registry, e.g. for tests or additional collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Hooks returns lifecycle hooks that feed the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnIntent: func(ctx context.Context, e *domain.IntentEvent) {
			changed := "false"
			if e.Changed {
				changed = "true"
			}
			m.Intents.WithLabelValues(string(e.Intent.Type), changed).Inc()
		},
		OnNavigate: func(ctx context.Context, e *domain.NavigateEvent) {
			m.PageViews.WithLabelValues(string(e.To)).Inc()
		},
		OnCartChange: func(ctx context.Context, e *domain.CartEvent) {
			m.CartItems.Observe(float64(e.TotalItems))
			m.CartValue.Observe(e.TotalCost.Float64())
		},
		OnCheckout: func(ctx context.Context, e *domain.IntentEvent) {
			m.Checkouts.Inc()
		},
	}
}

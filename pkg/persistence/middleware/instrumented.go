package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aretw0/storefront/pkg/domain"
	"github.com/aretw0/storefront/pkg/observability"
	"github.com/aretw0/storefront/pkg/ports"
)

type instrumented struct {
	next    ports.StateStore
	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewInstrumentation counts store calls and failures and logs failed or slow calls.
// metrics and logger may each be nil.
func NewInstrumentation(metrics *observability.Metrics, logger *slog.Logger) Middleware {
	return func(next ports.StateStore) ports.StateStore {
		return &instrumented{next: next, metrics: metrics, logger: logger}
	}
}

const slowCall = 250 * time.Millisecond

func (m *instrumented) observe(ctx context.Context, op, sessionID string, start time.Time, err error) {
	// A missing session is an expected answer, not a failure.
	failed := err != nil && !errors.Is(err, domain.ErrSessionNotFound)

	if m.metrics != nil {
		m.metrics.StoreOps.WithLabelValues(op).Inc()
		if failed {
			m.metrics.StoreErrors.WithLabelValues(op).Inc()
		}
	}
	if m.logger == nil {
		return
	}
	elapsed := time.Since(start)
	switch {
	case failed:
		m.logger.ErrorContext(ctx, "store call failed", "op", op, "session_id", sessionID, "err", err)
	case elapsed > slowCall:
		m.logger.WarnContext(ctx, "slow store call", "op", op, "session_id", sessionID, "elapsed", elapsed)
	}
}

func (m *instrumented) Save(ctx context.Context, sessionID string, state *domain.State) error {
	start := time.Now()
	err := m.next.Save(ctx, sessionID, state)
	m.observe(ctx, "save", sessionID, start, err)
	return err
}

func (m *instrumented) Load(ctx context.Context, sessionID string) (*domain.State, error) {
	start := time.Now()
	state, err := m.next.Load(ctx, sessionID)
	m.observe(ctx, "load", sessionID, start, err)
	return state, err
}

func (m *instrumented) Delete(ctx context.Context, sessionID string) error {
	start := time.Now()
	err := m.next.Delete(ctx, sessionID)
	m.observe(ctx, "delete", sessionID, start, err)
	return err
}

func (m *instrumented) List(ctx context.Context) ([]string, error) {
	start := time.Now()
	ids, err := m.next.List(ctx)
	m.observe(ctx, "list", "", start, err)
	return ids, err
}

package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/storefront/pkg/domain"
)

// LoggingHooks writes one structured line per lifecycle event.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnNavigate: func(ctx context.Context, e *domain.NavigateEvent) {
			logger.InfoContext(ctx, "navigate", "session_id", e.SessionID, "from", e.From, "to", e.To)
		},
		OnCartChange: func(ctx context.Context, e *domain.CartEvent) {
			logger.InfoContext(ctx, "cart changed",
				"session_id", e.SessionID,
				"lines", e.Lines,
				"items", e.TotalItems,
				"total", e.TotalCost.String(),
			)
		},
		OnCheckout: func(ctx context.Context, e *domain.IntentEvent) {
			logger.InfoContext(ctx, "checkout requested", "session_id", e.SessionID)
		},
	}
}

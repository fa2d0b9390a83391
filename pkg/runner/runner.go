package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/aretw0/storefront/internal/logging"
	"github.com/aretw0/storefront/pkg/session"
)

// Runner handles the shopping loop for one session using the provided IO.
// It uses an IOHandler strategy to abstract the interaction mode (Text vs JSON).
type Runner struct {
	// Handler is the strategy for IO. If nil, a TextHandler on Stdin/Stdout is used.
	Handler IOHandler

	// Logger is used for internal debug logging.
	Logger *slog.Logger

	// SessionID names the stored session the loop drives.
	SessionID string

	// Renderer is handed to the default TextHandler.
	Renderer ViewRenderer

	// MaxInputSize is handed to the default TextHandler.
	MaxInputSize int

	sessions *session.Manager
}

// NewRunner creates a Runner over a session manager.
func NewRunner(sessions *session.Manager, opts ...Option) *Runner {
	r := &Runner{
		sessions: sessions,
		Logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes the loop until the user quits, input ends or ctx is cancelled.
// The session is created on first use and persisted after every change.
func (r *Runner) Run(ctx context.Context) error {
	handler := r.resolveHandler()
	if r.SessionID == "" {
		r.SessionID = uuid.NewString()
	}

	resp, err := StartAndRender(ctx, r.sessions, r.SessionID)
	if err != nil {
		return fmt.Errorf("failed to start session %s: %w", r.SessionID, err)
	}
	r.Logger.Debug("runner started", "session_id", r.SessionID, "page", resp.State.Page)

	for {
		if err := handler.Output(ctx, resp.View); err != nil {
			return fmt.Errorf("output error: %w", err)
		}

		next, quit, err := r.step(ctx, handler)
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
		if next != nil {
			resp = next
		}
	}
}

// step reads and applies a single command. It returns a nil response when the
// current view should simply be shown again.
func (r *Runner) step(ctx context.Context, handler IOHandler) (*RichResponse, bool, error) {
	for {
		line, err := handler.Input(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) || ctx.Err() != nil {
				r.Logger.Debug("runner stopped", "session_id", r.SessionID, "reason", err)
				return nil, true, nil
			}
			return nil, false, fmt.Errorf("input error: %w", err)
		}

		cmd, err := ParseCommand(line)
		if err != nil {
			if err := handler.SystemOutput(ctx, fmt.Sprintf("%v (type 'help' for commands)", err)); err != nil {
				return nil, false, err
			}
			continue
		}

		switch cmd.Kind {
		case CommandQuit:
			return nil, true, nil
		case CommandHelp:
			if err := handler.SystemOutput(ctx, HelpText); err != nil {
				return nil, false, err
			}
			continue
		case CommandRefresh:
			return nil, false, nil
		}

		resp, err := ApplyAndRender(ctx, r.sessions, r.SessionID, cmd.Intent)
		if err != nil {
			return nil, false, fmt.Errorf("critical persistence error: %w", err)
		}
		r.Logger.Debug("intent applied", "session_id", r.SessionID, "type", cmd.Intent.Type)
		if resp.Notice != "" {
			if err := handler.SystemOutput(ctx, resp.Notice); err != nil {
				return nil, false, err
			}
		}
		return resp, false, nil
	}
}

// resolveHandler ensures a valid IOHandler is set.
func (r *Runner) resolveHandler() IOHandler {
	if r.Handler == nil {
		r.Handler = NewTextHandler(os.Stdin, os.Stdout,
			WithTextHandlerRenderer(r.Renderer),
			WithInputLimit(r.MaxInputSize),
		)
	}
	return r.Handler
}

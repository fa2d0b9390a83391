package runner

import (
	"log/slog"
)

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.Logger = logger
	}
}

// WithInputHandler configures a custom IOHandler.
func WithInputHandler(handler IOHandler) Option {
	return func(r *Runner) {
		r.Handler = handler
	}
}

// WithSessionID binds the runner to a stored session.
// Without it a fresh ID is generated on Run.
func WithSessionID(id string) Option {
	return func(r *Runner) {
		r.SessionID = id
	}
}

// WithMaxInputSize bounds input lines read by the default TextHandler.
func WithMaxInputSize(n int) Option {
	return func(r *Runner) {
		r.MaxInputSize = n
	}
}

// WithRenderer configures the view renderer used by the default TextHandler.
func WithRenderer(renderer ViewRenderer) Option {
	return func(r *Runner) {
		r.Renderer = renderer
	}
}

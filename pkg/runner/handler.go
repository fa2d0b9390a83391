package runner

import (
	"context"

	"github.com/aretw0/storefront/pkg/domain"
)

// IOHandler defines the strategy for interacting with the user.
// This allows switching between Text (CLI/TUI) and JSON (Structured) modes.
type IOHandler interface {
	// Output presents the current page.
	Output(ctx context.Context, view domain.View) error

	// Input reads one command line from the user.
	// It returns io.EOF when the input is exhausted.
	Input(ctx context.Context) (string, error)

	// SystemOutput presents a meta-message (help, notices, rejected commands).
	SystemOutput(ctx context.Context, msg string) error
}

// ViewRenderer turns a view into printable text.
// This allows for TUI rendering (markdown to ANSI) without coupling the runner to it.
type ViewRenderer func(domain.View) (string, error)

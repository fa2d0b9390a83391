package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/aretw0/storefront/internal/presentation/tui"
	"github.com/aretw0/storefront/pkg/runner"
)

// RunOptions contains the configuration of the run command.
type RunOptions struct {
	SessionID string
	JSON      bool
	Fresh     bool
	Stdin     io.Reader
	Stdout    io.Writer
}

// RunSession drives one shopping session in the terminal until the user quits.
func RunSession(ctx context.Context, app *App, opts RunOptions) error {
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}

	if opts.Fresh && opts.SessionID != "" {
		if err := app.Sessions.Delete(ctx, opts.SessionID); err != nil {
			return fmt.Errorf("failed to reset session %s: %w", opts.SessionID, err)
		}
	}

	var handler runner.IOHandler
	if opts.JSON {
		jh := runner.NewJSONHandler(opts.Stdin, opts.Stdout)
		jh.MaxInputSize = app.Config.MaxInputSize
		handler = jh
	} else {
		hopts := []runner.TextHandlerOption{runner.WithInputLimit(app.Config.MaxInputSize)}
		if isTerminal(opts.Stdout) {
			tui.PrintBanner(opts.Stdout)
			hopts = append(hopts, runner.WithTextHandlerRenderer(tui.NewRenderer()))
		}
		handler = runner.NewTextHandler(opts.Stdin, opts.Stdout, hopts...)
	}

	r := runner.NewRunner(app.Sessions,
		runner.WithLogger(app.Logger),
		runner.WithSessionID(opts.SessionID),
		runner.WithInputHandler(handler),
	)

	if err := r.Run(ctx); err != nil {
		return err
	}
	app.Logger.Info("session closed", "session_id", r.SessionID)
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

package tui

import (
	"github.com/charmbracelet/glamour"

	"github.com/aretw0/storefront/internal/presentation/page"
	"github.com/aretw0/storefront/pkg/domain"
	"github.com/aretw0/storefront/pkg/runner"
)

// NewRenderer returns a view renderer that draws markdown with glamour.
// When glamour cannot initialise, the raw markdown is returned.
func NewRenderer() runner.ViewRenderer {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
	)

	return func(v domain.View) (string, error) {
		md := page.Markdown(v)
		if err != nil {
			return md, nil
		}
		return r.Render(md)
	}
}

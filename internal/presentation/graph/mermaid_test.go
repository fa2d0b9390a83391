package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/storefront/internal/presentation/graph"
	"github.com/aretw0/storefront/internal/runtime"
	"github.com/aretw0/storefront/pkg/catalog"
	"github.com/aretw0/storefront/pkg/domain"
)

func TestGenerateMermaid(t *testing.T) {
	nodes := runtime.NewEngine(catalog.Default()).Inspect()

	tests := []struct {
		name     string
		overlay  *graph.GraphOverlay
		contains []string
		excludes []string
	}{
		{
			name: "Shapes and Edges",
			contains: []string{
				"graph TD",
				`landing(("Paradise Nursery"))`,
				`cart[["Shopping Cart"]]`,
				`landing -- "Get Started" --> products`,
				`cart -- "Continue Shopping" --> products`,
			},
			excludes: []string{"classDef"},
		},
		{
			name:    "Overlay",
			overlay: &graph.GraphOverlay{CurrentPage: domain.PageCart, CartCount: 3},
			contains: []string{
				"class cart current;",
				"3 item(s)",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateMermaid(nodes, tt.overlay)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("expected output to contain %q\nGot:\n%s", want, got)
				}
			}
			for _, unwanted := range tt.excludes {
				if strings.Contains(got, unwanted) {
					t.Errorf("expected output not to contain %q\nGot:\n%s", unwanted, got)
				}
			}
		})
	}
}

func TestGenerateMermaid_QuotesEscaped(t *testing.T) {
	nodes := []domain.PageNode{{Page: domain.PageLanding, Title: `Say "hi"`}}
	got := graph.GenerateMermaid(nodes, nil)
	if !strings.Contains(got, `"Say 'hi'"`) {
		t.Errorf("expected escaped title, got:\n%s", got)
	}
}

package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/storefront/pkg/domain"
)

// GraphOverlay highlights a session on the graph.
type GraphOverlay struct {
	CurrentPage domain.Page
	// CartCount is shown next to the cart page when positive.
	CartCount int
}

// GenerateMermaid produces a Mermaid flowchart from the page graph.
// The entry page is drawn as a circle and the cart as a subroutine.
// Navigation edges carry the label of the action that triggers them.
func GenerateMermaid(nodes []domain.PageNode, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for i, node := range nodes {
		opener, closer := "[", "]"
		switch {
		case i == 0:
			opener, closer = "((", "))"
		case node.Page == domain.PageCart:
			opener, closer = "[[", "]]"
		}

		label := escape(node.Title)
		if overlay != nil && node.Page == domain.PageCart && overlay.CartCount > 0 {
			label = fmt.Sprintf("%s <br/> %d item(s)", label, overlay.CartCount)
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", node.Page, opener, label, closer)

		for _, t := range node.Transitions {
			fmt.Fprintf(&sb, "    %s -- \"%s\" --> %s\n", node.Page, escape(t.Label), t.To)
		}
	}

	if overlay != nil && overlay.CurrentPage != "" {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for contrast regardless of theme.
		sb.WriteString("    classDef current fill:#c8e6c9,stroke:#2e7d32,stroke-width:4px,color:#000;\n")
		fmt.Fprintf(&sb, "    class %s current;\n", overlay.CurrentPage)
	}

	return sb.String()
}

func escape(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

package runner

import (
	"fmt"
	"strings"

	"github.com/aretw0/storefront/pkg/domain"
)

// FormatView renders a view as plain text. It is the TextHandler default.
func FormatView(v domain.View) string {
	var b strings.Builder

	if h := v.Header; h != nil {
		fmt.Fprintf(&b, "%s | Cart (%d)\n\n", h.Brand, h.CartCount)
	}
	fmt.Fprintf(&b, "== %s ==\n", v.Title)
	if v.Body != "" {
		fmt.Fprintf(&b, "%s\n", v.Body)
	}

	for _, section := range v.Categories {
		fmt.Fprintf(&b, "\n%s\n", section.Name)
		for _, card := range section.Products {
			fmt.Fprintf(&b, "  [%d] %-20s $%s  %s\n", card.ID, card.Name, card.Price, card.Add.Label)
		}
	}

	if v.Page == domain.PageCart {
		if v.Empty {
			b.WriteString("\nYour cart is empty.\n")
		}
		for _, row := range v.Rows {
			fmt.Fprintf(&b, "  [%d] %-20s $%s x %d = $%s\n", row.ID, row.Name, row.Price, row.Quantity, row.LineTotal)
		}
		fmt.Fprintf(&b, "\nTotal items: %d\nTotal: $%s\n", v.TotalItems, v.TotalCost)
	}

	if labels := actionLabels(v.AllActions()); labels != "" {
		fmt.Fprintf(&b, "\n%s\n", labels)
	}
	return b.String()
}

func actionLabels(actions []domain.Action) string {
	seen := make(map[string]bool)
	var parts []string
	for _, a := range actions {
		if a.Intent.Type != domain.IntentNavigate && a.Intent.Type != domain.IntentCheckout {
			continue
		}
		if seen[a.Label] {
			continue
		}
		seen[a.Label] = true
		parts = append(parts, "["+a.Label+"]")
	}
	return strings.Join(parts, " ")
}

// Package page renders storefront views as markdown.
package page

import (
	"fmt"
	"strings"

	"github.com/aretw0/storefront/pkg/domain"
)

// Markdown describes a view as a markdown document.
func Markdown(v domain.View) string {
	var b strings.Builder

	if h := v.Header; h != nil {
		fmt.Fprintf(&b, "**%s** · 🛒 %d\n\n", h.Brand, h.CartCount)
	}
	fmt.Fprintf(&b, "# %s\n\n", v.Title)
	if v.Body != "" {
		fmt.Fprintf(&b, "%s\n\n", v.Body)
	}

	for _, section := range v.Categories {
		fmt.Fprintf(&b, "## %s\n\n", section.Name)
		b.WriteString("| ID | Plant | Price | |\n|---:|---|---:|---|\n")
		for _, card := range section.Products {
			fmt.Fprintf(&b, "| %d | %s | $%s | %s |\n", card.ID, card.Name, card.Price, card.Add.Label)
		}
		b.WriteString("\n")
	}

	if v.Page == domain.PageCart {
		if len(v.Rows) > 0 {
			b.WriteString("| ID | Plant | Price | Qty | Total |\n|---:|---|---:|---:|---:|\n")
			for _, row := range v.Rows {
				fmt.Fprintf(&b, "| %d | %s | $%s | %d | $%s |\n", row.ID, row.Name, row.Price, row.Quantity, row.LineTotal)
			}
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "**Total items:** %d  \n**Total amount:** $%s\n\n", v.TotalItems, v.TotalCost)
	}

	var links []string
	for _, a := range v.AllActions() {
		if a.Intent.Type == domain.IntentNavigate || a.Intent.Type == domain.IntentCheckout {
			links = append(links, "`"+a.Label+"`")
		}
	}
	if len(links) > 0 {
		fmt.Fprintf(&b, "%s\n", strings.Join(links, " · "))
	}
	return b.String()
}

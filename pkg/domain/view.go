package domain

// Action is something the shopper can trigger from a view.
type Action struct {
	Label    string `json:"label"`
	Intent   Intent `json:"intent"`
	Disabled bool   `json:"disabled,omitempty"`
}

// Header is the navigation bar shown on every page except the landing page.
type Header struct {
	Brand     string   `json:"brand"`
	CartCount int      `json:"cart_count"`
	Nav       []Action `json:"nav"`
}

// ProductCard is a product as shown on the products page.
type ProductCard struct {
	Product
	InCart bool   `json:"in_cart"`
	Add    Action `json:"add"`
}

// CategorySection is a titled group of product cards.
type CategorySection struct {
	Name     string        `json:"name"`
	Products []ProductCard `json:"products"`
}

// CartRow is a line item as shown on the cart page.
type CartRow struct {
	LineItem
	LineTotal Money    `json:"line_total"`
	Actions   []Action `json:"actions"`
}

// View is the renderable description of a State.
//
// Only the fields relevant to Page are populated. Hosts (terminal, HTTP, MCP)
// decide how to draw it.
type View struct {
	Page       Page              `json:"page"`
	Title      string            `json:"title"`
	Body       string            `json:"body,omitempty"`
	Header     *Header           `json:"header,omitempty"`
	Categories []CategorySection `json:"categories,omitempty"`
	Rows       []CartRow         `json:"rows,omitempty"`
	Empty      bool              `json:"empty,omitempty"`
	TotalItems int               `json:"total_items"`
	TotalCost  Money             `json:"total_cost"`
	Actions    []Action          `json:"actions,omitempty"`
}

// AllActions returns header navigation, card, row and page actions in display order.
func (v View) AllActions() []Action {
	var out []Action
	if v.Header != nil {
		out = append(out, v.Header.Nav...)
	}
	for _, c := range v.Categories {
		for _, p := range c.Products {
			out = append(out, p.Add)
		}
	}
	for _, r := range v.Rows {
		out = append(out, r.Actions...)
	}
	return append(out, v.Actions...)
}

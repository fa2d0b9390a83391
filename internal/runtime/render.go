package runtime

import (
	"context"
	"errors"

	"github.com/aretw0/storefront/pkg/domain"
)

const (
	brand = "Paradise Nursery"

	landingBody = "Welcome to Paradise Nursery, where nature meets nurture. We specialize in bringing the beauty " +
		"of the natural world into your home with our carefully curated collection of premium houseplants. " +
		"From air-purifying succulents to statement tropical plants, we have everything you need to create " +
		"your own green paradise. Each plant is hand-selected for quality and comes with expert care guidance " +
		"to help you succeed in your plant parent journey."
)

// Render describes what the host should display for a state.
func (e *Engine) Render(ctx context.Context, state *domain.State) (domain.View, error) {
	if err := ctx.Err(); err != nil {
		return domain.View{}, err
	}
	if state == nil {
		return domain.View{}, errors.New("render requires a state")
	}
	return e.render(state), nil
}

func (e *Engine) render(state *domain.State) domain.View {
	view := domain.View{
		Page:       state.Page,
		TotalItems: state.Cart.TotalItemCount(),
		TotalCost:  state.Cart.TotalCost(),
	}

	switch state.Page {
	case domain.PageProducts:
		view.Header = header(state, domain.Navigate(domain.PageLanding), "Home")
		view.Title = "Our Plant Collection"
		view.Categories = e.productSections(state.Cart)
	case domain.PageCart:
		view.Header = header(state, domain.Navigate(domain.PageProducts), "Continue Shopping")
		renderCart(&view, state.Cart)
	default:
		// Unknown pages fall back to the landing page.
		view.Page = domain.PageLanding
		view.Title = brand
		view.Body = landingBody
		view.Actions = []domain.Action{{Label: "Get Started", Intent: domain.Navigate(domain.PageProducts)}}
	}
	return view
}

func header(state *domain.State, back domain.Intent, backLabel string) *domain.Header {
	h := &domain.Header{
		Brand:     brand,
		CartCount: state.Cart.TotalItemCount(),
		Nav:       []domain.Action{{Label: backLabel, Intent: back}},
	}
	if state.Page != domain.PageCart {
		h.Nav = append(h.Nav, domain.Action{Label: "Cart", Intent: domain.Navigate(domain.PageCart)})
	}
	return h
}

func (e *Engine) productSections(cart domain.Cart) []domain.CategorySection {
	categories := e.catalog.Categories()
	sections := make([]domain.CategorySection, 0, len(categories))
	for _, cat := range categories {
		section := domain.CategorySection{Name: cat.Name}
		for _, p := range cat.Products {
			inCart := cart.Contains(p.ID)
			label := "Add to Cart"
			if inCart {
				label = "Added to Cart"
			}
			section.Products = append(section.Products, domain.ProductCard{
				Product: p,
				InCart:  inCart,
				Add: domain.Action{
					Label:    label,
					Intent:   domain.AddToCart(p),
					Disabled: inCart,
				},
			})
		}
		sections = append(sections, section)
	}
	return sections
}

func renderCart(view *domain.View, cart domain.Cart) {
	continueShopping := domain.Action{Label: "Continue Shopping", Intent: domain.Navigate(domain.PageProducts)}

	if cart.IsEmpty() {
		view.Title = "Your cart is empty"
		view.Body = "Add some beautiful plants to get started!"
		view.Empty = true
		view.Actions = []domain.Action{continueShopping}
		return
	}

	view.Title = "Shopping Cart"
	for _, it := range cart.Items {
		view.Rows = append(view.Rows, domain.CartRow{
			LineItem:  it,
			LineTotal: it.Total(),
			Actions: []domain.Action{
				{Label: "-", Intent: domain.DecreaseQuantity(it.ID)},
				{Label: "+", Intent: domain.IncreaseQuantity(it.ID)},
				{Label: "Remove", Intent: domain.RemoveFromCart(it.ID)},
			},
		})
	}
	view.Actions = []domain.Action{
		continueShopping,
		{Label: "Checkout", Intent: domain.Checkout()},
	}
}

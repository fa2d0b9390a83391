/*
Package storefront is the engine behind Paradise Nursery, a small plant shop.

It models a single-session shopping flow: a landing page, a product listing
grouped by category and a cart with quantity controls and totals. The engine
is stateless. Hosts keep the State (in memory, on disk or in Redis) and feed it
back with every Intent.

# Concept

A session is a State holding the current Page and a Cart. Intents
(ADD_TO_CART, INCREASE_QUANTITY, DECREASE_QUANTITY, REMOVE_FROM_CART, NAVIGATE
and CHECKOUT) are folded into the State by a pure reducer. Render turns a State
into a View the host can draw in a terminal, return over HTTP or hand to an
AI agent over MCP.

# Usage

	eng, err := storefront.New()
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	state, _ := eng.Start(ctx, "session-123")
	state, _ = eng.Dispatch(ctx, state, domain.Navigate(domain.PageProducts))
	state, _ = eng.Dispatch(ctx, state, domain.Intent{Type: domain.IntentAddToCart, ProductID: 1})

	view, _ := eng.Render(ctx, state)
	fmt.Println(view.TotalCost) // 25.99

Prices are held in cents (domain.Money) so totals are exact.
*/
package storefront

/*
Package domain contains the core models and pure business rules of the storefront.

Nothing in this package performs I/O. Every operation takes a value and returns a
new value, which keeps the cart and navigation rules trivially testable and safe to
share between goroutines once built.

# Key Entities

  - Product: An immutable catalog entry (id, name, price, image, category).
  - Money: An exact amount in cents. Display formatting happens at the edges.
  - Cart: An ordered list of line items, keyed by product id.
  - Page: One of the three storefront views (landing, products, cart).
  - State: The per-session snapshot of the current page and the cart.
  - Intent: A user action. Reduce folds intents into a State.
  - View: A structural description of what the host should render for a State.
*/
package domain

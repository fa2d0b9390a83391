package domain

// LineItem is a product in the cart together with its quantity.
// Quantity is always at least 1 for items held by a Cart.
type LineItem struct {
	Product
	Quantity int `json:"quantity"`
}

// Total returns price times quantity.
func (li LineItem) Total() Money {
	return li.Price.Mul(li.Quantity)
}

// Cart is an ordered collection of line items with unique product ids.
//
// All mutators return a new Cart and leave the receiver untouched, so a Cart
// can be handed to other goroutines or stored without copying.
type Cart struct {
	Items []LineItem `json:"items"`
}

// NewCart returns an empty cart.
func NewCart() Cart {
	return Cart{Items: []LineItem{}}
}

// Contains reports whether a product is in the cart.
func (c Cart) Contains(productID int) bool {
	_, ok := c.Find(productID)
	return ok
}

// Find returns the line item for a product.
func (c Cart) Find(productID int) (LineItem, bool) {
	for _, it := range c.Items {
		if it.ID == productID {
			return it, true
		}
	}
	return LineItem{}, false
}

// IsEmpty reports whether the cart has no line items.
func (c Cart) IsEmpty() bool { return len(c.Items) == 0 }

// AddToCart appends the product with quantity 1, or bumps the quantity of the
// existing line item when the product is already present.
func (c Cart) AddToCart(p Product) Cart {
	if c.Contains(p.ID) {
		return c.IncreaseQuantity(p.ID)
	}
	items := make([]LineItem, len(c.Items), len(c.Items)+1)
	copy(items, c.Items)
	return Cart{Items: append(items, LineItem{Product: p, Quantity: 1})}
}

// IncreaseQuantity adds one to the matching line item. Unknown ids are ignored.
func (c Cart) IncreaseQuantity(productID int) Cart {
	items := make([]LineItem, len(c.Items))
	for i, it := range c.Items {
		if it.ID == productID {
			it.Quantity++
		}
		items[i] = it
	}
	return Cart{Items: items}
}

// DecreaseQuantity subtracts one from the matching line item and drops it when
// the quantity reaches zero. Unknown ids are ignored.
func (c Cart) DecreaseQuantity(productID int) Cart {
	items := make([]LineItem, 0, len(c.Items))
	for _, it := range c.Items {
		if it.ID == productID {
			it.Quantity--
		}
		if it.Quantity > 0 {
			items = append(items, it)
		}
	}
	return Cart{Items: items}
}

// RemoveFromCart drops the matching line item regardless of quantity.
func (c Cart) RemoveFromCart(productID int) Cart {
	items := make([]LineItem, 0, len(c.Items))
	for _, it := range c.Items {
		if it.ID != productID {
			items = append(items, it)
		}
	}
	return Cart{Items: items}
}

// TotalItemCount is the sum of all quantities.
func (c Cart) TotalItemCount() int {
	n := 0
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

// TotalCost is the sum of price times quantity over all line items.
func (c Cart) TotalCost() Money {
	var total Money
	for _, it := range c.Items {
		total = total.Add(it.Total())
	}
	return total
}

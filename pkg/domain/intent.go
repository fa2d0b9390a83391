package domain

import "fmt"

// IntentType names a user action understood by Reduce.
type IntentType string

const (
	IntentAddToCart        IntentType = "ADD_TO_CART"
	IntentIncreaseQuantity IntentType = "INCREASE_QUANTITY"
	IntentDecreaseQuantity IntentType = "DECREASE_QUANTITY"
	IntentRemoveFromCart   IntentType = "REMOVE_FROM_CART"
	IntentNavigate         IntentType = "NAVIGATE"
	IntentCheckout         IntentType = "CHECKOUT"
)

// CheckoutNotice is the message shown when the shopper tries to check out.
const CheckoutNotice = "Checkout is coming soon!"

// Intent is a user action with its payload.
//
// ADD_TO_CART carries the full Product. When only ProductID is set, the engine
// resolves the product from the catalog before reducing. The quantity intents
// use ProductID and NAVIGATE uses Page.
type Intent struct {
	Type      IntentType `json:"type"`
	Product   *Product   `json:"product,omitempty"`
	ProductID int        `json:"product_id,omitempty"`
	Page      Page       `json:"page,omitempty"`
}

// AddToCart builds an ADD_TO_CART intent.
func AddToCart(p Product) Intent {
	return Intent{Type: IntentAddToCart, Product: &p, ProductID: p.ID}
}

// IncreaseQuantity builds an INCREASE_QUANTITY intent.
func IncreaseQuantity(productID int) Intent {
	return Intent{Type: IntentIncreaseQuantity, ProductID: productID}
}

// DecreaseQuantity builds a DECREASE_QUANTITY intent.
func DecreaseQuantity(productID int) Intent {
	return Intent{Type: IntentDecreaseQuantity, ProductID: productID}
}

// RemoveFromCart builds a REMOVE_FROM_CART intent.
func RemoveFromCart(productID int) Intent {
	return Intent{Type: IntentRemoveFromCart, ProductID: productID}
}

// Navigate builds a NAVIGATE intent.
func Navigate(p Page) Intent {
	return Intent{Type: IntentNavigate, Page: p}
}

// Checkout builds a CHECKOUT intent.
func Checkout() Intent {
	return Intent{Type: IntentCheckout}
}

// TargetID returns the product id the intent refers to.
func (i Intent) TargetID() int {
	if i.Product != nil {
		return i.Product.ID
	}
	return i.ProductID
}

// Validate checks that a decoded intent is well-formed. Adapters call it at the
// wire boundary; Reduce does not need it.
func (i Intent) Validate() error {
	switch i.Type {
	case IntentAddToCart:
		if i.Product == nil && i.ProductID == 0 {
			return fmt.Errorf("%s requires a product or product_id", i.Type)
		}
	case IntentIncreaseQuantity, IntentDecreaseQuantity, IntentRemoveFromCart:
		if i.ProductID == 0 {
			return fmt.Errorf("%s requires product_id", i.Type)
		}
	case IntentNavigate:
		if !i.Page.Valid() {
			return fmt.Errorf("%w: %q", ErrUnknownPage, i.Page)
		}
	case IntentCheckout:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownIntent, i.Type)
	}
	return nil
}

// Reduce applies an intent to a state and returns the next state.
//
// Reduce is total: unknown intent types, unknown product ids, invalid pages and
// an ADD_TO_CART without a product all return the state unchanged. CHECKOUT never alters the
// state; hosts surface CheckoutNotice instead.
func Reduce(s State, in Intent) State {
	switch in.Type {
	case IntentAddToCart:
		if in.Product == nil {
			return s
		}
		s.Cart = s.Cart.AddToCart(*in.Product)
	case IntentIncreaseQuantity:
		s.Cart = s.Cart.IncreaseQuantity(in.ProductID)
	case IntentDecreaseQuantity:
		s.Cart = s.Cart.DecreaseQuantity(in.ProductID)
	case IntentRemoveFromCart:
		s.Cart = s.Cart.RemoveFromCart(in.ProductID)
	case IntentNavigate:
		if in.Page.Valid() {
			s = s.NavigateTo(in.Page)
		}
	}
	return s
}

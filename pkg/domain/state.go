package domain

// State is the snapshot of a single storefront session.
//
// There is no navigation history: only the current page is kept.
type State struct {
	SessionID string `json:"session_id"`
	Page      Page   `json:"page"`
	Cart      Cart   `json:"cart"`
}

// NewState creates a session on the landing page with an empty cart.
func NewState(sessionID string) *State {
	return &State{
		SessionID: sessionID,
		Page:      PageLanding,
		Cart:      NewCart(),
	}
}

// NavigateTo returns a copy of the state showing the given page.
// The current page is replaced unconditionally and the cart is untouched.
func (s State) NavigateTo(p Page) State {
	s.Page = p
	return s
}

// Snapshot returns a deep copy of the state.
func (s *State) Snapshot() *State {
	if s == nil {
		return nil
	}
	cp := *s
	cp.Cart = Cart{Items: make([]LineItem, len(s.Cart.Items))}
	copy(cp.Cart.Items, s.Cart.Items)
	return &cp
}

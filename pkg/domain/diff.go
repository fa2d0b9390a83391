package domain

// StateDiff represents the changes between two states.
// It is serialized to JSON for partial updates on streaming clients.
type StateDiff struct {
	// SessionID is always present to identify the target.
	SessionID string `json:"session_id"`

	Page *Page `json:"page,omitempty"`

	// Upserted holds line items that were added or whose quantity changed.
	Upserted []LineItem `json:"upserted,omitempty"`

	// Removed holds ids of products that left the cart.
	Removed []int `json:"removed,omitempty"`

	// Totals are only sent when the cart changed.
	TotalItems *int   `json:"total_items,omitempty"`
	TotalCost  *Money `json:"total_cost,omitempty"`
}

// Diff calculates the difference between oldState and newState.
// If oldState is nil, it returns a diff representing the entire newState (initial load).
// It returns nil when nothing changed.
func Diff(oldState, newState *State) *StateDiff {
	if newState == nil {
		return nil
	}

	diff := &StateDiff{SessionID: newState.SessionID}

	if oldState == nil || oldState.Page != newState.Page {
		p := newState.Page
		diff.Page = &p
	}

	var oldCart Cart
	if oldState != nil {
		oldCart = oldState.Cart
	}
	diff.Upserted, diff.Removed = diffCart(oldCart, newState.Cart)

	if oldState == nil || len(diff.Upserted) > 0 || len(diff.Removed) > 0 {
		items := newState.Cart.TotalItemCount()
		cost := newState.Cart.TotalCost()
		diff.TotalItems = &items
		diff.TotalCost = &cost
	}

	if diff.IsEmpty() {
		return nil
	}
	return diff
}

func diffCart(old, new Cart) (upserted []LineItem, removed []int) {
	for _, it := range new.Items {
		prev, ok := old.Find(it.ID)
		if !ok || prev != it {
			upserted = append(upserted, it)
		}
	}
	for _, it := range old.Items {
		if !new.Contains(it.ID) {
			removed = append(removed, it.ID)
		}
	}
	return upserted, removed
}

// IsEmpty checks if the diff contains any actionable changes.
func (d *StateDiff) IsEmpty() bool {
	return d.Page == nil &&
		len(d.Upserted) == 0 &&
		len(d.Removed) == 0 &&
		d.TotalItems == nil
}

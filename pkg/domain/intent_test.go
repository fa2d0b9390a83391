package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReduce(t *testing.T) {
	start := *NewState("s1")

	t.Run("Add then increase", func(t *testing.T) {
		s := Reduce(start, AddToCart(rose))
		s = Reduce(s, IncreaseQuantity(rose.ID))

		assert.Equal(t, 2, s.Cart.Items[0].Quantity)
		assert.Equal(t, "51.98", s.Cart.TotalCost().String())
		assert.Equal(t, PageLanding, s.Page)
	})

	t.Run("Navigate keeps the cart", func(t *testing.T) {
		s := Reduce(start, AddToCart(rose))
		s = Reduce(s, Navigate(PageCart))
		s = Reduce(s, Navigate(PageProducts))

		assert.Equal(t, PageProducts, s.Page)
		assert.Equal(t, 1, s.Cart.TotalItemCount())
	})

	t.Run("Navigate products, cart, landing ends on landing", func(t *testing.T) {
		s := Reduce(start, Navigate(PageProducts))
		s = Reduce(s, Navigate(PageCart))
		s = Reduce(s, Navigate(PageLanding))
		assert.Equal(t, PageLanding, s.Page)
	})

	t.Run("Navigate to an invalid page is a no-op", func(t *testing.T) {
		s := Reduce(start, Navigate(PageCart))
		assert.Equal(t, s, Reduce(s, Navigate(Page("checkout"))))
	})

	t.Run("Navigate to current page is idempotent", func(t *testing.T) {
		s := Reduce(start, Navigate(PageLanding))
		assert.Equal(t, start, s)
	})

	t.Run("Checkout leaves the state unchanged", func(t *testing.T) {
		s := Reduce(start, AddToCart(rose))
		assert.Equal(t, s, Reduce(s, Checkout()))
	})

	t.Run("Unknown intents are no-ops", func(t *testing.T) {
		assert.Equal(t, start, Reduce(start, Intent{Type: "DANCE"}))
		assert.Equal(t, start, Reduce(start, Intent{Type: IntentAddToCart, ProductID: 1}))
	})

	t.Run("Input state is not modified", func(t *testing.T) {
		s := Reduce(start, AddToCart(rose))
		before := *s.Snapshot()
		_ = Reduce(s, IncreaseQuantity(rose.ID))
		_ = Reduce(s, RemoveFromCart(rose.ID))
		assert.Equal(t, before, s)
	})
}

func TestIntent_Validate(t *testing.T) {
	tests := []struct {
		name    string
		intent  Intent
		wantErr error
		ok      bool
	}{
		{name: "add with product", intent: AddToCart(rose), ok: true},
		{name: "add with id", intent: Intent{Type: IntentAddToCart, ProductID: 2}, ok: true},
		{name: "add without target", intent: Intent{Type: IntentAddToCart}},
		{name: "increase", intent: IncreaseQuantity(1), ok: true},
		{name: "remove without id", intent: Intent{Type: IntentRemoveFromCart}},
		{name: "navigate", intent: Navigate(PageCart), ok: true},
		{name: "navigate bad page", intent: Navigate("checkout"), wantErr: ErrUnknownPage},
		{name: "checkout", intent: Checkout(), ok: true},
		{name: "unknown", intent: Intent{Type: "DANCE"}, wantErr: ErrUnknownIntent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.intent.Validate()
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr))
			}
		})
	}
}

func TestParsePage(t *testing.T) {
	p, err := ParsePage("Cart")
	assert.NoError(t, err)
	assert.Equal(t, PageCart, p)

	p, err = ParsePage("home")
	assert.NoError(t, err)
	assert.Equal(t, PageLanding, p)

	_, err = ParsePage("checkout")
	assert.ErrorIs(t, err, ErrUnknownPage)
}

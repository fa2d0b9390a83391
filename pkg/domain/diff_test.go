package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiff(t *testing.T) {
	base := NewState("sess-1")

	t.Run("Initial load", func(t *testing.T) {
		d := Diff(nil, base)
		require.NotNil(t, d)
		assert.Equal(t, PageLanding, *d.Page)
		assert.Equal(t, 0, *d.TotalItems)
	})

	t.Run("No changes", func(t *testing.T) {
		assert.Nil(t, Diff(base, base.Snapshot()))
	})

	t.Run("Page change only", func(t *testing.T) {
		next := Reduce(*base, Navigate(PageProducts))
		d := Diff(base, &next)
		require.NotNil(t, d)
		assert.Equal(t, PageProducts, *d.Page)
		assert.Nil(t, d.TotalItems)
		assert.Empty(t, d.Upserted)
	})

	t.Run("Cart changes", func(t *testing.T) {
		withRose := Reduce(*base, AddToCart(rose))
		withTwo := Reduce(withRose, AddToCart(jasmine))
		withTwo = Reduce(withTwo, IncreaseQuantity(rose.ID))

		d := Diff(&withRose, &withTwo)
		require.NotNil(t, d)
		assert.Nil(t, d.Page)
		assert.Len(t, d.Upserted, 2)
		assert.Equal(t, 3, *d.TotalItems)
		assert.Equal(t, "74.97", d.TotalCost.String())

		removed := Reduce(withTwo, RemoveFromCart(jasmine.ID))
		d = Diff(&withTwo, &removed)
		require.NotNil(t, d)
		assert.Equal(t, []int{jasmine.ID}, d.Removed)
		assert.Empty(t, d.Upserted)
	})

	t.Run("JSON omits unchanged fields", func(t *testing.T) {
		next := Reduce(*base, Navigate(PageCart))
		data, err := json.Marshal(Diff(base, &next))
		require.NoError(t, err)
		assert.JSONEq(t, `{"session_id":"sess-1","page":"cart"}`, string(data))
	})
}

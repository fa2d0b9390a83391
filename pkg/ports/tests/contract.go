package tests

import (
	"testing"

	"github.com/aretw0/storefront/pkg/domain"
	"github.com/aretw0/storefront/pkg/ports"
)

// CatalogContractTest is a reusable test suite that verifies if an adapter complies with ports.Catalog.
// want lists the products the catalog is expected to hold, in display order.
func CatalogContractTest(t *testing.T, catalog ports.Catalog, want []domain.Product) {
	t.Helper()

	t.Run("Products_Order", func(t *testing.T) {
		got := catalog.Products()
		if len(got) != len(want) {
			t.Fatalf("expected %d products, got %d", len(want), len(got))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("product %d mismatch. got %+v, want %+v", i, got[i], want[i])
			}
		}
	})

	t.Run("Product_Lookup", func(t *testing.T) {
		for _, p := range want {
			got, ok := catalog.Product(p.ID)
			if !ok {
				t.Fatalf("product %d not found", p.ID)
			}
			if got != p {
				t.Errorf("lookup mismatch for %d. got %+v, want %+v", p.ID, got, p)
			}
		}
	})

	t.Run("Product_NotFound", func(t *testing.T) {
		if _, ok := catalog.Product(-1); ok {
			t.Error("expected lookup of unknown id to fail")
		}
	})

	t.Run("Categories_Cover_Products", func(t *testing.T) {
		seen := 0
		for _, c := range catalog.Categories() {
			if c.Name == "" {
				t.Error("category with empty name")
			}
			for _, p := range c.Products {
				if p.Category != c.Name {
					t.Errorf("product %d listed under %q but belongs to %q", p.ID, c.Name, p.Category)
				}
				seen++
			}
		}
		if seen != len(want) {
			t.Errorf("categories hold %d products, want %d", seen, len(want))
		}
	})

	t.Run("Immutable", func(t *testing.T) {
		products := catalog.Products()
		if len(products) == 0 {
			return
		}
		products[0].Name = "mutated"
		if catalog.Products()[0].Name == "mutated" {
			t.Error("catalog exposes its internal slice")
		}
	})
}

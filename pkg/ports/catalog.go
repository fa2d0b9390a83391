package ports

import "github.com/aretw0/storefront/pkg/domain"

// Catalog is the read-only product catalog.
//
// Implementations must return products in display order and must never
// change their contents after construction.
type Catalog interface {
	// Categories returns the categories in display order.
	Categories() []domain.Category

	// Products returns every product across all categories in display order.
	Products() []domain.Product

	// Product looks a product up by id.
	Product(id int) (domain.Product, bool)
}

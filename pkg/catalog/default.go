package catalog

import "github.com/aretw0/storefront/pkg/domain"

// Default returns the built-in Paradise Nursery catalog.
func Default() *Catalog {
	return NewBuilder().
		Category("Flowering Plants").
		Product(1, "Rose", domain.Cents(2599), "rose.jpeg").
		Product(2, "Jasmine", domain.Cents(2299), "jasmine.jpeg").
		Category("Succulents & Cacti").
		Product(3, "Succulent Cacti", domain.Cents(1599), "succulent.jpeg").
		Product(4, "Marigold", domain.Cents(1299), "marigold.jpeg").
		Category("Garden Plants").
		Product(5, "Sunflower", domain.Cents(1899), "sunflower.jpeg").
		Product(6, "Tulsi (Holy Basil)", domain.Cents(1699), "tulsi.jpeg").
		MustBuild()
}

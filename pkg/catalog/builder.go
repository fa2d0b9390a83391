package catalog

import (
	"github.com/aretw0/storefront/pkg/domain"
)

// Builder assembles a catalog category by category.
//
//	c, err := catalog.NewBuilder().
//		Category("Herbs").
//		Product(10, "Mint", domain.Cents(499), "mint.jpeg").
//		Build()
type Builder struct {
	categories []domain.Category
	index      map[string]int
	current    int
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{index: make(map[string]int), current: -1}
}

// Category selects the category that following products are added to.
// If the category already exists, products are appended to it.
func (b *Builder) Category(name string) *Builder {
	if i, ok := b.index[name]; ok {
		b.current = i
		return b
	}
	b.categories = append(b.categories, domain.Category{Name: name})
	b.current = len(b.categories) - 1
	b.index[name] = b.current
	return b
}

// Product adds a product to the current category. Products added before any
// Category call land in an unnamed category and fail validation.
func (b *Builder) Product(id int, name string, price domain.Money, image string) *Builder {
	if b.current < 0 {
		b.Category("")
	}
	cat := &b.categories[b.current]
	cat.Products = append(cat.Products, domain.Product{
		ID:       id,
		Name:     name,
		Price:    price,
		Image:    image,
		Category: cat.Name,
	})
	return b
}

// Build validates and returns the catalog.
func (b *Builder) Build() (*Catalog, error) {
	return New(b.categories...)
}

// MustBuild is like Build but panics on invalid input.
func (b *Builder) MustBuild() *Catalog {
	return Must(b.categories...)
}

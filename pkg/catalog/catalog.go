package catalog

import (
	"fmt"
	"strings"

	"github.com/aretw0/storefront/pkg/domain"
)

// Catalog is an in-memory, read-only product catalog. It implements ports.Catalog.
type Catalog struct {
	categories []domain.Category
	products   []domain.Product
	byID       map[int]domain.Product
}

// New builds a catalog from categories in display order.
//
// Each product's Category is set to the name of the category it is listed
// under. Product ids must be positive and unique, names non-empty and prices
// non-negative.
func New(categories ...domain.Category) (*Catalog, error) {
	if err := Validate(categories); err != nil {
		return nil, err
	}

	c := &Catalog{byID: make(map[int]domain.Product)}
	for _, cat := range categories {
		owned := domain.Category{Name: cat.Name, Products: make([]domain.Product, 0, len(cat.Products))}
		for _, p := range cat.Products {
			p.Category = cat.Name
			owned.Products = append(owned.Products, p)
			c.products = append(c.products, p)
			c.byID[p.ID] = p
		}
		c.categories = append(c.categories, owned)
	}
	return c, nil
}

// Must is like New but panics on invalid input. Intended for static catalogs.
func Must(categories ...domain.Category) *Catalog {
	c, err := New(categories...)
	if err != nil {
		panic(err)
	}
	return c
}

// Validate checks the structural rules of a catalog and collects every violation.
func Validate(categories []domain.Category) error {
	var errs []error
	add := func(field, reason string) {
		errs = append(errs, &ValidationError{Field: field, Reason: reason})
	}

	seen := make(map[int]string)
	names := make(map[string]bool)
	for ci, cat := range categories {
		prefix := fmt.Sprintf("categories[%d]", ci)
		if strings.TrimSpace(cat.Name) == "" {
			add(prefix+".name", "must not be empty")
		} else if names[cat.Name] {
			add(prefix+".name", fmt.Sprintf("duplicate category %q", cat.Name))
		}
		names[cat.Name] = true

		for pi, p := range cat.Products {
			field := fmt.Sprintf("%s.products[%d]", prefix, pi)
			if p.ID <= 0 {
				add(field+".id", "must be positive")
			} else if other, dup := seen[p.ID]; dup {
				add(field+".id", fmt.Sprintf("duplicate id %d (already used by %q)", p.ID, other))
			} else {
				seen[p.ID] = p.Name
			}
			if strings.TrimSpace(p.Name) == "" {
				add(field+".name", "must not be empty")
			}
			if p.Price < 0 {
				add(field+".price", "must not be negative")
			}
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return &AggregateError{Errors: errs}
}

// Categories returns a copy of the categories in display order.
func (c *Catalog) Categories() []domain.Category {
	out := make([]domain.Category, len(c.categories))
	for i, cat := range c.categories {
		out[i] = domain.Category{Name: cat.Name, Products: append([]domain.Product(nil), cat.Products...)}
	}
	return out
}

// Products returns a copy of all products in display order.
func (c *Catalog) Products() []domain.Product {
	return append([]domain.Product(nil), c.products...)
}

// Product looks a product up by id.
func (c *Catalog) Product(id int) (domain.Product, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// Len returns the number of products.
func (c *Catalog) Len() int { return len(c.products) }

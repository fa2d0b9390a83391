package domain

// Product is a catalog entry. Products are immutable once the catalog is built.
type Product struct {
	ID       int    `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Price    Money  `json:"price" yaml:"price"`
	Image    string `json:"image,omitempty" yaml:"image,omitempty"`
	Category string `json:"category" yaml:"category"`
}

// Category groups products for display, in catalog order.
type Category struct {
	Name     string    `json:"name" yaml:"name"`
	Products []Product `json:"products" yaml:"products"`
}

package loam

// ProductMetadata is the frontmatter of a product document.
//
//	---
//	id: 1
//	name: Rose
//	price: 25.99
//	image: rose.jpeg
//	category: Flowering Plants
//	---
//
// ID and Price are untyped because frontmatter numbers may arrive as int,
// float64, json.Number or string depending on the file format.
type ProductMetadata struct {
	ID       any    `json:"id" mapstructure:"id"`
	Name     string `json:"name" mapstructure:"name"`
	Price    any    `json:"price" mapstructure:"price"`
	Image    string `json:"image,omitempty" mapstructure:"image"`
	Category string `json:"category" mapstructure:"category"`
}

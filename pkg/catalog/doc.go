// Package catalog provides the immutable product catalog used by the storefront.
//
// A Catalog can come from the built-in Default set, a fluent Builder, or a
// YAML/JSON file. Every constructor validates the products before returning.
package catalog

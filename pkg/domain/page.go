package domain

import (
	"fmt"
	"strings"
)

// Page identifies which storefront view is active.
type Page string

const (
	PageLanding  Page = "landing"
	PageProducts Page = "products"
	PageCart     Page = "cart"
)

// Pages returns every page in navigation order.
func Pages() []Page {
	return []Page{PageLanding, PageProducts, PageCart}
}

// Valid reports whether p is one of the known pages.
func (p Page) Valid() bool {
	switch p {
	case PageLanding, PageProducts, PageCart:
		return true
	}
	return false
}

// Title is the human label for the page.
func (p Page) Title() string {
	switch p {
	case PageProducts:
		return "Products"
	case PageCart:
		return "Cart"
	default:
		return "Home"
	}
}

// ParsePage converts user or wire input to a Page. Matching is case-insensitive
// and accepts "home" as an alias for the landing page.
func ParsePage(s string) (Page, error) {
	p := Page(strings.ToLower(strings.TrimSpace(s)))
	if p == "home" {
		return PageLanding, nil
	}
	if !p.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownPage, s)
	}
	return p, nil
}

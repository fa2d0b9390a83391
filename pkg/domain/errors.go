package domain

import "errors"

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrUnknownPage is returned when a page name does not match any storefront page.
var ErrUnknownPage = errors.New("unknown page")

// ErrUnknownIntent is returned by adapters when a decoded intent has no handler.
// Reduce itself never fails; it treats unknown intents as no-ops.
var ErrUnknownIntent = errors.New("unknown intent")

// ErrUnknownProduct is returned when a product id is not present in the catalog.
var ErrUnknownProduct = errors.New("unknown product")

// ErrInvalidCatalog is returned when a catalog violates its structural rules.
var ErrInvalidCatalog = errors.New("invalid catalog")

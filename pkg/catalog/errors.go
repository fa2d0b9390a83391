package catalog

import (
	"fmt"

	"github.com/aretw0/storefront/pkg/domain"
)

// ValidationError represents a single product or category failing validation.
type ValidationError struct {
	Field  string // e.g. "products[2].price"
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// AggregateError represents multiple validation failures.
// It unwraps to domain.ErrInvalidCatalog.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("%v: %s", domain.ErrInvalidCatalog, e.Errors[0])
	}
	msg := fmt.Sprintf("%v: %d validation errors:\n", domain.ErrInvalidCatalog, len(e.Errors))
	for i, err := range e.Errors {
		msg += fmt.Sprintf("  %d. %s\n", i+1, err.Error())
	}
	return msg
}

func (e *AggregateError) Unwrap() []error {
	return append([]error{domain.ErrInvalidCatalog}, e.Errors...)
}

// ValidationErrors returns all validation errors if err is an AggregateError.
// Otherwise returns nil.
func ValidationErrors(err error) []error {
	if aggr, ok := err.(*AggregateError); ok {
		return aggr.Errors
	}
	return nil
}

package ports

import "context"

// Street-level address record returned by the postal-code registry.
type PostalAddress struct {
	Street       string
	Neighborhood string
	City         string
	Region       string
}

// PostalCodeNotFoundError distinguishes "registry says no such code"
// from transport failures.
type PostalCodeNotFoundError struct {
	PostalCode string
}

func (e *PostalCodeNotFoundError) Error() string {
	return "postal code not found: " + e.PostalCode
}

// Contract for resolving a digits-only postal code to a street address.
type PostalLookup interface {
	Lookup(ctx context.Context, postalCode string) (PostalAddress, error)
}

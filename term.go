package furniq

import (
	"context"
	"time"
)

// Term is a stored dictionary term, typically a brand or a product name that
// comes from a catalog rather than from a static table.
type Term struct {
	ID        string    `json:"id"`
	Category  Category  `json:"category"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// Validate returns an error if the term contains invalid fields.
func (t *Term) Validate() error {
	if t.Name == "" {
		return Errorf(EINVALID, "term name required")
	}
	if t.Category != CategoryBrand && t.Category != CategoryProductName {
		return Errorf(EINVALID, "terms can only be stored for Brand or ProductName, got %s", t.Category)
	}
	return nil
}

// TermSource supplies catalog terms.
type TermSource interface {
	// FindTerms retrieves terms matching the filter.
	FindTerms(ctx context.Context, filter TermFilter) ([]*Term, error)
}

// TermService represents a service for managing stored terms.
type TermService interface {
	TermSource

	// CreateTerm creates a new term.
	// Returns ECONFLICT if a term with the same category and name exists.
	CreateTerm(ctx context.Context, term *Term) error

	// DeleteTerm permanently removes a term.
	// Returns ENOTFOUND if the term does not exist.
	DeleteTerm(ctx context.Context, id string) error
}

// TermFilter represents a filter for FindTerms.
type TermFilter struct {
	Category *Category `json:"category"`
	Name     *string   `json:"name"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

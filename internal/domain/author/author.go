package author

import (
	"fmt"

	"github.com/kailas-cloud/docrepo/internal/domain"
)

// Author identifies who wrote a document. Comparable by value.
type Author struct {
	id   string
	name string
}

// New creates an Author. The ID may be any non-empty string; name is optional.
func New(id, name string) (Author, error) {
	if id == "" {
		return Author{}, fmt.Errorf("author ID is required: %w", domain.ErrInvalidDocument)
	}
	return Author{id: id, name: name}, nil
}

// Reconstruct creates an Author without validation (storage hydration).
func Reconstruct(id, name string) Author {
	return Author{id: id, name: name}
}

// ID returns the author identifier.
func (a Author) ID() string { return a.id }

// Name returns the display name.
func (a Author) Name() string { return a.name }

// IsZero reports whether the author carries no identifier.
func (a Author) IsZero() bool { return a.id == "" }

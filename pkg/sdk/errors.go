package docrepo

import "github.com/kailas-cloud/docrepo/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrDocumentNotFound = domain.ErrDocumentNotFound
	ErrInvalidDocument  = domain.ErrInvalidDocument
)

package domain

import "errors"

var (
	// ErrDocumentNotFound signals a missing document.
	ErrDocumentNotFound = errors.New("document not found")
	// ErrInvalidDocument signals a document that breaks the save contract (no author).
	ErrInvalidDocument = errors.New("invalid document")
	// ErrInvalidRequest signals search parameters a host could not decode.
	ErrInvalidRequest = errors.New("invalid search request")
)

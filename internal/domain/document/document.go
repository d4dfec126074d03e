package document

import (
	"fmt"
	"time"

	"github.com/kailas-cloud/docrepo/internal/domain"
	"github.com/kailas-cloud/docrepo/internal/domain/author"
)

// Document is a titled, authored piece of content with an identity and creation time.
// An empty ID marks a document that has not been saved yet.
type Document struct {
	id      string
	title   string
	content string
	author  author.Author
	created time.Time
}

// New creates a Document. Any id (empty means unsaved), title and content are
// accepted; only a missing author is rejected.
func New(id, title, content string, a author.Author) (Document, error) {
	if a.IsZero() {
		return Document{}, fmt.Errorf("author is required: %w", domain.ErrInvalidDocument)
	}
	return Document{id: id, title: title, content: content, author: a}, nil
}

// Reconstruct creates a Document without validation (storage hydration).
func Reconstruct(id, title, content string, a author.Author, created time.Time) Document {
	return Document{id: id, title: title, content: content, author: a, created: created}
}

// ID returns the document identifier.
func (d *Document) ID() string { return d.id }

// Title returns the document title.
func (d *Document) Title() string { return d.title }

// Content returns the document text content.
func (d *Document) Content() string { return d.content }

// Author returns the referenced author.
func (d *Document) Author() author.Author { return d.author }

// Created returns the first-save timestamp (zero before the first save).
func (d *Document) Created() time.Time { return d.created }

// IsNew reports whether the document has no identity yet.
func (d *Document) IsNew() bool { return d.id == "" }

// SetID assigns the identity in place (mutation).
func (d *Document) SetID(id string) { d.id = id }

// SetCreated sets the creation timestamp in place (mutation).
func (d *Document) SetCreated(t time.Time) { d.created = t }

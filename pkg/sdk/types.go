package docrepo

import (
	"time"

	"github.com/kailas-cloud/docrepo/internal/domain/author"
	domdoc "github.com/kailas-cloud/docrepo/internal/domain/document"
	"github.com/kailas-cloud/docrepo/internal/domain/search/request"
)

// Author identifies who wrote a document. Two authors are equal when both fields are.
type Author struct {
	ID   string
	Name string
}

// Document is a stored text document.
// ID is optional on Save; Created is always assigned by the repository.
type Document struct {
	ID      string
	Title   string
	Content string
	Author  Author
	Created time.Time
}

// SearchRequest filters documents. Every non-empty clause must match.
type SearchRequest struct {
	TitlePrefixes    []string   // title starts with any of these
	ContainsContents []string   // content contains any of these
	AuthorIDs        []string   // author ID is one of these
	CreatedFrom      *time.Time // inclusive lower bound
	CreatedTo        *time.Time // inclusive upper bound
}

func toInternalDocument(d Document) (domdoc.Document, error) {
	a, err := author.New(d.Author.ID, d.Author.Name)
	if err != nil {
		return domdoc.Document{}, err
	}
	return domdoc.New(d.ID, d.Title, d.Content, a)
}

func fromInternalDocument(d *domdoc.Document) Document {
	return Document{
		ID:      d.ID(),
		Title:   d.Title(),
		Content: d.Content(),
		Author: Author{
			ID:   d.Author().ID(),
			Name: d.Author().Name(),
		},
		Created: d.Created(),
	}
}

func toInternalRequest(r SearchRequest) request.Request {
	return request.New(r.TitlePrefixes, r.ContainsContents, r.AuthorIDs, r.CreatedFrom, r.CreatedTo)
}

package chi

import (
	"fmt"
	"net/url"

	"github.com/oapi-codegen/runtime"

	"github.com/kailas-cloud/docrepo/internal/domain"
	"github.com/kailas-cloud/docrepo/internal/domain/author"
	domdoc "github.com/kailas-cloud/docrepo/internal/domain/document"
	"github.com/kailas-cloud/docrepo/internal/domain/search/request"
)

func documentFromRequest(id string, req DocumentRequest) (domdoc.Document, error) {
	a, err := author.New(req.Author.ID, req.Author.Name)
	if err != nil {
		return domdoc.Document{}, err
	}
	return domdoc.New(id, req.Title, req.Content, a)
}

func documentToResponse(doc *domdoc.Document) DocumentResponse {
	return DocumentResponse{
		ID:      doc.ID(),
		Title:   doc.Title(),
		Content: doc.Content(),
		Author: AuthorJSON{
			ID:   doc.Author().ID(),
			Name: doc.Author().Name(),
		},
		Created: doc.Created().UTC(),
	}
}

func searchResponse(docs []domdoc.Document) SearchResponse {
	items := make([]DocumentResponse, len(docs))
	for i := range docs {
		items[i] = documentToResponse(&docs[i])
	}
	return SearchResponse{Items: items, Total: len(items)}
}

func searchRequestFromBody(req SearchRequest) request.Request {
	return request.New(req.TitlePrefixes, req.ContainsContents, req.AuthorIDs, req.CreatedFrom, req.CreatedTo)
}

// bindSearchParams decodes form-style exploded query parameters:
// ?title_prefix=a&title_prefix=b&author_id=x&created_from=2024-01-01T00:00:00Z
func bindSearchParams(q url.Values) (SearchParams, error) {
	var p SearchParams
	bindings := []struct {
		name string
		dest any
	}{
		{"title_prefix", &p.TitlePrefix},
		{"contains", &p.Contains},
		{"author_id", &p.AuthorID},
		{"created_from", &p.CreatedFrom},
		{"created_to", &p.CreatedTo},
	}
	for _, b := range bindings {
		if err := runtime.BindQueryParameter("form", true, false, b.name, q, b.dest); err != nil {
			return SearchParams{}, fmt.Errorf("invalid format for parameter %s: %w: %w", b.name, domain.ErrInvalidRequest, err)
		}
	}
	return p, nil
}

func searchRequestFromParams(p SearchParams) request.Request {
	return request.New(deref(p.TitlePrefix), deref(p.Contains), deref(p.AuthorID), p.CreatedFrom, p.CreatedTo)
}

func deref(p *[]string) []string {
	if p == nil {
		return nil
	}
	return *p
}

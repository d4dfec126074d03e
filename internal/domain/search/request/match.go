package request

import (
	"strings"

	domdoc "github.com/kailas-cloud/docrepo/internal/domain/document"
)

// Matches reports whether doc satisfies every clause of the request.
// Clauses run in order title, content, author, from, to and stop at the first miss.
func (r *Request) Matches(doc *domdoc.Document) bool {
	return r.matchTitle(doc) &&
		r.matchContent(doc) &&
		r.matchAuthor(doc) &&
		r.matchCreatedFrom(doc) &&
		r.matchCreatedTo(doc)
}

func (r *Request) matchTitle(doc *domdoc.Document) bool {
	if len(r.titlePrefixes) == 0 {
		return true
	}
	title := doc.Title()
	for _, p := range r.titlePrefixes {
		if strings.HasPrefix(title, p) {
			return true
		}
	}
	return false
}

func (r *Request) matchContent(doc *domdoc.Document) bool {
	if len(r.containsContents) == 0 {
		return true
	}
	content := doc.Content()
	for _, s := range r.containsContents {
		if strings.Contains(content, s) {
			return true
		}
	}
	return false
}

func (r *Request) matchAuthor(doc *domdoc.Document) bool {
	if len(r.authorIDs) == 0 {
		return true
	}
	_, ok := r.authorIDs[doc.Author().ID()]
	return ok
}

// created >= createdFrom
func (r *Request) matchCreatedFrom(doc *domdoc.Document) bool {
	return r.createdFrom == nil || !doc.Created().Before(*r.createdFrom)
}

// created <= createdTo
func (r *Request) matchCreatedTo(doc *domdoc.Document) bool {
	return r.createdTo == nil || !doc.Created().After(*r.createdTo)
}

package document

import (
	"context"
	"sync"
	"time"

	"github.com/kailas-cloud/docrepo/internal/domain"
	domdoc "github.com/kailas-cloud/docrepo/internal/domain/document"
)

// Repo is an in-memory document store keyed by document ID.
// It implements usecase/document.Repository and usecase/search.Repository.
type Repo struct {
	mu   sync.RWMutex
	docs map[string]domdoc.Document
}

// New creates an empty document repository.
func New() *Repo {
	return &Repo{docs: make(map[string]domdoc.Document)}
}

// Upsert stores doc under its ID, replacing any previous value. Returns true if created.
// A new ID is stamped with now; an existing ID keeps the stored created time,
// which is also copied back onto doc. The existence check and the write share one lock.
func (r *Repo) Upsert(_ context.Context, doc *domdoc.Document, now time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.docs[doc.ID()]
	if exists {
		doc.SetCreated(existing.Created())
	} else {
		doc.SetCreated(now)
	}
	r.docs[doc.ID()] = *doc

	return !exists, nil
}

// Get returns a document by ID.
func (r *Repo) Get(_ context.Context, id string) (domdoc.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, ok := r.docs[id]
	if !ok {
		return domdoc.Document{}, domain.ErrDocumentNotFound
	}
	return doc, nil
}

// All returns a snapshot of every stored document in map iteration order.
func (r *Repo) All(_ context.Context) ([]domdoc.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domdoc.Document, 0, len(r.docs))
	for _, d := range r.docs {
		out = append(out, d)
	}
	return out, nil
}

// Count returns the number of stored documents.
func (r *Repo) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.docs), nil
}

// Delete removes a document.
func (r *Repo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.docs[id]; !ok {
		return domain.ErrDocumentNotFound
	}
	delete(r.docs, id)
	return nil
}

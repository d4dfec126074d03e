package document

import (
	"context"
	"time"

	domdoc "github.com/kailas-cloud/docrepo/internal/domain/document"
)

// Repository defines the storage contract for documents.
type Repository interface {
	// Upsert must check for an existing ID and write in one critical section.
	Upsert(ctx context.Context, doc *domdoc.Document, now time.Time) (created bool, err error)
	Get(ctx context.Context, id string) (domdoc.Document, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// IDGenerator produces collision-resistant document identifiers.
type IDGenerator interface {
	NewID() string
}

// Clock supplies the wall-clock time used for created timestamps.
type Clock interface {
	Now() time.Time
}

// Recorder observes document lifecycle events (metrics).
type Recorder interface {
	DocumentSaved(created bool)
	DocumentDeleted()
}

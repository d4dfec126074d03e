package search

import (
	"context"
	"time"

	domdoc "github.com/kailas-cloud/docrepo/internal/domain/document"
)

// Repository lists the documents a search scans.
type Repository interface {
	All(ctx context.Context) ([]domdoc.Document, error)
}

// Recorder observes completed searches (metrics).
type Recorder interface {
	SearchCompleted(duration time.Duration, scanned, matched int)
}

package document

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/docrepo/internal/domain"
	domdoc "github.com/kailas-cloud/docrepo/internal/domain/document"
	"github.com/kailas-cloud/docrepo/internal/logger"
)

// UUIDGenerator issues random (v4) UUIDs.
type UUIDGenerator struct{}

// NewID returns a new random UUID string.
func (UUIDGenerator) NewID() string { return uuid.NewString() }

// SystemClock reads time.Now.
type SystemClock struct{}

// Now returns the current time.
func (SystemClock) Now() time.Time { return time.Now() }

type nopRecorder struct{}

func (nopRecorder) DocumentSaved(bool) {}
func (nopRecorder) DocumentDeleted()   {}

// Service assigns document identity and creation time, and serves point lookups.
type Service struct {
	repo     Repository
	ids      IDGenerator
	clock    Clock
	recorder Recorder
}

// New creates a document service with UUID ids and the system clock.
func New(repo Repository) *Service {
	return &Service{
		repo:     repo,
		ids:      UUIDGenerator{},
		clock:    SystemClock{},
		recorder: nopRecorder{},
	}
}

// WithIDGenerator overrides the identifier source.
func (s *Service) WithIDGenerator(ids IDGenerator) *Service {
	if ids != nil {
		s.ids = ids
	}
	return s
}

// WithClock overrides the time source.
func (s *Service) WithClock(c Clock) *Service {
	if c != nil {
		s.clock = c
	}
	return s
}

// WithRecorder attaches a lifecycle recorder.
func (s *Service) WithRecorder(r Recorder) *Service {
	if r != nil {
		s.recorder = r
	}
	return s
}

// Save upserts doc, updating it in place. Returns true if the ID was new to the store.
//
// An empty ID gets a generated one. A new ID is stamped with the current time;
// an existing ID keeps the created time from its first save, and that value is
// written back onto doc.
func (s *Service) Save(ctx context.Context, doc *domdoc.Document) (bool, error) {
	if doc == nil {
		return false, fmt.Errorf("document is nil: %w", domain.ErrInvalidDocument)
	}
	// Reject before touching doc or the store.
	if _, err := domdoc.New(doc.ID(), doc.Title(), doc.Content(), doc.Author()); err != nil {
		return false, err
	}

	if doc.IsNew() {
		doc.SetID(s.ids.NewID())
	}

	// Round(0) strips the monotonic reading so stored times compare by wall clock only.
	created, err := s.repo.Upsert(ctx, doc, s.clock.Now().Round(0))
	if err != nil {
		return false, fmt.Errorf("upsert document: %w", err)
	}
	s.recorder.DocumentSaved(created)

	logger.FromContext(ctx).Debug("document saved",
		zap.String("id", doc.ID()),
		zap.Bool("created", created),
		zap.Time("created_at", doc.Created()),
	)
	return created, nil
}

// FindByID returns the stored document. ok is false when the ID is unknown.
func (s *Service) FindByID(ctx context.Context, id string) (doc domdoc.Document, ok bool, err error) {
	doc, err = s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrDocumentNotFound) {
			return domdoc.Document{}, false, nil
		}
		return domdoc.Document{}, false, fmt.Errorf("get document: %w", err)
	}
	return doc, true, nil
}

// Delete removes a document. Returns domain.ErrDocumentNotFound for an unknown ID.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	s.recorder.DocumentDeleted()
	return nil
}

// Count returns the number of stored documents.
func (s *Service) Count(ctx context.Context) (int, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count documents: %w", err)
	}
	return n, nil
}

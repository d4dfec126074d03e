package search

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	domdoc "github.com/kailas-cloud/docrepo/internal/domain/document"
	"github.com/kailas-cloud/docrepo/internal/domain/search/request"
	"github.com/kailas-cloud/docrepo/internal/logger"
)

// Service evaluates search requests with a linear scan over the store.
type Service struct {
	repo     Repository
	recorder Recorder
}

// New creates a search service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// WithRecorder attaches a search recorder.
func (s *Service) WithRecorder(r Recorder) *Service {
	s.recorder = r
	return s
}

// Search returns every stored document matching all clauses of req, in unspecified order.
// A nil request matches everything. A request that can match nothing
// (e.g. an inverted time range) yields an empty result.
func (s *Service) Search(ctx context.Context, req *request.Request) ([]domdoc.Document, error) {
	start := time.Now()
	if req == nil {
		all := request.All()
		req = &all
	}

	docs, err := s.repo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	matched := make([]domdoc.Document, 0)
	for i := range docs {
		if req.Matches(&docs[i]) {
			matched = append(matched, docs[i])
		}
	}

	elapsed := time.Since(start)
	if s.recorder != nil {
		s.recorder.SearchCompleted(elapsed, len(docs), len(matched))
	}
	logger.FromContext(ctx).Debug("search completed",
		zap.Int("scanned", len(docs)),
		zap.Int("matched", len(matched)),
		zap.Duration("latency", elapsed),
	)
	return matched, nil
}

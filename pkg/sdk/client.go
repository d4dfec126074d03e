package docrepo

import (
	"context"
	"fmt"
	"time"

	domdoc "github.com/kailas-cloud/docrepo/internal/domain/document"
	"github.com/kailas-cloud/docrepo/internal/domain/search/request"
	documentrepo "github.com/kailas-cloud/docrepo/internal/repository/document"
	documentuc "github.com/kailas-cloud/docrepo/internal/usecase/document"
	searchuc "github.com/kailas-cloud/docrepo/internal/usecase/search"
)

// Internal interfaces, swapped for mocks in tests.
type documentUseCase interface {
	Save(ctx context.Context, doc *domdoc.Document) (bool, error)
	FindByID(ctx context.Context, id string) (domdoc.Document, bool, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

type searchUseCase interface {
	Search(ctx context.Context, req *request.Request) ([]domdoc.Document, error)
}

// Client is the docrepo SDK entry point. It is safe for concurrent use.
type Client struct {
	docSvc    documentUseCase
	searchSvc searchUseCase
	obs       *observer
}

// New creates a Client with its own empty store.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	repo := documentrepo.New()
	docSvc := documentuc.New(repo)
	if cfg.clock != nil {
		docSvc = docSvc.WithClock(cfg.clock)
	}
	if cfg.ids != nil {
		docSvc = docSvc.WithIDGenerator(cfg.ids)
	}

	return &Client{
		docSvc:    docSvc,
		searchSvc: searchuc.New(repo),
		obs:       obs,
	}, nil
}

// Save stores doc and returns it with ID and Created filled in.
// Saving an existing ID replaces title, content and author but keeps Created.
func (c *Client) Save(ctx context.Context, doc Document) (_ Document, err error) {
	start := time.Now()
	var created bool
	defer func() {
		outcome := outcomeUpdated
		if created {
			outcome = outcomeCreated
		}
		c.obs.observe("save", start, outcome, err, "id", doc.ID)
	}()

	d, err := toInternalDocument(doc)
	if err != nil {
		return Document{}, fmt.Errorf("save: %w", err)
	}
	created, err = c.docSvc.Save(ctx, &d)
	if err != nil {
		return Document{}, fmt.Errorf("save: %w", err)
	}
	doc = fromInternalDocument(&d)
	return doc, nil
}

// FindByID returns the document stored under id. ok is false when there is none.
func (c *Client) FindByID(ctx context.Context, id string) (_ Document, ok bool, err error) {
	start := time.Now()
	defer func() {
		outcome := outcomeAbsent
		if ok {
			outcome = outcomeFound
		}
		c.obs.observe("find_by_id", start, outcome, err, "id", id)
	}()

	d, ok, err := c.docSvc.FindByID(ctx, id)
	if err != nil {
		return Document{}, false, fmt.Errorf("find by id: %w", err)
	}
	if !ok {
		return Document{}, false, nil
	}
	return fromInternalDocument(&d), true, nil
}

// Search returns every document matching all clauses of req, in no particular order.
func (c *Client) Search(ctx context.Context, req SearchRequest) (_ []Document, err error) {
	start := time.Now()
	var matched int
	defer func() { c.obs.observe("search", start, outcomeOK, err, "matched", matched) }()

	r := toInternalRequest(req)
	docs, err := c.searchSvc.Search(ctx, &r)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	out := make([]Document, len(docs))
	for i := range docs {
		out[i] = fromInternalDocument(&docs[i])
	}
	matched = len(out)
	c.obs.observeMatched(matched)
	return out, nil
}

// Delete removes a document. Returns ErrDocumentNotFound if id is not stored.
func (c *Client) Delete(ctx context.Context, id string) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("delete", start, outcomeOK, err, "id", id) }()

	if err = c.docSvc.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	return nil
}

// Count returns the number of stored documents.
func (c *Client) Count(ctx context.Context) (_ int, err error) {
	start := time.Now()
	defer func() { c.obs.observe("count", start, outcomeOK, err) }()

	n, err := c.docSvc.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return n, nil
}

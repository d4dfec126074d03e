package docrepo

import (
	"context"
	"fmt"
	"time"

	domdoc "github.com/kailas-cloud/docrepo/internal/domain/document"
	"github.com/kailas-cloud/docrepo/internal/domain/search/request"
)

// --- documentUseCase mock ---

type mockDocumentUC struct {
	saveFn   func(ctx context.Context, doc *domdoc.Document) (bool, error)
	findFn   func(ctx context.Context, id string) (domdoc.Document, bool, error)
	deleteFn func(ctx context.Context, id string) error
	countFn  func(ctx context.Context) (int, error)
}

func (m *mockDocumentUC) Save(ctx context.Context, doc *domdoc.Document) (bool, error) {
	return m.saveFn(ctx, doc)
}

func (m *mockDocumentUC) FindByID(ctx context.Context, id string) (domdoc.Document, bool, error) {
	return m.findFn(ctx, id)
}

func (m *mockDocumentUC) Delete(ctx context.Context, id string) error {
	return m.deleteFn(ctx, id)
}

func (m *mockDocumentUC) Count(ctx context.Context) (int, error) {
	return m.countFn(ctx)
}

// --- searchUseCase mock ---

type mockSearchUC struct {
	searchFn func(ctx context.Context, req *request.Request) ([]domdoc.Document, error)
}

func (m *mockSearchUC) Search(ctx context.Context, req *request.Request) ([]domdoc.Document, error) {
	return m.searchFn(ctx, req)
}

// --- Clock / IDGenerator fakes ---

type fixedClock struct {
	t time.Time
}

func (c *fixedClock) Now() time.Time { return c.t }

type seqIDs struct {
	n int
}

func (g *seqIDs) NewID() string {
	g.n++
	return fmt.Sprintf("gen-%d", g.n)
}

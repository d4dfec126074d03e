package document

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/kailas-cloud/docrepo/internal/domain"
	"github.com/kailas-cloud/docrepo/internal/domain/author"
	domdoc "github.com/kailas-cloud/docrepo/internal/domain/document"
	docrepo "github.com/kailas-cloud/docrepo/internal/repository/document"
)

// --- Mocks ---

type mockDocRepo struct {
	upsertCreated bool
	upsertErr     error
	upsertCalls   int
	getResult     domdoc.Document
	getErr        error
	deleteErr     error
	countResult   int
	countErr      error
}

func (m *mockDocRepo) Upsert(_ context.Context, doc *domdoc.Document, now time.Time) (bool, error) {
	m.upsertCalls++
	if m.upsertErr == nil {
		doc.SetCreated(now)
	}
	return m.upsertCreated, m.upsertErr
}
func (m *mockDocRepo) Get(_ context.Context, _ string) (domdoc.Document, error) {
	return m.getResult, m.getErr
}
func (m *mockDocRepo) Delete(_ context.Context, _ string) error {
	return m.deleteErr
}
func (m *mockDocRepo) Count(_ context.Context) (int, error) {
	return m.countResult, m.countErr
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type seqIDs struct {
	n int
}

func (g *seqIDs) NewID() string {
	g.n++
	return fmt.Sprintf("gen-%d", g.n)
}

type countingRecorder struct {
	created, updated, deleted int
}

func (r *countingRecorder) DocumentSaved(created bool) {
	if created {
		r.created++
	} else {
		r.updated++
	}
}
func (r *countingRecorder) DocumentDeleted() { r.deleted++ }

func makeDoc(t *testing.T, id, title, authorID string) domdoc.Document {
	t.Helper()
	a, err := author.New(authorID, "name-"+authorID)
	if err != nil {
		t.Fatalf("author.New: %v", err)
	}
	doc, err := domdoc.New(id, title, "content of "+title, a)
	if err != nil {
		t.Fatalf("domdoc.New: %v", err)
	}
	return doc
}

func newService(clock *fakeClock) (*Service, *countingRecorder) {
	rec := &countingRecorder{}
	svc := New(docrepo.New()).WithClock(clock).WithIDGenerator(&seqIDs{}).WithRecorder(rec)
	return svc, rec
}

var t0 = time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

// --- Save tests ---

func TestSave_GeneratesIDAndCreated(t *testing.T) {
	clock := &fakeClock{now: t0}
	svc, rec := newService(clock)
	ctx := context.Background()

	doc := makeDoc(t, "", "Document1", "a1")
	created, err := svc.Save(ctx, &doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created {
		t.Error("expected created=true")
	}
	if doc.ID() != "gen-1" {
		t.Errorf("ID = %q, want gen-1", doc.ID())
	}
	if !doc.Created().Equal(t0) {
		t.Errorf("Created = %v, want %v", doc.Created(), t0)
	}

	got, ok, err := svc.FindByID(ctx, doc.ID())
	if err != nil || !ok {
		t.Fatalf("FindByID: ok=%v err=%v", ok, err)
	}
	if got != doc {
		t.Errorf("stored document differs: got %+v, want %+v", got, doc)
	}
	if rec.created != 1 || rec.updated != 0 {
		t.Errorf("recorder created=%d updated=%d", rec.created, rec.updated)
	}
}

func TestSave_GeneratedIDsAreUnique(t *testing.T) {
	svc := New(docrepo.New())
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		doc := makeDoc(t, "", fmt.Sprintf("Doc %d", i), "a1")
		if _, err := svc.Save(ctx, &doc); err != nil {
			t.Fatalf("save: %v", err)
		}
		if doc.ID() == "" {
			t.Fatal("empty generated ID")
		}
		if seen[doc.ID()] {
			t.Fatalf("duplicate generated ID %q", doc.ID())
		}
		seen[doc.ID()] = true
	}
	if n, _ := svc.Count(ctx); n != 100 {
		t.Errorf("Count = %d, want 100", n)
	}
}

func TestSave_ClientIDUnseenGetsCreated(t *testing.T) {
	clock := &fakeClock{now: t0}
	svc, _ := newService(clock)

	doc := makeDoc(t, "client-id", "Title", "a1")
	created, err := svc.Save(context.Background(), &doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created {
		t.Error("expected created=true for an unseen client ID")
	}
	if doc.ID() != "client-id" {
		t.Errorf("ID = %q, want client-id", doc.ID())
	}
	if !doc.Created().Equal(t0) {
		t.Errorf("Created = %v, want %v", doc.Created(), t0)
	}
}

func TestSave_CreatedImmutableAcrossUpdates(t *testing.T) {
	clock := &fakeClock{now: t0}
	svc, rec := newService(clock)
	ctx := context.Background()

	first := makeDoc(t, "", "Original", "a1")
	if _, err := svc.Save(ctx, &first); err != nil {
		t.Fatalf("first save: %v", err)
	}

	clock.Advance(time.Hour)
	second := makeDoc(t, first.ID(), "Edited", "a2")
	second.SetCreated(t0.Add(72 * time.Hour))

	created, err := svc.Save(ctx, &second)
	if err != nil {
		t.Fatalf("second save: %v", err)
	}
	if created {
		t.Error("expected created=false on update")
	}
	if !second.Created().Equal(t0) {
		t.Errorf("returned Created = %v, want %v", second.Created(), t0)
	}

	stored, ok, _ := svc.FindByID(ctx, first.ID())
	if !ok {
		t.Fatal("document disappeared")
	}
	if !stored.Created().Equal(t0) {
		t.Errorf("stored Created = %v, want %v", stored.Created(), t0)
	}
	if rec.created != 1 || rec.updated != 1 {
		t.Errorf("recorder created=%d updated=%d", rec.created, rec.updated)
	}
}

func TestSave_UpsertOverwritesFields(t *testing.T) {
	svc, _ := newService(&fakeClock{now: t0})
	ctx := context.Background()

	doc := makeDoc(t, "doc-1", "Old title", "a1")
	if _, err := svc.Save(ctx, &doc); err != nil {
		t.Fatalf("save: %v", err)
	}

	a2, _ := author.New("a2", "Bob")
	updated, _ := domdoc.New("doc-1", "New title", "new content", a2)
	if _, err := svc.Save(ctx, &updated); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, _, _ := svc.FindByID(ctx, "doc-1")
	if got.Title() != "New title" {
		t.Errorf("Title = %q", got.Title())
	}
	if got.Content() != "new content" {
		t.Errorf("Content = %q", got.Content())
	}
	if got.Author() != a2 {
		t.Errorf("Author = %+v, want %+v", got.Author(), a2)
	}
}

func TestSave_InvalidDocumentRejected(t *testing.T) {
	repo := &mockDocRepo{}
	svc := New(repo)

	tests := []struct {
		name string
		doc  *domdoc.Document
	}{
		{"nil", nil},
		{"zero document", &domdoc.Document{}},
		{"no author", func() *domdoc.Document {
			d := domdoc.Reconstruct("", "Title", "c", author.Author{}, time.Time{})
			return &d
		}()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Save(context.Background(), tt.doc)
			if !errors.Is(err, domain.ErrInvalidDocument) {
				t.Fatalf("expected ErrInvalidDocument, got %v", err)
			}
			if tt.doc != nil && tt.doc.ID() != "" {
				t.Error("rejected document must not get an ID")
			}
		})
	}
	if repo.upsertCalls != 0 {
		t.Errorf("repository touched %d times for invalid input", repo.upsertCalls)
	}
}

func TestSave_AcceptsAnyIDTitleAndContent(t *testing.T) {
	clock := &fakeClock{now: t0}
	svc, rec := newService(clock)
	ctx := context.Background()
	a := author.Reconstruct("a1", "")

	tests := []struct {
		name    string
		id      string
		title   string
		content string
	}{
		{"dotted id", "doc.1", "T", "c"},
		{"email-like id", "user@example/42", "T", "c"},
		{"unicode id", "док-1", "T", "c"},
		{"empty title", "empty-title", "", "c"},
		{"long title", "long-title", strings.Repeat("t", 2000), "c"},
		{"large content", "large", "T", strings.Repeat("c", 200000)},
		{"generated id with empty fields", "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := domdoc.Reconstruct(tt.id, tt.title, tt.content, a, time.Time{})
			created, err := svc.Save(ctx, &doc)
			if err != nil {
				t.Fatalf("Save: %v", err)
			}
			if !created || doc.ID() == "" || !doc.Created().Equal(t0) {
				t.Errorf("unexpected result: created=%v id=%q created_at=%v", created, doc.ID(), doc.Created())
			}
			got, ok, err := svc.FindByID(ctx, doc.ID())
			if err != nil || !ok {
				t.Fatalf("FindByID: ok=%v err=%v", ok, err)
			}
			if got.Title() != tt.title || len(got.Content()) != len(tt.content) {
				t.Error("stored fields differ from input")
			}
		})
	}
	if rec.created != len(tests) {
		t.Errorf("created = %d, want %d", rec.created, len(tests))
	}
}

func TestSave_RepoError(t *testing.T) {
	repo := &mockDocRepo{upsertErr: errors.New("boom")}
	svc := New(repo)

	doc := makeDoc(t, "doc-1", "Title", "a1")
	if _, err := svc.Save(context.Background(), &doc); err == nil {
		t.Fatal("expected error")
	}
}

func TestSave_StripsMonotonicClock(t *testing.T) {
	svc := New(docrepo.New())
	doc := makeDoc(t, "", "Title", "a1")
	if _, err := svc.Save(context.Background(), &doc); err != nil {
		t.Fatalf("save: %v", err)
	}
	c := doc.Created()
	if c != c.Round(0) {
		t.Error("created timestamp still carries a monotonic reading")
	}
}

// --- FindByID tests ---

func TestFindByID_Absent(t *testing.T) {
	svc := New(docrepo.New())
	doc, ok, err := svc.FindByID(context.Background(), "never-saved")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected ok=false")
	}
	if doc.ID() != "" {
		t.Errorf("expected zero document, got ID %q", doc.ID())
	}
}

func TestFindByID_RepoError(t *testing.T) {
	svc := New(&mockDocRepo{getErr: errors.New("boom")})
	if _, _, err := svc.FindByID(context.Background(), "x"); err == nil {
		t.Fatal("expected error")
	}
}

// --- Delete / Count tests ---

func TestDelete(t *testing.T) {
	svc, rec := newService(&fakeClock{now: t0})
	ctx := context.Background()

	doc := makeDoc(t, "doc-1", "Title", "a1")
	_, _ = svc.Save(ctx, &doc)

	if err := svc.Delete(ctx, "doc-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if rec.deleted != 1 {
		t.Errorf("recorder deleted = %d, want 1", rec.deleted)
	}
	if err := svc.Delete(ctx, "doc-1"); !errors.Is(err, domain.ErrDocumentNotFound) {
		t.Errorf("expected ErrDocumentNotFound, got %v", err)
	}
}

func TestCount_RepoError(t *testing.T) {
	svc := New(&mockDocRepo{countErr: errors.New("boom")})
	if _, err := svc.Count(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

package request

import "time"

// Request is a conjunctive search query. Every clause is optional;
// an empty clause imposes no constraint.
type Request struct {
	titlePrefixes    []string
	containsContents []string
	authorIDs        map[string]struct{}
	createdFrom      *time.Time
	createdTo        *time.Time
}

// New normalizes search parameters. Every input is accepted: set clauses are
// deduplicated, and createdFrom after createdTo matches nothing.
func New(
	titlePrefixes, containsContents, authorIDs []string,
	createdFrom, createdTo *time.Time,
) Request {
	var authors map[string]struct{}
	if len(authorIDs) > 0 {
		authors = make(map[string]struct{}, len(authorIDs))
		for _, id := range authorIDs {
			authors[id] = struct{}{}
		}
	}

	return Request{
		titlePrefixes:    dedupe(titlePrefixes),
		containsContents: dedupe(containsContents),
		authorIDs:        authors,
		createdFrom:      cloneTime(createdFrom),
		createdTo:        cloneTime(createdTo),
	}
}

// All returns a request with no clauses; it matches every document.
func All() Request { return Request{} }

// TitlePrefixes returns the title prefix clause values.
func (r *Request) TitlePrefixes() []string { return r.titlePrefixes }

// ContainsContents returns the content substring clause values.
func (r *Request) ContainsContents() []string { return r.containsContents }

// AuthorIDs returns the author clause values in unspecified order.
func (r *Request) AuthorIDs() []string {
	if len(r.authorIDs) == 0 {
		return nil
	}
	ids := make([]string, 0, len(r.authorIDs))
	for id := range r.authorIDs {
		ids = append(ids, id)
	}
	return ids
}

// CreatedFrom returns the inclusive lower bound, nil if unset.
func (r *Request) CreatedFrom() *time.Time { return r.createdFrom }

// CreatedTo returns the inclusive upper bound, nil if unset.
func (r *Request) CreatedTo() *time.Time { return r.createdTo }

// IsEmpty reports whether the request has no clauses.
func (r *Request) IsEmpty() bool {
	return len(r.titlePrefixes) == 0 && len(r.containsContents) == 0 &&
		len(r.authorIDs) == 0 && r.createdFrom == nil && r.createdTo == nil
}

func dedupe(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

package chi

import "time"

// ErrorCode is a stable machine-readable error identifier.
type ErrorCode string

// Error codes returned in ErrorResponse.Code.
const (
	ErrorCodeBadRequest       ErrorCode = "bad_request"
	ErrorCodeValidationFailed ErrorCode = "validation_failed"
	ErrorCodeInvalidRequest   ErrorCode = "invalid_search_request"
	ErrorCodeUnauthorized     ErrorCode = "unauthorized"
	ErrorCodeNotFound         ErrorCode = "document_not_found"
	ErrorCodeIDMismatch       ErrorCode = "id_mismatch"
	ErrorCodeInternal         ErrorCode = "internal_error"
)

// ErrorResponse is the JSON error body.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// AuthorJSON is the wire form of an author.
type AuthorJSON struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// DocumentRequest is the save payload. The created timestamp is always assigned by the store.
type DocumentRequest struct {
	ID      string     `json:"id,omitempty"`
	Title   string     `json:"title"`
	Content string     `json:"content"`
	Author  AuthorJSON `json:"author"`
}

// DocumentResponse is a stored document.
type DocumentResponse struct {
	ID      string     `json:"id"`
	Title   string     `json:"title"`
	Content string     `json:"content"`
	Author  AuthorJSON `json:"author"`
	Created time.Time  `json:"created"`
}

// SearchRequest is the POST /documents/search payload. Omitted clauses match everything.
type SearchRequest struct {
	TitlePrefixes    []string   `json:"title_prefixes,omitempty"`
	ContainsContents []string   `json:"contains_contents,omitempty"`
	AuthorIDs        []string   `json:"author_ids,omitempty"`
	CreatedFrom      *time.Time `json:"created_from,omitempty"`
	CreatedTo        *time.Time `json:"created_to,omitempty"`
}

// SearchParams are the GET /documents/search query parameters.
type SearchParams struct {
	TitlePrefix *[]string  `json:"title_prefix,omitempty"`
	Contains    *[]string  `json:"contains,omitempty"`
	AuthorID    *[]string  `json:"author_id,omitempty"`
	CreatedFrom *time.Time `json:"created_from,omitempty"`
	CreatedTo   *time.Time `json:"created_to,omitempty"`
}

// SearchResponse lists matching documents in unspecified order.
type SearchResponse struct {
	Items []DocumentResponse `json:"items"`
	Total int                `json:"total"`
}

// HealthResponse reports service health.
type HealthResponse struct {
	Status    string            `json:"status"`
	Checks    map[string]string `json:"checks"`
	Documents int               `json:"documents"`
}

// Package httpclient is a typed client for the docrepo HTTP API.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kailas-cloud/docrepo/internal/domain"
	chiTransport "github.com/kailas-cloud/docrepo/internal/transport/chi"
)

const defaultTimeout = 10 * time.Second

// APIError is a non-2xx response decoded from the server's error body.
type APIError struct {
	Status  int
	Code    chiTransport.ErrorCode
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("docrepo api: %d %s: %s", e.Status, e.Code, e.Message)
}

// Unwrap maps error codes back to domain sentinels for errors.Is.
// bad_request (undecodable body, unknown route) carries no sentinel.
func (e *APIError) Unwrap() error {
	switch e.Code {
	case chiTransport.ErrorCodeNotFound:
		return domain.ErrDocumentNotFound
	case chiTransport.ErrorCodeValidationFailed, chiTransport.ErrorCodeIDMismatch:
		return domain.ErrInvalidDocument
	case chiTransport.ErrorCodeInvalidRequest:
		return domain.ErrInvalidRequest
	default:
		return nil
	}
}

// Client talks to a docrepo server.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// New creates a client for baseURL (e.g. http://localhost:8080).
// An empty apiKey sends no Authorization header.
func New(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

// WithHTTPClient replaces the underlying http.Client.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	if hc != nil {
		c.http = hc
	}
	return c
}

// Save creates or replaces a document. With an ID it issues PUT, otherwise POST.
// Returns true when the server created a new document.
func (c *Client) Save(ctx context.Context, doc chiTransport.DocumentRequest) (chiTransport.DocumentResponse, bool, error) {
	method, path := http.MethodPost, "/documents"
	if doc.ID != "" {
		method, path = http.MethodPut, "/documents/"+url.PathEscape(doc.ID)
	}

	var out chiTransport.DocumentResponse
	status, err := c.do(ctx, method, path, doc, &out)
	if err != nil {
		return chiTransport.DocumentResponse{}, false, fmt.Errorf("save document: %w", err)
	}
	return out, status == http.StatusCreated, nil
}

// Get fetches a document. ok is false when the server has no such ID.
func (c *Client) Get(ctx context.Context, id string) (chiTransport.DocumentResponse, bool, error) {
	var out chiTransport.DocumentResponse
	_, err := c.do(ctx, http.MethodGet, "/documents/"+url.PathEscape(id), nil, &out)
	if errors.Is(err, domain.ErrDocumentNotFound) {
		return chiTransport.DocumentResponse{}, false, nil
	}
	if err != nil {
		return chiTransport.DocumentResponse{}, false, fmt.Errorf("get document: %w", err)
	}
	return out, true, nil
}

// Search runs a conjunctive search via POST /documents/search.
func (c *Client) Search(ctx context.Context, req chiTransport.SearchRequest) (chiTransport.SearchResponse, error) {
	var out chiTransport.SearchResponse
	if _, err := c.do(ctx, http.MethodPost, "/documents/search", req, &out); err != nil {
		return chiTransport.SearchResponse{}, fmt.Errorf("search documents: %w", err)
	}
	return out, nil
}

// Delete removes a document.
func (c *Client) Delete(ctx context.Context, id string) error {
	if _, err := c.do(ctx, http.MethodDelete, "/documents/"+url.PathEscape(id), nil, nil); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}

// Health returns the server health report. A degraded server (503) is not an error.
func (c *Client) Health(ctx context.Context) (chiTransport.HealthResponse, error) {
	status, data, err := c.send(ctx, http.MethodGet, "/health", nil)
	if err != nil {
		return chiTransport.HealthResponse{}, fmt.Errorf("health: %w", err)
	}
	if status != http.StatusOK && status != http.StatusServiceUnavailable {
		return chiTransport.HealthResponse{}, fmt.Errorf("health: %w", decodeAPIError(status, data))
	}
	var out chiTransport.HealthResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return chiTransport.HealthResponse{}, fmt.Errorf("health: decode response: %w", err)
	}
	return out, nil
}

// do sends a JSON request and decodes a 2xx JSON response into out (if non-nil).
func (c *Client) do(ctx context.Context, method, path string, in, out any) (int, error) {
	status, data, err := c.send(ctx, method, path, in)
	if err != nil {
		return 0, err
	}
	if status >= http.StatusBadRequest {
		return status, decodeAPIError(status, data)
	}
	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return status, fmt.Errorf("decode response: %w", err)
		}
	}
	return status, nil
}

func (c *Client) send(ctx context.Context, method, path string, in any) (int, []byte, error) {
	var body io.Reader = http.NoBody
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return 0, nil, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read response: %w", err)
	}
	return resp.StatusCode, data, nil
}

func decodeAPIError(status int, data []byte) *APIError {
	apiErr := &APIError{Status: status, Message: http.StatusText(status)}
	var er chiTransport.ErrorResponse
	if err := json.Unmarshal(data, &er); err == nil && er.Code != "" {
		apiErr.Code, apiErr.Message = er.Code, er.Message
	}
	return apiErr
}

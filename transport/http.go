package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/krockxz/taskflow/types"
)

// HTTPRemote implements types.RemoteService against the backing store's
// HTTP API.
//
// The client performs no retries of its own: Reassign is idempotent by
// (item, target) at the server, and failures surface to the board's
// rollback path. Timeouts come from the caller's context and are treated
// by the board identically to failures.
type HTTPRemote struct {
	base   *url.URL
	client *http.Client
	header http.Header
}

// Compile-time assertion that HTTPRemote implements RemoteService.
var _ types.RemoteService = (*HTTPRemote)(nil)

// remoteError is the wire shape of an API error body.
type remoteError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// reassignRequest is the wire shape of a reassignment. A null assignee
// clears the assignment.
type reassignRequest struct {
	Assignee *string `json:"assignee"`
}

// bulkRequest is the wire shape of a bulk action dispatch.
type bulkRequest struct {
	Items  []types.ItemID   `json:"items"`
	Action types.BulkAction `json:"action"`
}

// NewHTTPRemote creates a remote service client.
//
// Parameters:
//   - baseURL: API base URL (e.g. "https://api.example.com/v1")
//   - client: HTTP client (http.DefaultClient when nil); per-call deadlines
//     come from the caller's context
//
// Returns:
//   - *HTTPRemote: New client
//   - error: ErrInvalidConfig for an unparsable base URL
func NewHTTPRemote(baseURL string, client *http.Client) (*HTTPRemote, error) {
	base, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil || base.Scheme == "" {
		return nil, fmt.Errorf("http remote: %w: base URL %q", types.ErrInvalidConfig, baseURL)
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &HTTPRemote{base: base, client: client, header: make(http.Header)}, nil
}

// SetHeader sets a header sent with every request (e.g. Authorization).
func (r *HTTPRemote) SetHeader(key, value string) {
	r.header.Set(key, value)
}

// Reassign moves one item to a new assignee.
func (r *HTTPRemote) Reassign(ctx context.Context, item types.ItemID, to types.LaneID) (types.WorkItem, error) {
	req := reassignRequest{}
	if !to.IsUnassigned() {
		assignee := string(to)
		req.Assignee = &assignee
	}

	var out types.WorkItem
	path := fmt.Sprintf("/items/%s/reassign", url.PathEscape(string(item)))
	if err := r.do(ctx, http.MethodPost, path, req, &out); err != nil {
		return types.WorkItem{}, err
	}

	return out, nil
}

// BulkApply applies one action to a set of items.
func (r *HTTPRemote) BulkApply(ctx context.Context, items []types.ItemID, action types.BulkAction) (types.BulkResult, error) {
	var out types.BulkResult
	if err := r.do(ctx, http.MethodPost, "/items/bulk", bulkRequest{Items: items, Action: action}, &out); err != nil {
		return types.BulkResult{}, err
	}

	return out, nil
}

// FetchItems returns the canonical work item set.
func (r *HTTPRemote) FetchItems(ctx context.Context) ([]types.WorkItem, error) {
	var out []types.WorkItem
	if err := r.do(ctx, http.MethodGet, "/items", nil, &out); err != nil {
		return nil, err
	}

	return out, nil
}

// do executes one request and maps error responses onto the sentinel
// taxonomy.
func (r *HTTPRemote) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.base.String()+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	for key, values := range r.header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := r.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("%w: %w", types.ErrRemoteUnavailable, ctx.Err())
		}

		return fmt.Errorf("%w: %w", types.ErrRemoteUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}

		return nil
	}

	return r.mapError(resp)
}

// mapError converts a non-2xx response to a sentinel error.
func (r *HTTPRemote) mapError(resp *http.Response) error {
	var apiErr remoteError
	_ = json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&apiErr)

	switch resp.StatusCode {
	case http.StatusNotFound:
		if apiErr.Code == "assignee_not_found" {
			return fmt.Errorf("%w: %s", types.ErrAssigneeNotFound, apiErr.Message)
		}

		return fmt.Errorf("%w: %s", types.ErrItemNotFound, apiErr.Message)
	case http.StatusForbidden:
		return fmt.Errorf("%w: %s", types.ErrAccessDenied, apiErr.Message)
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", types.ErrInvalidPayload, apiErr.Message)
	default:
		return fmt.Errorf("%w: unexpected status %d", types.ErrRemoteUnavailable, resp.StatusCode)
	}
}

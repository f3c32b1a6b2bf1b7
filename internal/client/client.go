// Package client is a typed HTTP client for the inventory REST resource.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/CSCI-GA-2820-SU24-001/inventory/internal/model"
)

// DefaultTimeout bounds every request when New is given a zero timeout.
const DefaultTimeout = 10 * time.Second

// maxErrorBody limits how much of a failed response is read.
const maxErrorBody = 64 << 10

// Client issues requests against one inventory collection.
type Client struct {
	HTTP    *http.Client
	BaseURL string
	Prefix  string
}

// New creates a client for the collection at baseURL+prefix.
func New(baseURL, prefix string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		HTTP:    &http.Client{Timeout: timeout},
		BaseURL: strings.TrimRight(baseURL, "/"),
		Prefix:  "/" + strings.Trim(prefix, "/"),
	}
}

// Create posts a new item and returns it as stored.
func (c *Client) Create(ctx context.Context, in model.ItemInput) (*model.InventoryItem, error) {
	var item model.InventoryItem
	if err := c.do(ctx, "create", http.MethodPost, c.path(), "", in, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Get fetches one item.
func (c *Client) Get(ctx context.Context, id string) (*model.InventoryItem, error) {
	var item model.InventoryItem
	if err := c.do(ctx, "retrieve", http.MethodGet, c.path(id), "", nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Update replaces an item's writable fields.
func (c *Client) Update(ctx context.Context, id string, in model.ItemInput) (*model.InventoryItem, error) {
	var item model.InventoryItem
	if err := c.do(ctx, "update", http.MethodPut, c.path(id), "", in, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Delete removes an item.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, "delete", http.MethodDelete, c.path(id), "", nil, nil)
}

// List fetches the collection. rawQuery is sent verbatim.
func (c *Client) List(ctx context.Context, rawQuery string) ([]model.InventoryItem, error) {
	items := []model.InventoryItem{}
	if err := c.do(ctx, "list", http.MethodGet, c.path(), rawQuery, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Decrement lowers an item's quantity by one.
func (c *Client) Decrement(ctx context.Context, id string) (*model.InventoryItem, error) {
	var item model.InventoryItem
	if err := c.do(ctx, "decrement", http.MethodPut, c.path(id, "decrement"), "", nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Archive moves an item to the archived condition.
func (c *Client) Archive(ctx context.Context, id string) (*model.InventoryItem, error) {
	var item model.InventoryItem
	if err := c.do(ctx, "archive", http.MethodPut, c.path(id, "archive"), "", nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// path joins the prefix with escaped segments.
func (c *Client) path(segments ...string) string {
	p := c.Prefix
	for _, s := range segments {
		p += "/" + url.PathEscape(s)
	}
	return p
}

func (c *Client) do(ctx context.Context, op, method, path, rawQuery string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &RequestError{Op: op, Reason: ReasonTransport, Err: err}
		}
		reader = bytes.NewReader(data)
	}

	target := c.BaseURL + path
	if rawQuery != "" {
		target += "?" + rawQuery
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return &RequestError{Op: op, Reason: ReasonTransport, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return &RequestError{Op: op, Reason: classify(err, ReasonTransport), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		reqErr := &RequestError{Op: op, Reason: ReasonStatus, Status: resp.StatusCode}
		var errBody model.ErrorResponse
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if json.Unmarshal(data, &errBody) == nil {
			reqErr.Message = errBody.Message
		}
		return reqErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &RequestError{Op: op, Reason: classify(err, ReasonDecode), Status: resp.StatusCode, Err: err}
	}
	return nil
}

// classify separates timeouts from other failures.
func classify(err error, fallback Reason) Reason {
	if errors.Is(err, context.DeadlineExceeded) {
		return ReasonTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ReasonTimeout
	}
	return fallback
}

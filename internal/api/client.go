package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"notifeed/internal/model"
)

// StatusError indicates that the backend answered with a non-2xx status.
// Transport failures and malformed bodies are returned as plain wrapped
// errors; StatusError is reserved for responses that actually arrived.
type StatusError struct {
	Code   int
	Method string
	Path   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d on %s %s", e.Code, e.Method, e.Path)
}

// IsStatusError reports whether err (or any error in its chain) is a
// StatusError.
func IsStatusError(err error) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr)
}

// ListQuery holds the query parameters for a notification list request.
// Empty axis values are omitted from the request.
type ListQuery struct {
	Type   string
	UserID string
	Limit  int
	Offset int
}

// Client is a thin HTTP client for the notification backend REST API.
// Every call is an independent single attempt: no retry, no backoff, and
// no explicit timeout beyond what the transport provides, so callers must
// tolerate the backend being unreachable indefinitely.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client rooted at baseURL (e.g. https://host/api).
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
}

// ListNotifications fetches one page of notifications matching the query.
func (c *Client) ListNotifications(
	ctx context.Context,
	q ListQuery,
) ([]model.Notification, error) {
	params := url.Values{}
	if q.Type != "" {
		params.Set("type", q.Type)
	}
	if q.UserID != "" {
		params.Set("user_id", q.UserID)
	}
	params.Set("limit", strconv.Itoa(q.Limit))
	params.Set("offset", strconv.Itoa(q.Offset))

	var resp listResponse
	err := c.get(ctx, "/notifications?"+params.Encode(), &resp)
	if err != nil {
		return nil, fmt.Errorf("fetching notifications: %w", err)
	}

	records := make([]model.Notification, 0, len(resp.Notifications))
	for _, w := range resp.Notifications {
		records = append(records, w.toModel())
	}
	return records, nil
}

// MarkRead confirms to the backend that a notification has been read.
// The backend returns no meaningful body on success.
func (c *Client) MarkRead(ctx context.Context, id string) error {
	path := fmt.Sprintf("/notifications/%s/read", url.PathEscape(id))
	if err := c.post(ctx, path, nil, nil); err != nil {
		return fmt.Errorf("marking notification %s read: %w", id, err)
	}
	return nil
}

// GetStats fetches aggregate counts from the backend. The userID narrows
// the aggregate to one manager; pass "" for all.
func (c *Client) GetStats(
	ctx context.Context,
	userID string,
) (model.Stats, error) {
	path := "/stats"
	if userID != "" {
		params := url.Values{}
		params.Set("user_id", userID)
		path += "?" + params.Encode()
	}

	var stats model.Stats
	if err := c.get(ctx, path, &stats); err != nil {
		return model.Stats{}, fmt.Errorf("fetching stats: %w", err)
	}
	stats.Origin = model.StatsRemote
	return stats, nil
}

// get performs an HTTP GET request and unmarshals the JSON response.
func (c *Client) get(ctx context.Context, path string, result interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, result)
}

// post performs an HTTP POST request with an optional JSON body.
func (c *Client) post(
	ctx context.Context,
	path string,
	body interface{},
	result interface{},
) error {
	return c.do(ctx, http.MethodPost, path, body, result)
}

// do is the core HTTP method that builds the request and handles JSON
// (de)serialization and status checking.
func (c *Client) do(
	ctx context.Context,
	method string,
	path string,
	body interface{},
	result interface{},
) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(
		ctx, method, c.baseURL+path, bodyReader,
	)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request %s %s: %w", method, path, err)
	}

	respBody, readErr := io.ReadAll(resp.Body)
	resp.Body.Close()
	if readErr != nil {
		return fmt.Errorf("reading response body: %w", readErr)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{
			Code:   resp.StatusCode,
			Method: method,
			Path:   path,
		}
	}

	if result == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf(
			"unmarshaling response from %s %s: %w", method, path, err,
		)
	}

	return nil
}

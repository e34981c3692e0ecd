// Package backend is the JSON-over-HTTP client of the remote calendar API.
// The backend performs recurrence expansion server-side; this client only
// requests a date range and receives already-expanded occurrences.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"time"

	"famcal/src-client/grid"
	"famcal/src-client/model"
)

// ErrUnauthorized is returned on a 401 so a higher layer can surface the
// redirect-to-login case; every other failure stays generic.
var ErrUnauthorized = errors.New("backend: unauthorized")

// ErrNotFound is returned on a 404.
var ErrNotFound = errors.New("backend: not found")

// Client talks to the remote calendar API with bearer-token auth.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func New(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type errorBody struct {
	Detail string `json:"detail"`
}

func (c *Client) do(ctx context.Context, method, path string, reqBody any, respBody any) error {
	var body io.Reader
	if reqBody != nil {
		raw, err := json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("backend: can't encode request body: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("backend: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("backend: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode >= 400:
		var errBody errorBody
		if err := json.NewDecoder(resp.Body).Decode(&errBody); err != nil || errBody.Detail == "" {
			return fmt.Errorf("backend: HTTP %d", resp.StatusCode)
		}
		return fmt.Errorf("backend: %s", errBody.Detail)
	case resp.StatusCode == http.StatusNoContent || respBody == nil:
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(respBody); err != nil {
		return fmt.Errorf("backend: can't decode response body: %w", err)
	}
	return nil
}

// ListEvents fetches the already-expanded occurrences whose dates fall in
// [start, end]. The response envelope is { "events": [...] }.
func (c *Client) ListEvents(ctx context.Context, start, end grid.Date) ([]model.Event, error) {
	query := url.Values{}
	query.Set("start_date", start.String())
	query.Set("end_date", end.String())

	var resp struct {
		Events []model.Event `json:"events"`
	}
	if err := c.do(ctx, http.MethodGet, "/calendar/events?"+query.Encode(), nil, &resp); err != nil {
		return nil, err
	}
	if resp.Events == nil {
		return []model.Event{}, nil
	}
	return resp.Events, nil
}

// ListCategories fetches the shared category set.
func (c *Client) ListCategories(ctx context.Context) ([]model.Category, error) {
	categories := make([]model.Category, 0)
	if err := c.do(ctx, http.MethodGet, "/calendar/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// CreateEvent posts a new event and returns the created representation.
func (c *Client) CreateEvent(ctx context.Context, draft model.EventDraft) (*model.Event, error) {
	created := new(model.Event)
	if err := c.do(ctx, http.MethodPost, "/calendar/events", draft, created); err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateEvent patches an existing event and returns the updated
// representation, or nil when the id is unknown to the backend.
func (c *Client) UpdateEvent(ctx context.Context, id string, patch model.EventPatch) (*model.Event, error) {
	updated := new(model.Event)
	err := c.do(ctx, http.MethodPatch, "/calendar/events/"+url.PathEscape(id), patch, updated)
	switch {
	case errors.Is(err, ErrNotFound):
		return nil, nil
	case err != nil:
		return nil, err
	}
	return updated, nil
}

// DeleteEvent removes an event and reports whether the backend knew the id.
func (c *Client) DeleteEvent(ctx context.Context, id string) (bool, error) {
	err := c.do(ctx, http.MethodDelete, "/calendar/events/"+url.PathEscape(id), nil, nil)
	switch {
	case errors.Is(err, ErrNotFound):
		return false, nil
	case err != nil:
		return false, err
	}
	return true, nil
}

// VerifyMember reports whether the authenticated user is already a member
// of the shared calendar.
func (c *Client) VerifyMember(ctx context.Context) (bool, error) {
	err := c.do(ctx, http.MethodGet, "/calendar/auth/verify", nil, nil)
	switch {
	case errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrNotFound):
		return false, nil
	case err != nil:
		return false, err
	}
	return true, nil
}

// RegisterMember registers the current user as a calendar member. An empty
// color picks a random 6-digit hex color.
func (c *Client) RegisterMember(ctx context.Context, displayName, color string) error {
	if color == "" {
		color = fmt.Sprintf("#%06x", rand.Intn(0x1000000))
	}
	body := map[string]string{
		"display_name": displayName,
		"color":        color,
	}
	return c.do(ctx, http.MethodPost, "/calendar/members", body, nil)
}

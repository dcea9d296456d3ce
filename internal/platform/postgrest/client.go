package postgrest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/gastrobase/recipe-api/internal/store"
)

const (
	restPath = "/rest/v1"

	headerAPIKey       = "apikey"
	headerPrefer       = "Prefer"
	headerRange        = "Range"
	headerRangeUnit    = "Range-Unit"
	headerContentRange = "Content-Range"

	preferRepresentation = "return=representation,count=exact"
	preferCountExact     = "count=exact"

	acceptSingleObject = "application/vnd.pgrst.object+json"
)

// Client is a request-scoped handle to the REST data plane. The zero value
// is not usable; handles come from a Provider.
type Client struct {
	baseURL string
	apiKey  string
	bearer  string
	http    *http.Client
	log     *slog.Logger
}

var _ store.Client = (*Client)(nil)

// Insert adds a row and returns the stored representation.
func (c *Client) Insert(ctx context.Context, table string, row store.Record) ([]store.Record, int, error) {
	req, err := c.newRequest(ctx, http.MethodPost, c.tableURL(table, nil), row)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set(headerPrefer, preferRepresentation)
	return c.doRows(req)
}

// Update mutates the row with the given identity.
func (c *Client) Update(ctx context.Context, table string, id uuid.UUID, row store.Record) ([]store.Record, int, error) {
	q := url.Values{}
	q.Set("id", "eq."+id.String())
	req, err := c.newRequest(ctx, http.MethodPatch, c.tableURL(table, q), row)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set(headerPrefer, preferRepresentation)
	return c.doRows(req)
}

// Select performs a ranged fetch with an exact total count. Single-object
// requests translate an empty match into store.ErrNoRows.
func (c *Client) Select(ctx context.Context, table string, sq store.SelectQuery) ([]store.Record, int, error) {
	q := url.Values{}
	q.Set("select", "*")
	for col, val := range sq.Eq {
		q.Set(col, "eq."+val)
	}
	for col, val := range sq.Match {
		q.Set(col, "ilike.*"+val+"*")
	}

	req, err := c.newRequest(ctx, http.MethodGet, c.tableURL(table, q), nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set(headerPrefer, preferCountExact)
	if sq.Single {
		req.Header.Set("Accept", acceptSingleObject)
	} else if sq.End > sq.Offset {
		req.Header.Set(headerRangeUnit, "items")
		req.Header.Set(headerRange, fmt.Sprintf("%d-%d", sq.Offset, sq.End-1))
	}

	if sq.Single {
		return c.doSingle(req)
	}
	return c.doRows(req)
}

// Delete removes the row with the given identity. The representation is
// requested so the affected count can be reported exactly.
func (c *Client) Delete(ctx context.Context, table string, id uuid.UUID) (int, error) {
	q := url.Values{}
	q.Set("id", "eq."+id.String())
	req, err := c.newRequest(ctx, http.MethodDelete, c.tableURL(table, q), nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set(headerPrefer, preferRepresentation)
	rows, _, err := c.doRows(req)
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}

// Invoke calls a named backend procedure with JSON arguments.
func (c *Client) Invoke(ctx context.Context, fn string, args store.Record) ([]store.Record, int, error) {
	u := c.baseURL + restPath + "/rpc/" + url.PathEscape(fn)
	req, err := c.newRequest(ctx, http.MethodPost, u, args)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set(headerPrefer, preferRepresentation)
	return c.doRows(req)
}

// Close releases idle connections held for this handle.
func (c *Client) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

func (c *Client) tableURL(table string, q url.Values) string {
	u := c.baseURL + restPath + "/" + url.PathEscape(table)
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	return u
}

func (c *Client) newRequest(ctx context.Context, method, u string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set(headerAPIKey, c.apiKey)
	if c.bearer != "" {
		req.Header.Set("Authorization", "Bearer "+c.bearer)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// doRows executes the request expecting a JSON array (or no body) back.
func (c *Client) doRows(req *http.Request) ([]store.Record, int, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", store.ErrBackend, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, 0, decodeAPIError(resp)
	}

	var rows []store.Record
	if resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil && err != io.EOF {
			return nil, 0, fmt.Errorf("%w: malformed response body: %v", store.ErrBackend, err)
		}
	}

	count := parseContentRange(resp.Header.Get(headerContentRange))
	if count < 0 {
		count = len(rows)
	}
	return rows, count, nil
}

// doSingle executes the request expecting exactly one JSON object back.
func (c *Client) doSingle(req *http.Request) ([]store.Record, int, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", store.ErrBackend, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, 0, decodeAPIError(resp)
	}

	var row store.Record
	if err := json.NewDecoder(resp.Body).Decode(&row); err != nil {
		return nil, 0, fmt.Errorf("%w: malformed response body: %v", store.ErrBackend, err)
	}
	return []store.Record{row}, 1, nil
}

// parseContentRange extracts the exact total from a "start-end/total" or
// "*/total" range header. A missing or unparseable header yields -1.
func parseContentRange(header string) int {
	if header == "" {
		return -1
	}
	idx := strings.LastIndex(header, "/")
	if idx < 0 {
		return -1
	}
	totalPart := header[idx+1:]
	if totalPart == "*" {
		return -1
	}
	total, err := strconv.Atoi(totalPart)
	if err != nil {
		return -1
	}
	return total
}

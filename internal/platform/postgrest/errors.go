// Package postgrest implements the store interfaces over the HTTP surface
// of a hosted Postgres service: the REST data plane for table access and the
// identity plane for credential exchange. Every handle attaches the project
// api key plus a bearer credential to outbound calls.
package postgrest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/gastrobase/recipe-api/internal/store"
)

// codeNoRows is the data-plane error code for a single-object request that
// matched no row.
const codeNoRows = "PGRST116"

// APIError is a structured error returned by the data or identity plane.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("backend error (status %d, code %s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("backend error (status %d): %s", e.Status, e.Message)
}

// Unwrap maps the API error onto the store sentinels so callers can use
// errors.Is without knowing the transport.
func (e *APIError) Unwrap() error {
	switch {
	case e.Code == codeNoRows, e.Status == http.StatusNotAcceptable:
		return store.ErrNoRows
	case e.Status == http.StatusUnauthorized, e.Status == http.StatusForbidden:
		return store.ErrInvalidCredentials
	case e.Status == http.StatusConflict:
		return store.ErrDuplicate
	default:
		return store.ErrBackend
	}
}

// decodeAPIError drains a non-2xx response body into an APIError. Bodies
// that are not the documented error shape still produce a usable error.
func decodeAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{Status: resp.StatusCode}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil || len(body) == 0 {
		apiErr.Message = http.StatusText(resp.StatusCode)
		return apiErr
	}
	if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Message == "" {
		apiErr.Message = string(body)
	}
	return apiErr
}

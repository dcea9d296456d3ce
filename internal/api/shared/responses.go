package shared

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Response is the uniform outward envelope for every API response, success
// and error alike. Next carries the path+query of the following page and is
// omitted entirely when there is no further page.
type Response struct {
	Status       int    `json:"status"`
	Message      string `json:"message"`
	ResourceType string `json:"resource_type,omitempty"`
	Data         any    `json:"data,omitempty"`
	Count        *int   `json:"count,omitempty"`
	Path         string `json:"path"`
	Next         string `json:"next,omitempty"`
}

// CountOf adapts an int for the envelope's optional count field.
func CountOf(n int) *int {
	return &n
}

// RespondWithJSON writes a JSON response with the given status code and body.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode JSON response",
			"error", err,
			"path", r.URL.Path,
			"trace_id", GetTraceID(r.Context()))
	}
}

// RespondWithEnvelope writes the envelope using its own status field.
func RespondWithEnvelope(w http.ResponseWriter, r *http.Request, resp Response) {
	RespondWithJSON(w, r, resp.Status, resp)
}

// RespondWithError writes an error variant of the envelope. Authentication
// failures must go through RespondUnauthenticated instead so the challenge
// header is set.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, message, resourceType string) {
	slog.Debug("sending error response",
		"status_code", status,
		"message", message,
		"trace_id", GetTraceID(r.Context()),
		"path", r.URL.Path,
		"method", r.Method)

	RespondWithJSON(w, r, status, Response{
		Status:       status,
		Message:      message,
		ResourceType: resourceType,
		Path:         r.URL.Path,
	})
}

// RespondUnauthenticated writes the 401 envelope with the bearer challenge
// header.
func RespondUnauthenticated(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	RespondWithError(w, r, http.StatusUnauthorized,
		"Cannot authenticate user, invalid credentials", "Unauthenticated error")
}

// RespondUnprocessable writes the 422 envelope carrying field-level
// validation entries.
func RespondUnprocessable(w http.ResponseWriter, r *http.Request, fields any, count int) {
	RespondWithJSON(w, r, http.StatusUnprocessableEntity, Response{
		Status:       http.StatusUnprocessableEntity,
		Message:      "Unprocessable JSON object",
		ResourceType: "Validation error",
		Data:         fields,
		Count:        CountOf(count),
		Path:         r.URL.Path,
	})
}

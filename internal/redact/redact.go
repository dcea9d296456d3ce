// Package redact scrubs sensitive fragments from strings before they are
// logged. Backend error messages can embed connection URLs, API keys, bearer
// tokens, or user email addresses; none of those belong in log output.
package redact

import "regexp"

// Redaction placeholders.
const (
	Placeholder           = "[REDACTED]"
	CredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	KeyPlaceholder        = "[REDACTED_KEY]"
)

var (
	// Database/backend connection strings with embedded credentials.
	connRegex = regexp.MustCompile(`(?i)(postgres|postgresql|http|https)://[^@\s]+@`)

	// API keys and secrets in key=value or key: value form.
	apiKeyRegex = regexp.MustCompile(
		`(?i)(api[_-]?key|apikey|service[_-]?key|anon[_-]?key|secret|password)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`,
	)

	// Three-part base64url JWT tokens.
	jwtRegex = regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`)

	// Email addresses.
	emailRegex = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
)

// String returns s with sensitive fragments replaced by placeholders.
func String(s string) string {
	s = jwtRegex.ReplaceAllString(s, CredentialPlaceholder)
	s = connRegex.ReplaceAllString(s, "$1://"+CredentialPlaceholder+"@")
	s = apiKeyRegex.ReplaceAllString(s, "$1$2"+KeyPlaceholder)
	s = emailRegex.ReplaceAllString(s, Placeholder)
	return s
}

// Error redacts an error's message. Returns the empty string for nil errors.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}

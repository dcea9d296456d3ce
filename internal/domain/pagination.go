package domain

// Pagination defaults. Pages are one-based on the client side; the API
// boundary converts them to the zero-based index used everywhere below it.
const (
	DefaultPage  = 1
	DefaultSkip  = 0
	DefaultLimit = 100
)

// Pagination carries the common list-query parameters. Page is zero-based
// here; handlers decrement the client-facing value on ingress and increment
// it again when building next-page links.
type Pagination struct {
	Page  int `json:"page"  validate:"gte=0"`
	Skip  int `json:"skip"  validate:"gte=0"`
	Limit int `json:"limit" validate:"gt=0"`
}

// Normalize re-derives the pagination fields, clamping out-of-range values
// back to their defaults. Upstream values are never trusted blindly.
func (p *Pagination) Normalize() {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Skip < 0 {
		p.Skip = DefaultSkip
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
}

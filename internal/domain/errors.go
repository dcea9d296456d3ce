// Package domain defines the core catalog entities and their lifecycle shapes.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when an entity fails validation.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is missing or malformed.
	ErrInvalidID = errors.New("invalid ID")

	// ErrNameEmpty is returned when a category or tag name is empty after trimming.
	ErrNameEmpty = errors.New("name cannot be empty")

	// ErrNameTooLong is returned when a category or tag name exceeds the limit.
	ErrNameTooLong = errors.New("name exceeds maximum length")

	// ErrTitleLength is returned when a recipe title is outside its length bounds.
	ErrTitleLength = errors.New("title length out of bounds")

	// ErrCategoryRequired is returned when a recipe has no owning category.
	ErrCategoryRequired = errors.New("recipe category is required")

	// ErrInvalidImageURL is returned when a recipe image is not an http(s) URL.
	ErrInvalidImageURL = errors.New("image must be an http or https URL")

	// ErrUnauthorized is returned when an operation is not permitted.
	ErrUnauthorized = errors.New("unauthorized operation")
)

// FieldError describes a single request validation failure in the shape the
// API exposes to clients.
type FieldError struct {
	Type string `json:"type"`
	Loc  string `json:"loc"`
	Msg  string `json:"msg"`
}

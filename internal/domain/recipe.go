package domain

import (
	"net/url"
	"time"

	"github.com/google/uuid"
)

// Recipe title bounds. Two constraint sets existed historically; the
// stricter one is canonical.
const (
	MinTitleLength = 20
	MaxTitleLength = 80
)

// RecipeInput is the client-submitted shape for creating a recipe. Image
// carries an already-hosted URL; the service does not accept uploads.
type RecipeInput struct {
	Title        string      `json:"title"        validate:"required,min=20,max=80"`
	Description  string      `json:"description"  validate:"required"`
	Ingredients  string      `json:"ingredients"  validate:"required"`
	Instructions string      `json:"instructions" validate:"required"`
	Image        *string     `json:"image,omitempty"`
	Tags         []uuid.UUID `json:"tags,omitempty"`
	CategoryID   uuid.UUID   `json:"category_id"  validate:"required"`
}

// RecipeSave is the payload sent to the backend on create. It adds the
// server-assigned identity, the owning user, and the optional image URL.
type RecipeSave struct {
	ID           uuid.UUID   `json:"id"`
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	Ingredients  string      `json:"ingredients"`
	Instructions string      `json:"instructions"`
	Image        *string     `json:"image,omitempty"`
	Tags         []uuid.UUID `json:"tags,omitempty"`
	CategoryID   uuid.UUID   `json:"category_id"`
	UserID       uuid.UUID   `json:"user_id"`
}

// RecipeOut is the public shape returned to clients. Associated tags and the
// owning category are embedded in their own public shapes.
type RecipeOut struct {
	ID           uuid.UUID    `json:"id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Ingredients  string       `json:"ingredients"`
	Instructions string       `json:"instructions"`
	Image        *string      `json:"image,omitempty"`
	Tags         []TagOut     `json:"tags,omitempty"`
	Category     *CategoryOut `json:"category,omitempty"`
}

// RecipeRecord is the persisted shape as materialized by the recipes_full
// view: embedded tag and category records plus storage-owned metadata.
type RecipeRecord struct {
	ID           uuid.UUID      `json:"id"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	Ingredients  string         `json:"ingredients"`
	Instructions string         `json:"instructions"`
	Image        *string        `json:"image,omitempty"`
	Tags         []TagRecord    `json:"tags"`
	Category     CategoryRecord `json:"category"`
	UserID       uuid.UUID      `json:"user_id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// RecipeFilter is the query-parameter shape for listing recipes. Title
// matches case-insensitively as a substring; Category filters by equality.
// Tag is accepted for forward compatibility but not yet applied server-side.
type RecipeFilter struct {
	Pagination
	Title    string    `json:"title" validate:"omitempty,max=80"`
	Category uuid.UUID `json:"category"`
	Tag      uuid.UUID `json:"tag"`
}

// NewRecipeSave builds a save payload from client input, generating a new
// identity and attaching the owning user.
func NewRecipeSave(in RecipeInput, userID uuid.UUID) (*RecipeSave, error) {
	save := &RecipeSave{
		ID:           uuid.New(),
		Title:        in.Title,
		Description:  in.Description,
		Ingredients:  in.Ingredients,
		Instructions: in.Instructions,
		Image:        in.Image,
		Tags:         in.Tags,
		CategoryID:   in.CategoryID,
		UserID:       userID,
	}
	if err := save.Validate(); err != nil {
		return nil, err
	}
	return save, nil
}

// Validate checks the save payload's fields.
func (r *RecipeSave) Validate() error {
	if r.ID == uuid.Nil {
		return ErrInvalidID
	}
	if len(r.Title) < MinTitleLength || len(r.Title) > MaxTitleLength {
		return ErrTitleLength
	}
	if r.CategoryID == uuid.Nil {
		return ErrCategoryRequired
	}
	if r.UserID == uuid.Nil {
		return ErrUnauthorized
	}
	if r.Image != nil {
		u, err := url.Parse(*r.Image)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return ErrInvalidImageURL
		}
	}
	return nil
}

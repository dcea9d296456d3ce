package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxNameLength bounds category and tag names.
const MaxNameLength = 50

// CategoryInput is the client-submitted shape for creating or updating a
// category. It carries user-writable fields only.
type CategoryInput struct {
	Name string `json:"name" validate:"required,max=50"`
}

// CategorySave is the payload sent to the backend on create and update.
// ID identifies the target row; on create it is freshly generated.
type CategorySave struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// CategoryOut is the public shape returned to clients.
type CategoryOut struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// CategoryRecord is the persisted shape, including the storage-owned
// timestamps that never reach clients unless explicitly requested.
type CategoryRecord struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CategoryFilter is the query-parameter shape for listing categories.
type CategoryFilter struct {
	Pagination
	Name string `json:"name" validate:"omitempty,max=50"`
}

// NewCategorySave builds a save payload from client input, generating a new
// identity. The name is trimmed before validation.
func NewCategorySave(in CategoryInput) (*CategorySave, error) {
	save := &CategorySave{
		ID:   uuid.New(),
		Name: strings.TrimSpace(in.Name),
	}
	if err := save.Validate(); err != nil {
		return nil, err
	}
	return save, nil
}

// CategoryUpdate builds a save payload targeting an existing identity.
func CategoryUpdate(id uuid.UUID, in CategoryInput) (*CategorySave, error) {
	if id == uuid.Nil {
		return nil, ErrInvalidID
	}
	save := &CategorySave{
		ID:   id,
		Name: strings.TrimSpace(in.Name),
	}
	if err := save.Validate(); err != nil {
		return nil, err
	}
	return save, nil
}

// Validate checks the save payload's fields.
func (c *CategorySave) Validate() error {
	if c.ID == uuid.Nil {
		return ErrInvalidID
	}
	if c.Name == "" {
		return ErrNameEmpty
	}
	if len(c.Name) > MaxNameLength {
		return ErrNameTooLong
	}
	return nil
}

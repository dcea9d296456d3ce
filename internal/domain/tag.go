package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// TagInput is the client-submitted shape for creating or updating a tag.
type TagInput struct {
	Name string `json:"name" validate:"required,max=50"`
}

// TagSave is the payload sent to the backend on create and update.
type TagSave struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// TagOut is the public shape returned to clients.
type TagOut struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// TagRecord is the persisted shape with storage-owned timestamps.
type TagRecord struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TagFilter is the query-parameter shape for listing tags.
type TagFilter struct {
	Pagination
	Name string `json:"name" validate:"omitempty,max=50"`
}

// NewTagSave builds a save payload from client input with a fresh identity.
func NewTagSave(in TagInput) (*TagSave, error) {
	save := &TagSave{
		ID:   uuid.New(),
		Name: strings.TrimSpace(in.Name),
	}
	if err := save.Validate(); err != nil {
		return nil, err
	}
	return save, nil
}

// TagUpdate builds a save payload targeting an existing identity.
func TagUpdate(id uuid.UUID, in TagInput) (*TagSave, error) {
	if id == uuid.Nil {
		return nil, ErrInvalidID
	}
	save := &TagSave{
		ID:   id,
		Name: strings.TrimSpace(in.Name),
	}
	if err := save.Validate(); err != nil {
		return nil, err
	}
	return save, nil
}

// Validate checks the save payload's fields.
func (t *TagSave) Validate() error {
	if t.ID == uuid.Nil {
		return ErrInvalidID
	}
	if t.Name == "" {
		return ErrNameEmpty
	}
	if len(t.Name) > MaxNameLength {
		return ErrNameTooLong
	}
	return nil
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

// ProfileOut is the public shape of a user profile. Internal markers such as
// the admin flag are never part of this shape.
type ProfileOut struct {
	ID           uuid.UUID      `json:"id"`
	Name         string         `json:"name"`
	RawExtraData map[string]any `json:"raw_extra_data,omitempty"`
}

// ProfileRecord is the persisted profile row, including DB-only metadata.
type ProfileRecord struct {
	ID           uuid.UUID      `json:"id"`
	UserID       uuid.UUID      `json:"user_id"`
	Name         string         `json:"name"`
	RawExtraData map[string]any `json:"raw_extra_data,omitempty"`
	IsAdmin      bool           `json:"is_admin"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// Public strips the DB-only fields from a persisted profile.
func (p ProfileRecord) Public() ProfileOut {
	return ProfileOut{
		ID:           p.ID,
		Name:         p.Name,
		RawExtraData: p.RawExtraData,
	}
}

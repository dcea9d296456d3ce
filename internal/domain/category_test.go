package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCategorySave(t *testing.T) {
	t.Parallel()

	t.Run("generates identity and trims name", func(t *testing.T) {
		t.Parallel()
		save, err := NewCategorySave(CategoryInput{Name: "  Desserts  "})
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, save.ID)
		assert.Equal(t, "Desserts", save.Name)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		t.Parallel()
		_, err := NewCategorySave(CategoryInput{Name: "   "})
		assert.ErrorIs(t, err, ErrNameEmpty)
	})

	t.Run("rejects name over the limit", func(t *testing.T) {
		t.Parallel()
		_, err := NewCategorySave(CategoryInput{Name: strings.Repeat("x", MaxNameLength+1)})
		assert.ErrorIs(t, err, ErrNameTooLong)
	})

	t.Run("accepts name at the limit", func(t *testing.T) {
		t.Parallel()
		save, err := NewCategorySave(CategoryInput{Name: strings.Repeat("x", MaxNameLength)})
		require.NoError(t, err)
		assert.Len(t, save.Name, MaxNameLength)
	})
}

func TestCategoryUpdate(t *testing.T) {
	t.Parallel()

	t.Run("keeps the given identity", func(t *testing.T) {
		t.Parallel()
		id := uuid.New()
		save, err := CategoryUpdate(id, CategoryInput{Name: "Starters"})
		require.NoError(t, err)
		assert.Equal(t, id, save.ID)
	})

	t.Run("rejects nil identity", func(t *testing.T) {
		t.Parallel()
		_, err := CategoryUpdate(uuid.Nil, CategoryInput{Name: "Starters"})
		assert.ErrorIs(t, err, ErrInvalidID)
	})
}

func TestTagSave(t *testing.T) {
	t.Parallel()

	t.Run("mirrors category name rules", func(t *testing.T) {
		t.Parallel()
		save, err := NewTagSave(TagInput{Name: " vegan "})
		require.NoError(t, err)
		assert.Equal(t, "vegan", save.Name)

		_, err = NewTagSave(TagInput{Name: ""})
		assert.ErrorIs(t, err, ErrNameEmpty)
	})

	t.Run("update rejects nil identity", func(t *testing.T) {
		t.Parallel()
		_, err := TagUpdate(uuid.Nil, TagInput{Name: "vegan"})
		assert.ErrorIs(t, err, ErrInvalidID)
	})
}

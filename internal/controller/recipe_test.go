package controller

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gastrobase/recipe-api/internal/domain"
	"github.com/gastrobase/recipe-api/internal/store"
)

func recipeRow(id, categoryID uuid.UUID) store.Record {
	return store.Record{
		"id":           id.String(),
		"title":        "A slow-braised short rib ragu",
		"description":  "Rich and hearty.",
		"ingredients":  "short ribs, tomatoes",
		"instructions": "Braise for four hours.",
		"category":     map[string]any{"id": categoryID.String(), "name": "Mains"},
		"tags":         []any{map[string]any{"id": uuid.New().String(), "name": "winter"}},
	}
}

func TestRecipeControllerSave(t *testing.T) {
	t.Parallel()
	ctrl := NewRecipeController(nil)
	ctx := context.Background()

	save := &domain.RecipeSave{
		ID:           uuid.New(),
		Title:        "A slow-braised short rib ragu",
		Description:  "Rich and hearty.",
		Ingredients:  "short ribs, tomatoes",
		Instructions: "Braise for four hours.",
		CategoryID:   uuid.New(),
		UserID:       uuid.New(),
	}

	t.Run("goes through the insert procedure", func(t *testing.T) {
		t.Parallel()
		client := &fakeClient{
			invokeRows: []store.Record{recipeRow(save.ID, save.CategoryID)},
		}

		res := ctrl.Save(ctx, client, save)
		require.True(t, res.Success)
		assert.Equal(t, recipeInsertFn, client.lastFn)

		row, ok := client.lastArgs["recipe_json"].(map[string]any)
		require.True(t, ok, "procedure argument must be the wrapped recipe row")
		assert.Equal(t, save.Title, row["title"])

		assert.Equal(t, save.ID, res.Data.ID)
		require.NotNil(t, res.Data.Category)
		assert.Equal(t, "Mains", res.Data.Category.Name)
		assert.Len(t, res.Data.Tags, 1)
	})

	t.Run("procedure failure", func(t *testing.T) {
		t.Parallel()
		client := &fakeClient{invokeErr: store.ErrBackend}

		res := ctrl.Save(ctx, client, save)
		assert.False(t, res.Success)
		assert.Equal(t, store.ErrKindBackend, res.Err)
	})
}

func TestRecipeControllerUpdateUnsupported(t *testing.T) {
	t.Parallel()
	ctrl := NewRecipeController(nil)

	res := ctrl.Update(context.Background(), &fakeClient{}, &domain.RecipeSave{ID: uuid.New()})
	assert.False(t, res.Success)
	assert.Equal(t, store.ErrKindUnsupported, res.Err)
}

func TestRecipeControllerSelect(t *testing.T) {
	t.Parallel()
	ctrl := NewRecipeController(nil)
	ctx := context.Background()

	t.Run("reads the full view with filters", func(t *testing.T) {
		t.Parallel()
		categoryID := uuid.New()
		client := &fakeClient{
			selectRows:  []store.Record{recipeRow(uuid.New(), categoryID)},
			selectCount: 1,
		}

		filter := &domain.RecipeFilter{Title: "ragu", Category: categoryID}
		res := ctrl.Select(ctx, client, filter)
		require.True(t, res.Success)
		assert.Equal(t, recipesView, client.lastTable)
		assert.Equal(t, map[string]string{"title": "ragu"}, client.lastQuery.Match)
		assert.Equal(t, map[string]string{"category_id": categoryID.String()}, client.lastQuery.Eq)
	})

	t.Run("empty catalog is empty, not an error", func(t *testing.T) {
		t.Parallel()
		client := &fakeClient{}

		res := ctrl.Select(ctx, client, &domain.RecipeFilter{})
		assert.False(t, res.Success)
		assert.Equal(t, store.ErrKindNone, res.Err)
	})
}

func TestRecipeControllerDelete(t *testing.T) {
	t.Parallel()
	ctrl := NewRecipeController(nil)

	client := &fakeClient{deleteCount: 1}
	res := ctrl.Delete(context.Background(), client, uuid.New())
	assert.True(t, res.Success)
	assert.Equal(t, 1, res.Count)
	assert.Equal(t, recipesTable, client.lastTable, "deletes target the base table, not the view")
}

func TestProfileControllerByUser(t *testing.T) {
	t.Parallel()
	ctrl := NewProfileController(nil)
	ctx := context.Background()
	userID := uuid.New()

	t.Run("strips internal fields", func(t *testing.T) {
		t.Parallel()
		client := &fakeClient{
			selectRows: []store.Record{{
				"id":       uuid.New().String(),
				"user_id":  userID.String(),
				"name":     "Alex",
				"is_admin": true,
			}},
			selectCount: 1,
		}

		res := ctrl.ByUser(ctx, client, userID)
		require.True(t, res.Success)
		assert.Equal(t, "Alex", res.Data.Name)
		assert.Equal(t, map[string]string{"user_id": userID.String()}, client.lastQuery.Eq)
	})

	t.Run("missing profile marks no return", func(t *testing.T) {
		t.Parallel()
		client := &fakeClient{selectErr: store.ErrNoRows}

		res := ctrl.ByUser(ctx, client, userID)
		assert.Equal(t, store.ErrKindNoReturn, res.Err)
	})
}

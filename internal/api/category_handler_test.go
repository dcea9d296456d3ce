package api

import (
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gastrobase/recipe-api/internal/store"
)

func TestCategoryList(t *testing.T) {
	t.Parallel()

	t.Run("returns envelope with data and count", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		env.client.rows = []store.Record{
			{"id": uuid.New().String(), "name": "Desserts"},
			{"id": uuid.New().String(), "name": "Mains"},
		}
		env.client.count = 2

		rec, resp := env.do(t, http.MethodGet, "/categories/", "", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Success response", resp.Message)
		assert.Equal(t, "Category", resp.ResourceType)
		require.NotNil(t, resp.Count)
		assert.Equal(t, 2, *resp.Count)
		assert.Empty(t, resp.Next)
		assert.True(t, env.client.closed, "backend handle must be released")
	})

	t.Run("empty catalog answers 200 with no data", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)

		rec, resp := env.do(t, http.MethodGet, "/categories/", "", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Nil(t, resp.Data)
		require.NotNil(t, resp.Count)
		assert.Zero(t, *resp.Count)
	})

	t.Run("sets next link when rows remain", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		env.client.rows = []store.Record{{"id": uuid.New().String(), "name": "A"}}
		env.client.count = 7

		rec, resp := env.do(t, http.MethodGet, "/categories/?page=1&limit=2", "", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, resp.Next, "page=2")
		assert.Contains(t, resp.Next, "limit=2")
	})

	t.Run("no next link on the last page", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		env.client.rows = []store.Record{{"id": uuid.New().String(), "name": "A"}}
		env.client.count = 4

		_, resp := env.do(t, http.MethodGet, "/categories/?page=2&limit=2", "", nil)
		assert.Empty(t, resp.Next)
	})

	t.Run("over-length name filter answers 422 without touching the backend", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)

		rec, resp := env.do(t, http.MethodGet,
			"/categories/?name="+strings.Repeat("x", 51), "", nil)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Zero(t, env.client.calls)

		entries, ok := resp.Data.([]any)
		require.True(t, ok)
		entry := entries[0].(map[string]any)
		assert.Equal(t, "max", entry["type"])
		assert.Equal(t, "query -> name", entry["loc"])
	})

	t.Run("backend failure answers 500 without detail", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		env.client.err = store.ErrBackend

		rec, resp := env.do(t, http.MethodGet, "/categories/", "", nil)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "Internal error retrieving categories resources", resp.Message)
	})
}

func TestCategoryGet(t *testing.T) {
	t.Parallel()

	t.Run("found", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		id := uuid.New()
		env.client.rows = []store.Record{{"id": id.String(), "name": "Soups"}}
		env.client.count = 1

		rec, resp := env.do(t, http.MethodGet, "/categories/"+id.String(), "", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Category", resp.ResourceType)
	})

	t.Run("missing row answers 404", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		env.client.err = store.ErrNoRows

		rec, resp := env.do(t, http.MethodGet, "/categories/"+uuid.New().String(), "", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Resource not found", resp.Message)
	})

	t.Run("malformed id answers 404 without touching the backend", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)

		rec, _ := env.do(t, http.MethodGet, "/categories/not-a-uuid", "", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Zero(t, env.client.calls)
	})
}

func TestCategoryCreate(t *testing.T) {
	t.Parallel()

	t.Run("requires auth before any backend call", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)

		rec, resp := env.do(t, http.MethodPost, "/categories/", "", map[string]string{"name": "Breads"})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
		assert.Equal(t, "Cannot authenticate user, invalid credentials", resp.Message)
		assert.Equal(t, "Unauthenticated error", resp.ResourceType)
		assert.Zero(t, env.client.calls)
	})

	t.Run("answers 201 with the stored shape", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		id := uuid.New()
		env.client.rows = []store.Record{{"id": id.String(), "name": "Breads"}}
		env.client.count = 1

		rec, resp := env.do(t, http.MethodPost, "/categories/",
			env.token(t, uuid.New()), map[string]string{"name": "Breads"})
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, http.StatusCreated, resp.Status)
		assert.True(t, env.client.closed)
	})

	t.Run("invalid body answers 422 with field entries", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)

		rec, resp := env.do(t, http.MethodPost, "/categories/",
			env.token(t, uuid.New()), map[string]string{"name": ""})
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, "Unprocessable JSON object", resp.Message)
		assert.Equal(t, "Validation error", resp.ResourceType)

		entries, ok := resp.Data.([]any)
		require.True(t, ok)
		require.Len(t, entries, 1)
		entry := entries[0].(map[string]any)
		assert.Equal(t, "required", entry["type"])
		assert.Equal(t, "body -> name", entry["loc"])
	})

	t.Run("expired token answers 401", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)

		rec, _ := env.do(t, http.MethodPost, "/categories/",
			"not-a-real-token", map[string]string{"name": "Breads"})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Zero(t, env.client.calls)
	})
}

func TestCategoryUpdate(t *testing.T) {
	t.Parallel()

	t.Run("answers 200 with updated shape", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		id := uuid.New()
		env.client.rows = []store.Record{{"id": id.String(), "name": "Renamed"}}
		env.client.count = 1

		rec, resp := env.do(t, http.MethodPatch, "/categories/"+id.String(),
			env.token(t, uuid.New()), map[string]string{"name": "Renamed"})
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Category", resp.ResourceType)
	})

	t.Run("requires auth", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)

		rec, _ := env.do(t, http.MethodPatch, "/categories/"+uuid.New().String(),
			"", map[string]string{"name": "Renamed"})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestCategoryDelete(t *testing.T) {
	t.Parallel()

	t.Run("reports affected count", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		env.client.deleteN = 1

		rec, resp := env.do(t, http.MethodDelete, "/categories/"+uuid.New().String(),
			env.token(t, uuid.New()), nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Resource deleted successfully", resp.Message)
		require.NotNil(t, resp.Count)
		assert.Equal(t, 1, *resp.Count)
	})

	t.Run("missing identity still succeeds with zero count", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)

		rec, resp := env.do(t, http.MethodDelete, "/categories/"+uuid.New().String(),
			env.token(t, uuid.New()), nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, resp.Count)
		assert.Zero(t, *resp.Count)
	})

	t.Run("requires auth", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)

		rec, _ := env.do(t, http.MethodDelete, "/categories/"+uuid.New().String(), "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Zero(t, env.client.calls)
	})
}

package postgres

import (
	"context"
	"log/slog"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gastrobase/recipe-api/internal/store"
)

func newMockClient(t *testing.T) (*Client, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return &Client{db: db, log: slog.Default()}, mock
}

func TestClientInsert(t *testing.T) {
	t.Parallel()
	client, mock := newMockClient(t)
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(
		"INSERT INTO categories AS t (id, name) VALUES ($1, $2) RETURNING to_jsonb(t)",
	)).
		WithArgs(id.String(), "Breads").
		WillReturnRows(sqlmock.NewRows([]string{"to_jsonb"}).
			AddRow([]byte(`{"id":"` + id.String() + `","name":"Breads"}`)))

	rows, count, err := client.Insert(context.Background(), "categories",
		store.Record{"name": "Breads", "id": id.String()})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	require.Len(t, rows, 1)
	assert.Equal(t, "Breads", rows[0]["name"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClientInsertDuplicate(t *testing.T) {
	t.Parallel()
	client, mock := newMockClient(t)

	mock.ExpectQuery("INSERT INTO categories").
		WillReturnError(&pgconn.PgError{Code: pgErrUniqueViolation, ConstraintName: "categories_name_key"})

	_, _, err := client.Insert(context.Background(), "categories", store.Record{"name": "Breads"})
	assert.ErrorIs(t, err, store.ErrDuplicate)
}

func TestClientUpdate(t *testing.T) {
	t.Parallel()

	t.Run("bumps updated_at and returns the row", func(t *testing.T) {
		t.Parallel()
		client, mock := newMockClient(t)
		id := uuid.New()

		mock.ExpectQuery(regexp.QuoteMeta(
			"UPDATE categories AS t SET name = $2, updated_at = now() WHERE id = $1 RETURNING to_jsonb(t)",
		)).
			WithArgs(id, "Renamed").
			WillReturnRows(sqlmock.NewRows([]string{"to_jsonb"}).
				AddRow([]byte(`{"id":"` + id.String() + `","name":"Renamed"}`)))

		rows, count, err := client.Update(context.Background(), "categories", id,
			store.Record{"name": "Renamed"})
		require.NoError(t, err)
		assert.Equal(t, 1, count)
		assert.Len(t, rows, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row yields empty result, not error", func(t *testing.T) {
		t.Parallel()
		client, mock := newMockClient(t)
		id := uuid.New()

		mock.ExpectQuery("UPDATE categories").
			WillReturnRows(sqlmock.NewRows([]string{"to_jsonb"}))

		rows, count, err := client.Update(context.Background(), "categories", id,
			store.Record{"name": "Renamed"})
		require.NoError(t, err)
		assert.Empty(t, rows)
		assert.Zero(t, count)
	})
}

func TestClientSelect(t *testing.T) {
	t.Parallel()

	t.Run("range with filters and window count", func(t *testing.T) {
		t.Parallel()
		client, mock := newMockClient(t)

		mock.ExpectQuery(regexp.QuoteMeta(
			"SELECT to_jsonb(t), count(*) OVER () FROM categories AS t"+
				" WHERE name ILIKE '%' || $1 || '%' ORDER BY t.created_at, t.id LIMIT $2 OFFSET $3",
		)).
			WithArgs("rea", 20, 20).
			WillReturnRows(sqlmock.NewRows([]string{"to_jsonb", "count"}).
				AddRow([]byte(`{"name":"Breads"}`), 57).
				AddRow([]byte(`{"name":"Spreads"}`), 57))

		rows, count, err := client.Select(context.Background(), "categories", store.SelectQuery{
			Offset: 20,
			End:    40,
			Match:  map[string]string{"name": "rea"},
		})
		require.NoError(t, err)
		assert.Len(t, rows, 2)
		assert.Equal(t, 57, count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("single with no match maps to no rows", func(t *testing.T) {
		t.Parallel()
		client, mock := newMockClient(t)

		mock.ExpectQuery("SELECT to_jsonb").
			WillReturnRows(sqlmock.NewRows([]string{"to_jsonb", "count"}))

		_, _, err := client.Select(context.Background(), "categories", store.SelectQuery{
			End:    1,
			Eq:     map[string]string{"id": uuid.New().String()},
			Single: true,
		})
		assert.True(t, store.IsNoRows(err))
	})
}

func TestClientDelete(t *testing.T) {
	t.Parallel()

	t.Run("reports affected rows", func(t *testing.T) {
		t.Parallel()
		client, mock := newMockClient(t)
		id := uuid.New()

		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM categories WHERE id = $1")).
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 1))

		count, err := client.Delete(context.Background(), "categories", id)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("missing identity affects nothing", func(t *testing.T) {
		t.Parallel()
		client, mock := newMockClient(t)

		mock.ExpectExec("DELETE FROM categories").
			WillReturnResult(sqlmock.NewResult(0, 0))

		count, err := client.Delete(context.Background(), "categories", uuid.New())
		require.NoError(t, err)
		assert.Zero(t, count)
	})
}

func TestClientInvoke(t *testing.T) {
	t.Parallel()
	client, mock := newMockClient(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT insert_recipe(recipe_json => $1)")).
		WillReturnRows(sqlmock.NewRows([]string{"insert_recipe"}).
			AddRow([]byte(`{"id":"r1","title":"A slow-braised short rib ragu"}`)))

	rows, count, err := client.Invoke(context.Background(), "insert_recipe",
		store.Record{"recipe_json": map[string]any{"title": "A slow-braised short rib ragu"}})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	require.Len(t, rows, 1)
	assert.Equal(t, "r1", rows[0]["id"])
}

func TestClientRejectsBadIdentifiers(t *testing.T) {
	t.Parallel()
	client, _ := newMockClient(t)

	_, _, err := client.Insert(context.Background(), "categories; --", store.Record{"name": "x"})
	assert.Error(t, err)

	_, _, err = client.Select(context.Background(), "categories", store.SelectQuery{
		Eq: map[string]string{"name\" OR 1=1": "x"},
	})
	assert.Error(t, err)
}

func TestMapError(t *testing.T) {
	t.Parallel()

	assert.ErrorIs(t, mapError(&pgconn.PgError{Code: pgErrForeignKeyViolation}), store.ErrInvalidEntity)
	assert.ErrorIs(t, mapError(&pgconn.PgError{Code: pgErrCheckViolation}), store.ErrInvalidEntity)
	assert.ErrorIs(t, mapError(&pgconn.PgError{Code: pgErrNotNullViolation}), store.ErrInvalidEntity)
	assert.ErrorIs(t, mapError(&pgconn.PgError{Code: "42P01"}), store.ErrBackend)
	assert.NoError(t, mapError(nil))
}

package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/gastrobase/recipe-api/internal/store"
)

// identPattern restricts table and column names to plain lowercase
// identifiers. Names come from compiled-in constants and struct tags, so a
// mismatch indicates a programming error, not user input.
var identPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// Client is a handle to the database satisfying store.Client. All handles
// share the pooled *sql.DB; per-handle Close is a no-op so request-scoped
// acquisition keeps the same shape as the hosted adapter.
type Client struct {
	db  *sql.DB
	log *slog.Logger
}

var _ store.Client = (*Client)(nil)

// Insert adds a row and returns the stored representation.
func (c *Client) Insert(ctx context.Context, table string, row store.Record) ([]store.Record, int, error) {
	if err := checkIdent(table); err != nil {
		return nil, 0, err
	}
	cols, args, err := sortedColumns(row)
	if err != nil {
		return nil, 0, err
	}

	placeholders := make([]string, len(cols))
	for i := range cols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	query := fmt.Sprintf(
		"INSERT INTO %s AS t (%s) VALUES (%s) RETURNING to_jsonb(t)",
		table, strings.Join(cols, ", "), strings.Join(placeholders, ", "),
	)

	rec, err := c.queryOneJSON(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return []store.Record{rec}, 1, nil
}

// Update mutates the row with the given identity and bumps its modification
// timestamp.
func (c *Client) Update(ctx context.Context, table string, id uuid.UUID, row store.Record) ([]store.Record, int, error) {
	if err := checkIdent(table); err != nil {
		return nil, 0, err
	}
	cols, args, err := sortedColumns(row)
	if err != nil {
		return nil, 0, err
	}

	sets := make([]string, 0, len(cols)+1)
	for i, col := range cols {
		sets = append(sets, fmt.Sprintf("%s = $%d", col, i+2))
	}
	sets = append(sets, "updated_at = now()")
	query := fmt.Sprintf(
		"UPDATE %s AS t SET %s WHERE id = $1 RETURNING to_jsonb(t)",
		table, strings.Join(sets, ", "),
	)

	rec, err := c.queryOneJSON(ctx, query, append([]any{id}, args...)...)
	if err != nil {
		if store.IsNoRows(err) {
			return nil, 0, nil
		}
		return nil, 0, err
	}
	return []store.Record{rec}, 1, nil
}

// Select performs a ranged fetch with an exact total count via a window
// aggregate, so one round trip yields both the page and the total.
func (c *Client) Select(ctx context.Context, table string, q store.SelectQuery) ([]store.Record, int, error) {
	if err := checkIdent(table); err != nil {
		return nil, 0, err
	}

	var (
		where []string
		args  []any
	)
	appendCond := func(cond string, val any) {
		args = append(args, val)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	for _, col := range sortedKeys(q.Eq) {
		if err := checkIdent(col); err != nil {
			return nil, 0, err
		}
		appendCond(col+" = $%d", q.Eq[col])
	}
	for _, col := range sortedKeys(q.Match) {
		if err := checkIdent(col); err != nil {
			return nil, 0, err
		}
		appendCond(col+" ILIKE '%%' || $%d || '%%'", q.Match[col])
	}

	query := fmt.Sprintf("SELECT to_jsonb(t), count(*) OVER () FROM %s AS t", table)
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY t.created_at, t.id"
	if limit := q.End - q.Offset; limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if q.Offset > 0 {
		args = append(args, q.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, mapError(err)
	}
	defer func() { _ = rows.Close() }()

	var (
		recs  []store.Record
		total int
	)
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw, &total); err != nil {
			return nil, 0, mapError(err)
		}
		var rec store.Record
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, 0, fmt.Errorf("%w: malformed row: %v", store.ErrBackend, err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, mapError(err)
	}
	if q.Single && len(recs) == 0 {
		return nil, 0, store.ErrNoRows
	}
	return recs, total, nil
}

// Delete removes the row with the given identity. Deleting a missing
// identity reports zero affected rows.
func (c *Client) Delete(ctx context.Context, table string, id uuid.UUID) (int, error) {
	if err := checkIdent(table); err != nil {
		return 0, err
	}
	res, err := c.db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", table), id)
	if err != nil {
		return 0, mapError(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, mapError(err)
	}
	return int(affected), nil
}

// Invoke calls a named stored procedure with named JSON arguments. The
// procedure must return jsonb rows.
func (c *Client) Invoke(ctx context.Context, fn string, args store.Record) ([]store.Record, int, error) {
	if err := checkIdent(fn); err != nil {
		return nil, 0, err
	}
	names, vals, err := sortedColumns(args)
	if err != nil {
		return nil, 0, err
	}

	params := make([]string, len(names))
	for i, name := range names {
		params[i] = fmt.Sprintf("%s => $%d", name, i+1)
	}
	query := fmt.Sprintf("SELECT %s(%s)", fn, strings.Join(params, ", "))

	rec, err := c.queryOneJSON(ctx, query, vals...)
	if err != nil {
		return nil, 0, err
	}
	return []store.Record{rec}, 1, nil
}

// Close is a no-op; the pooled connection set belongs to the provider.
func (c *Client) Close() error {
	return nil
}

// queryOneJSON runs a query expected to return a single jsonb column row.
func (c *Client) queryOneJSON(ctx context.Context, query string, args ...any) (store.Record, error) {
	var raw []byte
	if err := c.db.QueryRowContext(ctx, query, args...).Scan(&raw); err != nil {
		return nil, mapError(err)
	}
	var rec store.Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("%w: malformed row: %v", store.ErrBackend, err)
	}
	return rec, nil
}

// sortedColumns splits a record into deterministic column order with
// arguments aligned. Composite values travel as JSON.
func sortedColumns(row store.Record) ([]string, []any, error) {
	cols := sortedKeys(row)
	args := make([]any, 0, len(cols))
	for _, col := range cols {
		if err := checkIdent(col); err != nil {
			return nil, nil, err
		}
		val := row[col]
		switch val.(type) {
		case map[string]any, []any:
			raw, err := json.Marshal(val)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to encode column %s: %w", col, err)
			}
			args = append(args, raw)
		default:
			args = append(args, val)
		}
	}
	return cols, args, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func checkIdent(name string) error {
	if !identPattern.MatchString(name) {
		return fmt.Errorf("%w: invalid identifier %q", store.ErrBackend, name)
	}
	return nil
}

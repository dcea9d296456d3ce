package controller

import (
	"context"

	"github.com/google/uuid"

	"github.com/gastrobase/recipe-api/internal/store"
)

// fakeClient is a scriptable store.Client for controller tests. Each
// operation records its invocation and replays the configured outcome.
type fakeClient struct {
	insertRows []store.Record
	insertErr  error

	updateRows []store.Record
	updateErr  error

	selectRows  []store.Record
	selectCount int
	selectErr   error
	lastQuery   store.SelectQuery
	lastTable   string

	deleteCount int
	deleteErr   error

	invokeRows []store.Record
	invokeErr  error
	lastFn     string
	lastArgs   store.Record

	closed bool
}

var _ store.Client = (*fakeClient)(nil)

func (f *fakeClient) Insert(_ context.Context, table string, _ store.Record) ([]store.Record, int, error) {
	f.lastTable = table
	if f.insertErr != nil {
		return nil, 0, f.insertErr
	}
	return f.insertRows, len(f.insertRows), nil
}

func (f *fakeClient) Update(_ context.Context, table string, _ uuid.UUID, _ store.Record) ([]store.Record, int, error) {
	f.lastTable = table
	if f.updateErr != nil {
		return nil, 0, f.updateErr
	}
	return f.updateRows, len(f.updateRows), nil
}

func (f *fakeClient) Select(_ context.Context, table string, q store.SelectQuery) ([]store.Record, int, error) {
	f.lastTable = table
	f.lastQuery = q
	if f.selectErr != nil {
		return nil, 0, f.selectErr
	}
	return f.selectRows, f.selectCount, nil
}

func (f *fakeClient) Delete(_ context.Context, table string, _ uuid.UUID) (int, error) {
	f.lastTable = table
	if f.deleteErr != nil {
		return 0, f.deleteErr
	}
	return f.deleteCount, nil
}

func (f *fakeClient) Invoke(_ context.Context, fn string, args store.Record) ([]store.Record, int, error) {
	f.lastFn = fn
	f.lastArgs = args
	if f.invokeErr != nil {
		return nil, 0, f.invokeErr
	}
	return f.invokeRows, len(f.invokeRows), nil
}

func (f *fakeClient) Close() error {
	f.closed = true
	return nil
}

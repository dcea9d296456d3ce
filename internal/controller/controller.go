// Package controller implements the five-operation resource contract
// (Save, Update, Select, Unique, Delete) against an injected backend client.
// Controllers are stateless; backend and coercion failures never escape as
// errors but are converted into soft-fail results the API boundary can map.
package controller

import (
	"encoding/json"
	"fmt"
)

// Backend table and procedure names.
const (
	categoriesTable = "categories"
	tagsTable       = "tags"
	recipesTable    = "recipes"
	recipesView     = "recipes_full"
	recipeInsertFn  = "insert_recipe"
)

// toRecord converts a payload struct into its wire-form row. Fields tagged
// omitempty drop out when unset, so null fields are never sent.
func toRecord(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode payload: %w", err)
	}
	var rec map[string]any
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("failed to build record: %w", err)
	}
	return rec, nil
}

// decodeRecord coerces a returned row into the expected output shape.
func decodeRecord[T any](rec map[string]any) (*T, error) {
	raw, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to re-encode record: %w", err)
	}
	out := new(T)
	if err := json.Unmarshal(raw, out); err != nil {
		return nil, fmt.Errorf("record does not match expected shape: %w", err)
	}
	return out, nil
}

// decodeRecords coerces a row set into a slice of the expected output shape.
func decodeRecords[T any](recs []map[string]any) ([]T, error) {
	out := make([]T, 0, len(recs))
	for _, rec := range recs {
		v, err := decodeRecord[T](rec)
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	return out, nil
}

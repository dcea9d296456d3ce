package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResultConstructors(t *testing.T) {
	t.Parallel()

	t.Run("Ok carries data and count", func(t *testing.T) {
		t.Parallel()
		res := Ok([]string{"a", "b"}, 2)
		assert.True(t, res.Success)
		assert.Equal(t, []string{"a", "b"}, res.Data)
		assert.Equal(t, 2, res.Count)
		assert.Equal(t, ErrKindNone, res.Err)
	})

	t.Run("Empty is not success but carries no error", func(t *testing.T) {
		t.Parallel()
		res := Empty[[]string]()
		assert.False(t, res.Success)
		assert.Zero(t, res.Count)
		assert.Equal(t, ErrKindNone, res.Err)
	})

	t.Run("Fail annotates the kind", func(t *testing.T) {
		t.Parallel()
		res := Fail[[]string](ErrKindNoReturn)
		assert.False(t, res.Success)
		assert.Equal(t, ErrKindNoReturn, res.Err)
	})
}

func TestErrKindString(t *testing.T) {
	t.Parallel()

	cases := map[ErrKind]string{
		ErrKindNone:            "none",
		ErrKindNoReturn:        "no_return",
		ErrKindBackend:         "backend",
		ErrKindValidation:      "validation",
		ErrKindUnauthenticated: "unauthenticated",
		ErrKindUnsupported:     "unsupported",
		ErrKind(99):            "unknown",
	}
	for kind, want := range cases {
		assert.Equal(t, want, kind.String())
	}
}

func TestIsNoRows(t *testing.T) {
	t.Parallel()

	assert.True(t, IsNoRows(ErrNoRows))
	assert.True(t, IsNoRows(fmt.Errorf("select failed: %w", ErrNoRows)))
	assert.False(t, IsNoRows(ErrBackend))
	assert.False(t, IsNoRows(errors.New("other")))
	assert.False(t, IsNoRows(nil))
}

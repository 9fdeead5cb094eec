package template

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoerceScalars(t *testing.T) {
	now := time.Now()
	blob := []byte{0x01, 0x02}

	tests := []struct {
		name string
		in   any
		want any
	}{
		{"Int", 42, 42},
		{"String", "hello", "hello"},
		{"Bool", true, true},
		{"Float", 3.5, 3.5},
		{"Time", now, now},
		{"Bytes", blob, blob},
		{"Nil", nil, nil},
		{"NullString", sql.NullString{String: "x", Valid: true}, sql.NullString{String: "x", Valid: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vals, expanded, err := coerce(tt.in)
			require.NoError(t, err)
			assert.False(t, expanded)
			require.Len(t, vals, 1)
			assert.Equal(t, tt.want, vals[0])
		})
	}
}

func TestCoerceNilPointer(t *testing.T) {
	var p *string
	vals, _, err := coerce(p)
	require.NoError(t, err)
	assert.Equal(t, []any{nil}, vals)

	s := "x"
	vals, _, err = coerce(&s)
	require.NoError(t, err)
	assert.Equal(t, []any{"x"}, vals)
}

func TestCoerceIDs(t *testing.T) {
	id := uuid.New()
	vals, _, err := coerce(id)
	require.NoError(t, err)
	assert.Equal(t, []any{id.String()}, vals)

	lid := ulid.Make()
	vals, _, err = coerce(lid)
	require.NoError(t, err)
	assert.Equal(t, []any{lid.String()}, vals)
}

func TestCoerceSequences(t *testing.T) {
	vals, expanded, err := coerce([]int{1, 2, 3})
	require.NoError(t, err)
	assert.True(t, expanded)
	assert.Equal(t, []any{1, 2, 3}, vals)

	vals, expanded, err = coerce([2]string{"a", "b"})
	require.NoError(t, err)
	assert.True(t, expanded)
	assert.Equal(t, []any{"a", "b"}, vals)

	vals, expanded, err = coerce([]string{})
	require.NoError(t, err)
	assert.True(t, expanded)
	assert.Empty(t, vals)

	// Element kinds go through scalar coercion.
	ids := []uuid.UUID{uuid.New(), uuid.New()}
	vals, _, err = coerce(ids)
	require.NoError(t, err)
	assert.Equal(t, []any{ids[0].String(), ids[1].String()}, vals)
}

func TestCoerceErrors(t *testing.T) {
	var nilSlice []int
	cases := map[string]any{
		"NilCollection":    nilSlice,
		"NestedCollection": [][]int{{1}},
		"Map":              map[string]int{"a": 1},
		"Chan":             make(chan int),
		"Func":             func() {},
		"Fragment":         Raw("1=1"),
		"Template":         New("?", 1),
	}

	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := coerce(in)
			var cerr *CoercionError
			require.ErrorAs(t, err, &cerr)
		})
	}
}

func TestCoerceOpaqueStructPassesThrough(t *testing.T) {
	type point struct{ X, Y int }
	p := point{1, 2}
	vals, expanded, err := coerce(p)
	require.NoError(t, err)
	assert.False(t, expanded)
	assert.Equal(t, []any{p}, vals)
}

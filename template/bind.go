package template

import (
	"database/sql/driver"
	"fmt"
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// CoercionError reports a value that cannot be mapped to bind values.
type CoercionError struct {
	Value  any
	Reason string
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("sqlt: cannot bind %T: %s", e.Value, e.Reason)
}

// coerce maps a hole's runtime value to driver-level bind values.
//
// Scalars map to exactly one value; nil and nil pointers map to a single
// NULL. Slices and arrays (except []byte) expand element-wise, which changes
// the shape of the rendered placeholder list: the second return value is true
// for these so the renderer knows a zero-length result is an empty list and
// not a scalar. uuid.UUID and ulid.ULID bind as their canonical string forms
// so they work across drivers. Unrecognized struct values pass through
// opaquely for the driver to interpret.
func coerce(v any) ([]any, bool, error) {
	if v == nil {
		return []any{nil}, false, nil
	}

	switch val := v.(type) {
	case *Fragment:
		return nil, false, &CoercionError{Value: v, Reason: "raw SQL fragment used in a value hole; splice it as a fragment argument instead"}
	case *Template:
		return nil, false, &CoercionError{Value: v, Reason: "nested template used in a value hole; pass it as a template argument instead"}
	case uuid.UUID:
		return []any{val.String()}, false, nil
	case ulid.ULID:
		return []any{val.String()}, false, nil
	case time.Time, []byte, string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return []any{val}, false, nil
	}

	if _, ok := v.(driver.Valuer); ok {
		return []any{v}, false, nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return []any{nil}, false, nil
		}
		return coerce(rv.Elem().Interface())
	case reflect.Slice:
		if rv.IsNil() {
			return nil, false, &CoercionError{Value: v, Reason: "nil collection has no determinable shape"}
		}
		return coerceSequence(rv)
	case reflect.Array:
		return coerceSequence(rv)
	case reflect.Map, reflect.Chan, reflect.Func:
		return nil, false, &CoercionError{Value: v, Reason: "unsupported value kind " + rv.Kind().String()}
	}

	// Opaque pass-through: driver-defined behavior.
	return []any{v}, false, nil
}

// coerceSequence expands a slice or array into one bind value per element.
// Elements must coerce to scalars; nested collections are rejected.
func coerceSequence(rv reflect.Value) ([]any, bool, error) {
	out := make([]any, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		vals, expanded, err := coerce(rv.Index(i).Interface())
		if err != nil {
			return nil, false, err
		}
		if expanded {
			return nil, false, &CoercionError{Value: rv.Interface(), Reason: "nested collection in sequence value"}
		}
		out = append(out, vals[0])
	}
	return out, true, nil
}

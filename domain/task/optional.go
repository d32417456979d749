package task

import (
	"bytes"
	"encoding/json"
)

var jsonNull = []byte("null")

// Optional is a tri-state value: unset, explicitly null, or set to a value.
// The zero value is unset. Encoding/json only calls UnmarshalJSON for keys
// that are present, which is what makes absence observable.
type Optional[T any] struct {
	value T
	set   bool
	null  bool
}

// Some returns an Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

// Null returns an Optional that was explicitly set to null.
func Null[T any]() Optional[T] {
	return Optional[T]{set: true, null: true}
}

// IsSet reports whether the value was supplied at all, null included.
func (o Optional[T]) IsSet() bool { return o.set }

// IsNull reports whether the value was explicitly set to null.
func (o Optional[T]) IsNull() bool { return o.set && o.null }

// Get returns the value and true when the Optional holds a non-null value.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.set && !o.null
}

// IsZero makes `omitzero` drop unset values when encoding.
func (o Optional[T]) IsZero() bool { return !o.set }

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.set || o.null {
		return jsonNull, nil
	}
	return json.Marshal(o.value)
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		*o = Null[T]()
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*o = Some(v)
	return nil
}

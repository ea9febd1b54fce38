// Package optional provides a tri-state value for partial updates: a field can
// be absent from the payload, explicitly null, or carry a value.
package optional

import (
	"bytes"
	"encoding/json"
)

type Value[T any] struct {
	set  bool
	null bool
	v    T
}

// Of returns a present, non-null value.
func Of[T any](v T) Value[T] {
	return Value[T]{set: true, v: v}
}

// Null returns a present, explicitly null value.
func Null[T any]() Value[T] {
	return Value[T]{set: true, null: true}
}

// IsSet reports whether the field appeared in the payload at all.
func (o Value[T]) IsSet() bool { return o.set }

// IsNull reports an explicit null.
func (o Value[T]) IsNull() bool { return o.set && o.null }

// Get returns the value when it is present and not null.
func (o Value[T]) Get() (T, bool) {
	if !o.set || o.null {
		var zero T
		return zero, false
	}
	return o.v, true
}

// OrElse returns the value, or fallback when absent or null.
func (o Value[T]) OrElse(fallback T) T {
	if v, ok := o.Get(); ok {
		return v
	}
	return fallback
}

func (o *Value[T]) UnmarshalJSON(data []byte) error {
	o.set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero T
		o.null = true
		o.v = zero
		return nil
	}
	o.null = false
	return json.Unmarshal(data, &o.v)
}

func (o Value[T]) MarshalJSON() ([]byte, error) {
	if !o.set || o.null {
		return []byte("null"), nil
	}
	return json.Marshal(o.v)
}
